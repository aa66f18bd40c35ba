package campaigns

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pedesim/backend/internal/models"
	"github.com/pedesim/backend/pkg/money"
	"github.com/pedesim/backend/pkg/response"
)

// Handler handles campaign HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a campaigns handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CampaignRequest is the body for POST and PUT on /admin/campanhas.
type CampaignRequest struct {
	OrganizacaoID         string  `json:"organizacao_id"`
	Nome                  string  `json:"nome" binding:"required"`
	DataInicio            string  `json:"data_inicio" binding:"required"`
	DataFim               string  `json:"data_fim" binding:"required"`
	PrecoBase             float64 `json:"preco_base"`
	IdentificadorCentavos float64 `json:"identificador_centavos"`
}

func (req *CampaignRequest) validate() (inicio, fim time.Time, msg string) {
	req.Nome = strings.TrimSpace(req.Nome)
	if req.Nome == "" {
		return inicio, fim, "nome required"
	}
	var err error
	if inicio, err = time.Parse("2006-01-02", req.DataInicio); err != nil {
		return inicio, fim, "data_inicio must be YYYY-MM-DD"
	}
	if fim, err = time.Parse("2006-01-02", req.DataFim); err != nil {
		return inicio, fim, "data_fim must be YYYY-MM-DD"
	}
	if fim.Before(inicio) {
		return inicio, fim, "data_fim must not precede data_inicio"
	}
	if req.PrecoBase <= 0 {
		return inicio, fim, "preco_base must be greater than zero"
	}
	if req.IdentificadorCentavos < 0 || req.IdentificadorCentavos >= 1 {
		return inicio, fim, "identificador_centavos must be in [0, 1)"
	}
	req.PrecoBase = money.Round2(req.PrecoBase)
	req.IdentificadorCentavos = money.Round2(req.IdentificadorCentavos)
	return inicio, fim, ""
}

// Create handles POST /admin/campanhas.
func (h *Handler) Create(c *gin.Context) {
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	orgID, err := uuid.Parse(req.OrganizacaoID)
	if err != nil {
		response.BadRequest(c, "invalid organizacao_id")
		return
	}
	inicio, fim, msg := req.validate()
	if msg != "" {
		response.BadRequest(c, msg)
		return
	}
	cp := &models.Campaign{
		OrganizacaoID:         orgID,
		Nome:                  req.Nome,
		DataInicio:            inicio,
		DataFim:               fim,
		PrecoBase:             req.PrecoBase,
		IdentificadorCentavos: req.IdentificadorCentavos,
	}
	if err := h.repo.Create(c.Request.Context(), cp); err != nil {
		response.Internal(c, "failed to create campaign")
		return
	}
	response.Created(c, cp)
}

// List handles GET /admin/organizacoes/:id/campanhas.
func (h *Handler) List(c *gin.Context) {
	orgID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	list, err := h.repo.ListByOrganization(c.Request.Context(), orgID)
	if err != nil {
		response.Internal(c, "failed to load campaigns")
		return
	}
	response.OK(c, list)
}

// Get handles GET /admin/campanhas/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	cp, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "campaign not found")
		return
	}
	response.OK(c, cp)
}

// Update handles PUT /admin/campanhas/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	inicio, fim, msg := req.validate()
	if msg != "" {
		response.BadRequest(c, msg)
		return
	}
	cp := &models.Campaign{
		ID:                    id,
		Nome:                  req.Nome,
		DataInicio:            inicio,
		DataFim:               fim,
		PrecoBase:             req.PrecoBase,
		IdentificadorCentavos: req.IdentificadorCentavos,
	}
	if err := h.repo.Update(c.Request.Context(), cp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "campaign not found")
			return
		}
		response.Internal(c, "failed to update campaign")
		return
	}
	response.OK(c, cp)
}

// Activate handles POST /admin/campanhas/:id/ativar. Flips the organization's
// active flag to this campaign in one statement.
func (h *Handler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	cp, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "campaign not found")
		return
	}
	if err := h.repo.Activate(c.Request.Context(), cp.OrganizacaoID, cp.ID); err != nil {
		response.Internal(c, "failed to activate campaign")
		return
	}
	cp.Ativa = true
	response.OK(c, cp)
}

// Deactivate handles POST /admin/campanhas/:id/desativar.
func (h *Handler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	if err := h.repo.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "campaign not found")
			return
		}
		response.Internal(c, "failed to deactivate campaign")
		return
	}
	response.NoContent(c)
}

// Delete handles DELETE /admin/campanhas/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrHasOrders):
			response.Conflict(c, "campaign has orders and cannot be deleted")
		case errors.Is(err, pgx.ErrNoRows):
			response.NotFound(c, "campaign not found")
		default:
			response.Internal(c, "failed to delete campaign")
		}
		return
	}
	response.NoContent(c)
}
