package organizations

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pedesim/backend/internal/models"
	"github.com/pedesim/backend/pkg/response"
)

// Handler handles organization HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates an organizations handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// OrganizationRequest is the body for POST and PUT on /admin/organizacoes.
type OrganizationRequest struct {
	Nome             string `json:"nome" binding:"required"`
	TipoChavePix     string `json:"tipo_chave_pix"`
	ChavePix         string `json:"chave_pix" binding:"required"`
	BancoPix         string `json:"banco_pix"`
	IdentificadorPix string `json:"identificador_pix"`
	Ativo            *bool  `json:"ativo"`
}

func (req *OrganizationRequest) validate() string {
	req.Nome = strings.TrimSpace(req.Nome)
	req.ChavePix = strings.TrimSpace(req.ChavePix)
	req.IdentificadorPix = strings.TrimSpace(req.IdentificadorPix)
	if req.Nome == "" {
		return "nome required"
	}
	if req.ChavePix == "" {
		return "chave_pix required"
	}
	if req.TipoChavePix != "" && !models.ValidPixKeyType(req.TipoChavePix) {
		return "tipo_chave_pix must be one of email, cpf, cnpj, phone, random"
	}
	if utf8.RuneCountInString(req.IdentificadorPix) > 25 {
		return "identificador_pix must be at most 25 characters"
	}
	if strings.IndexFunc(req.IdentificadorPix, unicode.IsSpace) >= 0 {
		return "identificador_pix must not contain whitespace"
	}
	return ""
}

// Create handles POST /admin/organizacoes.
func (h *Handler) Create(c *gin.Context) {
	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	org := &models.Organization{
		Nome:             req.Nome,
		TipoChavePix:     req.TipoChavePix,
		ChavePix:         req.ChavePix,
		BancoPix:         req.BancoPix,
		IdentificadorPix: req.IdentificadorPix,
	}
	if err := h.repo.Create(c.Request.Context(), org); err != nil {
		response.Internal(c, "failed to create organization")
		return
	}
	response.Created(c, org)
}

// List handles GET /admin/organizacoes.
func (h *Handler) List(c *gin.Context) {
	orgs, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load organizations")
		return
	}
	response.OK(c, orgs)
}

// Get handles GET /admin/organizacoes/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	org, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "organization not found")
		return
	}
	response.OK(c, org)
}

// Update handles PUT /admin/organizacoes/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid organization id")
		return
	}
	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		response.BadRequest(c, msg)
		return
	}
	current, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "organization not found")
		return
	}
	ativo := current.Ativo
	if req.Ativo != nil {
		ativo = *req.Ativo
	}
	org := &models.Organization{
		ID:               id,
		Nome:             req.Nome,
		TipoChavePix:     req.TipoChavePix,
		ChavePix:         req.ChavePix,
		BancoPix:         req.BancoPix,
		IdentificadorPix: req.IdentificadorPix,
		Ativo:            ativo,
	}
	if err := h.repo.Update(c.Request.Context(), org); err != nil {
		response.Internal(c, "failed to update organization")
		return
	}
	response.OK(c, org)
}
