package items

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pedesim/backend/pkg/response"
)

// Handler handles menu item HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates an items handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /admin/campanhas/:id/itens.
func (h *Handler) List(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	list, err := h.repo.ListByCampaign(c.Request.Context(), campaignID, false)
	if err != nil {
		response.Internal(c, "failed to load items")
		return
	}
	response.OK(c, list)
}

// Add handles POST /admin/campanhas/:id/itens.
func (h *Handler) Add(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	var body struct {
		Nome string `json:"nome" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "nome required")
		return
	}
	body.Nome = strings.TrimSpace(body.Nome)
	if body.Nome == "" {
		response.BadRequest(c, "nome required")
		return
	}
	it, err := h.repo.Add(c.Request.Context(), campaignID, body.Nome)
	if err != nil {
		response.Internal(c, "failed to add item")
		return
	}
	response.Created(c, it)
}

// Rename handles PUT /admin/itens/:id.
func (h *Handler) Rename(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}
	var body struct {
		Nome string `json:"nome" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "nome required")
		return
	}
	body.Nome = strings.TrimSpace(body.Nome)
	if body.Nome == "" {
		response.BadRequest(c, "nome required")
		return
	}
	if err := h.repo.Rename(c.Request.Context(), itemID, body.Nome); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "item not found")
			return
		}
		response.Internal(c, "failed to rename item")
		return
	}
	response.NoContent(c)
}

// Reorder handles PUT /admin/campanhas/:id/itens/ordem.
func (h *Handler) Reorder(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	var body struct {
		ItemIDs []uuid.UUID `json:"item_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.ItemIDs) == 0 {
		response.BadRequest(c, "item_ids required")
		return
	}
	if err := h.repo.Reorder(c.Request.Context(), campaignID, body.ItemIDs); err != nil {
		response.Internal(c, "failed to reorder items")
		return
	}
	response.NoContent(c)
}

// SetActive handles PATCH /admin/campanhas/:id/itens/:item_id.
func (h *Handler) SetActive(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}
	var body struct {
		Ativo *bool `json:"ativo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Ativo == nil {
		response.BadRequest(c, "ativo required")
		return
	}
	if err := h.repo.SetActive(c.Request.Context(), campaignID, itemID, *body.Ativo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "item not found on campaign")
			return
		}
		response.Internal(c, "failed to update item")
		return
	}
	response.NoContent(c)
}

// Remove handles DELETE /admin/campanhas/:id/itens/:item_id.
func (h *Handler) Remove(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}
	if err := h.repo.Remove(c.Request.Context(), campaignID, itemID); err != nil {
		switch {
		case errors.Is(err, ErrInOrders):
			response.Conflict(c, "item is referenced by orders; disable it instead")
		case errors.Is(err, pgx.ErrNoRows):
			response.NotFound(c, "item not found on campaign")
		default:
			response.Internal(c, "failed to remove item")
		}
		return
	}
	response.NoContent(c)
}
