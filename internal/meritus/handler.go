package meritus

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pedesim/backend/pkg/response"
)

// Handler exposes the read-only merit endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a meritus handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Programs handles GET /admin/meritus/programas.
func (h *Handler) Programs(c *gin.Context) {
	list, err := h.repo.ListPrograms(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load programs")
		return
	}
	response.OK(c, list)
}

// Periods handles GET /admin/meritus/programas/:id/periodos.
func (h *Handler) Periods(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid program id")
		return
	}
	list, err := h.repo.ListPeriods(c.Request.Context(), programID)
	if err != nil {
		response.Internal(c, "failed to load periods")
		return
	}
	response.OK(c, list)
}

// Criteria handles GET /admin/meritus/programas/:id/criterios.
func (h *Handler) Criteria(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid program id")
		return
	}
	list, err := h.repo.ListCriteria(c.Request.Context(), programID)
	if err != nil {
		response.Internal(c, "failed to load criteria")
		return
	}
	response.OK(c, list)
}

// Ranking handles GET /admin/meritus/programas/:id/periodos/:periodo_id/ranking.
func (h *Handler) Ranking(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid program id")
		return
	}
	periodID, err := uuid.Parse(c.Param("periodo_id"))
	if err != nil {
		response.BadRequest(c, "invalid period id")
		return
	}
	list, err := h.repo.Ranking(c.Request.Context(), programID, periodID)
	if err != nil {
		response.Internal(c, "failed to load ranking")
		return
	}
	response.OK(c, list)
}
