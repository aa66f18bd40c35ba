package reports

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pedesim/backend/pkg/csvutil"
	"github.com/pedesim/backend/pkg/response"
)

// Handler handles production report endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a reports handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) build(c *gin.Context) (*Report, uuid.UUID, bool) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return nil, uuid.Nil, false
	}
	incluirPendentes := c.Query("incluir_pendentes") == "true" || c.Query("incluir_pendentes") == "1"
	lines, err := h.repo.Lines(c.Request.Context(), campaignID, StatusSet(incluirPendentes))
	if err != nil {
		response.Internal(c, "failed to load production lines")
		return nil, uuid.Nil, false
	}
	report := Build(lines, incluirPendentes)
	return &report, campaignID, true
}

// Production handles GET /admin/campanhas/:id/producao.
func (h *Handler) Production(c *gin.Context) {
	report, _, ok := h.build(c)
	if !ok {
		return
	}
	response.OK(c, report)
}

// ProductionCSV handles GET /admin/campanhas/:id/producao.csv.
func (h *Handler) ProductionCSV(c *gin.Context) {
	report, campaignID, ok := h.build(c)
	if !ok {
		return
	}
	campanha, err := h.repo.CampaignName(c.Request.Context(), campaignID)
	if err != nil {
		response.Internal(c, "failed to load campaign")
		return
	}

	rows := [][]string{{"sabor", "quantidade"}}
	for _, it := range report.Itens {
		rows = append(rows, []string{it.Nome, strconv.Itoa(it.Quantidade)})
	}
	rows = append(rows, nil)
	rows = append(rows, []string{"TOTAL", strconv.Itoa(report.Total)})
	rows = append(rows, nil)
	rows = append(rows,
		[]string{"Emitido em", time.Now().Format("2006-01-02 15:04:05")},
		[]string{"Campanha", campanha},
		[]string{"Pendentes", strconv.FormatBool(report.IncluirPendentes)},
	)

	c.Header("Content-Disposition", `attachment; filename="producao.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvutil.Join(rows)+"\n"))
}
