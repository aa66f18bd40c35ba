package payments

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pedesim/backend/pkg/csvutil"
	"github.com/pedesim/backend/pkg/money"
	"github.com/pedesim/backend/pkg/response"
)

// Handler handles payment history endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a payments handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /admin/campanhas/:id/pagamentos with optional ?q= filter.
func (h *Handler) List(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	search := strings.TrimSpace(c.Query("q"))
	list, err := h.repo.ListByCampaign(c.Request.Context(), campaignID, search)
	if err != nil {
		response.Internal(c, "failed to load payments")
		return
	}
	response.OK(c, list)
}

// ExportCSV handles GET /admin/campanhas/:id/pagamentos.csv.
func (h *Handler) ExportCSV(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	list, err := h.repo.ListByCampaign(c.Request.Context(), campaignID, "")
	if err != nil {
		response.Internal(c, "failed to load payments")
		return
	}

	rows := [][]string{{"txid", "valor", "confirmado_em", "codigo_pedido",
		"nome_comprador", "whatsapp", "valor_pedido"}}
	for _, p := range list {
		confirmado := ""
		if p.ConfirmadoEm != nil {
			confirmado = p.ConfirmadoEm.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{
			p.TXID,
			money.FormatAmount(p.Valor),
			confirmado,
			p.Pedido.CodigoPedido,
			p.Pedido.NomeComprador,
			p.Pedido.Whatsapp,
			money.FormatAmount(p.Pedido.ValorTotal),
		})
	}

	c.Header("Content-Disposition", `attachment; filename="pagamentos.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvutil.Join(rows)+"\n"))
}
