package reconcile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pedesim/backend/internal/models"
	"github.com/pedesim/backend/internal/orders"
	"github.com/pedesim/backend/internal/realtime"
	"github.com/pedesim/backend/pkg/money"
	"github.com/pedesim/backend/pkg/response"
)

// Handler handles the reconciliation screen endpoints.
type Handler struct {
	repo       *Repository
	ordersRepo *orders.Repository
	hub        *realtime.Hub
	logger     *zap.Logger
}

// NewHandler creates a reconcile handler.
func NewHandler(repo *Repository, ordersRepo *orders.Repository, hub *realtime.Hub, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, ordersRepo: ordersRepo, hub: hub, logger: logger}
}

// Suggestions handles GET /admin/campanhas/:id/conferencia?codigo=&valor=.
// valor comes as typed from the bank statement ("70,01"); an unparseable
// value simply disables amount filtering.
func (h *Handler) Suggestions(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	pending, err := h.ordersRepo.ListPending(c.Request.Context(), campaignID)
	if err != nil {
		response.Internal(c, "failed to load pending orders")
		return
	}

	code := c.Query("codigo")
	amount := 0.0
	valorStr := c.Query("valor")
	if valorStr != "" {
		if v, err := money.ParseBRL(valorStr); err == nil {
			amount = v
		}
	}

	suggestions := Suggest(pending, code, amount)
	response.OK(c, gin.H{
		"sugestoes":  suggestions,
		"pendentes":  len(pending),
		"valor_lido": amount,
	})
}

// MarkPaidRequest is the body for POST /admin/pedidos/:id/pagar.
type MarkPaidRequest struct {
	Valor      string `json:"valor" binding:"required"`
	TXID       string `json:"txid"`
	Observacao string `json:"observacao"`
}

// MarkPaid handles POST /admin/pedidos/:id/pagar. A missing TXID does not
// block confirmation; one is synthesized and the response carries a warning
// flag.
func (h *Handler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "valor required")
		return
	}
	valor, err := money.ParseBRL(req.Valor)
	if err != nil || valor <= 0 {
		response.BadRequest(c, "valor must be a positive amount")
		return
	}

	txid := strings.TrimSpace(req.TXID)
	txidMissing := txid == ""
	if txidMissing {
		txid = fmt.Sprintf("MANUAL-%d", time.Now().UnixMilli())
	}

	payload := models.PaymentPayload{
		Origem:       models.PaymentOrigemConferenciaManual,
		Observacao:   strings.TrimSpace(req.Observacao),
		ValorExtrato: valor,
	}
	payment, order, err := h.repo.MarkPaid(c.Request.Context(), id, txid, valor, payload)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyPaid):
			response.Conflict(c, "order already has a confirmed payment")
		case errors.Is(err, ErrInvalidTransition):
			response.Conflict(c, "order status does not allow payment confirmation")
		case errors.Is(err, pgx.ErrNoRows):
			response.NotFound(c, "order not found")
		default:
			h.logger.Error("mark paid", zap.Error(err))
			response.Internal(c, "failed to confirm payment")
		}
		return
	}

	h.hub.Notify(order.CampanhaID, realtime.EventPaymentConfirmed, gin.H{
		"pedido":    order,
		"pagamento": payment,
	})

	response.OK(c, gin.H{
		"pedido":       order,
		"pagamento":    payment,
		"txid_ausente": txidMissing,
	})
}

// MarkUnderReview handles POST /admin/pedidos/:id/analise: a plain transition
// to em_analise for orders the operator is still checking.
func (h *Handler) MarkUnderReview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	order, err := h.ordersRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "order not found")
		return
	}
	if !models.CanTransition(order.Status, models.StatusEmAnalise) {
		response.Conflict(c, "transition from "+string(order.Status)+" to em_analise is not allowed")
		return
	}
	if err := h.ordersRepo.UpdateStatus(c.Request.Context(), id, models.StatusEmAnalise); err != nil {
		response.Internal(c, "failed to update order")
		return
	}
	order.Status = models.StatusEmAnalise
	h.hub.Notify(order.CampanhaID, realtime.EventOrderUpdated, order)
	response.OK(c, order)
}
