package orders

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/pedesim/backend/config"
	"github.com/pedesim/backend/internal/items"
	"github.com/pedesim/backend/internal/models"
	"github.com/pedesim/backend/internal/pix"
	"github.com/pedesim/backend/internal/realtime"
	"github.com/pedesim/backend/pkg/csvutil"
	"github.com/pedesim/backend/pkg/money"
	"github.com/pedesim/backend/pkg/response"
)

// Handler handles storefront and admin order endpoints.
type Handler struct {
	repo      *Repository
	itemsRepo *items.Repository
	hub       *realtime.Hub
	pixCfg    config.PixConfig
	logger    *zap.Logger
}

// NewHandler creates an orders handler.
func NewHandler(repo *Repository, itemsRepo *items.Repository, hub *realtime.Hub, pixCfg config.PixConfig, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, itemsRepo: itemsRepo, hub: hub, pixCfg: pixCfg, logger: logger}
}

// buildPayload encodes the PIX copy-paste string for an order. Empty when the
// organization has no key.
func (h *Handler) buildPayload(org *models.Organization, o *models.Order) (string, error) {
	return pix.Encode(pix.Payload{
		Key:          org.ChavePix,
		MerchantName: h.pixCfg.MerchantName,
		MerchantCity: h.pixCfg.MerchantCity,
		Amount:       o.ValorTotal,
		TXID:         org.IdentificadorPix,
	})
}

// Storefront handles GET /loja (public): active campaign, organization and
// the ordered menu.
func (h *Handler) Storefront(c *gin.Context) {
	cp, org, err := h.repo.ActiveCampaign(c.Request.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "no active campaign")
			return
		}
		response.Internal(c, "failed to load storefront")
		return
	}
	menu, err := h.itemsRepo.ListByCampaign(c.Request.Context(), cp.ID, true)
	if err != nil {
		response.Internal(c, "failed to load menu")
		return
	}
	response.OK(c, gin.H{
		"campanha":    cp,
		"organizacao": org,
		"itens":       menu,
	})
}

// OrderLineRequest is one line of a storefront order.
type OrderLineRequest struct {
	ItemID     uuid.UUID `json:"item_id" binding:"required"`
	Quantidade int       `json:"quantidade" binding:"required"`
}

// CreateOrderRequest is the body for POST /pedidos.
type CreateOrderRequest struct {
	NomeComprador  string             `json:"nome_comprador" binding:"required"`
	Whatsapp       string             `json:"whatsapp" binding:"required"`
	NomeReferencia string             `json:"nome_referencia" binding:"required"`
	Itens          []OrderLineRequest `json:"itens" binding:"required"`
}

func validBuyerName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func validWhatsapp(s string) bool {
	if s == "" || len(s) > 11 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Create handles POST /pedidos (public). Total is computed server-side from
// the active campaign's pricing; the order and its lines land in one
// transaction.
func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	req.NomeComprador = strings.TrimSpace(req.NomeComprador)
	req.Whatsapp = strings.TrimSpace(req.Whatsapp)
	req.NomeReferencia = strings.TrimSpace(req.NomeReferencia)

	if !validBuyerName(req.NomeComprador) {
		response.BadRequest(c, "nome_comprador must contain only letters and spaces")
		return
	}
	if !validWhatsapp(req.Whatsapp) {
		response.BadRequest(c, "whatsapp must be digits only, at most 11")
		return
	}
	if req.NomeReferencia == "" {
		response.BadRequest(c, "nome_referencia required")
		return
	}
	if len(req.Itens) == 0 {
		response.BadRequest(c, "at least one item required")
		return
	}

	quantidade := 0
	for _, li := range req.Itens {
		if li.Quantidade < 1 {
			response.BadRequest(c, "item quantities must be at least 1")
			return
		}
		quantidade += li.Quantidade
	}

	cp, org, err := h.repo.ActiveCampaign(c.Request.Context())
	if err != nil {
		response.NotFound(c, "no active campaign")
		return
	}

	menu, err := h.itemsRepo.ListByCampaign(c.Request.Context(), cp.ID, true)
	if err != nil {
		response.Internal(c, "failed to load menu")
		return
	}
	onMenu := make(map[uuid.UUID]bool, len(menu))
	for _, it := range menu {
		onMenu[it.ItemID] = true
	}
	lines := make([]models.OrderItem, 0, len(req.Itens))
	for _, li := range req.Itens {
		if !onMenu[li.ItemID] {
			response.BadRequest(c, "item is not on the campaign menu")
			return
		}
		lines = append(lines, models.OrderItem{ItemID: li.ItemID, Quantidade: li.Quantidade})
	}

	order := &models.Order{
		CampanhaID:     cp.ID,
		NomeComprador:  req.NomeComprador,
		Whatsapp:       req.Whatsapp,
		NomeReferencia: req.NomeReferencia,
		Quantidade:     quantidade,
		ValorTotal:     money.OrderTotal(quantidade, cp.PrecoBase, cp.IdentificadorCentavos),
	}
	if err := h.repo.Create(c.Request.Context(), order, lines); err != nil {
		h.logger.Error("create order", zap.Error(err))
		response.Internal(c, "failed to create order")
		return
	}

	h.hub.Notify(cp.ID, realtime.EventOrderCreated, order)

	body := gin.H{"pedido": order}
	if payload, err := h.buildPayload(org, order); err == nil {
		body["pix_copia_cola"] = payload
		body["qrcode_url"] = "/pedidos/" + order.ID.String() + "/qrcode.png"
	}
	response.Created(c, body)
}

// Pix handles GET /pedidos/:id/pix (public): the copy-paste payload.
func (h *Handler) Pix(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	order, org, err := h.repo.GetWithOrganization(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "order not found")
		return
	}
	payload, err := h.buildPayload(org, order)
	if err != nil {
		response.Conflict(c, "organization has no PIX key configured")
		return
	}
	response.OK(c, gin.H{
		"pedido_id":      order.ID,
		"codigo_pedido":  order.CodigoPedido,
		"valor_total":    order.ValorTotal,
		"pix_copia_cola": payload,
		"txid":           pix.SanitizeTXID(org.IdentificadorPix),
	})
}

// QRCodePNG handles GET /pedidos/:id/qrcode.png (public): the payload
// rendered as a PNG.
func (h *Handler) QRCodePNG(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	order, org, err := h.repo.GetWithOrganization(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "order not found")
		return
	}
	payload, err := h.buildPayload(org, order)
	if err != nil {
		response.Conflict(c, "organization has no PIX key configured")
		return
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, h.pixCfg.QRSize)
	if err != nil {
		response.Internal(c, "failed to render QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// List handles GET /admin/campanhas/:id/pedidos with optional ?q= search.
func (h *Handler) List(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	search := strings.TrimSpace(c.Query("q"))
	list, err := h.repo.ListByCampaign(c.Request.Context(), campaignID, search)
	if err != nil {
		response.Internal(c, "failed to load orders")
		return
	}
	summary, err := h.repo.SummaryByCampaign(c.Request.Context(), campaignID)
	if err != nil {
		response.Internal(c, "failed to load summary")
		return
	}
	response.OK(c, gin.H{"pedidos": list, "resumo": summary})
}

// Lines handles GET /admin/pedidos/:id/itens.
func (h *Handler) Lines(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	lines, err := h.repo.LinesByOrder(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to load order items")
		return
	}
	response.OK(c, lines)
}

// UpdateStatus handles PATCH /admin/pedidos/:id/status. The state machine is
// enforced here; mark-paid goes through the reconciliation flow instead.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "status required")
		return
	}
	if !models.ValidStatus(body.Status) {
		response.BadRequest(c, "unknown status")
		return
	}
	order, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "order not found")
		return
	}
	if !models.CanTransition(order.Status, body.Status) {
		response.Conflict(c, "transition from "+string(order.Status)+" to "+string(body.Status)+" is not allowed")
		return
	}
	if err := h.repo.UpdateStatus(c.Request.Context(), id, body.Status); err != nil {
		response.Internal(c, "failed to update order status")
		return
	}
	order.Status = body.Status
	h.hub.Notify(order.CampanhaID, realtime.EventOrderUpdated, order)
	response.OK(c, order)
}

// ExportCSV handles GET /admin/campanhas/:id/pedidos.csv.
func (h *Handler) ExportCSV(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}
	list, err := h.repo.ListByCampaign(c.Request.Context(), campaignID, "")
	if err != nil {
		response.Internal(c, "failed to load orders")
		return
	}
	lines, err := h.repo.LinesByCampaign(c.Request.Context(), campaignID)
	if err != nil {
		response.Internal(c, "failed to load order items")
		return
	}

	rows := [][]string{{"codigo_pedido", "nome_comprador", "whatsapp", "nome_referencia",
		"quantidade", "valor_total", "status", "criado_em", "itens"}}
	for _, o := range list {
		rows = append(rows, []string{
			o.CodigoPedido,
			o.NomeComprador,
			o.Whatsapp,
			o.NomeReferencia,
			strconv.Itoa(o.Quantidade),
			money.FormatAmount(o.ValorTotal),
			string(o.Status),
			o.CreatedAt.Format("2006-01-02 15:04:05"),
			lines[o.ID],
		})
	}

	c.Header("Content-Disposition", `attachment; filename="pedidos.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvutil.Join(rows)+"\n"))
}
