package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedesim/backend/internal/models"
)

var (
	// ErrAlreadyPaid is returned when the order already carries a confirmed
	// payment; the second confirmation is rejected, never silently doubled.
	ErrAlreadyPaid = errors.New("order already paid")
	// ErrInvalidTransition is returned when the order cannot move to pago.
	ErrInvalidTransition = errors.New("order cannot transition to pago")
)

// Repository handles the payment-confirmation transaction.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a reconcile repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// MarkPaid confirms a payment for an order: the order row is locked, the
// pagamentos insert and the status flip commit together or not at all.
func (r *Repository) MarkPaid(ctx context.Context, orderID uuid.UUID, txid string, valor float64, payload models.PaymentPayload) (*models.Payment, *models.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	var o models.Order
	err = tx.QueryRow(ctx, `SELECT id, campanha_id, codigo_pedido, nome_comprador, whatsapp,
		nome_referencia, quantidade, valor_total, status, criado_em
		FROM pedidos WHERE id = $1 FOR UPDATE`, orderID).
		Scan(&o.ID, &o.CampanhaID, &o.CodigoPedido, &o.NomeComprador, &o.Whatsapp,
			&o.NomeReferencia, &o.Quantidade, &o.ValorTotal, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, nil, err
	}
	if o.Status == models.StatusPago {
		return nil, nil, ErrAlreadyPaid
	}
	if !models.CanTransition(o.Status, models.StatusPago) {
		return nil, nil, ErrInvalidTransition
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	p := models.Payment{
		PedidoID:     o.ID,
		TXID:         txid,
		Valor:        valor,
		Status:       models.PaymentStatusConfirmado,
		ConfirmadoEm: &now,
		Payload:      raw,
	}
	err = tx.QueryRow(ctx, `INSERT INTO pagamentos (pedido_id, txid, valor, status, confirmado_em, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, criado_em`,
		p.PedidoID, p.TXID, p.Valor, p.Status, now, raw).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE pedidos SET status = $2 WHERE id = $1`,
		o.ID, string(models.StatusPago)); err != nil {
		return nil, nil, err
	}
	o.Status = models.StatusPago

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &p, &o, nil
}
