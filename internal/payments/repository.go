package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedesim/backend/internal/models"
)

// Repository reads confirmed payment history.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a payments repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByCampaign returns a campaign's confirmed payments, newest first, each
// joined with its order in a single query. An optional free-text filter
// matches txid, codigo, comprador and whatsapp.
func (r *Repository) ListByCampaign(ctx context.Context, campaignID uuid.UUID, search string) ([]models.PaymentWithOrder, error) {
	q := `SELECT pg.id, pg.pedido_id, pg.txid, pg.valor, pg.status, pg.confirmado_em, pg.payload, pg.criado_em,
		p.id, p.campanha_id, p.codigo_pedido, p.nome_comprador, p.whatsapp,
		p.nome_referencia, p.quantidade, p.valor_total, p.status, p.criado_em
		FROM pagamentos pg
		JOIN pedidos p ON p.id = pg.pedido_id
		WHERE p.campanha_id = $1 AND pg.status = 'confirmado'`
	args := []interface{}{campaignID}
	if search != "" {
		q += ` AND (pg.txid ILIKE $2 OR p.codigo_pedido ILIKE $2
			OR p.nome_comprador ILIKE $2 OR p.whatsapp ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY pg.criado_em DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.PaymentWithOrder
	for rows.Next() {
		var pw models.PaymentWithOrder
		var o models.Order
		if err := rows.Scan(
			&pw.ID, &pw.PedidoID, &pw.TXID, &pw.Valor, &pw.Status, &pw.ConfirmadoEm, &pw.Payload, &pw.CreatedAt,
			&o.ID, &o.CampanhaID, &o.CodigoPedido, &o.NomeComprador, &o.Whatsapp,
			&o.NomeReferencia, &o.Quantidade, &o.ValorTotal, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		pw.Pedido = &o
		list = append(list, pw)
	}
	return list, rows.Err()
}
