package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedesim/backend/internal/models"
)

// Repository handles order persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an orders repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const orderCols = `id, campanha_id, codigo_pedido, nome_comprador, whatsapp,
	nome_referencia, quantidade, valor_total, status, criado_em`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.CampanhaID, &o.CodigoPedido, &o.NomeComprador, &o.Whatsapp,
		&o.NomeReferencia, &o.Quantidade, &o.ValorTotal, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ActiveCampaign returns the storefront campaign (active, most recent
// data_inicio) with its owning organization.
func (r *Repository) ActiveCampaign(ctx context.Context) (*models.Campaign, *models.Organization, error) {
	const q = `SELECT c.id, c.organizacao_id, c.nome, c.data_inicio, c.data_fim,
		c.preco_base, c.identificador_centavos, c.ativa, c.criado_em,
		o.id, o.nome, COALESCE(o.tipo_chave_pix,''), o.chave_pix,
		COALESCE(o.banco_pix,''), COALESCE(o.identificador_pix,''), o.ativo, o.criado_em
		FROM campanhas c
		JOIN organizacoes o ON o.id = c.organizacao_id
		WHERE c.ativa AND o.ativo
		ORDER BY c.data_inicio DESC
		LIMIT 1`
	var cp models.Campaign
	var org models.Organization
	err := r.pool.QueryRow(ctx, q).Scan(
		&cp.ID, &cp.OrganizacaoID, &cp.Nome, &cp.DataInicio, &cp.DataFim,
		&cp.PrecoBase, &cp.IdentificadorCentavos, &cp.Ativa, &cp.CreatedAt,
		&org.ID, &org.Nome, &org.TipoChavePix, &org.ChavePix,
		&org.BancoPix, &org.IdentificadorPix, &org.Ativo, &org.CreatedAt)
	if err != nil {
		return nil, nil, err
	}
	return &cp, &org, nil
}

// Create inserts the order and its lines in one transaction.
func (r *Repository) Create(ctx context.Context, o *models.Order, lines []models.OrderItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO pedidos (campanha_id, nome_comprador, whatsapp, nome_referencia, quantidade, valor_total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, codigo_pedido, status, criado_em`
	err = tx.QueryRow(ctx, q, o.CampanhaID, o.NomeComprador, o.Whatsapp,
		o.NomeReferencia, o.Quantidade, o.ValorTotal).
		Scan(&o.ID, &o.CodigoPedido, &o.Status, &o.CreatedAt)
	if err != nil {
		return err
	}
	for i := range lines {
		lines[i].PedidoID = o.ID
		if _, err := tx.Exec(ctx,
			`INSERT INTO pedido_itens (pedido_id, item_id, quantidade) VALUES ($1, $2, $3)`,
			o.ID, lines[i].ItemID, lines[i].Quantidade); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetByID returns an order.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderCols+` FROM pedidos WHERE id = $1`, id))
}

// GetWithOrganization returns an order plus the organization behind its
// campaign (needed to build the PIX payload).
func (r *Repository) GetWithOrganization(ctx context.Context, id uuid.UUID) (*models.Order, *models.Organization, error) {
	const q = `SELECT p.id, p.campanha_id, p.codigo_pedido, p.nome_comprador, p.whatsapp,
		p.nome_referencia, p.quantidade, p.valor_total, p.status, p.criado_em,
		o.id, o.nome, COALESCE(o.tipo_chave_pix,''), o.chave_pix,
		COALESCE(o.banco_pix,''), COALESCE(o.identificador_pix,''), o.ativo, o.criado_em
		FROM pedidos p
		JOIN campanhas c ON c.id = p.campanha_id
		JOIN organizacoes o ON o.id = c.organizacao_id
		WHERE p.id = $1`
	var ord models.Order
	var org models.Organization
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&ord.ID, &ord.CampanhaID, &ord.CodigoPedido, &ord.NomeComprador, &ord.Whatsapp,
		&ord.NomeReferencia, &ord.Quantidade, &ord.ValorTotal, &ord.Status, &ord.CreatedAt,
		&org.ID, &org.Nome, &org.TipoChavePix, &org.ChavePix,
		&org.BancoPix, &org.IdentificadorPix, &org.Ativo, &org.CreatedAt)
	if err != nil {
		return nil, nil, err
	}
	return &ord, &org, nil
}

// ListByCampaign returns a campaign's orders, newest first, optionally
// filtered by a free-text search over codigo, comprador, whatsapp and
// referencia.
func (r *Repository) ListByCampaign(ctx context.Context, campaignID uuid.UUID, search string) ([]*models.Order, error) {
	q := `SELECT ` + orderCols + ` FROM pedidos WHERE campanha_id = $1`
	args := []interface{}{campaignID}
	if search != "" {
		q += ` AND (codigo_pedido ILIKE $2 OR nome_comprador ILIKE $2
			OR whatsapp ILIKE $2 OR nome_referencia ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY criado_em DESC`
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// StatusSummary is the per-status rollup shown on the admin list.
type StatusSummary struct {
	Status     models.OrderStatus `json:"status"`
	Pedidos    int                `json:"pedidos"`
	Quantidade int                `json:"quantidade"`
	ValorTotal float64            `json:"valor_total"`
}

// SummaryByCampaign aggregates order counts, unit totals and money per status.
func (r *Repository) SummaryByCampaign(ctx context.Context, campaignID uuid.UUID) ([]StatusSummary, error) {
	const q = `SELECT status, COUNT(*), COALESCE(SUM(quantidade),0), COALESCE(SUM(valor_total),0)
		FROM pedidos WHERE campanha_id = $1
		GROUP BY status ORDER BY status`
	rows, err := r.pool.Query(ctx, q, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []StatusSummary
	for rows.Next() {
		var s StatusSummary
		if err := rows.Scan(&s.Status, &s.Pedidos, &s.Quantidade, &s.ValorTotal); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListPending returns the campaign's reconciliation work set, most recent
// first.
func (r *Repository) ListPending(ctx context.Context, campaignID uuid.UUID) ([]models.Order, error) {
	const q = `SELECT ` + orderCols + ` FROM pedidos
		WHERE campanha_id = $1 AND status = ANY($2)
		ORDER BY criado_em DESC`
	statuses := make([]string, len(models.PendingStatuses))
	for i, s := range models.PendingStatuses {
		statuses[i] = string(s)
	}
	rows, err := r.pool.Query(ctx, q, campaignID, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *o)
	}
	return list, rows.Err()
}

// UpdateStatus sets an order's status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pedidos SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// LinesByOrder returns an order's line items with item names.
func (r *Repository) LinesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	const q = `SELECT pi.pedido_id, pi.item_id, i.nome, pi.quantidade
		FROM pedido_itens pi
		JOIN itens i ON i.id = pi.item_id
		WHERE pi.pedido_id = $1
		ORDER BY i.nome`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.OrderItem
	for rows.Next() {
		var li models.OrderItem
		if err := rows.Scan(&li.PedidoID, &li.ItemID, &li.Nome, &li.Quantidade); err != nil {
			return nil, err
		}
		list = append(list, li)
	}
	return list, rows.Err()
}

// LinesByCampaign returns "Flavor x2, Other x1" style line descriptions for
// every order of a campaign, keyed by order ID. Used by the CSV export to
// avoid one query per row.
func (r *Repository) LinesByCampaign(ctx context.Context, campaignID uuid.UUID) (map[uuid.UUID]string, error) {
	const q = `SELECT pi.pedido_id,
		STRING_AGG(i.nome || ' x' || pi.quantidade, ', ' ORDER BY i.nome)
		FROM pedido_itens pi
		JOIN pedidos p ON p.id = pi.pedido_id
		JOIN itens i ON i.id = pi.item_id
		WHERE p.campanha_id = $1
		GROUP BY pi.pedido_id`
	rows, err := r.pool.Query(ctx, q, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uuid.UUID]string)
	for rows.Next() {
		var id uuid.UUID
		var desc string
		if err := rows.Scan(&id, &desc); err != nil {
			return nil, err
		}
		out[id] = desc
	}
	return out, rows.Err()
}
