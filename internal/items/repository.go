package items

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedesim/backend/internal/models"
)

// ErrInOrders is returned when removal is blocked by order lines.
var ErrInOrders = errors.New("item referenced by orders")

// Repository handles menu item persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an items repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByCampaign returns a campaign's menu in display order. When activeOnly
// is set, disabled entries are skipped (storefront view).
func (r *Repository) ListByCampaign(ctx context.Context, campaignID uuid.UUID, activeOnly bool) ([]models.CampaignItem, error) {
	q := `SELECT ic.campanha_id, ic.item_id, i.nome, ic.ordem, ic.ativo
		FROM itens_campanha ic
		JOIN itens i ON i.id = ic.item_id
		WHERE ic.campanha_id = $1`
	if activeOnly {
		q += ` AND ic.ativo`
	}
	q += ` ORDER BY ic.ordem, i.nome`
	rows, err := r.pool.Query(ctx, q, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.CampaignItem
	for rows.Next() {
		var it models.CampaignItem
		if err := rows.Scan(&it.CampanhaID, &it.ItemID, &it.Nome, &it.Ordem, &it.Ativo); err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Add creates the item if needed and attaches it to the campaign at the end
// of the display order.
func (r *Repository) Add(ctx context.Context, campaignID uuid.UUID, nome string) (*models.CampaignItem, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var itemID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM itens WHERE nome = $1`, nome).Scan(&itemID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, `INSERT INTO itens (nome) VALUES ($1) RETURNING id`, nome).Scan(&itemID)
	}
	if err != nil {
		return nil, err
	}

	var it models.CampaignItem
	err = tx.QueryRow(ctx, `INSERT INTO itens_campanha (campanha_id, item_id, ordem)
		VALUES ($1, $2, COALESCE((SELECT MAX(ordem) + 1 FROM itens_campanha WHERE campanha_id = $1), 0))
		ON CONFLICT (campanha_id, item_id) DO UPDATE SET ativo = TRUE
		RETURNING campanha_id, item_id, ordem, ativo`, campaignID, itemID).
		Scan(&it.CampanhaID, &it.ItemID, &it.Ordem, &it.Ativo)
	if err != nil {
		return nil, err
	}
	it.Nome = nome
	return &it, tx.Commit(ctx)
}

// Rename changes an item's display name.
func (r *Repository) Rename(ctx context.Context, itemID uuid.UUID, nome string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE itens SET nome = $2 WHERE id = $1`, itemID, nome)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Reorder rewrites a campaign's display order from the given item ID list.
func (r *Repository) Reorder(ctx context.Context, campaignID uuid.UUID, itemIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for i, id := range itemIDs {
		if _, err := tx.Exec(ctx,
			`UPDATE itens_campanha SET ordem = $3 WHERE campanha_id = $1 AND item_id = $2`,
			campaignID, id, i); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// SetActive toggles an item on a campaign's menu.
func (r *Repository) SetActive(ctx context.Context, campaignID, itemID uuid.UUID, ativo bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE itens_campanha SET ativo = $3 WHERE campanha_id = $1 AND item_id = $2`,
		campaignID, itemID, ativo)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Remove detaches an item from the campaign. Items already referenced by
// order lines stay in place and are reported as ErrInOrders.
func (r *Repository) Remove(ctx context.Context, campaignID, itemID uuid.UUID) error {
	var inOrders bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM pedido_itens pi
			JOIN pedidos p ON p.id = pi.pedido_id
			WHERE p.campanha_id = $1 AND pi.item_id = $2)`,
		campaignID, itemID).Scan(&inOrders)
	if err != nil {
		return err
	}
	if inOrders {
		return ErrInOrders
	}
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM itens_campanha WHERE campanha_id = $1 AND item_id = $2`,
		campaignID, itemID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrInOrders
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
