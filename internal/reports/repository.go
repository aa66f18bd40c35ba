package reports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedesim/backend/internal/models"
)

// Repository reads the raw production lines.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a reports repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Lines returns per-item unit counts grouped by order status for a campaign,
// restricted to the given statuses.
func (r *Repository) Lines(ctx context.Context, campaignID uuid.UUID, statuses []models.OrderStatus) ([]Line, error) {
	set := make([]string, len(statuses))
	for i, s := range statuses {
		set[i] = string(s)
	}
	const q = `SELECT i.nome, p.status, SUM(pi.quantidade)
		FROM pedido_itens pi
		JOIN pedidos p ON p.id = pi.pedido_id
		JOIN itens i ON i.id = pi.item_id
		WHERE p.campanha_id = $1 AND p.status = ANY($2)
		GROUP BY i.nome, p.status`
	rows, err := r.pool.Query(ctx, q, campaignID, set)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.Item, &l.Status, &l.Quantidade); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// CampaignName returns the campaign's display name for the CSV footer.
func (r *Repository) CampaignName(ctx context.Context, campaignID uuid.UUID) (string, error) {
	var nome string
	err := r.pool.QueryRow(ctx, `SELECT nome FROM campanhas WHERE id = $1`, campaignID).Scan(&nome)
	return nome, err
}
