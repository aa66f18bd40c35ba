package campaigns

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedesim/backend/internal/models"
)

// ErrHasOrders is returned when a delete is blocked by existing orders.
var ErrHasOrders = errors.New("campaign has orders")

// Repository handles campaign persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a campaigns repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const campaignCols = `id, organizacao_id, nome, data_inicio, data_fim,
	preco_base, identificador_centavos, ativa, criado_em`

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var cp models.Campaign
	err := row.Scan(&cp.ID, &cp.OrganizacaoID, &cp.Nome, &cp.DataInicio, &cp.DataFim,
		&cp.PrecoBase, &cp.IdentificadorCentavos, &cp.Ativa, &cp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// Create inserts a campaign (always inactive; activation is a separate step).
func (r *Repository) Create(ctx context.Context, cp *models.Campaign) error {
	const q = `INSERT INTO campanhas (organizacao_id, nome, data_inicio, data_fim, preco_base, identificador_centavos)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, ativa, criado_em`
	return r.pool.QueryRow(ctx, q, cp.OrganizacaoID, cp.Nome, cp.DataInicio, cp.DataFim,
		cp.PrecoBase, cp.IdentificadorCentavos).Scan(&cp.ID, &cp.Ativa, &cp.CreatedAt)
}

// GetByID returns a campaign by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignCols+` FROM campanhas WHERE id = $1`, id))
}

// ListByOrganization returns an organization's campaigns, active first.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*models.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campaignCols+` FROM campanhas
		WHERE organizacao_id = $1
		ORDER BY ativa DESC, criado_em DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Campaign
	for rows.Next() {
		cp, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, cp)
	}
	return list, rows.Err()
}

// Update overwrites a campaign's editable fields.
func (r *Repository) Update(ctx context.Context, cp *models.Campaign) error {
	const q = `UPDATE campanhas
		SET nome = $2, data_inicio = $3, data_fim = $4, preco_base = $5, identificador_centavos = $6
		WHERE id = $1
		RETURNING organizacao_id, ativa, criado_em`
	return r.pool.QueryRow(ctx, q, cp.ID, cp.Nome, cp.DataInicio, cp.DataFim,
		cp.PrecoBase, cp.IdentificadorCentavos).
		Scan(&cp.OrganizacaoID, &cp.Ativa, &cp.CreatedAt)
}

// Activate makes the campaign the organization's only active one. A single
// conditional UPDATE flips the whole set, so two concurrent activations
// cannot leave more than one row active.
func (r *Repository) Activate(ctx context.Context, orgID, campaignID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campanhas SET ativa = (id = $1) WHERE organizacao_id = $2`,
		campaignID, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Deactivate turns a campaign off without activating another.
func (r *Repository) Deactivate(ctx context.Context, campaignID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campanhas SET ativa = FALSE WHERE id = $1`, campaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a campaign. Campaigns with orders are protected by the FK
// and reported as ErrHasOrders.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM itens_campanha WHERE campanha_id = $1`, id); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM campanhas WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrHasOrders
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
