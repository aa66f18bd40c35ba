package organizations

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedesim/backend/internal/models"
)

// Repository handles organization persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an organizations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts an organization.
func (r *Repository) Create(ctx context.Context, org *models.Organization) error {
	const q = `INSERT INTO organizacoes (nome, tipo_chave_pix, chave_pix, banco_pix, identificador_pix)
		VALUES ($1, NULLIF($2,''), $3, NULLIF($4,''), NULLIF($5,''))
		RETURNING id, ativo, criado_em`
	return r.pool.QueryRow(ctx, q, org.Nome, org.TipoChavePix, org.ChavePix, org.BancoPix, org.IdentificadorPix).
		Scan(&org.ID, &org.Ativo, &org.CreatedAt)
}

// GetByID returns an organization by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	const q = `SELECT id, nome, COALESCE(tipo_chave_pix,''), chave_pix,
		COALESCE(banco_pix,''), COALESCE(identificador_pix,''), ativo, criado_em
		FROM organizacoes WHERE id = $1`
	var o models.Organization
	err := r.pool.QueryRow(ctx, q, id).Scan(&o.ID, &o.Nome, &o.TipoChavePix, &o.ChavePix,
		&o.BancoPix, &o.IdentificadorPix, &o.Ativo, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns all organizations, most recent first.
func (r *Repository) List(ctx context.Context) ([]*models.Organization, error) {
	const q = `SELECT id, nome, COALESCE(tipo_chave_pix,''), chave_pix,
		COALESCE(banco_pix,''), COALESCE(identificador_pix,''), ativo, criado_em
		FROM organizacoes ORDER BY criado_em DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Organization
	for rows.Next() {
		var o models.Organization
		if err := rows.Scan(&o.ID, &o.Nome, &o.TipoChavePix, &o.ChavePix,
			&o.BancoPix, &o.IdentificadorPix, &o.Ativo, &o.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update overwrites an organization's editable fields.
func (r *Repository) Update(ctx context.Context, org *models.Organization) error {
	const q = `UPDATE organizacoes
		SET nome = $2, tipo_chave_pix = NULLIF($3,''), chave_pix = $4,
		    banco_pix = NULLIF($5,''), identificador_pix = NULLIF($6,''), ativo = $7
		WHERE id = $1
		RETURNING criado_em`
	return r.pool.QueryRow(ctx, q, org.ID, org.Nome, org.TipoChavePix, org.ChavePix,
		org.BancoPix, org.IdentificadorPix, org.Ativo).Scan(&org.CreatedAt)
}
