package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedesim/backend/internal/models"
)

// Repository handles admin-user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `SELECT id, email, senha_hash, nome, perfil, criado_em
		FROM usuarios WHERE id = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.Email, &u.Password, &u.Nome, &u.Perfil, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT id, email, senha_hash, nome, perfil, criado_em
		FROM usuarios WHERE email = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Email, &u.Password, &u.Nome, &u.Perfil, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all admin-panel users.
func (r *Repository) List(ctx context.Context) ([]models.UserPublic, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, nome, perfil, criado_em
		FROM usuarios ORDER BY nome, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.UserPublic
	for rows.Next() {
		var u models.UserPublic
		if err := rows.Scan(&u.ID, &u.Email, &u.Nome, &u.Perfil, &u.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Create inserts a new user.
func (r *Repository) Create(ctx context.Context, email, senhaHash, nome string, perfil models.Role) (*models.User, error) {
	const q = `INSERT INTO usuarios (email, senha_hash, nome, perfil)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, senha_hash, nome, perfil, criado_em`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email, senhaHash, nome, string(perfil)).
		Scan(&u.ID, &u.Email, &u.Password, &u.Nome, &u.Perfil, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
