package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents an admin-panel user role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperador Role = "operador"
)

// User is an admin-panel user (usuarios table). The storefront itself is
// anonymous; this exists only for admin-role gating.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Nome      string    `json:"nome"`
	Perfil    Role      `json:"perfil"`
	CreatedAt time.Time `json:"criado_em"`
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Nome      string    `json:"nome"`
	Perfil    Role      `json:"perfil"`
	CreatedAt time.Time `json:"criado_em"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		Nome:      u.Nome,
		Perfil:    u.Perfil,
		CreatedAt: u.CreatedAt,
	}
}
