package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign is a time-boxed fundraising run. IdentificadorCentavos is the
// per-campaign fractional offset (0 <= x < 1) added to every order total so
// statement amounts become near-unique lookup keys. At most one campaign per
// organization is active at a time.
type Campaign struct {
	ID                    uuid.UUID `json:"id"`
	OrganizacaoID         uuid.UUID `json:"organizacao_id"`
	Nome                  string    `json:"nome"`
	DataInicio            time.Time `json:"data_inicio"`
	DataFim               time.Time `json:"data_fim"`
	PrecoBase             float64   `json:"preco_base"`
	IdentificadorCentavos float64   `json:"identificador_centavos"`
	Ativa                 bool      `json:"ativa"`
	CreatedAt             time.Time `json:"criado_em"`
}
