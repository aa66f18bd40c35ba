package models

import (
	"time"

	"github.com/google/uuid"
)

// PixKeyType enumerates the five PIX key kinds accepted by the rail.
const (
	PixKeyEmail  = "email"
	PixKeyCPF    = "cpf"
	PixKeyCNPJ   = "cnpj"
	PixKeyPhone  = "phone"
	PixKeyRandom = "random"
)

// ValidPixKeyType reports whether t is one of the five accepted key types.
func ValidPixKeyType(t string) bool {
	switch t {
	case PixKeyEmail, PixKeyCPF, PixKeyCNPJ, PixKeyPhone, PixKeyRandom:
		return true
	}
	return false
}

// Organization is the beneficiary entity (clube) owning campaigns and the
// fixed PIX receiving key. IdentificadorPix feeds the payload TXID and must
// stay whitespace-free and within the 25-char EMV limit.
type Organization struct {
	ID               uuid.UUID `json:"id"`
	Nome             string    `json:"nome"`
	TipoChavePix     string    `json:"tipo_chave_pix"`
	ChavePix         string    `json:"chave_pix"`
	BancoPix         string    `json:"banco_pix,omitempty"`
	IdentificadorPix string    `json:"identificador_pix,omitempty"`
	Ativo            bool      `json:"ativo"`
	CreatedAt        time.Time `json:"criado_em"`
}
