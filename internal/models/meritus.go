package models

import (
	"time"

	"github.com/google/uuid"
)

// Meritus is an early merit/ranking module sharing this database. Only reads
// are implemented; scores are maintained elsewhere.

// MeritusProgram is a merit program (meritus_programas).
type MeritusProgram struct {
	ID        uuid.UUID `json:"id"`
	Nome      string    `json:"nome"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"criado_em"`
}

// MeritusPeriod is a scoring window within a program (meritus_periodos).
type MeritusPeriod struct {
	ID         uuid.UUID `json:"id"`
	ProgramaID uuid.UUID `json:"programa_id"`
	Rotulo     string    `json:"rotulo"`
	Inicio     time.Time `json:"inicio"`
	Fim        time.Time `json:"fim"`
	Status     string    `json:"status"`
}

// MeritusCriterion is a scoring criterion (meritus_criterios).
type MeritusCriterion struct {
	ID         uuid.UUID `json:"id"`
	ProgramaID uuid.UUID `json:"programa_id"`
	Nome       string    `json:"nome"`
	Tipo       string    `json:"tipo"`
	PesoPadrao float64   `json:"peso_padrao"`
	Ativo      bool      `json:"ativo"`
}

// MeritusRankingRow is one row of the vw_meritus_ranking_periodo view.
type MeritusRankingRow struct {
	ParticipanteID uuid.UUID  `json:"participante_id"`
	GrupoID        *uuid.UUID `json:"grupo_id,omitempty"`
	TotalPontos    float64    `json:"total_pontos"`
	QtdLancamentos int        `json:"qtd_lancamentos"`
}
