package meritus

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pedesim/backend/internal/models"
)

// Repository reads the merit/ranking tables. Writes happen in a separate
// tool; this service only exposes the data.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a meritus repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListPrograms returns active merit programs.
func (r *Repository) ListPrograms(ctx context.Context) ([]models.MeritusProgram, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nome, ativo, criado_em
		FROM meritus_programas WHERE ativo ORDER BY nome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.MeritusProgram
	for rows.Next() {
		var p models.MeritusProgram
		if err := rows.Scan(&p.ID, &p.Nome, &p.Ativo, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListPeriods returns a program's last 12 periods, newest first.
func (r *Repository) ListPeriods(ctx context.Context, programID uuid.UUID) ([]models.MeritusPeriod, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, programa_id, rotulo, inicio, fim, status
		FROM meritus_periodos WHERE programa_id = $1
		ORDER BY inicio DESC LIMIT 12`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.MeritusPeriod
	for rows.Next() {
		var p models.MeritusPeriod
		if err := rows.Scan(&p.ID, &p.ProgramaID, &p.Rotulo, &p.Inicio, &p.Fim, &p.Status); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListCriteria returns a program's active criteria.
func (r *Repository) ListCriteria(ctx context.Context, programID uuid.UUID) ([]models.MeritusCriterion, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, programa_id, nome, tipo, peso_padrao, ativo
		FROM meritus_criterios WHERE programa_id = $1 AND ativo
		ORDER BY nome`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.MeritusCriterion
	for rows.Next() {
		var cr models.MeritusCriterion
		if err := rows.Scan(&cr.ID, &cr.ProgramaID, &cr.Nome, &cr.Tipo, &cr.PesoPadrao, &cr.Ativo); err != nil {
			return nil, err
		}
		list = append(list, cr)
	}
	return list, rows.Err()
}

// Ranking returns a period's ranking from the aggregation view, highest
// score first.
func (r *Repository) Ranking(ctx context.Context, programID, periodID uuid.UUID) ([]models.MeritusRankingRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT participante_id, grupo_id, total_pontos, qtd_lancamentos
		FROM vw_meritus_ranking_periodo
		WHERE programa_id = $1 AND periodo_id = $2
		ORDER BY total_pontos DESC`, programID, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.MeritusRankingRow
	for rows.Next() {
		var row models.MeritusRankingRow
		if err := rows.Scan(&row.ParticipanteID, &row.GrupoID, &row.TotalPontos, &row.QtdLancamentos); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
