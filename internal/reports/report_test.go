package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedesim/backend/internal/models"
)

func TestStatusSet(t *testing.T) {
	assert.Equal(t, []models.OrderStatus{models.StatusPago, models.StatusRetirado}, StatusSet(false))
	assert.Equal(t, []models.OrderStatus{
		models.StatusPago, models.StatusRetirado,
		models.StatusAguardandoPagamento, models.StatusEmAnalise,
	}, StatusSet(true))
}

func TestBuildAggregatesAcrossStatuses(t *testing.T) {
	lines := []Line{
		{Item: "Calabresa", Status: models.StatusPago, Quantidade: 8},
		{Item: "Calabresa", Status: models.StatusRetirado, Quantidade: 4},
		{Item: "Mussarela", Status: models.StatusPago, Quantidade: 5},
	}
	r := Build(lines, false)

	require.Len(t, r.Itens, 2)
	assert.Equal(t, "Calabresa", r.Itens[0].Nome)
	assert.Equal(t, 12, r.Itens[0].Quantidade)
	assert.Equal(t, 8, r.Itens[0].PorStatus[models.StatusPago])
	assert.Equal(t, 4, r.Itens[0].PorStatus[models.StatusRetirado])
	assert.Equal(t, "Mussarela", r.Itens[1].Nome)
	assert.Equal(t, 17, r.Total)
	assert.False(t, r.IncluirPendentes)
}

func TestBuildSortsByQuantityThenName(t *testing.T) {
	lines := []Line{
		{Item: "Portuguesa", Status: models.StatusPago, Quantidade: 3},
		{Item: "Frango", Status: models.StatusPago, Quantidade: 3},
		{Item: "Calabresa", Status: models.StatusPago, Quantidade: 9},
	}
	r := Build(lines, true)

	require.Len(t, r.Itens, 3)
	assert.Equal(t, "Calabresa", r.Itens[0].Nome)
	assert.Equal(t, "Frango", r.Itens[1].Nome)
	assert.Equal(t, "Portuguesa", r.Itens[2].Nome)
	assert.True(t, r.IncluirPendentes)
}

func TestBuildEmpty(t *testing.T) {
	r := Build(nil, false)
	assert.Empty(t, r.Itens)
	assert.Zero(t, r.Total)
}
