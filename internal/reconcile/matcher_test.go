package reconcile

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedesim/backend/internal/models"
)

func order(code string, total float64) models.Order {
	return models.Order{
		CodigoPedido: code,
		ValorTotal:   total,
		Status:       models.StatusAguardandoPagamento,
	}
}

func totals(list []models.Order) []float64 {
	out := make([]float64, len(list))
	for i, o := range list {
		out[i] = o.ValorTotal
	}
	return out
}

func TestSuggestExactMatchPriority(t *testing.T) {
	pending := []models.Order{
		order("DP-000001", 70.01),
		order("DP-000002", 35.00),
		order("DP-000003", 70.01),
	}

	got := Suggest(pending, "", 70.01)
	require.Len(t, got, 2)
	assert.Equal(t, "DP-000001", got[0].CodigoPedido)
	assert.Equal(t, "DP-000003", got[1].CodigoPedido)

	// entry order must not matter for the selection
	reversed := []models.Order{pending[2], pending[1], pending[0]}
	got = Suggest(reversed, "", 70.01)
	require.Len(t, got, 2)
	for _, o := range got {
		assert.Equal(t, 70.01, o.ValorTotal)
	}
}

func TestSuggestNearestFallback(t *testing.T) {
	pending := []models.Order{
		order("DP-000010", 70.00),
		order("DP-000011", 69.50),
		order("DP-000012", 140.02),
	}

	got := Suggest(pending, "", 70.01)
	assert.Equal(t, []float64{70.00, 69.50, 140.02}, totals(got))
}

func TestSuggestNearestCap(t *testing.T) {
	var pending []models.Order
	for i := 0; i < 30; i++ {
		pending = append(pending, order(fmt.Sprintf("DP-%06d", i), 50.00+float64(i)))
	}

	got := Suggest(pending, "", 49.99)
	require.Len(t, got, nearestLimit)
	// closest first, ties impossible here
	assert.Equal(t, 50.00, got[0].ValorTotal)
	assert.Equal(t, 61.00, got[nearestLimit-1].ValorTotal)
}

func TestSuggestNearestStableOnTies(t *testing.T) {
	pending := []models.Order{
		order("DP-000021", 70.00), // diff 0.50
		order("DP-000022", 71.00), // diff 0.50
		order("DP-000023", 70.40), // diff 0.10
	}

	got := Suggest(pending, "", 70.50)
	require.Len(t, got, 3)
	assert.Equal(t, "DP-000023", got[0].CodigoPedido)
	// equal diffs keep list order
	assert.Equal(t, "DP-000021", got[1].CodigoPedido)
	assert.Equal(t, "DP-000022", got[2].CodigoPedido)
}

func TestSuggestCodeFilter(t *testing.T) {
	pending := []models.Order{
		order("DP-000123", 70.01),
		order("DP-000456", 70.01),
		order("DP-001234", 35.00),
	}

	got := Suggest(pending, "123", math.NaN())
	require.Len(t, got, 2)
	assert.Equal(t, "DP-000123", got[0].CodigoPedido)
	assert.Equal(t, "DP-001234", got[1].CodigoPedido)

	// case-insensitive
	got = Suggest(pending, "dp-000456", math.NaN())
	require.Len(t, got, 1)
	assert.Equal(t, "DP-000456", got[0].CodigoPedido)

	// code filter composes with exact amount match
	got = Suggest(pending, "123", 70.01)
	require.Len(t, got, 1)
	assert.Equal(t, "DP-000123", got[0].CodigoPedido)
}

func TestSuggestNoAmountCap(t *testing.T) {
	var pending []models.Order
	for i := 0; i < 60; i++ {
		pending = append(pending, order(fmt.Sprintf("DP-%06d", i), 35.01))
	}

	got := Suggest(pending, "", math.NaN())
	require.Len(t, got, defaultLimit)
	// most-recently-created ordering of the input is preserved
	assert.Equal(t, "DP-000000", got[0].CodigoPedido)

	// zero and negative amounts disable amount filtering too
	assert.Len(t, Suggest(pending, "", 0), defaultLimit)
	assert.Len(t, Suggest(pending, "", -5), defaultLimit)
}

func TestSuggestEmpty(t *testing.T) {
	assert.Empty(t, Suggest(nil, "", 70.01))
	assert.Empty(t, Suggest(nil, "DP", math.NaN()))
}
