package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionHappyPath(t *testing.T) {
	assert.True(t, CanTransition(StatusAguardandoPagamento, StatusEmAnalise))
	assert.True(t, CanTransition(StatusAguardandoPagamento, StatusPago))
	assert.True(t, CanTransition(StatusEmAnalise, StatusPago))
	assert.True(t, CanTransition(StatusPago, StatusRetirado))
}

func TestCanTransitionSideBranches(t *testing.T) {
	for _, from := range []OrderStatus{StatusAguardandoPagamento, StatusEmAnalise, StatusPago} {
		assert.True(t, CanTransition(from, StatusCancelado), "from %s", from)
		assert.True(t, CanTransition(from, StatusExpirado), "from %s", from)
	}
}

func TestCanTransitionRejected(t *testing.T) {
	// terminal states never leave
	for _, from := range []OrderStatus{StatusRetirado, StatusCancelado, StatusExpirado} {
		for _, to := range []OrderStatus{StatusAguardandoPagamento, StatusEmAnalise, StatusPago, StatusRetirado} {
			assert.False(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.False(t, CanTransition(StatusPago, StatusAguardandoPagamento))
	assert.False(t, CanTransition(StatusPago, StatusEmAnalise))
	// an order already pago can never be confirmed a second time
	assert.False(t, CanTransition(StatusPago, StatusPago))
	assert.False(t, CanTransition(StatusEmAnalise, StatusEmAnalise))
	assert.False(t, CanTransition(StatusAguardandoPagamento, OrderStatus("inexistente")))
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusAguardandoPagamento.Terminal())
	assert.False(t, StatusEmAnalise.Terminal())
	assert.False(t, StatusPago.Terminal())
	assert.True(t, StatusRetirado.Terminal())
	assert.True(t, StatusCancelado.Terminal())
	assert.True(t, StatusExpirado.Terminal())
}
