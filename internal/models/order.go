package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus values. The lifecycle is aguardando_pagamento -> em_analise ->
// pago -> retirado, with cancelado/expirado reachable from any non-terminal
// state. All transitions are admin-triggered; expiry is a manual action.
type OrderStatus string

const (
	StatusAguardandoPagamento OrderStatus = "aguardando_pagamento"
	StatusEmAnalise           OrderStatus = "em_analise"
	StatusPago                OrderStatus = "pago"
	StatusRetirado            OrderStatus = "retirado"
	StatusCancelado           OrderStatus = "cancelado"
	StatusExpirado            OrderStatus = "expirado"
)

// PendingStatuses are the states the reconciliation screen works on.
var PendingStatuses = []OrderStatus{StatusAguardandoPagamento, StatusEmAnalise}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusAguardandoPagamento, StatusEmAnalise, StatusPago,
		StatusRetirado, StatusCancelado, StatusExpirado:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s OrderStatus) Terminal() bool {
	switch s {
	case StatusRetirado, StatusCancelado, StatusExpirado:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	if from == to || from.Terminal() || !ValidStatus(to) {
		return false
	}
	if to == StatusCancelado || to == StatusExpirado {
		return true
	}
	switch from {
	case StatusAguardandoPagamento:
		return to == StatusEmAnalise || to == StatusPago
	case StatusEmAnalise:
		return to == StatusPago
	case StatusPago:
		return to == StatusRetirado
	}
	return false
}

// Order is a storefront purchase against a campaign. ValorTotal carries the
// campaign's cents signature: round(quantidade*preco_base +
// identificador_centavos, 2).
type Order struct {
	ID             uuid.UUID   `json:"id"`
	CampanhaID     uuid.UUID   `json:"campanha_id"`
	CodigoPedido   string      `json:"codigo_pedido"`
	NomeComprador  string      `json:"nome_comprador"`
	Whatsapp       string      `json:"whatsapp"`
	NomeReferencia string      `json:"nome_referencia"`
	Quantidade     int         `json:"quantidade"`
	ValorTotal     float64     `json:"valor_total"`
	Status         OrderStatus `json:"status"`
	CreatedAt      time.Time   `json:"criado_em"`
}

// OrderItem is one line of an order. Per order, the line quantities must sum
// to Order.Quantidade (validated at submission).
type OrderItem struct {
	PedidoID   uuid.UUID `json:"pedido_id"`
	ItemID     uuid.UUID `json:"item_id"`
	Nome       string    `json:"nome,omitempty"`
	Quantidade int       `json:"quantidade"`
}
