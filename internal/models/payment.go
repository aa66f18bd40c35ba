package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PaymentStatusConfirmado is the only status the manual reconciliation flow
// writes; other values are reserved for future gateway integrations.
const PaymentStatusConfirmado = "confirmado"

// PaymentOrigemConferenciaManual tags payments created by the admin
// reconciliation screen.
const PaymentOrigemConferenciaManual = "conferencia_manual"

// PaymentPayload is the free-form jsonb column on pagamentos.
type PaymentPayload struct {
	Origem       string  `json:"origem"`
	Observacao   string  `json:"observacao,omitempty"`
	ValorExtrato float64 `json:"valor_extrato"`
}

// Payment records one confirmed settlement for an order. Created exclusively
// by the reconciliation workflow; one logical payment per confirmed order.
type Payment struct {
	ID           uuid.UUID       `json:"id"`
	PedidoID     uuid.UUID       `json:"pedido_id"`
	TXID         string          `json:"txid"`
	Valor        float64         `json:"valor"`
	Status       string          `json:"status"`
	ConfirmadoEm *time.Time      `json:"confirmado_em,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	CreatedAt    time.Time       `json:"criado_em"`
}

// PaymentWithOrder is a history row: the payment joined with its order.
type PaymentWithOrder struct {
	Payment
	Pedido *Order `json:"pedido,omitempty"`
}
