package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a menu entry (pizza flavor).
type Item struct {
	ID        uuid.UUID `json:"id"`
	Nome      string    `json:"nome"`
	CreatedAt time.Time `json:"criado_em"`
}

// CampaignItem links an item to a campaign with per-campaign display order
// and active flag (itens_campanha junction).
type CampaignItem struct {
	CampanhaID uuid.UUID `json:"campanha_id"`
	ItemID     uuid.UUID `json:"item_id"`
	Nome       string    `json:"nome"`
	Ordem      int       `json:"ordem"`
	Ativo      bool      `json:"ativo"`
}
