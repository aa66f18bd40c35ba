// Package reports builds the kitchen-facing production report: how many units
// of each flavor must be produced for a campaign.
package reports

import (
	"sort"

	"github.com/pedesim/backend/internal/models"
)

// Line is one raw aggregation row: units of one item in one order status.
type Line struct {
	Item       string
	Status     models.OrderStatus
	Quantidade int
}

// ItemTotal is the per-flavor rollup.
type ItemTotal struct {
	Nome       string                     `json:"nome"`
	Quantidade int                        `json:"quantidade"`
	PorStatus  map[models.OrderStatus]int `json:"por_status"`
}

// Report is the production report for one campaign.
type Report struct {
	Itens            []ItemTotal `json:"itens"`
	Total            int         `json:"total"`
	IncluirPendentes bool        `json:"incluir_pendentes"`
}

// StatusSet returns the order statuses counted into production. Paid and
// picked-up orders always count; the pending pair joins only on request.
func StatusSet(incluirPendentes bool) []models.OrderStatus {
	set := []models.OrderStatus{models.StatusPago, models.StatusRetirado}
	if incluirPendentes {
		set = append(set, models.PendingStatuses...)
	}
	return set
}

// Build rolls raw lines up into the report: per-flavor totals sorted by
// quantity descending (name ascending on ties), with a per-status breakdown
// and a grand total.
func Build(lines []Line, incluirPendentes bool) Report {
	byItem := make(map[string]*ItemTotal)
	total := 0
	for _, l := range lines {
		it, ok := byItem[l.Item]
		if !ok {
			it = &ItemTotal{Nome: l.Item, PorStatus: make(map[models.OrderStatus]int)}
			byItem[l.Item] = it
		}
		it.Quantidade += l.Quantidade
		it.PorStatus[l.Status] += l.Quantidade
		total += l.Quantidade
	}

	itens := make([]ItemTotal, 0, len(byItem))
	for _, it := range byItem {
		itens = append(itens, *it)
	}
	sort.Slice(itens, func(i, j int) bool {
		if itens[i].Quantidade != itens[j].Quantidade {
			return itens[i].Quantidade > itens[j].Quantidade
		}
		return itens[i].Nome < itens[j].Nome
	})

	return Report{Itens: itens, Total: total, IncluirPendentes: incluirPendentes}
}
