// Package reconcile matches manually-entered bank statement amounts to
// pending orders and performs the mark-paid transition. There is no payment
// gateway: the campaign's identifier-in-cents makes order totals near-unique,
// and a human operator confirms every match.
package reconcile

import (
	"math"
	"sort"
	"strings"

	"github.com/pedesim/backend/internal/models"
	"github.com/pedesim/backend/pkg/money"
)

const (
	// nearestLimit caps the nearest-amount fallback list.
	nearestLimit = 12
	// defaultLimit caps the suggestion list when no amount was typed.
	defaultLimit = 40
)

// Suggest ranks pending orders for the operator. The pending slice must come
// most-recently-created first; ordering is preserved through every step.
//
//  1. A non-empty code filters by case-insensitive substring on codigo_pedido.
//  2. A finite positive amount selects exact integer-cent matches outright;
//     with no exact match, the 12 closest by |valor_total - amount| are
//     returned (stable on ties).
//  3. Without a usable amount the first 40 pending orders are returned.
func Suggest(pending []models.Order, code string, amount float64) []models.Order {
	list := pending

	if c := strings.ToUpper(strings.TrimSpace(code)); c != "" {
		filtered := make([]models.Order, 0, len(list))
		for _, o := range list {
			if strings.Contains(strings.ToUpper(o.CodigoPedido), c) {
				filtered = append(filtered, o)
			}
		}
		list = filtered
	}

	if !usableAmount(amount) {
		if len(list) > defaultLimit {
			return list[:defaultLimit]
		}
		return list
	}

	var exact []models.Order
	for _, o := range list {
		if money.EqualCents(o.ValorTotal, amount) {
			exact = append(exact, o)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	ranked := make([]models.Order, len(list))
	copy(ranked, list)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].ValorTotal-amount) < math.Abs(ranked[j].ValorTotal-amount)
	})
	if len(ranked) > nearestLimit {
		ranked = ranked[:nearestLimit]
	}
	return ranked
}

func usableAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
