package shopping

import (
	"sort"

	"ladle/models"
)

// AggregateLines folds a flat multiset of ingredient lines into one purchase
// item per ingredient. Grouping is by ingredient id; the display name and
// unit come from the first line seen for that ingredient. Output is sorted
// by name, then unit, so rendering is deterministic.
func AggregateLines(lines []models.IngredientLine) []models.ShoppingItem {
	totals := make(map[string]*models.ShoppingItem)
	for _, line := range lines {
		id := line.IngredientID.Hex()
		if item, ok := totals[id]; ok {
			item.Amount += line.Amount
			continue
		}
		totals[id] = &models.ShoppingItem{
			IngredientID: id,
			Name:         line.Name,
			Unit:         line.Unit,
			Amount:       line.Amount,
		}
	}

	items := make([]models.ShoppingItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Unit < items[j].Unit
	})
	return items
}
