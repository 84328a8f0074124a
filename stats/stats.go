package stats

import (
	"sort"

	"github.com/shruggr/glyphcache/models"
)

// ComputeCategoryStats counts how many records carry each category tag
// Results are sorted descending by count; ties keep first-encountered order
func ComputeCategoryStats(records []models.SymbolRecord) []models.CategoryStat {
	counts := make(map[string]int)
	var order []string

	for _, rec := range records {
		for _, cat := range rec.Category {
			if _, seen := counts[cat]; !seen {
				order = append(order, cat)
			}
			counts[cat]++
		}
	}

	out := make([]models.CategoryStat, 0, len(order))
	for _, id := range order {
		out = append(out, models.CategoryStat{
			ID:    id,
			Name:  id, // source data is pre-localized
			Count: counts[id],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	return out
}
