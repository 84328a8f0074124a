package stats

import (
	"testing"

	"github.com/shruggr/glyphcache/models"
)

func TestComputeCategoryStats(t *testing.T) {
	records := []models.SymbolRecord{
		{Symbol: "♫", Category: []string{"music"}},
		{Symbol: "♬", Category: []string{"music", "other"}},
		{Symbol: "‰", Category: []string{"math"}},
		{Symbol: "∑", Category: []string{"math"}},
		{Symbol: "∫", Category: []string{"math"}},
	}

	out := ComputeCategoryStats(records)

	if len(out) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(out))
	}
	if out[0].ID != "math" || out[0].Count != 3 {
		t.Errorf("Expected math:3 first, got %s:%d", out[0].ID, out[0].Count)
	}
	if out[1].ID != "music" || out[1].Count != 2 {
		t.Errorf("Expected music:2 second, got %s:%d", out[1].ID, out[1].Count)
	}
	for _, stat := range out {
		if stat.Name != stat.ID {
			t.Errorf("Expected name to equal id, got %s vs %s", stat.Name, stat.ID)
		}
	}
}

// The sum of all category counts must equal the total number of tag
// occurrences across records
func TestComputeCategoryStatsCountInvariant(t *testing.T) {
	records := []models.SymbolRecord{
		{Symbol: "a", Category: []string{"x", "y", "z"}},
		{Symbol: "b", Category: []string{"x"}},
		{Symbol: "c", Category: nil},
		{Symbol: "d", Category: []string{"y", "x"}},
	}

	tagOccurrences := 0
	for _, rec := range records {
		tagOccurrences += len(rec.Category)
	}

	out := ComputeCategoryStats(records)

	sum := 0
	for _, stat := range out {
		sum += stat.Count
	}
	if sum != tagOccurrences {
		t.Errorf("Count sum %d does not match tag occurrences %d", sum, tagOccurrences)
	}
}

func TestComputeCategoryStatsEmpty(t *testing.T) {
	out := ComputeCategoryStats(nil)
	if len(out) != 0 {
		t.Errorf("Expected no stats for empty input, got %d", len(out))
	}
}

func TestComputeCategoryStatsDescendingOrder(t *testing.T) {
	records := []models.SymbolRecord{
		{Symbol: "a", Category: []string{"rare"}},
		{Symbol: "b", Category: []string{"common"}},
		{Symbol: "c", Category: []string{"common"}},
		{Symbol: "d", Category: []string{"common"}},
		{Symbol: "e", Category: []string{"mid"}},
		{Symbol: "f", Category: []string{"mid"}},
	}

	out := ComputeCategoryStats(records)

	for i := 1; i < len(out); i++ {
		if out[i].Count > out[i-1].Count {
			t.Errorf("Stats not sorted descending at index %d", i)
		}
	}
}
