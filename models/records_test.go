package models

import (
	"testing"
)

func TestEmojiNormalize(t *testing.T) {
	emoji := EmojiRecord{
		Emoji:    "😀",
		Name:     "笑脸",
		Category: "表情",
		Keywords: []string{"smile", "happy"},
		Text:     "表示开心",
	}

	rec := emoji.Normalize()

	if rec.Symbol != "😀" {
		t.Errorf("Expected symbol 😀, got %q", rec.Symbol)
	}
	if rec.Pronunciation != "" {
		t.Errorf("Expected empty pronunciation, got %q", rec.Pronunciation)
	}
	if len(rec.Category) != 1 || rec.Category[0] != "表情" {
		t.Errorf("Expected single category 表情, got %v", rec.Category)
	}
	if len(rec.SearchTerms) != 2 {
		t.Errorf("Expected 2 search terms, got %d", len(rec.SearchTerms))
	}
	if rec.Notes != "表示开心" {
		t.Errorf("Expected notes from text field, got %q", rec.Notes)
	}
}

func TestEmojiNormalizeNilKeywords(t *testing.T) {
	rec := EmojiRecord{Emoji: "👍", Name: "点赞", Category: "手势"}.Normalize()

	if rec.SearchTerms == nil {
		t.Error("Expected non-nil search terms for missing keywords")
	}
}

func TestFilterValidDropsEmptySymbol(t *testing.T) {
	records := []SymbolRecord{
		{Symbol: "♫", Name: "note"},
		{Symbol: "", Name: "broken"},
		{Symbol: "‰", Name: "per mille"},
	}

	valid := FilterValid(records)

	if len(valid) != 2 {
		t.Fatalf("Expected 2 valid records, got %d", len(valid))
	}
	for _, rec := range valid {
		if rec.Symbol == "" {
			t.Error("Empty symbol survived filtering")
		}
	}
}

func TestRecordsByCategory(t *testing.T) {
	records := []SymbolRecord{
		{Symbol: "♫", Category: []string{"music"}},
		{Symbol: "♬", Category: []string{"music", "other"}},
		{Symbol: "‰", Category: []string{"math"}},
	}

	music := RecordsByCategory(records, "music")
	if len(music) != 2 {
		t.Errorf("Expected 2 music records, got %d", len(music))
	}

	none := RecordsByCategory(records, "currency")
	if len(none) != 0 {
		t.Errorf("Expected no currency records, got %d", len(none))
	}
}
