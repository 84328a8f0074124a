package models

import (
	"time"
)

// Kind identifies one of the two independently versioned datasets
type Kind string

const (
	KindSymbol Kind = "symbol"
	KindEmoji  Kind = "emoji"
)

// Kinds lists all dataset kinds in a stable order
var Kinds = []Kind{KindSymbol, KindEmoji}

// SymbolRecord is one glyph entry in its normalized form
// Both upstream shapes (symbol and emoji) are converted into this
type SymbolRecord struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Pronunciation string   `json:"pronunciation"`
	Category      []string `json:"category"`
	SearchTerms   []string `json:"searchTerms"`
	Notes         string   `json:"notes"`
}

// CategoryStat is the per-category record count derived from a record set
type CategoryStat struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DatasetStats holds the derived aggregates for a snapshot
type DatasetStats struct {
	TotalCount    int            `json:"totalCount"`
	CategoryStats []CategoryStat `json:"categoryStats"`
}

// DatasetSnapshot is the processed, cache-ready form of one dataset
type DatasetSnapshot struct {
	Version   string         `json:"version"`
	Records   []SymbolRecord `json:"records"`
	Stats     DatasetStats   `json:"stats"`
	FetchedAt time.Time      `json:"fetchedAt"`
}

// EmojiRecord is the raw upstream emoji shape before normalization
type EmojiRecord struct {
	Emoji    string   `json:"emoji"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords,omitempty"`
	Text     string   `json:"text,omitempty"`
}

// SymbolPayload is the raw upstream symbol dataset
// Symbols is a pointer so a missing field can be told apart from an empty one
type SymbolPayload struct {
	Version string          `json:"version"`
	Symbols *[]SymbolRecord `json:"symbols"`
}

// EmojiPayload is the raw upstream emoji dataset
type EmojiPayload struct {
	Version string         `json:"version"`
	Emojis  *[]EmojiRecord `json:"emojis"`
}

// DatasetPayload is the kind-agnostic result of fetching and normalizing
// one upstream dataset
type DatasetPayload struct {
	Kind    Kind
	Version string
	Records []SymbolRecord
}

// Normalize converts the emoji shape into the common record shape
func (e EmojiRecord) Normalize() SymbolRecord {
	rec := SymbolRecord{
		Symbol:        e.Emoji,
		Name:          e.Name,
		Pronunciation: "",
		Category:      []string{e.Category},
		SearchTerms:   e.Keywords,
		Notes:         e.Text,
	}
	if rec.SearchTerms == nil {
		rec.SearchTerms = []string{}
	}
	return rec
}

// FilterValid drops records with an empty symbol
// Downstream code computes code points for display, so an empty symbol
// would break rendering; reject it at the boundary
func FilterValid(records []SymbolRecord) []SymbolRecord {
	valid := make([]SymbolRecord, 0, len(records))
	for _, rec := range records {
		if rec.Symbol == "" {
			continue
		}
		valid = append(valid, rec)
	}
	return valid
}

// RecordsByCategory returns the subset of records tagged with the category
func RecordsByCategory(records []SymbolRecord, category string) []SymbolRecord {
	var out []SymbolRecord
	for _, rec := range records {
		for _, cat := range rec.Category {
			if cat == category {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
