package cache

import (
	"github.com/shruggr/glyphcache/models"
	"github.com/shruggr/glyphcache/stats"
)

// Bundled fallback records, served when the cache is empty and every fetch
// attempt has failed. Small representative sets so the UI always has
// something to render

var fallbackSymbols = []models.SymbolRecord{
	{
		Symbol:        "⚠️",
		Name:          "警告符号",
		Pronunciation: "jǐng gào fú hào",
		Category:      []string{"符号", "警告"},
		SearchTerms:   []string{"warning", "alert", "caution"},
		Notes:         "用于表示警告或注意事项",
	},
	{
		Symbol:        "✅",
		Name:          "勾选符号",
		Pronunciation: "gōu xuǎn fú hào",
		Category:      []string{"符号", "确认"},
		SearchTerms:   []string{"check", "tick", "done"},
		Notes:         "用于表示完成或确认",
	},
	{
		Symbol:        "❌",
		Name:          "错误符号",
		Pronunciation: "cuò wù fú hào",
		Category:      []string{"符号", "错误"},
		SearchTerms:   []string{"error", "wrong", "cancel"},
		Notes:         "用于表示错误或取消",
	},
}

var fallbackEmojis = []models.SymbolRecord{
	{
		Symbol:        "😀",
		Name:          "笑脸",
		Pronunciation: "xiào liǎn",
		Category:      []string{"表情", "开心"},
		SearchTerms:   []string{"smile", "happy", "grin"},
		Notes:         "表示开心、快乐的表情",
	},
	{
		Symbol:        "❤️",
		Name:          "红心",
		Pronunciation: "hóng xīn",
		Category:      []string{"符号", "爱情"},
		SearchTerms:   []string{"heart", "love", "red"},
		Notes:         "表示爱情、喜欢的符号",
	},
	{
		Symbol:        "👍",
		Name:          "点赞",
		Pronunciation: "diǎn zàn",
		Category:      []string{"手势", "赞同"},
		SearchTerms:   []string{"thumbs up", "like", "good"},
		Notes:         "表示赞同、支持的手势",
	},
}

// FallbackSnapshot builds the bundled fallback snapshot for a kind
// The result is never written to the cache, so a later successful fetch
// is not blocked by a phantom version
func FallbackSnapshot(kind models.Kind) *models.DatasetSnapshot {
	version := "fallback-1.0.0"
	records := fallbackSymbols
	if kind == models.KindEmoji {
		version = "emoji-fallback-1.0.0"
		records = fallbackEmojis
	}

	return &models.DatasetSnapshot{
		Version: version,
		Records: records,
		Stats: models.DatasetStats{
			TotalCount:    len(records),
			CategoryStats: stats.ComputeCategoryStats(records),
		},
	}
}
