package retrieval

import (
	"encoding/json"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/payload"

	"go.uber.org/zap"
)

// Timestamp layouts accepted for date_generated. The naive forms are what a
// Python backend emits for datetimes without a zone; they are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseHistory converts a history array. Objects without a usable id are
// kept with an empty ID; elements that are not objects are skipped.
func parseHistory(items []any) []domain.HistoryEntry {
	entries := make([]domain.HistoryEntry, 0, len(items))
	for i, item := range items {
		if !payload.IsObject(item) {
			logger.Get().Warn("skipping non-object history element", zap.Int("index", i))
			continue
		}
		id, ok := idString(item)
		if !ok {
			logger.Get().Warn("history element has no id", zap.Int("index", i))
		}

		entry := domain.HistoryEntry{ID: id}
		if v, ok := payload.Lookup(item, "url"); ok {
			entry.URL, _ = v.(string)
		}
		if v, ok := payload.Lookup(item, "title"); ok {
			if s, ok := v.(string); ok && s != "" {
				entry.Title = &s
			}
		}
		if v, ok := payload.Lookup(item, "date_generated"); ok {
			if s, ok := v.(string); ok {
				entry.DateGenerated = parseDate(s)
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func idString(item any) (string, bool) {
	v, _ := payload.Lookup(item, "id")
	switch id := v.(type) {
	case string:
		return id, id != ""
	case json.Number:
		return id.String(), true
	}
	return "", false
}

func parseDate(s string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
