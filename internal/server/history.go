package server

import (
	"slices"
	"sync"
)

// historyLimit caps how many palettes the session history retains.
const historyLimit = 20

// HistoryRecord is one remembered palette: the upload name and its hex colours.
type HistoryRecord struct {
	Name   string
	Colors []string
}

// History keeps the palettes extracted during this server session, newest
// last. It exists only in memory; restarting the server empties it.
// The HTTP runtime serves requests concurrently, so access is serialised.
type History struct {
	mu      sync.Mutex
	records []HistoryRecord
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// Add appends a record unless it duplicates the most recent entry.
// Oldest records are evicted past the history limit.
func (h *History) Add(record HistoryRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.records); n > 0 {
		last := h.records[n-1]
		if last.Name == record.Name && slices.Equal(last.Colors, record.Colors) {
			return
		}
	}

	h.records = append(h.records, record)
	if len(h.records) > historyLimit {
		h.records = h.records[len(h.records)-historyLimit:]
	}
}

// All returns the records newest first.
func (h *History) All() []HistoryRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]HistoryRecord, len(h.records))
	for i, r := range h.records {
		out[len(h.records)-1-i] = r
	}
	return out
}

// Clear removes all records.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = nil
}

// Len returns the number of stored records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}
