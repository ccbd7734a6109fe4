package journal

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"yqt-signal-desk/internal/domain"
)

// exportPrefix names the product in downloaded history files.
const exportPrefix = "yqt"

// Log is the append-only signal history for the session. Entries are
// stored in arrival order and never mutated or deleted; reads present
// them most recent first.
type Log struct {
	mu      sync.RWMutex
	entries []domain.MarketSignal
}

func New() *Log {
	return &Log{}
}

// Append adds a signal to the log. O(1) amortized.
func (l *Log) Append(sig domain.MarketSignal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, sig)
}

// Entries returns a copy of the log, most recent first. A limit <= 0
// returns everything.
func (l *Log) Entries(limit int) []domain.MarketSignal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.MarketSignal, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// FormatEntry renders one signal in the export line format.
func FormatEntry(s domain.MarketSignal) string {
	return fmt.Sprintf("[%s] %s - %s - %s (Conf: %d%%) - %s",
		s.Timestamp, s.Asset, s.Timeframe, s.Action, s.Confidence, s.Reasoning)
}

// ExportText renders the log one line per entry, most recent first.
// Deterministic given the log contents.
func (l *Log) ExportText() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	lines := make([]string, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		lines = append(lines, FormatEntry(l.entries[i]))
	}
	return strings.Join(lines, "\n")
}

// ExportFilename builds the download filename for a given day.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("%s_signal_history_%s.txt", exportPrefix, now.Format("2006-01-02"))
}
