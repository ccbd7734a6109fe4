package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"yqt-signal-desk/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Log view message types.
type logEntriesMsg []domain.MarketSignal
type logTickMsg time.Time
type exportDoneMsg string
type exportErrMsg struct{ err error }

// LogViewModel is the Bubble Tea model for the signal log screen.
type LogViewModel struct {
	services     Services
	entries      []domain.MarketSignal
	scrollOffset int
	notice       string
	err          error
	width        int
	height       int
}

// NewLogViewModel creates a new signal log model.
func NewLogViewModel(svc Services) LogViewModel {
	return LogViewModel{services: svc}
}

// Init fires the initial log fetch.
func (m LogViewModel) Init() tea.Cmd {
	return tea.Batch(m.fetchLogCmd(), m.tickCmd())
}

// Update handles incoming messages.
func (m LogViewModel) Update(msg tea.Msg) (LogViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case logEntriesMsg:
		prev := len(m.entries)
		m.entries = []domain.MarketSignal(msg)
		if len(m.entries) != prev {
			m.scrollOffset = 0
		}
		return m, nil

	case logTickMsg:
		return m, tea.Batch(m.fetchLogCmd(), m.tickCmd())

	case exportDoneMsg:
		m.notice = "Saved " + string(msg)
		m.err = nil
		return m, nil

	case exportErrMsg:
		m.err = msg.err
		m.notice = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Export):
			return m, m.exportCmd()

		case msg.String() == "j" || msg.String() == "down":
			maxVisible := m.visibleRows()
			if m.scrollOffset < len(m.entries)-maxVisible {
				m.scrollOffset++
			}
			return m, nil

		case msg.String() == "k" || msg.String() == "up":
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the signal log.
func (m LogViewModel) View() string {
	var sections []string
	sections = append(sections, HeaderStyle.Render("  Signal Log"))
	sections = append(sections, "")

	if len(m.entries) == 0 {
		sections = append(sections, SubtextStyle.Render("  No signals logged yet"))
	} else {
		maxVisible := m.visibleRows()
		end := m.scrollOffset + maxVisible
		if end > len(m.entries) {
			end = len(m.entries)
		}
		for i := m.scrollOffset; i < end; i++ {
			sections = append(sections, "  "+FormatSignal(m.entries[i]))
		}
		if len(m.entries) > maxVisible {
			sections = append(sections, SubtextStyle.Render(
				fmt.Sprintf("  Showing %d-%d of %d (j/k to scroll)", m.scrollOffset+1, end, len(m.entries)),
			))
		}
	}

	sections = append(sections, "")
	if m.notice != "" {
		sections = append(sections, SubtextStyle.Render("  "+m.notice))
	}
	if m.err != nil {
		sections = append(sections, ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	}
	sections = append(sections, SubtextStyle.Render("  [d] download  [j/k] scroll  [tab] dashboard  [q] quit"))

	return strings.Join(sections, "\n")
}

// SetSize updates the model dimensions.
func (m *LogViewModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// EntryCount returns the number of loaded entries (for testing).
func (m LogViewModel) EntryCount() int { return len(m.entries) }

func (m LogViewModel) fetchLogCmd() tea.Cmd {
	return func() tea.Msg {
		if m.services.Log == nil {
			return logEntriesMsg(nil)
		}
		return logEntriesMsg(m.services.Log.ListLog(context.Background(), 0))
	}
}

func (m LogViewModel) exportCmd() tea.Cmd {
	return func() tea.Msg {
		if m.services.Log == nil {
			return exportErrMsg{err: fmt.Errorf("log service not available")}
		}
		filename, content := m.services.Log.ExportLog(context.Background())
		if content == "" {
			return exportErrMsg{err: fmt.Errorf("nothing to export")}
		}
		if err := os.WriteFile(filename, []byte(content+"\n"), 0o644); err != nil {
			return exportErrMsg{err: err}
		}
		return exportDoneMsg(filename)
	}
}

func (m LogViewModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

func (m LogViewModel) visibleRows() int {
	available := m.height - 6
	if available < 5 {
		return 5
	}
	return available
}
