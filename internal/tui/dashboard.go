package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yqt-signal-desk/internal/controller"
	"yqt-signal-desk/internal/domain"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dashboard message types.
type marketsMsg []domain.MarketSnapshot
type historyMsg struct {
	market domain.MarketType
	points []domain.PricePoint
}
type statusMsg struct {
	state     controller.State
	remaining int
	current   *domain.MarketSignal
}
type requestResultMsg struct{ accepted bool }
type requestErrMsg struct{ err error }
type dashTickMsg time.Time

// DashboardModel is the Bubble Tea model for the live dashboard screen.
type DashboardModel struct {
	services Services

	snapshots []domain.MarketSnapshot
	history   []domain.PricePoint
	state     controller.State
	remaining int
	current   *domain.MarketSignal

	marketIdx    int
	timeframeIdx int

	symbolInput   textinput.Model
	editingSymbol bool

	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

var marketOptions = []domain.MarketType{domain.MarketCrypto, domain.MarketForex}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(svc Services) DashboardModel {
	ti := textinput.New()
	ti.Placeholder = "EURUSD"
	ti.CharLimit = 12
	ti.Width = 16

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(SpinnerColor)

	return DashboardModel{
		services:    svc,
		state:       controller.StateIdle,
		symbolInput: ti,
		spinner:     sp,
		loading:     true,
	}
}

// Init fires initial data fetch commands.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.fetchMarketsCmd(),
		m.fetchHistoryCmd(),
		m.fetchStatusCmd(),
		m.tickCmd(),
	)
}

// Update handles incoming messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case marketsMsg:
		m.snapshots = []domain.MarketSnapshot(msg)
		m.loading = false
		return m, nil

	case historyMsg:
		if msg.market == m.selectedMarket() {
			m.history = msg.points
		}
		return m, nil

	case statusMsg:
		m.state = msg.state
		m.remaining = msg.remaining
		m.current = msg.current
		return m, nil

	case requestResultMsg:
		if !msg.accepted {
			m.err = fmt.Errorf("request refused: try again after the cooldown")
		}
		return m, m.fetchStatusCmd()

	case requestErrMsg:
		m.err = msg.err
		return m, nil

	case dashTickMsg:
		return m, tea.Batch(
			m.fetchMarketsCmd(),
			m.fetchHistoryCmd(),
			m.fetchStatusCmd(),
			m.tickCmd(),
		)

	case spinner.TickMsg:
		if m.state == controller.StateRequesting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	if m.editingSymbol {
		switch msg.Type {
		case tea.KeyEnter:
			symbol := strings.TrimSpace(m.symbolInput.Value())
			m.editingSymbol = false
			m.symbolInput.Blur()
			if symbol != "" && m.services.Markets != nil {
				m.services.Markets.SetForexSymbol(context.Background(), symbol)
				return m, m.fetchMarketsCmd()
			}
			return m, nil
		case tea.KeyEsc:
			m.editingSymbol = false
			m.symbolInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.symbolInput, cmd = m.symbolInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, DefaultKeyMap.CycleMarket):
		m.marketIdx = (m.marketIdx + 1) % len(marketOptions)
		m.history = nil
		m.err = nil
		return m, m.fetchHistoryCmd()

	case key.Matches(msg, DefaultKeyMap.CycleTimeframe):
		m.timeframeIdx = (m.timeframeIdx + 1) % len(domain.SupportedTimeframes)
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Generate):
		m.err = nil
		return m, tea.Batch(m.requestSignalCmd(), m.spinner.Tick)

	case key.Matches(msg, DefaultKeyMap.EditSymbol):
		m.editingSymbol = true
		m.symbolInput.SetValue("")
		m.symbolInput.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.loading && len(m.snapshots) == 0 {
		return SubtextStyle.Render("Loading markets...")
	}

	var sections []string

	marketBox := BorderStyle.Width(m.boxWidth()).Render(m.renderMarkets())
	signalBox := BorderStyle.Width(m.boxWidth()).Render(m.renderSignalPanel())
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, marketBox, signalBox))

	sections = append(sections, BorderStyle.Width(m.width-2).Render(m.renderControls()))

	if m.err != nil {
		sections = append(sections, ErrorStyle.Render("  "+m.err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the model dimensions.
func (m *DashboardModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Snapshots returns the current market snapshots (for testing).
func (m DashboardModel) Snapshots() []domain.MarketSnapshot { return m.snapshots }

// Selection returns the selected market and timeframe (for testing).
func (m DashboardModel) Selection() (domain.MarketType, string) {
	return m.selectedMarket(), m.selectedTimeframe()
}

func (m DashboardModel) selectedMarket() domain.MarketType {
	return marketOptions[m.marketIdx]
}

func (m DashboardModel) selectedTimeframe() string {
	return domain.SupportedTimeframes[m.timeframeIdx]
}

func (m DashboardModel) boxWidth() int {
	w := m.width/2 - 2
	if w < 30 {
		w = 30
	}
	return w
}

func (m DashboardModel) renderMarkets() string {
	var lines []string
	lines = append(lines, HeaderStyle.Render("  Markets"))
	for _, s := range m.snapshots {
		prefix := "   "
		if s.Market == m.selectedMarket() {
			prefix = " > "
		}
		lines = append(lines, prefix+FormatSnapshot(s))
	}
	lines = append(lines, "")
	lines = append(lines, "  "+RenderSparkline(m.history, m.boxWidth()-6))
	return strings.Join(lines, "\n")
}

func (m DashboardModel) renderSignalPanel() string {
	var lines []string
	lines = append(lines, HeaderStyle.Render("  Signal"))

	switch m.state {
	case controller.StateRequesting:
		lines = append(lines, "  "+m.spinner.View()+" Analyzing market data...")
	case controller.StateCooldown:
		lines = append(lines, SubtextStyle.Render(fmt.Sprintf("  Next request in %ds", m.remaining)))
	default:
		lines = append(lines, SubtextStyle.Render("  Ready"))
	}

	lines = append(lines, "")
	if m.current != nil {
		sig := *m.current
		lines = append(lines, "  "+actionStyle(sig.Action).Render(string(sig.Action))+"  "+sig.Asset+"  "+sig.Timeframe)
		lines = append(lines, "  "+RenderConfidenceBar(sig.Confidence, 20))
		lines = append(lines, SubtextStyle.Render("  "+sig.Reasoning))
		lines = append(lines, SubtextStyle.Render("  at "+sig.Timestamp))
	} else {
		lines = append(lines, SubtextStyle.Render("  No signal generated yet"))
	}

	return strings.Join(lines, "\n")
}

func (m DashboardModel) renderControls() string {
	timeframe := m.selectedTimeframe()
	var parts []string
	parts = append(parts, fmt.Sprintf("  Market: %s", m.selectedMarket()))
	parts = append(parts, fmt.Sprintf("Timeframe: %s", timeframe))
	if m.editingSymbol {
		parts = append(parts, "Forex symbol: "+m.symbolInput.View())
	}
	line := strings.Join(parts, "   ")

	help := SubtextStyle.Render("  [m] market  [t] timeframe  [g] generate  [f] forex symbol  [tab] log  [q] quit")
	return line + "\n" + help
}

func (m DashboardModel) fetchMarketsCmd() tea.Cmd {
	return func() tea.Msg {
		if m.services.Markets == nil {
			return marketsMsg(nil)
		}
		return marketsMsg(m.services.Markets.GetMarkets(context.Background()))
	}
}

func (m DashboardModel) fetchHistoryCmd() tea.Cmd {
	market := m.selectedMarket()
	return func() tea.Msg {
		if m.services.Markets == nil {
			return historyMsg{market: market}
		}
		points, err := m.services.Markets.GetHistory(context.Background(), market, 0)
		if err != nil {
			return historyMsg{market: market}
		}
		return historyMsg{market: market, points: points}
	}
}

func (m DashboardModel) fetchStatusCmd() tea.Cmd {
	return func() tea.Msg {
		if m.services.Signals == nil {
			return statusMsg{state: controller.StateIdle}
		}
		state, remaining := m.services.Signals.Status(context.Background())
		out := statusMsg{state: state, remaining: remaining}
		if sig, ok := m.services.Signals.CurrentSignal(context.Background()); ok {
			out.current = &sig
		}
		return out
	}
}

func (m DashboardModel) requestSignalCmd() tea.Cmd {
	market := m.selectedMarket()
	timeframe := m.selectedTimeframe()
	return func() tea.Msg {
		if m.services.Signals == nil {
			return requestErrMsg{err: fmt.Errorf("signal service not available")}
		}
		accepted, err := m.services.Signals.RequestSignal(context.Background(), market, timeframe)
		if err != nil {
			return requestErrMsg{err: err}
		}
		return requestResultMsg{accepted: accepted}
	}
}

func (m DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return dashTickMsg(t)
	})
}
