package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dewakost/dewakost/internal/app"
	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/history"
)

type historyMode int

const (
	historyModeList historyMode = iota
	historyModeSearch
	historyModeDate
	historyModeConfirmRestore
)

// historyWindow is how many entries are shown around the cursor
const historyWindow = 8

// HistoryModel shows the activity log with search, a day filter and undo
type HistoryModel struct {
	ctx       context.Context
	app       *app.App
	entries   []domain.LogEntry
	cursor    int
	term      string
	day       time.Time
	loading   bool
	err       error
	statusMsg string

	mode    historyMode
	input   textinput.Model
	pending *domain.LogEntry
}

type historyDataMsg struct {
	entries []domain.LogEntry
	err     error
}

type restoredMsg struct {
	entry *domain.LogEntry
	err   error
}

// NewHistoryModel creates the activity history screen
func NewHistoryModel(ctx context.Context, a *app.App) tea.Model {
	return &HistoryModel{ctx: ctx, app: a, loading: true}
}

// IsCapturingInput returns true while typing a search or date, or confirming
func (m *HistoryModel) IsCapturingInput() bool {
	return m.mode != historyModeList
}

func (m *HistoryModel) Init() tea.Cmd {
	return m.load()
}

func (m *HistoryModel) load() tea.Cmd {
	f := history.Filter{Term: m.term, Date: m.day, Location: time.Local}
	return func() tea.Msg {
		entries, err := m.app.KostService.History(m.ctx, f)
		return historyDataMsg{entries: entries, err: err}
	}
}

func (m *HistoryModel) restore(id string) tea.Cmd {
	return func() tea.Msg {
		actor, err := m.app.Actor(m.ctx)
		if err != nil {
			return restoredMsg{err: err}
		}
		entry, err := m.app.KostService.Restore(m.ctx, actor, id)
		return restoredMsg{entry: entry, err: err}
	}
}

func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case historyModeSearch, historyModeDate:
		return m.updateInput(msg)
	case historyModeConfirmRestore:
		if km, ok := msg.(tea.KeyMsg); ok {
			m.mode = historyModeList
			pending := m.pending
			m.pending = nil
			if km.String() == "y" && pending != nil {
				return m, m.restore(pending.ID)
			}
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.load()

	case historyDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
			if m.cursor >= len(m.entries) {
				m.cursor = max(0, len(m.entries)-1)
			}
		}
		return m, nil

	case restoredMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = msg.entry.Details
		m.cursor = 0
		return m, m.load()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Filter):
			m.mode = historyModeSearch
			m.input = newInput("name, details or username", 100, 40)
			m.input.SetValue(m.term)
			return m, m.input.Focus()
		case msg.String() == "t":
			m.mode = historyModeDate
			m.input = newInput("YYYY-MM-DD", 10, 12)
			if !m.day.IsZero() {
				m.input.SetValue(m.day.Format("2006-01-02"))
			}
			return m, m.input.Focus()
		case msg.String() == "c":
			m.term = ""
			m.day = time.Time{}
			m.cursor = 0
			return m, m.load()
		case key.Matches(msg, DefaultKeyMap.Restore):
			if m.cursor < len(m.entries) {
				e := m.entries[m.cursor]
				if !e.CanRestore() {
					m.err = history.ErrNotRestorable
					return m, nil
				}
				m.pending = &e
				m.mode = historyModeConfirmRestore
			}
		}
	}

	return m, nil
}

func (m *HistoryModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.mode = historyModeList
			m.err = nil
			return m, nil
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if m.mode == historyModeDate {
				day, err := history.ParseDay(value, time.Local)
				if err != nil {
					m.err = fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
					return m, nil
				}
				m.day = day
			} else {
				m.term = value
			}
			m.err = nil
			m.mode = historyModeList
			m.cursor = 0
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *HistoryModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("Activity (%d)", len(m.entries))) + "\n")

	var active []string
	if m.term != "" {
		active = append(active, fmt.Sprintf("matching %q", m.term))
	}
	if !m.day.IsZero() {
		active = append(active, "on "+m.day.Format("2 Jan 2006"))
	}
	if len(active) > 0 {
		s.WriteString(subtitleStyle.Render("  "+strings.Join(active, ", ")) + "\n")
	}
	s.WriteString("\n")

	switch m.mode {
	case historyModeSearch:
		s.WriteString(focusLabel.Render("  Search: ") + m.input.View() + "\n\n")
		s.WriteString(helpStyle.Render("  enter: apply  esc: cancel  (empty clears)"))
		return s.String()
	case historyModeDate:
		s.WriteString(focusLabel.Render("  Day: ") + m.input.View() + "\n\n")
		if m.err != nil {
			s.WriteString(errorStyle.Render("  "+m.err.Error()) + "\n\n")
		}
		s.WriteString(helpStyle.Render("  enter: apply  esc: cancel  (empty clears)"))
		return s.String()
	case historyModeConfirmRestore:
		if m.pending != nil {
			s.WriteString(boxStyle.Render(fmt.Sprintf("%s: %s\n%s", m.pending.Action.Label(), m.pending.KostName, m.pending.Details)) + "\n\n")
			s.WriteString(warningStyle.Render("  Undo this action?") + "\n\n")
			s.WriteString(helpStyle.Render("  y: restore  any other key: cancel"))
			return s.String()
		}
	}

	if m.loading {
		return s.String() + "Loading history..."
	}
	if m.statusMsg != "" {
		s.WriteString(statusStyle.Render("  ✓ "+m.statusMsg) + "\n\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}

	if len(m.entries) == 0 {
		s.WriteString(subtitleStyle.Render("  No activity found.") + "\n")
	} else {
		now := time.Now()
		start := max(0, min(m.cursor-historyWindow/2, len(m.entries)-historyWindow))
		end := min(len(m.entries), start+historyWindow)
		for i := start; i < end; i++ {
			s.WriteString(renderEntry(m.entries[i], i == m.cursor, now) + "\n")
		}
		if len(m.entries) > historyWindow {
			s.WriteString(subtitleStyle.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(m.entries))) + "\n")
		}
	}

	s.WriteString("\n" + helpStyle.Render("  j/k: navigate  r: restore  f or /: search  t: day  c: clear"))
	return s.String()
}

// renderEntry renders one history entry as two or three lines
func renderEntry(e domain.LogEntry, selected bool, now time.Time) string {
	indicator := "  "
	titleSt := subtitleStyle.UnsetForeground()
	if selected {
		indicator = "> "
		titleSt = selectedStyle
	}

	title := fmt.Sprintf("%s: %s", e.Action.Label(), e.KostName)
	if e.IsRestored {
		title = restoredStyle.Render(title) + archivedStyle.Render(" (restored)")
	} else {
		title = titleSt.Render(title)
	}

	meta := history.TimeAgo(e.Timestamp, now)
	if e.Username != "" {
		meta += " by " + e.Username
	}

	out := indicator + title + "\n" + subtitleStyle.Render("    "+meta)
	if e.Details != "" {
		out += "\n" + subtitleStyle.Render("    "+truncateStr(e.Details, 90))
	}
	return out
}
