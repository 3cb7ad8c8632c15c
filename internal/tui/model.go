package tui

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dewakost/dewakost/internal/app"
	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/repository"
	"go.uber.org/zap"
)

// syncInterval is how often the store is polled for writes made elsewhere,
// e.g. by a CLI command in another terminal
const syncInterval = 2 * time.Second

// Screen represents the current active screen
type Screen int

const (
	ScreenBrowse Screen = iota
	ScreenManage
	ScreenHistory
	ScreenOptions
	ScreenAccounts
	ScreenLogin
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenBrowse:
		return "Browse"
	case ScreenManage:
		return "Manage listings"
	case ScreenHistory:
		return "Activity history"
	case ScreenOptions:
		return "Options"
	case ScreenAccounts:
		return "Accounts"
	case ScreenLogin:
		return "Admin login"
	default:
		return "Unknown"
	}
}

// adminOnly returns true for screens that need a session
func (s Screen) adminOnly() bool {
	return s == ScreenManage || s == ScreenHistory || s == ScreenOptions || s == ScreenAccounts
}

// Model is the root Bubble Tea model
type Model struct {
	ctx           context.Context
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	screens map[Screen]tea.Model

	account  *domain.Account
	versions map[string]int64

	// Error state
	err       error
	statusMsg string
}

// New creates a new root model
func New(ctx context.Context, a *app.App) Model {
	return Model{
		ctx:           ctx,
		app:           a,
		currentScreen: ScreenBrowse,
		screens: map[Screen]tea.Model{
			ScreenBrowse: NewBrowseModel(ctx, a),
		},
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.screens[ScreenBrowse].Init(),
		m.sync(),
		syncTick(),
	)
}

func syncTick() tea.Cmd {
	return tea.Tick(syncInterval, func(t time.Time) tea.Msg { return syncTickMsg(t) })
}

// sync reads the collection versions and the session
func (m Model) sync() tea.Cmd {
	return func() tea.Msg {
		versions, err := m.app.Repos.Store.Versions(m.ctx, repository.AllKeys...)
		if err != nil {
			return syncMsg{err: err}
		}
		acc, err := m.app.AccountService.Current(m.ctx)
		return syncMsg{versions: versions, account: acc, err: err}
	}
}

func newScreen(ctx context.Context, a *app.App, screen Screen) tea.Model {
	switch screen {
	case ScreenBrowse:
		return NewBrowseModel(ctx, a)
	case ScreenManage:
		return NewManageModel(ctx, a)
	case ScreenHistory:
		return NewHistoryModel(ctx, a)
	case ScreenOptions:
		return NewOptionsModel(ctx, a)
	case ScreenAccounts:
		return NewAccountsModel(ctx, a)
	case ScreenLogin:
		return NewLoginModel(ctx, a, ScreenBrowse)
	}
	return nil
}

// switchTo opens screen, routing admin screens through the login form.
// It lazy-initializes a screen on first visit and sends a RefreshDataMsg
// on later visits so screens reload data.
func (m *Model) switchTo(screen Screen) tea.Cmd {
	if screen.adminOnly() && m.account == nil {
		m.currentScreen = ScreenLogin
		login := NewLoginModel(m.ctx, m.app, screen)
		m.screens[ScreenLogin] = login
		return login.Init()
	}

	m.currentScreen = screen
	if s, ok := m.screens[screen]; ok && s != nil {
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	s := newScreen(m.ctx, m.app, screen)
	m.screens[screen] = s
	return s.Init()
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.screens[m.currentScreen].(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// screens size their own content
		return m.routeAll(msg)

	case tea.KeyMsg:
		m.statusMsg = ""
		m.err = nil

		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit
			case key.Matches(msg, DefaultKeyMap.Browse):
				return m, m.switchTo(ScreenBrowse)
			case key.Matches(msg, DefaultKeyMap.Manage):
				return m, m.switchTo(ScreenManage)
			case key.Matches(msg, DefaultKeyMap.History):
				return m, m.switchTo(ScreenHistory)
			case key.Matches(msg, DefaultKeyMap.Options):
				return m, m.switchTo(ScreenOptions)
			case key.Matches(msg, DefaultKeyMap.Accounts):
				return m, m.switchTo(ScreenAccounts)
			case key.Matches(msg, DefaultKeyMap.Session):
				if m.account != nil {
					return m, m.logout()
				}
				m.currentScreen = ScreenLogin
				login := NewLoginModel(m.ctx, m.app, ScreenBrowse)
				m.screens[ScreenLogin] = login
				return m, login.Init()
			}
		}

	case syncTickMsg:
		return m, tea.Batch(m.sync(), syncTick())

	case syncMsg:
		if msg.err != nil {
			m.app.Log.Warn("store sync failed", zap.Error(msg.err))
			return m, nil
		}
		m.account = msg.account
		if m.account == nil && m.currentScreen.adminOnly() {
			// session ended elsewhere
			m.statusMsg = "Logged out"
			return m, m.switchTo(ScreenBrowse)
		}
		if m.versions == nil {
			m.versions = msg.versions
			return m, nil
		}
		if maps.Equal(m.versions, msg.versions) || m.activeScreenCapturingInput() {
			// a form is open; pick the change up on a later tick
			return m, nil
		}
		m.versions = msg.versions
		return m.route(RefreshDataMsg{})

	case sessionMsg:
		m.account = msg.account
		if msg.account == nil {
			m.statusMsg = "Logged out"
			return m, m.switchTo(ScreenBrowse)
		}
		m.statusMsg = fmt.Sprintf("Logged in as %s", msg.account.Username)
		return m, m.switchTo(msg.next)

	case SwitchScreenMsg:
		return m, m.switchTo(msg.Screen)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.route(msg)
}

func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		if err := m.app.AccountService.Logout(m.ctx); err != nil {
			return ErrorMsg{Err: err}
		}
		return sessionMsg{}
	}
}

// route sends msg to the current screen
func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	s, ok := m.screens[m.currentScreen]
	if !ok || s == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.screens[m.currentScreen], cmd = s.Update(msg)
	return m, cmd
}

// routeAll sends msg to every initialized screen
func (m Model) routeAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for id, s := range m.screens {
		var cmd tea.Cmd
		m.screens[id], cmd = s.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	who := subtitleStyle.Render("visitor")
	if m.account != nil {
		who = statusStyle.Render("admin: " + m.account.Username)
	}
	header := headerStyle.Render(fmt.Sprintf("dewakost - %s", m.currentScreen.String())) + "  " + who

	// Footer with navigation keys
	session := "[L]ogin"
	if m.account != nil {
		session = "[L]ogout"
	}
	footer := footerStyle.Render(fmt.Sprintf("[1] Browse  [2] Manage  [3] History  [4] Options  [5] Accounts  %s  [Q]uit", session))

	content := "Loading..."
	if s, ok := m.screens[m.currentScreen]; ok && s != nil {
		content = s.View()
	}

	// Error/status display
	notice := ""
	if m.err != nil {
		notice = errorStyle.Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	} else if m.statusMsg != "" {
		notice = statusStyle.Render("\n" + m.statusMsg)
	}

	// Divider line between header and content
	innerWidth := max(m.width-6, 20) // account for border (2) + padding (4)
	dividerWidth := max(innerWidth-12, 10)
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, notice, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(max(m.height-4, 1)) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(ctx context.Context, a *app.App) error {
	p := tea.NewProgram(New(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
