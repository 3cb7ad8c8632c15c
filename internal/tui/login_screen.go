package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dewakost/dewakost/internal/app"
)

// LoginModel asks for admin credentials, then opens the screen that needed them
type LoginModel struct {
	ctx        context.Context
	app        *app.App
	next       Screen
	fields     []textinput.Model
	fieldFocus int
	err        error
	busy       bool
}

type loginFailedMsg struct {
	err error
}

// NewLoginModel creates the login form. next is opened after a successful login.
func NewLoginModel(ctx context.Context, a *app.App, next Screen) tea.Model {
	return &LoginModel{
		ctx:    ctx,
		app:    a,
		next:   next,
		fields: []textinput.Model{newInput("username", 50, 30), passwordInput("password")},
	}
}

// IsCapturingInput is always true: every key belongs to the form
func (m *LoginModel) IsCapturingInput() bool {
	return true
}

func (m *LoginModel) Init() tea.Cmd {
	return m.fields[0].Focus()
}

func (m *LoginModel) submit() tea.Cmd {
	username, password := m.fields[0].Value(), m.fields[1].Value()
	next := m.next
	return func() tea.Msg {
		acc, err := m.app.AccountService.Login(m.ctx, username, password)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		return sessionMsg{account: acc, next: next}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginFailedMsg:
		m.busy = false
		m.err = msg.err
		m.fields[1].SetValue("")
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = 1
		return m, m.fields[1].Focus()

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenBrowse} }
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "down", "shift+tab", "up":
			return m, cycleFocus(m.fields, &m.fieldFocus, 1)
		case "enter":
			if m.fieldFocus == 0 {
				return m, cycleFocus(m.fields, &m.fieldFocus, 1)
			}
			m.busy = true
			m.err = nil
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Admin login") + "\n")
	if m.next != ScreenBrowse {
		s.WriteString(subtitleStyle.Render(fmt.Sprintf("  %s needs an admin session.", m.next)) + "\n")
	}
	s.WriteString("\n")
	s.WriteString(formView([]string{"Username:", "Password:"}, m.fields, m.fieldFocus))
	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("  %v", m.err)) + "\n\n")
	}
	s.WriteString(helpStyle.Render("  tab: next field  enter: log in  esc: back to browsing"))
	return s.String()
}
