package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dewakost/dewakost/internal/app"
	"github.com/dewakost/dewakost/internal/domain"
)

type accountsMode int

const (
	accountsModeList accountsMode = iota
	accountsModeNew
	accountsModePassword
	accountsModeConfirmRemove
)

// AccountsModel manages admin accounts
type AccountsModel struct {
	ctx       context.Context
	app       *app.App
	accounts  []domain.Account
	self      *domain.Account
	cursor    int
	loading   bool
	err       error
	statusMsg string

	mode       accountsMode
	fields     []textinput.Model
	fieldFocus int
	pending    *domain.Account
}

type accountsDataMsg struct {
	accounts []domain.Account
	self     *domain.Account
	err      error
}

type accountSavedMsg struct {
	status string
	err    error
}

// NewAccountsModel creates the accounts screen
func NewAccountsModel(ctx context.Context, a *app.App) tea.Model {
	return &AccountsModel{ctx: ctx, app: a, loading: true}
}

// IsCapturingInput returns true when a form or confirmation is open
func (m *AccountsModel) IsCapturingInput() bool {
	return m.mode != accountsModeList
}

func (m *AccountsModel) Init() tea.Cmd {
	return m.load()
}

func (m *AccountsModel) load() tea.Cmd {
	return func() tea.Msg {
		accounts, err := m.app.AccountService.List(m.ctx)
		if err != nil {
			return accountsDataMsg{err: err}
		}
		self, err := m.app.AccountService.Current(m.ctx)
		return accountsDataMsg{accounts: accounts, self: self, err: err}
	}
}

func passwordInput(placeholder string) textinput.Model {
	ti := newInput(placeholder, 100, 30)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

// initForm opens the two-field form for the given mode
func (m *AccountsModel) initForm(mode accountsMode) tea.Cmd {
	m.mode = mode
	if mode == accountsModeNew {
		m.fields = []textinput.Model{newInput("username", 50, 30), passwordInput("password")}
	} else {
		m.fields = []textinput.Model{passwordInput("current password"), passwordInput("new password")}
	}
	m.fieldFocus = 0
	return m.fields[0].Focus()
}

func (m *AccountsModel) submit() tea.Cmd {
	mode := m.mode
	first, second := m.fields[0].Value(), m.fields[1].Value()
	return func() tea.Msg {
		actor, err := m.app.Actor(m.ctx)
		if err != nil {
			return accountSavedMsg{err: err}
		}
		if mode == accountsModeNew {
			acc, err := m.app.AccountService.Add(m.ctx, actor, first, second)
			if err != nil {
				return accountSavedMsg{err: err}
			}
			return accountSavedMsg{status: fmt.Sprintf("Account %q added", acc.Username)}
		}
		if err := m.app.AccountService.ChangePassword(m.ctx, actor, actor.ID, first, second); err != nil {
			return accountSavedMsg{err: err}
		}
		return accountSavedMsg{status: "Password updated"}
	}
}

func (m *AccountsModel) remove(id string) tea.Cmd {
	return func() tea.Msg {
		actor, err := m.app.Actor(m.ctx)
		if err != nil {
			return accountSavedMsg{err: err}
		}
		if err := m.app.AccountService.Remove(m.ctx, actor, id); err != nil {
			return accountSavedMsg{err: err}
		}
		return accountSavedMsg{status: "Account removed"}
	}
}

func (m *AccountsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case accountsModeNew, accountsModePassword:
		return m.updateForm(msg)
	case accountsModeConfirmRemove:
		if km, ok := msg.(tea.KeyMsg); ok {
			m.mode = accountsModeList
			pending := m.pending
			m.pending = nil
			if km.String() == "y" && pending != nil {
				return m, m.remove(pending.ID)
			}
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.load()

	case accountsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.accounts = msg.accounts
			m.self = msg.self
			if m.cursor >= len(m.accounts) {
				m.cursor = max(0, len(m.accounts)-1)
			}
		}
		return m, nil

	case accountSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = msg.status
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
			if m.cursor < len(m.accounts)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			return m, m.initForm(accountsModeNew)
		case msg.String() == "p":
			return m, m.initForm(accountsModePassword)
		case key.Matches(msg, DefaultKeyMap.Delete):
			if m.cursor < len(m.accounts) {
				acc := m.accounts[m.cursor]
				m.pending = &acc
				m.mode = accountsModeConfirmRemove
			}
		}
	}

	return m, nil
}

func (m *AccountsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case accountSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = accountsModeList
		m.err = nil
		m.statusMsg = msg.status
		return m, m.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = accountsModeList
			m.err = nil
			return m, nil
		case "tab", "down", "shift+tab", "up":
			return m, cycleFocus(m.fields, &m.fieldFocus, 1)
		case "enter":
			if m.fieldFocus == len(m.fields)-1 {
				return m, m.submit()
			}
			return m, cycleFocus(m.fields, &m.fieldFocus, 1)
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *AccountsModel) View() string {
	var s strings.Builder

	switch m.mode {
	case accountsModeNew, accountsModePassword:
		title, labels := "New Account", []string{"Username:", "Password:"}
		if m.mode == accountsModePassword {
			title, labels = "Change Password", []string{"Current password:", "New password:"}
		}
		s.WriteString(titleStyle.Render(title) + "\n\n")
		s.WriteString(formView(labels, m.fields, m.fieldFocus))
		if m.err != nil {
			s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
		}
		s.WriteString(helpStyle.Render("  tab: next field  enter: next/save  esc: cancel"))
		return s.String()

	case accountsModeConfirmRemove:
		if m.pending != nil {
			s.WriteString(warningStyle.Render(fmt.Sprintf("  Remove account %q?", m.pending.Username)) + "\n\n")
			s.WriteString(helpStyle.Render("  y: remove  any other key: cancel"))
			return s.String()
		}
	}

	if m.loading {
		return "Loading accounts..."
	}

	s.WriteString(titleStyle.Render(fmt.Sprintf("Admin accounts (%d)", len(m.accounts))) + "\n\n")
	if m.statusMsg != "" {
		s.WriteString(statusStyle.Render("  ✓ "+m.statusMsg) + "\n\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}

	for i, acc := range m.accounts {
		line := "  " + acc.Username
		if i == m.cursor {
			line = selectedStyle.Render("> " + acc.Username)
		}
		if m.self != nil && acc.ID == m.self.ID {
			line += subtitleStyle.Render("  (you)")
		}
		s.WriteString(line + "\n")
	}

	s.WriteString("\n" + helpStyle.Render("  j/k: navigate  n: new account  p: change my password  d: remove"))
	return s.String()
}
