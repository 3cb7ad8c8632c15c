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

type optionsTab int

const (
	tabCampuses optionsTab = iota
	tabFacilities
	tabSocial
	tabCount
)

func (t optionsTab) String() string {
	switch t {
	case tabCampuses:
		return "Campuses"
	case tabFacilities:
		return "Facilities"
	case tabSocial:
		return "Social links"
	default:
		return "Unknown"
	}
}

func (t optionsTab) kind() domain.LookupKind {
	if t == tabFacilities {
		return domain.LookupFacilities
	}
	return domain.LookupCampuses
}

type optionsMode int

const (
	optionsModeList optionsMode = iota
	optionsModeAdd
	optionsModeRename
	optionsModeConfirmRemove
	optionsModeSocial
)

// social form field indices
const (
	socialInstagram = iota
	socialTikTok
	socialFacebook
	socialWhatsApp
	socialCount
)

// OptionsModel manages the campus and facility lists and the contact links
type OptionsModel struct {
	ctx       context.Context
	app       *app.App
	tab       optionsTab
	values    map[domain.LookupKind][]string
	links     domain.SocialLinks
	cursor    int
	loading   bool
	err       error
	statusMsg string

	mode       optionsMode
	input      textinput.Model
	fields     []textinput.Model
	fieldFocus int
	target     string // value being renamed or removed
}

type optionsDataMsg struct {
	campuses   []string
	facilities []string
	links      domain.SocialLinks
	err        error
}

type optionSavedMsg struct {
	status string
	err    error
}

// NewOptionsModel creates the options screen
func NewOptionsModel(ctx context.Context, a *app.App) tea.Model {
	return &OptionsModel{
		ctx:     ctx,
		app:     a,
		values:  map[domain.LookupKind][]string{},
		loading: true,
	}
}

// IsCapturingInput returns true when a form or confirmation is open
func (m *OptionsModel) IsCapturingInput() bool {
	return m.mode != optionsModeList
}

func (m *OptionsModel) Init() tea.Cmd {
	return m.load()
}

func (m *OptionsModel) load() tea.Cmd {
	return func() tea.Msg {
		campuses, err := m.app.LookupService.List(m.ctx, domain.LookupCampuses)
		if err != nil {
			return optionsDataMsg{err: err}
		}
		facilities, err := m.app.LookupService.List(m.ctx, domain.LookupFacilities)
		if err != nil {
			return optionsDataMsg{err: err}
		}
		links, err := m.app.SettingsService.SocialLinks(m.ctx)
		return optionsDataMsg{campuses: campuses, facilities: facilities, links: links, err: err}
	}
}

func (m *OptionsModel) current() []string {
	return m.values[m.tab.kind()]
}

// mutate runs a lookup change as the logged-in admin
func (m *OptionsModel) mutate(status string, fn func(actor *domain.Account) error) tea.Cmd {
	return func() tea.Msg {
		actor, err := m.app.Actor(m.ctx)
		if err != nil {
			return optionSavedMsg{err: err}
		}
		if err := fn(actor); err != nil {
			return optionSavedMsg{err: err}
		}
		return optionSavedMsg{status: status}
	}
}

func (m *OptionsModel) submitInput() tea.Cmd {
	kind := m.tab.kind()
	value := strings.TrimSpace(m.input.Value())

	if m.mode == optionsModeRename {
		old := m.target
		return m.mutate(fmt.Sprintf("Renamed %q to %q", old, value), func(actor *domain.Account) error {
			_, err := m.app.LookupService.Rename(m.ctx, actor, kind, old, value)
			return err
		})
	}
	return m.mutate(fmt.Sprintf("Added %q", value), func(actor *domain.Account) error {
		_, err := m.app.LookupService.Add(m.ctx, actor, kind, value)
		return err
	})
}

func (m *OptionsModel) initSocialForm() tea.Cmd {
	m.fields = make([]textinput.Model, socialCount)
	m.fields[socialInstagram] = newInput("https://instagram.com/...", 200, 50)
	m.fields[socialTikTok] = newInput("https://tiktok.com/@...", 200, 50)
	m.fields[socialFacebook] = newInput("https://facebook.com/...", 200, 50)
	m.fields[socialWhatsApp] = newInput("https://wa.me/62...", 200, 50)

	m.fields[socialInstagram].SetValue(m.links.Instagram)
	m.fields[socialTikTok].SetValue(m.links.TikTok)
	m.fields[socialFacebook].SetValue(m.links.Facebook)
	m.fields[socialWhatsApp].SetValue(m.links.WhatsApp)

	m.fieldFocus = socialInstagram
	return m.fields[socialInstagram].Focus()
}

func (m *OptionsModel) saveSocial() tea.Cmd {
	links := domain.SocialLinks{
		Instagram: m.fields[socialInstagram].Value(),
		TikTok:    m.fields[socialTikTok].Value(),
		Facebook:  m.fields[socialFacebook].Value(),
		WhatsApp:  m.fields[socialWhatsApp].Value(),
	}
	return m.mutate("Contact links saved", func(actor *domain.Account) error {
		return m.app.SettingsService.UpdateSocialLinks(m.ctx, actor, links)
	})
}

func (m *OptionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case optionsModeAdd, optionsModeRename:
		return m.updateInput(msg)
	case optionsModeSocial:
		return m.updateSocial(msg)
	case optionsModeConfirmRemove:
		if km, ok := msg.(tea.KeyMsg); ok {
			m.mode = optionsModeList
			if km.String() == "y" {
				kind, value := m.tab.kind(), m.target
				return m, m.mutate(fmt.Sprintf("Removed %q", value), func(actor *domain.Account) error {
					_, err := m.app.LookupService.Remove(m.ctx, actor, kind, value)
					return err
				})
			}
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.load()

	case optionsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.values[domain.LookupCampuses] = msg.campuses
			m.values[domain.LookupFacilities] = msg.facilities
			m.links = msg.links
			if m.cursor >= len(m.current()) {
				m.cursor = max(0, len(m.current())-1)
			}
		}
		return m, nil

	case optionSavedMsg:
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
		case msg.String() == "tab":
			m.tab = (m.tab + 1) % tabCount
			m.cursor = 0
		case msg.String() == "shift+tab":
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.cursor = 0
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.current())-1 {
				m.cursor++
			}
		case m.tab == tabSocial && (key.Matches(msg, DefaultKeyMap.Select) || key.Matches(msg, DefaultKeyMap.Edit)):
			m.mode = optionsModeSocial
			return m, m.initSocialForm()
		case m.tab == tabSocial:
			return m, nil
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = optionsModeAdd
			placeholder := "Universitas Brawijaya"
			if m.tab == tabFacilities {
				placeholder = "WiFi"
			}
			m.input = newInput(placeholder, 100, 40)
			return m, m.input.Focus()
		case key.Matches(msg, DefaultKeyMap.Edit), key.Matches(msg, DefaultKeyMap.Select):
			if m.cursor < len(m.current()) {
				m.target = m.current()[m.cursor]
				m.mode = optionsModeRename
				m.input = newInput(m.target, 100, 40)
				m.input.SetValue(m.target)
				return m, m.input.Focus()
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if m.cursor < len(m.current()) {
				m.target = m.current()[m.cursor]
				m.mode = optionsModeConfirmRemove
			}
		}
	}

	return m, nil
}

func (m *OptionsModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case optionSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = optionsModeList
		m.err = nil
		m.statusMsg = msg.status
		return m, m.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = optionsModeList
			m.err = nil
			return m, nil
		case "enter":
			return m, m.submitInput()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *OptionsModel) updateSocial(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case optionSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = optionsModeList
		m.err = nil
		m.statusMsg = msg.status
		return m, m.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = optionsModeList
			m.err = nil
			return m, nil
		case "tab", "down":
			return m, cycleFocus(m.fields, &m.fieldFocus, 1)
		case "shift+tab", "up":
			return m, cycleFocus(m.fields, &m.fieldFocus, -1)
		case "enter":
			if m.fieldFocus == socialCount-1 {
				return m, m.saveSocial()
			}
			return m, cycleFocus(m.fields, &m.fieldFocus, 1)
		case "ctrl+s":
			return m, m.saveSocial()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *OptionsModel) View() string {
	var s strings.Builder

	// Tabs
	for t := optionsTab(0); t < tabCount; t++ {
		label := " " + t.String() + " "
		if t == m.tab {
			s.WriteString(selectedStyle.Render("["+label+"]") + " ")
		} else {
			s.WriteString(subtitleStyle.Render(" "+label+" ") + " ")
		}
	}
	s.WriteString("\n\n")

	if m.loading {
		return s.String() + "Loading options..."
	}

	switch m.mode {
	case optionsModeAdd, optionsModeRename:
		label := "Add:"
		if m.mode == optionsModeRename {
			label = fmt.Sprintf("Rename %q to:", m.target)
		}
		s.WriteString(focusLabel.Render("  "+label) + "\n  " + m.input.View() + "\n\n")
		if m.mode == optionsModeRename {
			s.WriteString(subtitleStyle.Render("  Every listing using it is updated too.") + "\n\n")
		}
		if m.err != nil {
			s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
		}
		s.WriteString(helpStyle.Render("  enter: save  esc: cancel"))
		return s.String()

	case optionsModeConfirmRemove:
		s.WriteString(warningStyle.Render(fmt.Sprintf("  Remove %q? It is also removed from every listing.", m.target)) + "\n\n")
		s.WriteString(helpStyle.Render("  y: remove  any other key: cancel"))
		return s.String()

	case optionsModeSocial:
		s.WriteString(formView([]string{"Instagram:", "TikTok:", "Facebook:", "WhatsApp:"}, m.fields, m.fieldFocus))
		if m.err != nil {
			s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
		}
		s.WriteString(helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel"))
		return s.String()
	}

	if m.statusMsg != "" {
		s.WriteString(statusStyle.Render("  ✓ "+m.statusMsg) + "\n\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}

	if m.tab == tabSocial {
		links := [][2]string{
			{"Instagram", m.links.Instagram},
			{"TikTok", m.links.TikTok},
			{"Facebook", m.links.Facebook},
			{"WhatsApp", m.links.WhatsApp},
		}
		for _, l := range links {
			v := l[1]
			if v == "" {
				v = subtitleStyle.Render("(not set)")
			}
			fmt.Fprintf(&s, "  %s %s\n", subtitleStyle.Render(fmt.Sprintf("%-10s", l[0]+":")), v)
		}
		s.WriteString("\n" + helpStyle.Render("  tab: switch list  enter/e: edit links"))
		return s.String()
	}

	values := m.current()
	if len(values) == 0 {
		s.WriteString(subtitleStyle.Render("  Nothing here yet. Press 'n' to add one.") + "\n")
	}
	for i, v := range values {
		if i == m.cursor {
			s.WriteString(selectedStyle.Render("> "+v) + "\n")
		} else {
			s.WriteString("  " + v + "\n")
		}
	}

	s.WriteString("\n" + helpStyle.Render("  tab: switch list  j/k: navigate  n: add  enter/e: rename  d: remove"))
	return s.String()
}
