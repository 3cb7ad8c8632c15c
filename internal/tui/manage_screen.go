package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dewakost/dewakost/internal/app"
	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/listing"
)

type manageMode int

const (
	manageModeList manageMode = iota
	manageModeNew
	manageModeEdit
	manageModeConfirmDelete // y/n confirmation before delete
)

// kost form field indices
const (
	kostName = iota
	kostArea
	kostAddress
	kostPrice
	kostRating
	kostGender
	kostFacilities
	kostCampuses
	kostImages
	kostContact
	kostDescription
	kostFieldCount
)

var kostLabels = []string{
	"Name:", "Area:", "Address:", "Price / month:", "Rating (0-5):", "Gender:",
	"Facilities:", "Nearby campuses:", "Image URLs:", "Contact link:", "Description (Markdown):",
}

// ManageModel lists every listing, archived included, with create/edit forms
type ManageModel struct {
	ctx       context.Context
	app       *app.App
	page      listing.Page[domain.Kost]
	pageNum   int
	cursor    int
	loading   bool
	err       error
	statusMsg string

	// Form state
	mode       manageMode
	fields     []textinput.Model
	fieldFocus int
	editing    *domain.Kost // nil for a new listing
	pending    *domain.Kost // awaiting delete confirmation
}

type manageDataMsg struct {
	page listing.Page[domain.Kost]
	err  error
}

type kostSavedMsg struct {
	status string
	err    error
}

// NewManageModel creates the admin listing screen
func NewManageModel(ctx context.Context, a *app.App) tea.Model {
	return &ManageModel{ctx: ctx, app: a, pageNum: 1, loading: true}
}

// IsCapturingInput returns true when the form or delete confirmation is active
func (m *ManageModel) IsCapturingInput() bool {
	return m.mode != manageModeList
}

func (m *ManageModel) Init() tea.Cmd {
	return m.load()
}

func (m *ManageModel) load() tea.Cmd {
	pageNum := m.pageNum
	return func() tea.Msg {
		// admins see everything: no price ceiling, archived included
		all := domain.FilterState{Gender: domain.GenderAny}
		page, err := m.app.KostService.List(m.ctx, all, true, pageNum)
		return manageDataMsg{page: page, err: err}
	}
}

func (m *ManageModel) selected() *domain.Kost {
	if m.cursor < 0 || m.cursor >= len(m.page.Items) {
		return nil
	}
	k := m.page.Items[m.cursor]
	return &k
}

func (m *ManageModel) initForm(editing *domain.Kost) tea.Cmd {
	m.fields = make([]textinput.Model, kostFieldCount)
	m.fields[kostName] = newInput("Kost Melati", 100, 40)
	m.fields[kostArea] = newInput("Lowokwaru", 60, 30)
	m.fields[kostAddress] = newInput("Jl. Kertosariro 12", 200, 50)
	m.fields[kostPrice] = newInput("700000", 15, 20)
	m.fields[kostRating] = newInput("4.5", 4, 10)
	m.fields[kostGender] = newInput("Putra, Putri or Campur", 10, 20)
	m.fields[kostFacilities] = newInput("WiFi, AC", 300, 50)
	m.fields[kostCampuses] = newInput("Universitas Brawijaya", 300, 50)
	m.fields[kostImages] = newInput("https://...", 1000, 50)
	m.fields[kostContact] = newInput("https://wa.me/62...", 200, 50)
	m.fields[kostDescription] = newInput("Optional description", 2000, 60)

	m.editing = editing
	if editing != nil {
		m.fields[kostName].SetValue(editing.Name)
		m.fields[kostArea].SetValue(editing.Area)
		m.fields[kostAddress].SetValue(editing.Address)
		m.fields[kostPrice].SetValue(strconv.FormatInt(editing.PricePerMonth, 10))
		m.fields[kostRating].SetValue(strconv.FormatFloat(editing.Rating, 'f', -1, 64))
		m.fields[kostGender].SetValue(string(editing.Gender))
		m.fields[kostFacilities].SetValue(strings.Join(editing.Facilities, ", "))
		m.fields[kostCampuses].SetValue(strings.Join(editing.NearbyCampuses, ", "))
		m.fields[kostImages].SetValue(strings.Join(editing.ImageURLs, ", "))
		m.fields[kostContact].SetValue(editing.ContactLink)
		m.fields[kostDescription].SetValue(editing.Description)
	} else {
		m.fields[kostGender].SetValue(string(domain.GenderCampur))
	}

	m.fieldFocus = kostName
	return m.fields[kostName].Focus()
}

// formKost reads the form on top of the listing being edited
func (m *ManageModel) formKost() (domain.Kost, error) {
	var k domain.Kost
	if m.editing != nil {
		k = m.editing.Clone()
	}

	price, err := parsePrice(m.fields[kostPrice].Value())
	if err != nil {
		return k, err
	}
	rating := 0.0
	if r := strings.TrimSpace(m.fields[kostRating].Value()); r != "" {
		rating, err = strconv.ParseFloat(strings.ReplaceAll(r, ",", "."), 64)
		if err != nil {
			return k, fmt.Errorf("invalid rating: %s", r)
		}
	}
	gender, err := domain.ParseGender(m.fields[kostGender].Value())
	if err != nil {
		return k, err
	}

	k.Name = m.fields[kostName].Value()
	k.Area = m.fields[kostArea].Value()
	k.Address = m.fields[kostAddress].Value()
	k.PricePerMonth = price
	k.Rating = rating
	k.Gender = gender
	k.Facilities = splitList(m.fields[kostFacilities].Value())
	k.NearbyCampuses = splitList(m.fields[kostCampuses].Value())
	k.ImageURLs = splitList(m.fields[kostImages].Value())
	k.ContactLink = strings.TrimSpace(m.fields[kostContact].Value())
	k.Description = m.fields[kostDescription].Value()
	return k, nil
}

func (m *ManageModel) save() tea.Cmd {
	k, formErr := m.formKost()
	editing := m.editing != nil
	return func() tea.Msg {
		if formErr != nil {
			return kostSavedMsg{err: formErr}
		}
		actor, err := m.app.Actor(m.ctx)
		if err != nil {
			return kostSavedMsg{err: err}
		}

		if editing {
			updated, changed, err := m.app.KostService.Update(m.ctx, actor, k)
			if err != nil {
				return kostSavedMsg{err: err}
			}
			if !changed {
				return kostSavedMsg{status: "Nothing changed"}
			}
			return kostSavedMsg{status: "Saved: " + updated.Name}
		}

		created, err := m.app.KostService.Create(m.ctx, actor, k)
		if err != nil {
			return kostSavedMsg{err: err}
		}
		return kostSavedMsg{status: "Created: " + created.Name}
	}
}

func (m *ManageModel) toggleArchive(id string) tea.Cmd {
	return func() tea.Msg {
		actor, err := m.app.Actor(m.ctx)
		if err != nil {
			return kostSavedMsg{err: err}
		}
		k, err := m.app.KostService.ToggleArchive(m.ctx, actor, id)
		if err != nil {
			return kostSavedMsg{err: err}
		}
		if k.IsArchived {
			return kostSavedMsg{status: "Archived: " + k.Name}
		}
		return kostSavedMsg{status: "Visible again: " + k.Name}
	}
}

func (m *ManageModel) deleteKost(k domain.Kost) tea.Cmd {
	return func() tea.Msg {
		actor, err := m.app.Actor(m.ctx)
		if err != nil {
			return kostSavedMsg{err: err}
		}
		if err := m.app.KostService.Delete(m.ctx, actor, k.ID); err != nil {
			return kostSavedMsg{err: err}
		}
		return kostSavedMsg{status: "Deleted: " + k.Name + " (undo from History)"}
	}
}

func (m *ManageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case manageModeNew, manageModeEdit:
		return m.updateForm(msg)
	case manageModeConfirmDelete:
		if km, ok := msg.(tea.KeyMsg); ok {
			return m.confirmDelete(km)
		}
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.load()

	case manageDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.page = msg.page
			m.pageNum = msg.page.Number
			if m.cursor >= len(m.page.Items) {
				m.cursor = max(0, len(m.page.Items)-1)
			}
		}
		return m, nil

	case kostSavedMsg:
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
			if m.cursor < len(m.page.Items)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Left):
			if m.pageNum > 1 {
				m.pageNum--
				m.cursor = 0
				return m, m.load()
			}
		case key.Matches(msg, DefaultKeyMap.Right):
			if m.pageNum < m.page.TotalPages {
				m.pageNum++
				m.cursor = 0
				return m, m.load()
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = manageModeNew
			return m, m.initForm(nil)
		case key.Matches(msg, DefaultKeyMap.Select), key.Matches(msg, DefaultKeyMap.Edit):
			if k := m.selected(); k != nil {
				m.mode = manageModeEdit
				return m, m.initForm(k)
			}
		case key.Matches(msg, DefaultKeyMap.Archive):
			if k := m.selected(); k != nil {
				return m, m.toggleArchive(k.ID)
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if k := m.selected(); k != nil {
				m.pending = k
				m.mode = manageModeConfirmDelete
			}
		}
	}

	return m, nil
}

func (m *ManageModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case kostSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = manageModeList
		m.err = nil
		m.statusMsg = msg.status
		return m, m.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = manageModeList
			m.err = nil
			return m, nil
		case "tab", "down":
			return m, cycleFocus(m.fields, &m.fieldFocus, 1)
		case "shift+tab", "up":
			return m, cycleFocus(m.fields, &m.fieldFocus, -1)
		case "enter":
			if m.fieldFocus == kostFieldCount-1 {
				return m, m.save()
			}
			return m, cycleFocus(m.fields, &m.fieldFocus, 1)
		case "ctrl+s":
			return m, m.save()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ManageModel) confirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = manageModeList
	pending := m.pending
	m.pending = nil
	if msg.String() == "y" && pending != nil {
		return m, m.deleteKost(*pending)
	}
	// Any other key cancels
	return m, nil
}

func (m *ManageModel) View() string {
	switch m.mode {
	case manageModeNew, manageModeEdit:
		return m.viewForm()
	case manageModeConfirmDelete:
		return m.viewConfirmDelete()
	}
	return m.viewList()
}

func (m *ManageModel) viewForm() string {
	var s strings.Builder
	if m.mode == manageModeNew {
		s.WriteString(titleStyle.Render("New Listing") + "\n\n")
	} else {
		s.WriteString(titleStyle.Render("Edit Listing") + "\n\n")
	}
	s.WriteString(formView(kostLabels, m.fields, m.fieldFocus))
	if m.fieldFocus == kostFacilities || m.fieldFocus == kostCampuses || m.fieldFocus == kostImages {
		s.WriteString(subtitleStyle.Render("  Separate multiple values with commas") + "\n\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}
	s.WriteString(helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel"))
	return s.String()
}

func (m *ManageModel) viewConfirmDelete() string {
	k := m.pending
	if k == nil {
		return ""
	}
	var s strings.Builder
	s.WriteString(titleStyle.Render("Delete Listing") + "\n\n")
	s.WriteString(boxStyle.Render(fmt.Sprintf("%s\n%s  %s", k.Name, k.Area, formatPrice(k.PricePerMonth))) + "\n\n")
	s.WriteString(warningStyle.Render("  The listing can be brought back from the activity history.") + "\n\n")
	s.WriteString(helpStyle.Render("  y: delete  any other key: cancel"))
	return s.String()
}

func (m *ManageModel) viewList() string {
	if m.loading {
		return "Loading listings..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("All listings (%d)", m.page.TotalItems)) + "\n\n")

	if m.statusMsg != "" {
		s.WriteString(statusStyle.Render("  "+m.statusMsg) + "\n\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}

	if len(m.page.Items) == 0 {
		s.WriteString(subtitleStyle.Render("  No listings yet. Press 'n' to add one.") + "\n")
		return s.String()
	}

	for i, k := range m.page.Items {
		s.WriteString(renderKostRow(k, i == m.cursor) + "\n")
	}
	if pager := pagerView(m.page.Number, m.page.TotalPages); pager != "" {
		s.WriteString("\n  " + pager + "\n")
	}

	s.WriteString("\n" + helpStyle.Render("  j/k: navigate  h/l: page  n: new  enter/e: edit  a: archive/unarchive  d: delete"))
	return s.String()
}
