package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dewakost/dewakost/internal/app"
	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/listing"
)

type browseMode int

const (
	browseModeList browseMode = iota
	browseModeFilter
	browseModeDetail
)

// filter form field indices
const (
	filterArea = iota
	filterMaxPrice
	filterGender
	filterFacilities
	filterCampuses
	filterCount
)

// BrowseModel is the public listing: filters, pages and a detail view
type BrowseModel struct {
	ctx     context.Context
	app     *app.App
	filter  domain.FilterState
	page    listing.Page[domain.Kost]
	pageNum int
	cursor  int
	loading bool
	err     error
	notice  string
	width   int

	campuses   []string
	facilities []string

	mode       browseMode
	fields     []textinput.Model
	fieldFocus int
	pager      paginator.Model
}

type browseDataMsg struct {
	page       listing.Page[domain.Kost]
	campuses   []string
	facilities []string
	err        error
}

// NewBrowseModel creates the browse screen
func NewBrowseModel(ctx context.Context, a *app.App) tea.Model {
	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = activeStyle.Render("•")
	p.InactiveDot = subtitleStyle.Render("•")

	return &BrowseModel{
		ctx:     ctx,
		app:     a,
		filter:  a.DefaultFilter(),
		pageNum: 1,
		loading: true,
		pager:   p,
	}
}

// IsCapturingInput returns true when the filter form is open
func (m *BrowseModel) IsCapturingInput() bool {
	return m.mode == browseModeFilter
}

func (m *BrowseModel) Init() tea.Cmd {
	return m.load()
}

func (m *BrowseModel) load() tea.Cmd {
	filter := m.filter
	pageNum := m.pageNum
	return func() tea.Msg {
		page, err := m.app.KostService.List(m.ctx, filter, false, pageNum)
		if err != nil {
			return browseDataMsg{err: err}
		}
		campuses, err := m.app.LookupService.List(m.ctx, domain.LookupCampuses)
		if err != nil {
			return browseDataMsg{err: err}
		}
		facilities, err := m.app.LookupService.List(m.ctx, domain.LookupFacilities)
		return browseDataMsg{page: page, campuses: campuses, facilities: facilities, err: err}
	}
}

func (m *BrowseModel) initFilterForm() tea.Cmd {
	m.fields = make([]textinput.Model, filterCount)
	m.fields[filterArea] = newInput("e.g. Lowokwaru", 60, 30)
	m.fields[filterMaxPrice] = newInput("3.000.000 (empty for no limit)", 15, 20)
	m.fields[filterGender] = newInput("Semua, Putra, Putri or Campur", 10, 20)
	m.fields[filterFacilities] = newInput("WiFi, AC (all required)", 200, 50)
	m.fields[filterCampuses] = newInput("Universitas Brawijaya (any)", 200, 50)

	m.fields[filterArea].SetValue(m.filter.Area)
	if m.filter.MaxPrice > 0 {
		m.fields[filterMaxPrice].SetValue(fmt.Sprintf("%d", m.filter.MaxPrice))
	}
	m.fields[filterGender].SetValue(string(m.filter.Gender))
	m.fields[filterFacilities].SetValue(strings.Join(m.filter.Facilities, ", "))
	m.fields[filterCampuses].SetValue(strings.Join(m.filter.Campuses, ", "))

	m.fieldFocus = filterArea
	return m.fields[filterArea].Focus()
}

// applyFilterForm reads the form into a new filter state
func (m *BrowseModel) applyFilterForm() error {
	price, err := parsePrice(m.fields[filterMaxPrice].Value())
	if err != nil {
		return err
	}

	gender := domain.GenderAny
	if g := strings.TrimSpace(m.fields[filterGender].Value()); g != "" && !strings.EqualFold(g, string(domain.GenderAny)) {
		gender, err = domain.ParseGender(g)
		if err != nil {
			return err
		}
	}

	m.filter = domain.FilterState{
		Area:       strings.TrimSpace(m.fields[filterArea].Value()),
		MaxPrice:   price,
		Gender:     gender,
		Facilities: splitList(m.fields[filterFacilities].Value()),
		Campuses:   splitList(m.fields[filterCampuses].Value()),
	}
	return nil
}

func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		return m, nil
	}

	if m.mode == browseModeFilter {
		return m.updateFilter(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.load()

	case browseDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.page = msg.page
		m.campuses = msg.campuses
		m.facilities = msg.facilities
		m.notice = ""
		if msg.page.Reset && m.pageNum != 1 {
			m.notice = fmt.Sprintf("Page %d no longer exists, showing page 1", m.pageNum)
		}
		m.pageNum = msg.page.Number
		m.pager.TotalPages = max(msg.page.TotalPages, 1)
		m.pager.Page = msg.page.Number - 1
		if m.cursor >= len(m.page.Items) {
			m.cursor = max(0, len(m.page.Items)-1)
		}
		if m.mode == browseModeDetail && len(m.page.Items) == 0 {
			m.mode = browseModeList
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == browseModeDetail {
			if key.Matches(msg, DefaultKeyMap.Back) || key.Matches(msg, DefaultKeyMap.Select) {
				m.mode = browseModeList
			}
			return m, nil
		}
		if m.loading {
			return m, nil
		}

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
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.page.Items) > 0 {
				m.mode = browseModeDetail
			}
		case key.Matches(msg, DefaultKeyMap.Filter):
			m.mode = browseModeFilter
			return m, m.initFilterForm()
		case msg.String() == "c":
			m.filter = m.app.DefaultFilter()
			m.pageNum = 1
			m.cursor = 0
			return m, m.load()
		}
	}

	return m, nil
}

func (m *BrowseModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.mode = browseModeList
			m.err = nil
			return m, nil
		case "tab", "down":
			return m, cycleFocus(m.fields, &m.fieldFocus, 1)
		case "shift+tab", "up":
			return m, cycleFocus(m.fields, &m.fieldFocus, -1)
		case "enter", "ctrl+s":
			if msg.String() == "enter" && m.fieldFocus < filterCount-1 {
				return m, cycleFocus(m.fields, &m.fieldFocus, 1)
			}
			if err := m.applyFilterForm(); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.mode = browseModeList
			// a new filter always starts on the first page
			m.pageNum = 1
			m.cursor = 0
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *BrowseModel) View() string {
	switch m.mode {
	case browseModeFilter:
		return m.viewFilter()
	case browseModeDetail:
		if m.cursor < len(m.page.Items) {
			return m.viewDetail(m.page.Items[m.cursor])
		}
	}
	return m.viewList()
}

func (m *BrowseModel) viewFilter() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Filter listings") + "\n\n")
	s.WriteString(formView([]string{"Area:", "Max price / month:", "Gender:", "Facilities:", "Near campus:"}, m.fields, m.fieldFocus))

	switch m.fieldFocus {
	case filterFacilities:
		s.WriteString(subtitleStyle.Render("  Options: "+strings.Join(m.facilities, ", ")) + "\n\n")
	case filterCampuses:
		s.WriteString(subtitleStyle.Render("  Options: "+strings.Join(m.campuses, ", ")) + "\n\n")
	}

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}
	s.WriteString(helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: apply  enter: next/apply  esc: cancel"))
	return s.String()
}

// filterSummary describes the active filters in one line
func filterSummary(f domain.FilterState) string {
	var parts []string
	if f.Area != "" {
		parts = append(parts, "area: "+f.Area)
	}
	if f.MaxPrice > 0 {
		parts = append(parts, "up to "+formatPrice(f.MaxPrice))
	}
	if f.Gender != "" && f.Gender != domain.GenderAny {
		parts = append(parts, string(f.Gender))
	}
	if len(f.Facilities) > 0 {
		parts = append(parts, "with "+strings.Join(f.Facilities, " + "))
	}
	if len(f.Campuses) > 0 {
		parts = append(parts, "near "+strings.Join(f.Campuses, " / "))
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, "  |  ")
}

func (m *BrowseModel) viewList() string {
	if m.loading {
		return "Loading listings..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("Kost in Malang (%d)", m.page.TotalItems)) + "\n")
	s.WriteString(subtitleStyle.Render("  "+filterSummary(m.filter)) + "\n\n")

	if m.notice != "" {
		s.WriteString(warningStyle.Render("  "+m.notice) + "\n\n")
	}

	if len(m.page.Items) == 0 {
		s.WriteString(subtitleStyle.Render("  No listings match. Press 'f' to change the filters or 'c' to clear them.") + "\n")
		return s.String()
	}

	for i, k := range m.page.Items {
		s.WriteString(renderKostRow(k, i == m.cursor) + "\n")
	}

	if m.page.TotalPages > 1 {
		s.WriteString("\n  " + pagerView(m.page.Number, m.page.TotalPages) + "   " + m.pager.View() + "\n")
	}

	s.WriteString("\n" + helpStyle.Render("  j/k: navigate  h/l: page  enter: details  f: filter  c: clear filters"))
	return s.String()
}

// renderKostRow renders a listing as a two-line row
func renderKostRow(k domain.Kost, selected bool) string {
	indicator := "  "
	nameStyle := subtitleStyle.UnsetForeground()
	if selected {
		indicator = "> "
		nameStyle = selectedStyle
	}

	name := truncateStr(k.Name, 40)
	if k.IsArchived {
		name += archivedStyle.Render(" (archived)")
	}

	line1 := fmt.Sprintf("%s%s  %s", indicator, nameStyle.Render(name), priceStyle.Render(formatPrice(k.PricePerMonth)+"/bln"))
	line2 := subtitleStyle.Render(fmt.Sprintf("    %s  |  %s  |  ★ %.1f  |  %s",
		k.Area, k.Gender, k.Rating, truncateStr(strings.Join(k.Facilities, ", "), 40)))
	return line1 + "\n" + line2
}

func (m *BrowseModel) viewDetail(k domain.Kost) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(k.Name) + "\n")
	s.WriteString(priceStyle.Render(formatPrice(k.PricePerMonth)+" / month") + "\n\n")

	rows := [][2]string{
		{"Area", k.Area},
		{"Address", k.Address},
		{"Gender", string(k.Gender)},
		{"Rating", fmt.Sprintf("★ %.1f", k.Rating)},
		{"Facilities", strings.Join(k.Facilities, ", ")},
		{"Campuses", strings.Join(k.NearbyCampuses, ", ")},
		{"Contact", k.ContactLink},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(&s, "  %s %s\n", subtitleStyle.Render(fmt.Sprintf("%-11s", r[0]+":")), r[1])
	}
	for _, u := range k.ImageURLs {
		fmt.Fprintf(&s, "  %s %s\n", subtitleStyle.Render(fmt.Sprintf("%-11s", "Image:")), u)
	}

	if desc := renderMarkdown(k.Description, max(m.width-16, 40)); desc != "" {
		s.WriteString("\n" + desc + "\n")
	}

	s.WriteString("\n" + helpStyle.Render("  esc: back"))
	return s.String()
}
