package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dewakost/dewakost/internal/app"
	"github.com/dewakost/dewakost/internal/config"
	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/listing"
	"go.uber.org/zap"
)

func testModel() Model {
	a := &app.App{Config: config.DefaultConfig(), Log: zap.NewNop()}
	return New(context.Background(), a)
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_AdminScreensNeedLogin(t *testing.T) {
	m := testModel()

	m = update(m, keyPress("2"))
	if m.currentScreen != ScreenLogin {
		t.Fatalf("expected login screen, got %s", m.currentScreen)
	}
	login := m.screens[ScreenLogin].(*LoginModel)
	if login.next != ScreenManage {
		t.Errorf("expected login to continue to Manage, got %s", login.next)
	}

	// global keys belong to the form while logging in
	m = update(m, keyPress("1"))
	if m.currentScreen != ScreenLogin {
		t.Errorf("expected keys to go to the login form, got %s", m.currentScreen)
	}
}

func TestModel_SessionChanges(t *testing.T) {
	m := testModel()
	acc := domain.DefaultAccount()

	m = update(m, sessionMsg{account: &acc, next: ScreenHistory})
	if m.currentScreen != ScreenHistory || m.account == nil {
		t.Fatalf("expected history screen after login, got %s", m.currentScreen)
	}
	if _, ok := m.screens[ScreenHistory].(*HistoryModel); !ok {
		t.Fatal("expected history screen to be initialized")
	}

	// a logout seen by the sync poll leaves admin screens
	m = update(m, syncMsg{versions: map[string]int64{}})
	if m.currentScreen != ScreenBrowse || m.account != nil {
		t.Errorf("expected browse after session ended, got %s", m.currentScreen)
	}
}

func TestModel_SyncDetectsChanges(t *testing.T) {
	m := testModel()
	acc := domain.DefaultAccount()

	m = update(m, syncMsg{versions: map[string]int64{"kostData": 1}, account: &acc})
	if m.versions["kostData"] != 1 {
		t.Fatal("expected first sync to record versions")
	}

	next, cmd := m.Update(syncMsg{versions: map[string]int64{"kostData": 1}, account: &acc})
	if cmd != nil {
		t.Error("unchanged store must not trigger a reload")
	}
	m = next.(Model)

	next, cmd = m.Update(syncMsg{versions: map[string]int64{"kostData": 2}, account: &acc})
	m = next.(Model)
	if cmd == nil {
		t.Error("expected a reload when the store changed")
	}
	if m.versions["kostData"] != 2 {
		t.Error("expected versions to advance")
	}
}

func TestModel_View(t *testing.T) {
	m := testModel()
	if got := m.View(); got != "Loading..." {
		t.Errorf("expected loading before the first resize, got %q", got)
	}

	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	if !strings.Contains(view, "dewakost - Browse") {
		t.Errorf("expected header in view")
	}
	if !strings.Contains(view, "[L]ogin") {
		t.Errorf("expected login hint for visitors")
	}
}

func TestBrowse_ShowsPageAndDetail(t *testing.T) {
	m := testModel()
	browse := m.screens[ScreenBrowse].(*BrowseModel)

	kosts := make([]domain.Kost, 13)
	for i := range kosts {
		kosts[i] = domain.Kost{ID: domain.NewID(), Name: "Kost Melati", Area: "Lowokwaru", PricePerMonth: 700000, Gender: domain.GenderPutra}
	}
	kosts[12].Name = "Griya Anggrek"

	browse.pageNum = 2
	browse.Update(browseDataMsg{page: listing.Paginate(kosts, 2)})
	if browse.loading || browse.pageNum != 2 || len(browse.page.Items) != 1 {
		t.Fatalf("unexpected state: page %d, %d items", browse.pageNum, len(browse.page.Items))
	}
	if view := browse.View(); !strings.Contains(view, "Griya Anggrek") || !strings.Contains(view, "Rp 700.000") {
		t.Errorf("expected listing row in view:\n%s", view)
	}

	browse.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if browse.mode != browseModeDetail {
		t.Fatal("expected detail view on enter")
	}
	browse.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if browse.mode != browseModeList {
		t.Error("expected esc to return to the list")
	}
}

func TestBrowse_ResetNotice(t *testing.T) {
	m := testModel()
	browse := m.screens[ScreenBrowse].(*BrowseModel)

	browse.pageNum = 3
	browse.Update(browseDataMsg{page: listing.Paginate([]domain.Kost{{Name: "Kost Melati"}}, 3)})
	if browse.pageNum != 1 {
		t.Errorf("expected page reset to 1, got %d", browse.pageNum)
	}
	if !strings.Contains(browse.notice, "Page 3") {
		t.Errorf("expected reset notice, got %q", browse.notice)
	}
}

func TestBrowse_FilterForm(t *testing.T) {
	m := testModel()
	browse := m.screens[ScreenBrowse].(*BrowseModel)
	browse.loading = false
	browse.pageNum = 2

	browse.Update(keyPress("f"))
	if !browse.IsCapturingInput() {
		t.Fatal("expected filter form to capture input")
	}

	browse.fields[filterArea].SetValue("dinoyo")
	browse.fields[filterMaxPrice].SetValue("1.000.000")
	browse.fields[filterGender].SetValue("putri")
	browse.fields[filterFacilities].SetValue("WiFi, AC")

	browse.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if browse.IsCapturingInput() {
		t.Fatal("expected form to close after applying")
	}
	if browse.filter.Area != "dinoyo" || browse.filter.MaxPrice != 1000000 || browse.filter.Gender != domain.GenderPutri {
		t.Errorf("unexpected filter: %+v", browse.filter)
	}
	if len(browse.filter.Facilities) != 2 {
		t.Errorf("expected two facilities, got %v", browse.filter.Facilities)
	}
	if browse.pageNum != 1 {
		t.Errorf("a new filter starts on page 1, got %d", browse.pageNum)
	}
}

func TestBrowse_FilterFormRejectsBadGender(t *testing.T) {
	m := testModel()
	browse := m.screens[ScreenBrowse].(*BrowseModel)
	browse.loading = false

	browse.Update(keyPress("f"))
	browse.fields[filterGender].SetValue("unknown")
	browse.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if !browse.IsCapturingInput() || browse.err == nil {
		t.Error("expected the form to stay open with an error")
	}
}
