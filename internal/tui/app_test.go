package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/internal/admin"
	"github.com/naveenspark/salonadmin/internal/apitest"
	"github.com/naveenspark/salonadmin/internal/session"
	"github.com/naveenspark/salonadmin/pkg/client"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

// newTestEnv returns an Env against a fresh fake API. A non-empty role
// stores a session with that role.
func newTestEnv(t *testing.T, role string) (admin.Env, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	store := session.NewMemory()
	if role != "" {
		if err := store.Set(srv.IssueToken(), role); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	return admin.Env{Client: client.New(srv.URL, store), Session: store, Log: zap.NewNop()}, srv
}

func newTestApp(t *testing.T, role string) (App, *apitest.Server) {
	t.Helper()
	env, srv := newTestEnv(t, role)
	a := NewApp(env, "v0.0.0-test")
	a.width = 100
	a.height = 40
	return a, srv
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// drive feeds msg to the app and then runs every command it produces, the way
// the Bubble Tea runtime would, until the app settles.
func drive(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 50 {
			t.Fatal("app did not settle")
		}
		m := queue[0]
		queue = queue[1:]
		model, cmd := a.Update(m)
		a = model.(App)
		queue = append(queue, runCmd(cmd)...)
	}
	return a
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg, shimmerTickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		a = drive(t, a, keyMsg(k))
	}
	return a
}

func typeText(t *testing.T, a App, s string) App {
	t.Helper()
	for _, r := range s {
		a = press(t, a, string(r))
	}
	return a
}

func seedTUISalons(srv *apitest.Server) {
	srv.AddSalon(domain.Salon{ID: "1", Name: "Glow", City: "Riyadh", IsActive: true, PlanType: domain.PlanBasic, WhatsApp: "+966 50 111"},
		&domain.Owner{Email: "owner@glow.sa", Role: "owner", IsActive: true})
	srv.AddSalon(domain.Salon{ID: "2", Name: "Luxe", City: "Jeddah", PlanType: domain.PlanPremium, BrandColor: "#112233"}, nil)
}

func TestAppAnonymousLandsOnLogin(t *testing.T) {
	a, srv := newTestApp(t, "")
	a = drive(t, a, admin.Navigate{To: admin.RouteDashboard})

	if a.view != viewLogin {
		t.Fatalf("view = %d, want login", a.view)
	}
	if a.login.from != admin.RouteDashboard {
		t.Errorf("login.from = %q, want %q", a.login.from, admin.RouteDashboard)
	}
	if srv.TotalHits() != 0 {
		t.Errorf("gate should stop requests, got %d hits", srv.TotalHits())
	}
	if !strings.Contains(a.View(), "Super Admin Login") {
		t.Errorf("login screen not rendered: %q", a.View())
	}
}

func TestAppLoginThenDashboard(t *testing.T) {
	a, srv := newTestApp(t, "")
	srv.SetStats(domain.Stats{TotalSalons: 7, ActiveSalons: 5, MonthlyRevenueSAR: 12345.5})
	a = drive(t, a, admin.Navigate{To: admin.RouteDashboard})

	a = typeText(t, a, apitest.AdminEmail)
	a = press(t, a, "tab")
	a = typeText(t, a, apitest.AdminPassword)
	a = press(t, a, "enter")

	if a.view != viewDashboard {
		t.Fatalf("view = %d, want dashboard; body: %q", a.view, a.View())
	}
	if !a.env.Session.Get().IsAuthed() {
		t.Error("session not stored after login")
	}
	out := a.View()
	for _, want := range []string{"Total Salons", "7", "SAR 12,345.5", apitest.AdminEmail} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestAppLoginReturnsToRequestedRoute(t *testing.T) {
	a, srv := newTestApp(t, "")
	seedTUISalons(srv)
	a = drive(t, a, admin.Navigate{To: admin.RouteSalons})
	if a.view != viewLogin {
		t.Fatalf("view = %d, want login", a.view)
	}

	a = typeText(t, a, apitest.AdminEmail)
	a = press(t, a, "tab")
	a = typeText(t, a, apitest.AdminPassword)
	a = press(t, a, "ctrl+s")

	if a.view != viewSalons {
		t.Fatalf("view = %d, want salons", a.view)
	}
	if n := len(a.salons.list.Salons()); n != 2 {
		t.Errorf("salons = %d, want 2", n)
	}
}

func TestAppLoginFailureStaysOnLogin(t *testing.T) {
	a, _ := newTestApp(t, "")
	a = drive(t, a, admin.Navigate{To: admin.RouteDashboard})

	a = typeText(t, a, apitest.AdminEmail)
	a = press(t, a, "tab")
	a = typeText(t, a, "wrong")
	a = press(t, a, "enter")

	if a.view != viewLogin {
		t.Fatalf("view = %d, want login", a.view)
	}
	if !strings.Contains(a.View(), "bad credentials") {
		t.Errorf("server error not shown: %q", a.View())
	}
	if a.env.Session.Get().IsAuthed() {
		t.Error("failed login must not store a session")
	}
}

func TestAppDeniesNonSuperAdmin(t *testing.T) {
	a, srv := newTestApp(t, "owner")
	a = drive(t, a, admin.Navigate{To: admin.RouteSalons})

	if a.view != viewDenied {
		t.Fatalf("view = %d, want denied", a.view)
	}
	if !strings.Contains(a.View(), "Access denied") {
		t.Errorf("denied screen not rendered: %q", a.View())
	}
	if srv.TotalHits() != 0 {
		t.Errorf("denied route fetched data: %d hits", srv.TotalHits())
	}
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key      string
		wantView view
	}{
		{"1", viewDashboard},
		{"2", viewSalons},
		{"n", viewCreate},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			a, _ := newTestApp(t, domain.RoleSuperAdmin)
			a = drive(t, a, admin.Navigate{To: admin.RouteDashboard})
			a = press(t, a, tc.key)
			if a.view != tc.wantView {
				t.Errorf("after key %q: expected view=%d, got %d", tc.key, tc.wantView, a.view)
			}
		})
	}
}

func TestAppGlobalQuitOnQ(t *testing.T) {
	a, _ := newTestApp(t, domain.RoleSuperAdmin)
	a = drive(t, a, admin.Navigate{To: admin.RouteDashboard})
	_, cmd := a.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppQTypesIntoLoginForm(t *testing.T) {
	a, _ := newTestApp(t, "")
	a = drive(t, a, admin.Navigate{To: admin.RouteDashboard})
	model, cmd := a.Update(keyMsg("q"))
	a = model.(App)
	if cmd != nil {
		t.Error("q on the login form should not quit")
	}
	if a.login.flow.Email != "q" {
		t.Errorf("email = %q, want q", a.login.flow.Email)
	}
}

func TestAppLogoutRedirectsToLogin(t *testing.T) {
	a, _ := newTestApp(t, domain.RoleSuperAdmin)
	a = drive(t, a, admin.Navigate{To: admin.RouteSalons})
	a = press(t, a, "L")

	if a.view != viewLogin {
		t.Fatalf("view = %d, want login", a.view)
	}
	if a.env.Session.Get().IsAuthed() {
		t.Error("session survived logout")
	}
	if !strings.Contains(a.View(), "not signed in") {
		t.Errorf("header still shows a session: %q", a.View())
	}
}

func TestAppOpenSalonAndBack(t *testing.T) {
	a, srv := newTestApp(t, domain.RoleSuperAdmin)
	seedTUISalons(srv)
	a = drive(t, a, admin.Navigate{To: admin.RouteSalons})
	a = press(t, a, "j", "enter")

	if a.view != viewDetail {
		t.Fatalf("view = %d, want detail", a.view)
	}
	if a.route != admin.SalonRoute("2") {
		t.Errorf("route = %q", a.route)
	}
	if !strings.Contains(a.View(), "Luxe") || !strings.Contains(a.View(), "No owner user found.") {
		t.Errorf("detail not rendered: %q", a.View())
	}

	a = press(t, a, "esc")
	if a.view != viewSalons {
		t.Errorf("esc from detail: view = %d, want salons", a.view)
	}
}

func TestAppDeleteSalonWithConfirmation(t *testing.T) {
	a, srv := newTestApp(t, domain.RoleSuperAdmin)
	seedTUISalons(srv)
	a = drive(t, a, admin.Navigate{To: admin.RouteSalons})

	a = press(t, a, "d")
	if !a.salons.confirming() {
		t.Fatal("expected a confirmation prompt")
	}
	if !strings.Contains(a.View(), "Delete Glow?") {
		t.Errorf("prompt missing: %q", a.View())
	}
	// Global keys are captured while confirming.
	a = press(t, a, "2")
	if !a.salons.confirming() {
		t.Fatal("confirmation dismissed by an unrelated key")
	}

	a = press(t, a, "y")
	if got := len(a.salons.list.Salons()); got != 1 {
		t.Fatalf("salons after delete = %d, want 1", got)
	}
	if len(srv.Salons()) != 1 {
		t.Error("server still has the salon")
	}
	if srv.Hits("GET", "/api/superadmin/salons") != 1 {
		t.Error("delete should not refetch the list")
	}
}

func TestAppDeleteCancelled(t *testing.T) {
	a, srv := newTestApp(t, domain.RoleSuperAdmin)
	seedTUISalons(srv)
	a = drive(t, a, admin.Navigate{To: admin.RouteSalons})
	a = press(t, a, "d", "n")

	if a.salons.confirming() {
		t.Error("still confirming after n")
	}
	if len(srv.Salons()) != 2 {
		t.Error("cancelled delete reached the server")
	}
}

func TestAppCreateSalonNavigatesToDetail(t *testing.T) {
	a, srv := newTestApp(t, domain.RoleSuperAdmin)
	a = drive(t, a, admin.Navigate{To: admin.RouteNewSalon})

	a = typeText(t, a, "Glow Beauty")
	a = press(t, a, "tab")
	a = typeText(t, a, "Riyadh")
	// address, phone, whatsapp, plan
	a = press(t, a, "tab", "tab", "tab", "tab")
	a = press(t, a, "l")
	a = press(t, a, "tab")
	a = typeText(t, a, "owner@glow.sa")
	a = press(t, a, "tab")
	a = typeText(t, a, "pw")
	a = press(t, a, "ctrl+s")

	created := srv.Created()
	if len(created) != 1 {
		t.Fatalf("created = %d, want 1", len(created))
	}
	if created[0].Name != "Glow Beauty" || created[0].PlanType != "premium" || created[0].OwnerEmail != "owner@glow.sa" {
		t.Errorf("payload = %+v", created[0])
	}
	if a.view != viewDetail {
		t.Fatalf("view = %d, want detail", a.view)
	}
	if !strings.Contains(a.View(), admin.NoticeCreated) {
		t.Errorf("notice not carried to detail: %q", a.View())
	}

	a = press(t, a, "2")
	if strings.Contains(a.View(), admin.NoticeCreated) {
		t.Error("notice should clear on the next navigation")
	}
}

func TestAppCreateValidationBlocksRequest(t *testing.T) {
	a, srv := newTestApp(t, domain.RoleSuperAdmin)
	a = drive(t, a, admin.Navigate{To: admin.RouteNewSalon})
	a = press(t, a, "ctrl+s")

	if srv.Hits("POST", "/api/superadmin/salons") != 0 {
		t.Error("invalid form reached the server")
	}
	if !strings.Contains(a.View(), "Salon name is required.") {
		t.Errorf("field error not shown: %q", a.View())
	}
}

func TestAppEscFromCreateReturnsToSalons(t *testing.T) {
	a, _ := newTestApp(t, domain.RoleSuperAdmin)
	a = drive(t, a, admin.Navigate{To: admin.RouteNewSalon})
	a = typeText(t, a, "q1n")
	if a.view != viewCreate || a.create.form.Fields.Name != "q1n" {
		t.Fatalf("global keys leaked into create form: view=%d name=%q", a.view, a.create.form.Fields.Name)
	}
	a = press(t, a, "esc")
	if a.view != viewSalons {
		t.Errorf("view = %d, want salons", a.view)
	}
}

func TestAppEditSalon(t *testing.T) {
	a, srv := newTestApp(t, domain.RoleSuperAdmin)
	seedTUISalons(srv)
	a = drive(t, a, admin.Navigate{To: admin.SalonRoute("1")})

	a = press(t, a, "e")
	if !a.isEditing() {
		t.Fatal("expected edit mode")
	}
	a = press(t, a, "backspace", "backspace", "backspace", "backspace")
	a = typeText(t, a, "Shine")
	a = press(t, a, "ctrl+s")

	if a.detail.editing() {
		t.Error("still editing after save")
	}
	if got := srv.Salons()[0].Name; got != "Shine" {
		t.Errorf("server name = %q, want Shine", got)
	}
	if s := a.detail.d.Salon(); s == nil || s.Name != "Shine" {
		t.Errorf("detail not refetched: %+v", s)
	}
}

func TestAppClosedScreenIgnoresLateResults(t *testing.T) {
	a, srv := newTestApp(t, domain.RoleSuperAdmin)
	seedTUISalons(srv)

	model, cmd := a.Update(admin.Navigate{To: admin.RouteSalons})
	a = model.(App)
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}
	late := cmd()

	a = drive(t, a, admin.Navigate{To: admin.RouteDashboard})
	a = drive(t, a, late)

	if a.view != viewDashboard {
		t.Errorf("view = %d, want dashboard", a.view)
	}
	if len(a.salons.list.Salons()) != 0 {
		t.Error("closed salons screen committed a late result")
	}
}

func TestAppWindowSizeForwarded(t *testing.T) {
	a, _ := newTestApp(t, domain.RoleSuperAdmin)
	a = drive(t, a, tea.WindowSizeMsg{Width: 120, Height: 50})
	if a.width != 120 || a.salons.width != 120 || a.dashboard.height != 50-chrome {
		t.Errorf("size not forwarded: app=%d salons=%d dash=%d", a.width, a.salons.width, a.dashboard.height)
	}
}
