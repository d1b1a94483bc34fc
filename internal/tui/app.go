package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/internal/admin"
	"github.com/naveenspark/salonadmin/internal/session"
)

type view int

const (
	viewLogin view = iota
	viewDashboard
	viewSalons
	viewDetail
	viewCreate
	viewDenied
)

// chrome is the number of lines around the body: header(2) + tabs(1) + help(1).
const chrome = 4

// App is the root Bubbletea model. It owns navigation: every route change
// goes through the auth gate, closes the screen being left and starts the
// one being entered.
type App struct {
	env     admin.Env
	gate    admin.Gate
	version string

	route admin.Route
	view  view

	login     loginModel
	dashboard dashboardModel
	salons    salonsModel
	detail    detailModel
	create    createModel

	// flash is a notice carried from the screen being left; the next
	// navigation clears it.
	flash string
	alert string

	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(env admin.Env, version string) App {
	if env.Log == nil {
		env.Log = zap.NewNop()
	}
	return App{
		env:     env,
		gate:    admin.NewGate(env.Session),
		version: version,
		view:    viewLogin,
		login:   newLoginModel(env, ""),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), navigateCmd(admin.RouteDashboard))
}

func navigateCmd(to admin.Route) tea.Cmd {
	return func() tea.Msg { return admin.Navigate{To: to} }
}

// navigate closes the current screen, consults the gate and opens the
// screen for the resulting route.
func (a App) navigate(to admin.Route) (App, tea.Cmd) {
	a.flash, a.alert = "", ""
	if a.view == viewCreate {
		a.flash = a.create.form.Notice
	}
	a = a.closeCurrent()

	d := a.gate.Check(to)
	a.env.Log.Debug("navigate", zap.String("to", string(to)), zap.Stringer("verdict", d.Verdict))
	switch d.Verdict {
	case admin.Redirect:
		a.route = admin.RouteLogin
		a.view = viewLogin
		a.login = newLoginModel(a.env, d.From)
		a.login, _ = a.login.Update(a.bodySize())
		return a, nil
	case admin.Deny:
		a.route = to
		a.view = viewDenied
		return a, nil
	}

	a.route = to
	var cmd tea.Cmd
	switch {
	case to == admin.RouteLogin:
		a.view = viewLogin
		a.login = newLoginModel(a.env, "")
		a.login, _ = a.login.Update(a.bodySize())
	case to == admin.RouteSalons:
		a.view = viewSalons
		a.salons = newSalonsModel(a.env)
		a.salons, _ = a.salons.Update(a.bodySize())
		a.salons, cmd = a.salons.start()
	case to == admin.RouteNewSalon:
		a.view = viewCreate
		a.create = newCreateModel(a.env)
		a.create, _ = a.create.Update(a.bodySize())
	default:
		if id, ok := to.SalonID(); ok {
			a.view = viewDetail
			a.detail = newDetailModel(a.env, id)
			a.detail, _ = a.detail.Update(a.bodySize())
			a.detail, cmd = a.detail.start()
			break
		}
		a.route = admin.RouteDashboard
		a.view = viewDashboard
		a.dashboard = newDashboardModel(a.env)
		a.dashboard, _ = a.dashboard.Update(a.bodySize())
		a.dashboard, cmd = a.dashboard.start()
	}
	return a, cmd
}

func (a App) closeCurrent() App {
	switch a.view {
	case viewLogin:
		a.login = a.login.close()
	case viewDashboard:
		a.dashboard = a.dashboard.close()
	case viewSalons:
		a.salons = a.salons.close()
	case viewDetail:
		a.detail = a.detail.close()
	case viewCreate:
		a.create = a.create.close()
	}
	return a
}

func (a App) bodySize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: a.height - chrome}
}

func (a App) logout() (App, tea.Cmd) {
	if err := admin.Logout(a.env); err != nil {
		a.alert = "Logout failed: " + err.Error()
		return a, nil
	}
	return a.navigate(admin.RouteDashboard)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		body := a.bodySize()
		a.login, _ = a.login.Update(body)
		a.dashboard, _ = a.dashboard.Update(body)
		a.salons, _ = a.salons.Update(body)
		a.detail, _ = a.detail.Update(body)
		a.create, _ = a.create.Update(body)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case admin.Navigate:
		return a.navigate(msg.To)

	case admin.LoggedIn:
		to := a.login.from
		if to == "" || !to.Protected() {
			to = admin.RouteDashboard
		}
		return a.navigate(to)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.isEditing() {
			if msg.String() == "esc" && a.view == viewCreate {
				return a.navigate(admin.RouteSalons)
			}
			break
		}
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "1":
			return a.navigate(admin.RouteDashboard)
		case "2":
			return a.navigate(admin.RouteSalons)
		case "n":
			return a.navigate(admin.RouteNewSalon)
		case "L":
			return a.logout()
		case "esc":
			switch a.view {
			case viewDetail:
				return a.navigate(admin.RouteSalons)
			case viewSalons:
				return a.navigate(admin.RouteDashboard)
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewSalons:
		a.salons, cmd = a.salons.Update(msg)
	case viewDetail:
		a.detail, cmd = a.detail.Update(msg)
	case viewCreate:
		a.create, cmd = a.create.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether the active screen captures plain keys.
func (a App) isEditing() bool {
	switch a.view {
	case viewLogin, viewCreate:
		return true
	case viewSalons:
		return a.salons.confirming()
	case viewDetail:
		return a.detail.editing()
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	logoPad := max((a.width-lipgloss.Width(logo))/2, 0)
	header := strings.Repeat(" ", logoPad) + logo + "\n" + a.sessionLine()

	var tabs string
	if a.view != viewLogin {
		tabs = a.tabBar()
	}

	var body, help string
	switch a.view {
	case viewLogin:
		body, help = a.login.View(), a.login.helpKeys()
	case viewDashboard:
		body, help = a.dashboard.View(), a.dashboard.helpKeys()
	case viewSalons:
		body, help = a.salons.View(), a.salons.helpKeys()
	case viewDetail:
		body, help = a.detail.View(), a.detail.helpKeys()
	case viewCreate:
		body, help = a.create.View(), a.create.helpKeys()
	case viewDenied:
		body = deniedView()
		help = helpBar("L", "logout", "q", "quit")
	}
	if a.flash != "" {
		body = " " + successStyle.Render(a.flash) + "\n" + body
	}
	if a.alert != "" {
		body = " " + errorStyle.Render(a.alert) + "\n" + body
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabs, body, help)
}

// sessionLine shows who is signed in, read from the token's claims.
func (a App) sessionLine() string {
	sess := a.env.Session.Get()
	if !sess.IsAuthed() {
		return " " + metaStyle.Render("not signed in")
	}
	parts := []string{sess.Role}
	if claims, err := session.InspectToken(sess.Token); err == nil && claims.Email != "" {
		parts = append(parts, claims.Email)
	}
	if a.version != "" {
		parts = append(parts, a.version)
	}
	return " " + metaStyle.Render(strings.Join(parts, " · "))
}

func (a App) tabBar() string {
	type tabEntry struct {
		key  string
		name string
		v    []view
	}
	tabs := []tabEntry{
		{"1", "Dashboard", []view{viewDashboard}},
		{"2", "Salons", []view{viewSalons, viewDetail, viewCreate}},
	}
	var b strings.Builder
	for _, t := range tabs {
		active := false
		for _, v := range t.v {
			if v == a.view {
				active = true
			}
		}
		if active {
			b.WriteString(" " + accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name) + "  ")
		} else {
			b.WriteString(" " + metaStyle.Render(t.key) + " " + dimStyle.Render(t.name) + "  ")
		}
	}
	return b.String()
}

func deniedView() string {
	return "\n " + errorStyle.Render("Access denied") + "\n\n " +
		dimStyle.Render("This console is for super admins only. Sign in with a super admin account.")
}
