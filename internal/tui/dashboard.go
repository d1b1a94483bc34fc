package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/salonadmin/internal/admin"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

type dashboardModel struct {
	stats  admin.Resource[domain.Stats]
	width  int
	height int
}

func newDashboardModel(env admin.Env) dashboardModel {
	return dashboardModel{stats: admin.NewStats(env)}
}

// start issues the initial fetch.
func (m dashboardModel) start() (dashboardModel, tea.Cmd) {
	var cmd tea.Cmd
	m.stats, cmd = m.stats.Fetch()
	return m, cmd
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m.start()
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	m.stats, _ = m.stats.Update(msg)
	return m, nil
}

func (m dashboardModel) close() dashboardModel {
	m.stats = m.stats.Close()
	return m
}

type statCard struct {
	label string
	value string
	note  string
}

func (m dashboardModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Overview") + "\n")
	b.WriteString(" " + dimStyle.Render("Salons, bookings, revenue and issues across the platform.") + "\n\n")

	loading := m.stats.Loading()
	switch {
	case loading:
		b.WriteString(" " + dimStyle.Render("Loading stats…") + "\n\n")
	case m.stats.Err() != "":
		b.WriteString(" " + errorStyle.Render(m.stats.Err()) + "\n\n")
	}

	s := m.stats.Data()
	val := func(v string) string {
		if loading {
			return "…"
		}
		return v
	}
	note := func(v string) string {
		if loading {
			return ""
		}
		return v
	}
	cards := []statCard{
		{"Total Salons", val(fmt.Sprint(s.TotalSalons)), note(fmt.Sprintf("%d active / %d premium", s.ActiveSalons, s.PremiumSalons))},
		{"Active Bookings", val(fmt.Sprint(s.ActiveBookings)), note("live now")},
		{"Monthly Revenue", val(formatMoney(s.MonthlyRevenueSAR)), note("est.")},
		{"Open Complaints", val(fmt.Sprint(s.OpenComplaints)), note("needs follow-up")},
	}
	for _, c := range cards {
		fmt.Fprintf(&b, "  %s %s  %s\n",
			metaStyle.Render(padRight(c.label, 16)),
			selectedStyle.Render(padRight(c.value, 16)),
			dimStyle.Render(c.note))
	}
	return b.String()
}

func (m dashboardModel) helpKeys() string {
	return helpBar("1-2", "tabs", "n", "new salon", "r", "refresh", "L", "logout", "q", "quit")
}
