package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/salonadmin/internal/admin"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

type salonsModel struct {
	list   admin.SalonList
	cursor int
	// confirm is the salon awaiting a y/n delete confirmation.
	confirm *domain.Salon
	width   int
	height  int
}

func newSalonsModel(env admin.Env) salonsModel {
	return salonsModel{list: admin.NewSalonList(env)}
}

// start issues the initial fetch.
func (m salonsModel) start() (salonsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Fetch()
	return m, cmd
}

// confirming reports whether the screen owns the keyboard.
func (m salonsModel) confirming() bool {
	return m.confirm != nil
}

func (m salonsModel) selected() (domain.Salon, bool) {
	salons := m.list.Salons()
	if m.cursor < 0 || m.cursor >= len(salons) {
		return domain.Salon{}, false
	}
	return salons[m.cursor], true
}

func (m salonsModel) Update(msg tea.Msg) (salonsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	if n := len(m.list.Salons()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m, cmd
}

func (m salonsModel) updateKeys(msg tea.KeyMsg) (salonsModel, tea.Cmd) {
	if m.confirm != nil {
		switch msg.String() {
		case "y", "Y":
			id := m.confirm.ID
			m.confirm = nil
			var cmd tea.Cmd
			m.list, cmd = m.list.Delete(id)
			return m, cmd
		case "n", "N", "esc":
			m.confirm = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.list.Salons())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "r":
		return m.start()
	case "enter":
		if s, ok := m.selected(); ok {
			to := admin.SalonRoute(s.ID)
			return m, func() tea.Msg { return admin.Navigate{To: to} }
		}
	case "d":
		if s, ok := m.selected(); ok && s.ID != m.list.DeletingID {
			m.confirm = &s
		}
	}
	return m, nil
}

func (m salonsModel) close() salonsModel {
	m.list = m.list.Close()
	return m
}

func (m salonsModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("All Salons") + "\n")
	b.WriteString(" " + dimStyle.Render("Manage onboarded salons.") + "\n\n")

	salons := m.list.Salons()
	switch {
	case m.list.Loading():
		b.WriteString(" " + dimStyle.Render("Loading salons…") + "\n")
	case m.list.Err() != "":
		b.WriteString(" " + errorStyle.Render(m.list.Err()) + "\n")
	case len(salons) == 0:
		b.WriteString(" " + dimStyle.Render("No salons yet. Add your first one.") + "\n")
	}
	if len(salons) == 0 {
		return b.String()
	}

	header := fmt.Sprintf("   %s %s %s %s", padRight("NAME", 28), padRight("CITY", 14), padRight("PLAN", 10), "STATUS")
	b.WriteString(sectionHeaderStyle.Render(header) + "\n")

	for i, s := range salons {
		marker := "  "
		name := normalStyle.Render(padRight(s.Name, 28))
		if i == m.cursor {
			marker = accentStyle.Render("> ")
			name = selectedStyle.Render(padRight(s.Name, 28))
		}
		row := fmt.Sprintf(" %s%s %s %s %s",
			marker,
			name,
			dimStyle.Render(padRight(orDash(s.City), 14)),
			padCell(planBadge(s.PlanType), 10),
			statusBadge(s.IsActive))
		if s.ID == m.list.DeletingID {
			row += " " + dimStyle.Render("deleting…")
		}
		if i == m.cursor {
			row = selectedRowBg.Render(row)
		}
		b.WriteString(row + "\n")
		if contact := s.Contact(); contact != "" {
			b.WriteString("   " + metaStyle.Render(contact) + "\n")
		}
	}

	if m.confirm != nil {
		b.WriteString("\n " + errorStyle.Render(fmt.Sprintf("Delete %s? This cannot be undone.", m.confirm.Name)) +
			" " + helpEntry("y", "yes") + "  " + helpEntry("n", "no") + "\n")
	}
	return b.String()
}

func (m salonsModel) helpKeys() string {
	if m.confirm != nil {
		return helpBar("y", "delete", "n/esc", "cancel")
	}
	return helpBar("1-2", "tabs", "j/k", "nav", "enter", "open", "n", "new", "d", "delete", "r", "refresh", "q", "quit")
}
