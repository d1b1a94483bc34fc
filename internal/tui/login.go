package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/salonadmin/internal/admin"
)

type loginField int

const (
	loginEmail loginField = iota
	loginPassword
	numLoginFields
)

type loginModel struct {
	flow  admin.LoginFlow
	focus loginField
	// from is where the gate stopped the visitor.
	from   admin.Route
	width  int
	height int
}

func newLoginModel(env admin.Env, from admin.Route) loginModel {
	return loginModel{flow: admin.NewLoginFlow(env), from: from}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	var cmd tea.Cmd
	m.flow, cmd = m.flow.Update(msg)
	return m, cmd
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numLoginFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
	case "enter":
		if m.focus == loginEmail {
			m.focus = loginPassword
			return m, nil
		}
		return m.submit()
	case "ctrl+s":
		return m.submit()
	default:
		if m.flow.Submitting() {
			return m, nil
		}
		switch m.focus {
		case loginEmail:
			m.flow = m.flow.SetEmail(editRune(m.flow.Email, msg.String()))
		case loginPassword:
			m.flow = m.flow.SetPassword(editRune(m.flow.Password, msg.String()))
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	var cmd tea.Cmd
	m.flow, cmd = m.flow.Submit()
	if m.flow.FieldErrs["email"] != "" {
		m.focus = loginEmail
	} else if m.flow.FieldErrs["password"] != "" {
		m.focus = loginPassword
	}
	return m, cmd
}

func (m loginModel) close() loginModel {
	m.flow = m.flow.Close()
	return m
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Super Admin Login") + "\n")
	b.WriteString(" " + dimStyle.Render("Sign in to manage salons on the platform.") + "\n\n")

	fields := []formField{
		{label: "Email", value: m.flow.Email, hint: "admin@example.com", err: m.flow.FieldErrs["email"]},
		{label: "Password", value: m.flow.Password, secret: true, err: m.flow.FieldErrs["password"]},
	}
	for i, f := range fields {
		b.WriteString(renderField(f, loginField(i) == m.focus, 9) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.flow.Submitting():
		b.WriteString(" " + dimStyle.Render("Signing in..."))
	case m.flow.ServerErr != "":
		b.WriteString(" " + errorStyle.Render(m.flow.ServerErr))
	}
	return b.String()
}

func (m loginModel) helpKeys() string {
	return helpBar("tab", "next", "enter", "sign in", "ctrl+c", "quit")
}
