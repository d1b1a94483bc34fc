package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/salonadmin/internal/admin"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

type createField int

const (
	fieldName createField = iota
	fieldCity
	fieldAddress
	fieldPhone
	fieldWhatsApp
	fieldPlan
	fieldOwnerEmail
	fieldOwnerPassword
	numFields
)

// createKeys are the request field names behind each form row.
var createKeys = [numFields]string{"name", "city", "address", "phone", "whatsapp", "plan_type", "ownerEmail", "ownerPassword"}

var createLabels = [numFields]string{"Salon name", "City", "Address", "Phone", "WhatsApp", "Plan", "Owner email", "Password"}

var createHints = [numFields]string{"Glow Beauty Center", "Riyadh", "King Fahd Rd", "+966 ...", "+966 ...", "", "owner@salon.sa", ""}

type createModel struct {
	form   admin.SalonForm
	focus  createField
	width  int
	height int
}

func newCreateModel(env admin.Env) createModel {
	return createModel{form: admin.NewSalonForm(env)}
}

func (m createModel) Update(msg tea.Msg) (createModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m createModel) updateKeys(msg tea.KeyMsg) (createModel, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+s":
		var cmd tea.Cmd
		m.form, cmd = m.form.Submit()
		return m, cmd
	case "tab", "down", "enter":
		m.focus = (m.focus + 1) % numFields
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numFields) % numFields
		return m, nil
	}
	if m.form.Submitting {
		return m, nil
	}

	if m.focus == fieldPlan {
		if isToggleKey(key) {
			next := nextPlan(m.form.Fields.PlanType, key == "h" || key == "left")
			m.form = m.form.Set("plan_type", string(next))
		}
		return m, nil
	}
	name := createKeys[m.focus]
	m.form = m.form.Set(name, editRune(m.value(m.focus), key))
	return m, nil
}

func (m createModel) value(f createField) string {
	r := m.form.Fields
	switch f {
	case fieldName:
		return r.Name
	case fieldCity:
		return r.City
	case fieldAddress:
		return r.Address
	case fieldPhone:
		return r.Phone
	case fieldWhatsApp:
		return r.WhatsApp
	case fieldPlan:
		return "‹ " + r.PlanType.Label() + " ›  " + planDescription(r.PlanType)
	case fieldOwnerEmail:
		return r.OwnerEmail
	case fieldOwnerPassword:
		return r.OwnerPassword
	}
	return ""
}

func planDescription(p domain.PlanType) string {
	if p == domain.PlanPremium {
		return "booking + store"
	}
	return "booking only"
}

func (m createModel) close() createModel {
	m.form = m.form.Close()
	return m
}

func (m createModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Add New Salon") + "\n")
	b.WriteString(" " + dimStyle.Render("Create a salon and its owner login in one step.") + "\n\n")

	for i := createField(0); i < numFields; i++ {
		if i == fieldOwnerEmail {
			b.WriteString("\n " + sectionHeaderStyle.Render("Owner Account") + "\n")
		}
		f := formField{
			label:  createLabels[i],
			value:  m.value(i),
			secret: i == fieldOwnerPassword,
			hint:   createHints[i],
			err:    m.form.FieldErrs[createKeys[i]],
		}
		b.WriteString(renderField(f, i == m.focus, 12) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.form.Submitting:
		b.WriteString(" " + dimStyle.Render("Creating..."))
	case m.form.Err != "":
		b.WriteString(" " + errorStyle.Render(m.form.Err))
	case m.form.Notice != "":
		b.WriteString(" " + successStyle.Render(m.form.Notice))
	case !m.form.CanSubmit():
		b.WriteString(" " + metaStyle.Render("Salon name, owner email and password are required."))
	}
	return b.String()
}

func (m createModel) helpKeys() string {
	return helpBar("tab", "next", "h/l", "plan", "ctrl+s", "create", "esc", "cancel")
}
