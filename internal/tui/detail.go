package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/salonadmin/internal/admin"
	"github.com/naveenspark/salonadmin/internal/browser"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

type detailField int

const (
	detailName detailField = iota
	detailCity
	detailAddress
	detailPhone
	detailWhatsApp
	detailBrand
	detailPlan
	detailStatus
	numDetailFields
)

var detailLabels = [numDetailFields]string{"Name", "City", "Address", "Phone", "WhatsApp", "Brand Color", "Plan", "Status"}

// copyResultMsg reports a clipboard write.
type copyResultMsg struct {
	what string
	err  error
}

// openResultMsg reports a WhatsApp handoff.
type openResultMsg struct {
	err error
}

type detailModel struct {
	d      admin.SalonDetail
	focus  detailField
	status string
	width  int
	height int
}

func newDetailModel(env admin.Env, id string) detailModel {
	return detailModel{d: admin.NewSalonDetail(env, id)}
}

// start issues the initial fetch.
func (m detailModel) start() (detailModel, tea.Cmd) {
	var cmd tea.Cmd
	m.d, cmd = m.d.Fetch()
	return m, cmd
}

func (m detailModel) editing() bool {
	return m.d.Editing
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.d.Editing {
			return m.updateEdit(msg)
		}
		return m.updateKeys(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case copyResultMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied " + msg.what
		}
		return m, nil
	case openResultMsg:
		if msg.err != nil {
			m.status = "could not open WhatsApp: " + msg.err.Error()
		} else {
			m.status = "opened WhatsApp"
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.d, cmd = m.d.Update(msg)
	return m, cmd
}

func (m detailModel) updateKeys(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	m.status = ""
	salon := m.d.Salon()
	switch msg.String() {
	case "r":
		return m.start()
	case "e":
		m.d = m.d.StartEdit()
		m.focus = detailName
	case "c":
		if salon != nil {
			id := salon.ID
			return m, func() tea.Msg {
				return copyResultMsg{what: "salon id", err: clipboard.WriteAll(id)}
			}
		}
	case "o":
		if owner := m.d.Owner(); owner != nil && owner.Email != "" {
			email := owner.Email
			return m, func() tea.Msg {
				return copyResultMsg{what: "owner email", err: clipboard.WriteAll(email)}
			}
		}
	case "w":
		if salon != nil {
			number := salon.Contact()
			return m, func() tea.Msg {
				return openResultMsg{err: browser.OpenWhatsApp(number)}
			}
		}
	}
	return m, nil
}

func (m detailModel) updateEdit(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		m.d = m.d.CancelEdit()
		return m, nil
	case "ctrl+s":
		var cmd tea.Cmd
		m.d, cmd = m.d.Save()
		return m, cmd
	case "tab", "down", "enter":
		m.focus = (m.focus + 1) % numDetailFields
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numDetailFields) % numDetailFields
		return m, nil
	}
	if m.d.Saving {
		return m, nil
	}

	draft := &m.d.Draft
	switch m.focus {
	case detailPlan:
		if isToggleKey(key) {
			draft.PlanType = nextPlan(draft.PlanType, key == "h" || key == "left")
		}
	case detailStatus:
		if isToggleKey(key) {
			draft.IsActive = !draft.IsActive
		}
	default:
		f := m.textField(m.focus)
		*f = editRune(*f, key)
	}
	return m, nil
}

func (m *detailModel) textField(f detailField) *string {
	d := &m.d.Draft
	switch f {
	case detailCity:
		return &d.City
	case detailAddress:
		return &d.Address
	case detailPhone:
		return &d.Phone
	case detailWhatsApp:
		return &d.WhatsApp
	case detailBrand:
		return &d.BrandColor
	}
	return &d.Name
}

func isToggleKey(key string) bool {
	switch key {
	case "h", "l", "left", "right", " ":
		return true
	}
	return false
}

// nextPlan cycles through the known plans. An unknown plan moves to the first.
func nextPlan(p domain.PlanType, back bool) domain.PlanType {
	idx := -1
	for i, v := range domain.Plans {
		if v == p {
			idx = i
		}
	}
	if idx < 0 {
		return domain.Plans[0]
	}
	if back {
		return domain.Plans[(idx-1+len(domain.Plans))%len(domain.Plans)]
	}
	return domain.Plans[(idx+1)%len(domain.Plans)]
}

func (m detailModel) close() detailModel {
	m.d = m.d.Close()
	return m
}

func (m detailModel) View() string {
	var b strings.Builder
	salon := m.d.Salon()

	title := "Loading..."
	if salon != nil {
		title = salon.Name + " " + statusBadge(salon.IsActive) + " " + planBadge(salon.PlanType)
	}
	b.WriteString("\n " + titleStyle.Render(title) + "\n")
	b.WriteString(" " + dimStyle.Render("Salon details and owner access.") + "\n\n")

	switch {
	case m.d.Loading():
		b.WriteString(" " + dimStyle.Render("Loading salon…") + "\n")
	case m.d.Err() != "":
		b.WriteString(" " + errorStyle.Render(m.d.Err()) + "\n")
	case salon == nil:
		b.WriteString(" " + metaStyle.Render("Salon not found.") + "\n")
	}
	if m.d.SaveErr != "" {
		b.WriteString(" " + errorStyle.Render(m.d.SaveErr) + "\n")
	}
	if m.status != "" {
		b.WriteString(" " + successStyle.Render(m.status) + "\n")
	}

	if m.d.Editing {
		b.WriteString(m.editView())
		return b.String()
	}
	if salon == nil {
		return b.String()
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("Salon Info") + "  " + brandSwatch(salon.BrandColor) + "\n")
	rows := [][2]string{
		{"Name", salon.Name},
		{"City", orDash(salon.City)},
		{"Address", orDash(salon.Address)},
		{"Phone", orDash(salon.Phone)},
		{"WhatsApp", orDash(salon.WhatsApp)},
		{"Plan", salon.PlanType.Label()},
		{"Status", activeLabel(salon.IsActive, "Active", "Disabled")},
	}
	writeRows(&b, rows)

	b.WriteString("\n " + sectionHeaderStyle.Render("Owner / Access") + "\n")
	if owner := m.d.Owner(); owner != nil {
		writeRows(&b, [][2]string{
			{"Owner Email", orDash(owner.Email)},
			{"Role", orDash(owner.Role)},
			{"Active", activeLabel(owner.IsActive, "Yes", "No")},
			{"Created", formatStamp(owner.CreatedAt.Time)},
		})
	} else {
		b.WriteString("   " + metaStyle.Render("No owner user found.") + "\n")
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("Meta / Audit") + "\n")
	writeRows(&b, [][2]string{
		{"Salon ID", salon.ID},
		{"Created at", formatStamp(salon.CreatedAt.Time)},
		{"Updated at", formatStamp(salon.UpdatedAt.Time) + " (" + formatTime(salon.UpdatedAt.Time) + ")"},
	})
	return b.String()
}

func (m detailModel) editView() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("Edit Salon") + "  " + metaStyle.Render("Update public info / plan / status") + "\n")

	d := m.d.Draft
	values := [numDetailFields]string{
		d.Name, d.City, d.Address, d.Phone, d.WhatsApp, d.BrandColor,
		"‹ " + d.PlanType.Label() + " ›",
		"‹ " + activeLabel(d.IsActive, "Active", "Disabled") + " ›",
	}
	for i := detailField(0); i < numDetailFields; i++ {
		f := formField{label: detailLabels[i], value: values[i]}
		b.WriteString(renderField(f, i == m.focus, 12) + "\n")
	}
	if m.d.Saving {
		b.WriteString("\n " + dimStyle.Render("Saving...") + "\n")
	}
	return b.String()
}

func writeRows(b *strings.Builder, rows [][2]string) {
	for _, r := range rows {
		fmt.Fprintf(b, "   %s %s\n", metaStyle.Render(padRight(r[0], 12)), normalStyle.Render(r[1]))
	}
}

func activeLabel(active bool, yes, no string) string {
	if active {
		return yes
	}
	return no
}

func (m detailModel) helpKeys() string {
	if m.d.Editing {
		return helpBar("tab", "next", "h/l", "toggle", "ctrl+s", "save", "esc", "cancel")
	}
	return helpBar("e", "edit", "c", "copy id", "o", "copy owner", "w", "whatsapp", "r", "refresh", "esc", "back")
}
