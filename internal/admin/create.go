package admin

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/pkg/client"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

// NoticeCreated is shown after a salon is onboarded.
const NoticeCreated = "Salon created successfully"

// SalonCreated is the result of SalonForm.Submit.
type SalonCreated struct {
	owner string
	Salon *domain.Salon
	err   error
}

// SalonForm is the onboarding form: one salon and its owner account, created
// together by a single POST.
type SalonForm struct {
	env Env
	sc  scope

	Fields     client.CreateSalonRequest
	FieldErrs  map[string]string
	Submitting bool
	Err        string
	Notice     string
}

// NewSalonForm returns an empty form on the basic plan.
func NewSalonForm(env Env) SalonForm {
	return SalonForm{
		env:    env,
		sc:     newScope(),
		Fields: client.CreateSalonRequest{PlanType: domain.PlanBasic},
	}
}

// Validate checks the fields the server requires.
func (f SalonForm) Validate() *ValidationError {
	errs := map[string]string{}
	if strings.TrimSpace(f.Fields.Name) == "" {
		errs["name"] = "Salon name is required."
	}
	if strings.TrimSpace(f.Fields.OwnerEmail) == "" {
		errs["ownerEmail"] = "Owner email is required."
	}
	if f.Fields.OwnerPassword == "" {
		errs["ownerPassword"] = "Owner password is required."
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// CanSubmit reports whether Submit would issue a request.
func (f SalonForm) CanSubmit() bool {
	return !f.Submitting && f.Validate() == nil
}

// Set updates one field by its JSON name and clears that field's error.
func (f SalonForm) Set(field, value string) SalonForm {
	switch field {
	case "name":
		f.Fields.Name = value
	case "city":
		f.Fields.City = value
	case "address":
		f.Fields.Address = value
	case "phone":
		f.Fields.Phone = value
	case "whatsapp":
		f.Fields.WhatsApp = value
	case "plan_type":
		f.Fields.PlanType = domain.PlanType(value)
	case "ownerEmail":
		f.Fields.OwnerEmail = value
	case "ownerPassword":
		f.Fields.OwnerPassword = value
	default:
		return f
	}
	if _, ok := f.FieldErrs[field]; ok {
		errs := make(map[string]string, len(f.FieldErrs))
		for k, v := range f.FieldErrs {
			if k != field {
				errs[k] = v
			}
		}
		f.FieldErrs = errs
	}
	return f
}

// Submit posts the form. Invalid input and resubmission while a request is
// in flight issue nothing.
func (f SalonForm) Submit() (SalonForm, tea.Cmd) {
	if f.Submitting || f.sc.ctx.Err() != nil {
		return f, nil
	}
	if verr := f.Validate(); verr != nil {
		f.FieldErrs = verr.Fields
		return f, nil
	}
	f.FieldErrs = nil
	f.Err = ""
	f.Notice = ""
	f.Submitting = true

	env, ctx, owner, req := f.env, f.sc.ctx, f.sc.id, f.Fields
	return f, func() tea.Msg {
		created, err := env.Client.CreateSalon(ctx, req)
		msg := SalonCreated{owner: owner, err: err}
		if created != nil {
			msg.Salon = created.Salon
		}
		return msg
	}
}

// Update commits the create result. On success the form asks to navigate to
// the new salon, or to the list when the server returned no id. On failure
// the input is kept for correction.
func (f SalonForm) Update(msg tea.Msg) (SalonForm, tea.Cmd) {
	m, ok := msg.(SalonCreated)
	if !ok || !f.sc.owns(m.owner) {
		return f, nil
	}
	f.Submitting = false
	if m.err != nil {
		se := newSaveError("create salon", "Failed to create salon", m.err)
		f.Err = se.Message
		f.env.logger().Warn("create failed", zap.Error(se))
		return f, nil
	}

	f.Notice = NoticeCreated
	to := RouteSalons
	if m.Salon != nil && m.Salon.ID != "" {
		to = SalonRoute(m.Salon.ID)
	}
	return f, func() tea.Msg { return Navigate{To: to} }
}

// Close cancels an in-flight submit.
func (f SalonForm) Close() SalonForm {
	f.sc.close()
	return f
}
