package admin

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/pkg/client"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

// SalonSaved is the result of SalonDetail.Save.
type SalonSaved struct {
	owner string
	id    string
	err   error
}

// SalonDetail is the single-salon hook plus the edit form and its update
// mutation.
type SalonDetail struct {
	res Resource[client.SalonDetail]
	id  string

	Editing bool
	Draft   client.UpdateSalonRequest
	Saving  bool
	SaveErr string
}

// NewSalonDetail returns the hook for one salon. With an empty id it never
// fetches.
func NewSalonDetail(env Env, id string) SalonDetail {
	return SalonDetail{
		id: id,
		res: newResource(env, resourceOpts[client.SalonDetail]{
			name:     "salon",
			fallback: "Failed to load salon",
			fetch: func(ctx context.Context) (client.SalonDetail, error) {
				d, err := env.Client.GetSalon(ctx, id)
				if err != nil {
					return client.SalonDetail{}, err
				}
				return *d, nil
			},
		}),
	}
}

func (d SalonDetail) ID() string { return d.id }
func (d SalonDetail) Salon() *domain.Salon { return d.res.Data().Salon }
func (d SalonDetail) Owner() *domain.Owner { return d.res.Data().Owner }
func (d SalonDetail) Loading() bool { return d.res.Loading() }
func (d SalonDetail) Err() string { return d.res.Err() }

// Fetch reloads the salon. It is a no-op without an id.
func (d SalonDetail) Fetch() (SalonDetail, tea.Cmd) {
	if d.id == "" {
		return d, nil
	}
	var cmd tea.Cmd
	d.res, cmd = d.res.Fetch()
	return d, cmd
}

// DraftFrom seeds an edit form from a loaded salon.
func DraftFrom(s domain.Salon) client.UpdateSalonRequest {
	brand := s.BrandColor
	if brand == "" {
		brand = domain.DefaultBrandColor
	}
	plan := s.PlanType
	if plan == "" {
		plan = domain.PlanBasic
	}
	return client.UpdateSalonRequest{
		Name:       s.Name,
		City:       s.City,
		Address:    s.Address,
		Phone:      s.Phone,
		WhatsApp:   s.WhatsApp,
		BrandColor: brand,
		PlanType:   plan,
		IsActive:   s.IsActive,
	}
}

// StartEdit enters edit mode with the loaded salon as the draft.
func (d SalonDetail) StartEdit() SalonDetail {
	s := d.Salon()
	if s == nil {
		return d
	}
	d.Editing = true
	d.Draft = DraftFrom(*s)
	d.SaveErr = ""
	return d
}

// CancelEdit leaves edit mode and drops the draft.
func (d SalonDetail) CancelEdit() SalonDetail {
	d.Editing = false
	d.Draft = client.UpdateSalonRequest{}
	d.SaveErr = ""
	return d
}

// Save sends the draft. A second Save while one is in flight is ignored.
func (d SalonDetail) Save() (SalonDetail, tea.Cmd) {
	if !d.Editing || d.Saving || d.id == "" || d.res.Closed() {
		return d, nil
	}
	if strings.TrimSpace(d.Draft.Name) == "" {
		d.SaveErr = "Salon name is required"
		return d, nil
	}
	d.Saving = true
	d.SaveErr = ""

	env, ctx, owner, id, draft := d.res.env, d.res.sc.ctx, d.res.sc.id, d.id, d.Draft
	return d, func() tea.Msg {
		_, err := env.Client.UpdateSalon(ctx, id, draft)
		return SalonSaved{owner: owner, id: id, err: err}
	}
}

// Update commits fetch and save results. A successful save leaves edit mode
// and refetches the salon.
func (d SalonDetail) Update(msg tea.Msg) (SalonDetail, tea.Cmd) {
	switch msg := msg.(type) {
	case Loaded[client.SalonDetail]:
		d.res, _ = d.res.Update(msg)
	case SalonSaved:
		if !d.res.sc.owns(msg.owner) || msg.id != d.id {
			return d, nil
		}
		d.Saving = false
		if msg.err != nil {
			se := newSaveError("update salon", "Failed to update salon", msg.err)
			d.SaveErr = se.Message
			d.res.env.logger().Warn("update failed", zap.String("salon_id", d.id), zap.Error(se))
			return d, nil
		}
		d.Editing = false
		d.Draft = client.UpdateSalonRequest{}
		return d.Fetch()
	}
	return d, nil
}

// Close cancels in-flight requests.
func (d SalonDetail) Close() SalonDetail {
	d.res = d.res.Close()
	return d
}
