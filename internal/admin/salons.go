package admin

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/pkg/domain"
)

// SalonDeleted is the result of SalonList.Delete.
type SalonDeleted struct {
	owner   string
	ID      string
	version uint64
	err     error
}

// SalonList is the salon list hook plus its delete mutation. Delete errors
// surface through the same Err as load errors.
type SalonList struct {
	res Resource[[]domain.Salon]

	// DeletingID is the salon whose delete is in flight, or "".
	DeletingID string

	// version counts committed fetches. A delete only edits the local list
	// when no fetch committed while it was in flight.
	version uint64
}

// NewSalonList returns an empty, loading list.
func NewSalonList(env Env) SalonList {
	return SalonList{res: newResource(env, resourceOpts[[]domain.Salon]{
		name:     "salons",
		fallback: "Failed to load salons",
		fetch: func(ctx context.Context) ([]domain.Salon, error) {
			return env.Client.ListSalons(ctx)
		},
		reset: true,
		empty: []domain.Salon{},
	})}
}

func (l SalonList) Salons() []domain.Salon { return l.res.Data() }
func (l SalonList) Loading() bool { return l.res.Loading() }
func (l SalonList) Err() string { return l.res.Err() }

// Fetch reloads the list.
func (l SalonList) Fetch() (SalonList, tea.Cmd) {
	var cmd tea.Cmd
	l.res, cmd = l.res.Fetch()
	return l, cmd
}

// Delete removes a salon on the server. The caller confirms first.
func (l SalonList) Delete(id string) (SalonList, tea.Cmd) {
	if id == "" || l.res.Closed() {
		return l, nil
	}
	l.DeletingID = id
	l.res.err = ""

	env, ctx, owner, version := l.res.env, l.res.sc.ctx, l.res.sc.id, l.version
	return l, func() tea.Msg {
		err := env.Client.DeleteSalon(ctx, id)
		return SalonDeleted{owner: owner, ID: id, version: version, err: err}
	}
}

// Update commits fetch and delete results.
func (l SalonList) Update(msg tea.Msg) (SalonList, tea.Cmd) {
	switch msg := msg.(type) {
	case Loaded[[]domain.Salon]:
		var committed bool
		if l.res, committed = l.res.Update(msg); committed {
			l.version++
		}
	case SalonDeleted:
		if !l.res.sc.owns(msg.owner) {
			return l, nil
		}
		if l.DeletingID == msg.ID {
			l.DeletingID = ""
		}
		if msg.err != nil {
			se := newSaveError("delete salon", "Failed to delete salon", msg.err)
			l.res.err = se.Message
			l.res.env.logger().Warn("delete failed", zap.String("salon_id", msg.ID), zap.Error(se))
			return l, nil
		}
		if msg.version == l.version {
			l.res.data = without(l.res.data, msg.ID)
		}
	}
	return l, nil
}

// Close cancels in-flight requests.
func (l SalonList) Close() SalonList {
	l.res = l.res.Close()
	return l
}

func without(salons []domain.Salon, id string) []domain.Salon {
	out := make([]domain.Salon, 0, len(salons))
	for _, s := range salons {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
