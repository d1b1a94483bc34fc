package admin

import (
	"github.com/naveenspark/salonadmin/internal/session"
	"github.com/naveenspark/salonadmin/pkg/domain"
)

// Verdict is the gate's answer for one navigation.
type Verdict int

const (
	// Allow renders the protected screen unchanged.
	Allow Verdict = iota
	// Redirect sends the visitor to the login screen.
	Redirect
	// Deny renders the static access-denied view.
	Deny
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Deny:
		return "deny"
	}
	return "unknown"
}

// Decision is a gate verdict plus where to go. From is the originally
// requested location, kept for a later return-to-after-login.
type Decision struct {
	Verdict Verdict
	To      Route
	From    Route
}

// Gate guards protected routes. It holds no state of its own: every Check
// reads the session fresh, so a logout is seen on the next navigation.
type Gate struct {
	store session.Store
	role  string
}

// NewGate returns a gate that admits only the superadmin role.
func NewGate(store session.Store) Gate {
	return Gate{store: store, role: domain.RoleSuperAdmin}
}

// Check decides what to render for target.
func (g Gate) Check(target Route) Decision {
	if !target.Protected() {
		return Decision{Verdict: Allow, To: target}
	}
	sess := g.store.Get()
	if !sess.IsAuthed() {
		return Decision{Verdict: Redirect, To: RouteLogin, From: target}
	}
	if sess.Role != g.role {
		return Decision{Verdict: Deny, To: target}
	}
	return Decision{Verdict: Allow, To: target}
}
