// Package admin is the console's state layer: the auth gate, the login flow,
// and the resource hooks and mutations each screen is built on.
//
// Every operation that touches the network returns a tea.Cmd; its result
// comes back as a message that the owning value commits in Update. Results
// are dropped when the owner has been closed or a newer request superseded
// them.
package admin

import (
	"go.uber.org/zap"

	"github.com/naveenspark/salonadmin/internal/session"
	"github.com/naveenspark/salonadmin/pkg/client"
)

// Env carries the collaborators every hook and flow needs.
type Env struct {
	Client  *client.Client
	Session session.Store
	Log     *zap.Logger
}

func (e Env) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// Logout erases the stored session. Screens notice on their next gate check.
func Logout(env Env) error {
	if err := env.Session.Clear(); err != nil {
		env.logger().Warn("logout: clear session", zap.Error(err))
		return err
	}
	return nil
}
