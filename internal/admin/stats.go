package admin

import (
	"context"

	"github.com/naveenspark/salonadmin/pkg/domain"
)

// NewStats returns the dashboard stats hook. A failed fetch keeps the last
// snapshot.
func NewStats(env Env) Resource[domain.Stats] {
	return newResource(env, resourceOpts[domain.Stats]{
		name:     "stats",
		fallback: "Failed to load dashboard stats",
		fetch: func(ctx context.Context) (domain.Stats, error) {
			return env.Client.GetStats(ctx)
		},
	})
}
