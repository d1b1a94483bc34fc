package admin

import (
	"context"

	"github.com/google/uuid"
)

// scope ties in-flight requests to the lifetime of the value that issued
// them. Results carry the scope id; a closed scope cancels its requests and
// refuses late results.
type scope struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
}

func newScope() scope {
	ctx, cancel := context.WithCancel(context.Background())
	return scope{id: uuid.NewString(), ctx: ctx, cancel: cancel}
}

// owns reports whether a result addressed to id may be committed.
func (s scope) owns(id string) bool {
	return id == s.id && s.ctx.Err() == nil
}

func (s scope) close() {
	if s.cancel != nil {
		s.cancel()
	}
}
