package control

import "github.com/foliolabs/folio/internal/domain/entity"

// Guard is the session identity captured at the moment an asynchronous
// operation is launched. Every resumption point checks it before touching
// session-scoped state; a stale guard silently discards the result. This
// is the sole mechanism preventing a superseded session's continuations
// from racing against the current one.
type Guard struct {
	c  *SessionController
	id entity.SessionID
}

// Valid reports whether the guarded session is still the current one.
func (g Guard) Valid() bool {
	g.c.mu.Lock()
	defer g.c.mu.Unlock()
	return g.validLocked()
}

func (g Guard) validLocked() bool {
	return g.c.current != nil && g.c.current.ID == g.id
}

// Run executes fn under the controller lock only when the guarded session
// is still current, and reports whether it ran. fn must not call back into
// the controller.
func (g Guard) Run(fn func()) bool {
	g.c.mu.Lock()
	defer g.c.mu.Unlock()
	if !g.validLocked() {
		return false
	}
	fn()
	return true
}
