package notify

import (
	"sync"
	"sync/atomic"
)

// TokenHolder publishes the session's push token once registration settles.
// The token never changes afterwards.
type TokenHolder struct {
	once  sync.Once
	token atomic.Pointer[string]
	done  chan struct{}
}

// NewTokenHolder creates an unresolved holder.
func NewTokenHolder() *TokenHolder {
	return &TokenHolder{done: make(chan struct{})}
}

// Resolve records the outcome of registration. Only the first call has effect.
func (h *TokenHolder) Resolve(token string, err error) {
	h.once.Do(func() {
		if err == nil && token != "" {
			h.token.Store(&token)
		}
		close(h.done)
	})
}

// Token returns the token if registration succeeded.
func (h *TokenHolder) Token() (string, bool) {
	p := h.token.Load()
	if p == nil {
		return "", false
	}
	return *p, true
}

// Done is closed once registration has succeeded or failed.
func (h *TokenHolder) Done() <-chan struct{} {
	return h.done
}
