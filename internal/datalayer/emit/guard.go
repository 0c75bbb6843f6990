// Package emit writes the data layer bootstrap script into a page, at most
// once per request.
package emit

import (
	"context"
	"net/http"
	"sync/atomic"
)

// Guard is a one-shot latch scoped to a single request.
type Guard struct {
	done atomic.Bool
}

// Acquire reports true to the first caller only.
func (g *Guard) Acquire() bool {
	return g.done.CompareAndSwap(false, true)
}

// Emitted reports whether the guard has been acquired.
func (g *Guard) Emitted() bool {
	return g.done.Load()
}

type guardKey struct{}

// WithGuard returns a context carrying a fresh guard.
func WithGuard(ctx context.Context) context.Context {
	return context.WithValue(ctx, guardKey{}, &Guard{})
}

// FromContext returns the request guard, or nil when none was installed.
func FromContext(ctx context.Context) *Guard {
	g, _ := ctx.Value(guardKey{}).(*Guard)
	return g
}

// Middleware installs a fresh guard for every request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithGuard(r.Context())))
	})
}
