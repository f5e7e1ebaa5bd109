package middleware

import (
	"net/http"
	"sync/atomic"
)

// ReadinessGate is an explicit two-state readiness machine: NotReady until
// MarkReady is called once, Ready forever after. The composition root flips
// it after the startup connectivity probe succeeds; there is no transition
// back. API routes behind Handler answer 503 while NotReady so a load
// balancer never routes traffic to a process that cannot reach its database.
type ReadinessGate struct {
	ready atomic.Bool
}

// NewReadinessGate returns a gate in the NotReady state.
func NewReadinessGate() *ReadinessGate {
	return &ReadinessGate{}
}

// MarkReady transitions the gate to Ready. Safe to call more than once.
func (g *ReadinessGate) MarkReady() {
	g.ready.Store(true)
}

// Ready reports the current state.
func (g *ReadinessGate) Ready() bool {
	return g.ready.Load()
}

// Handler rejects requests with 503 Service Unavailable while the gate is
// NotReady. Mount it on the API subtree only — health and metrics endpoints
// must stay reachable during startup.
func (g *ReadinessGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Ready() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"code":"not_ready","message":"server is starting up"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
