package handler

import "net/http"

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} whenever the process is running,
// regardless of readiness — liveness and readiness are separate questions.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetReady handles GET /readyz.
// It reports 200 once the startup probe has flipped the readiness gate and
// 503 before that, so orchestrators can hold traffic during startup.
func (s *Server) GetReady(w http.ResponseWriter, _ *http.Request) {
	if s.gate != nil && !s.gate.Ready() {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
