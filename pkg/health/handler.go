package health

import (
	"encoding/json"
	"net/http"
)

// LivenessHandler returns a handler that always reports the process
// as alive. It never touches external dependencies.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Response{Status: StatusOK})
	}
}

// ReadinessHandler returns a handler that runs the given checks in
// parallel and reports 503 when any of them fails. With no checks
// configured it behaves like the liveness handler.
func ReadinessHandler(checks Checks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks)

		status := http.StatusOK
		if resp.Status == StatusFail {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
