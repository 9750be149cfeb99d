package api

import (
	"encoding/json"
	"net/http"
)

// apiKeyMiddleware rejects requests whose X-API-Key header does not
// carry the configured key. Everything under /api/v1 sits behind it;
// only the metrics endpoint stays open for scraping.
func apiKeyMiddleware(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch got := r.Header.Get("X-API-Key"); {
			case got == "":
				sendError(w, "API key required", http.StatusUnauthorized)
			case got != key:
				sendError(w, "API key not recognized", http.StatusUnauthorized)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// writeJSON emits the standard response envelope. Encoding failures
// after the status line are unrecoverable, so the error is discarded.
func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func sendSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, APIResponse{Success: false, Error: message})
}
