package httpx

import (
	"encoding/json"
	"net/http"
)

// Error is the wire shape for every error this service returns.
type Error struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code. Content-Type
// and no-store cache headers are set for the caller.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a {statusCode, message} error payload.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Error{StatusCode: code, Message: message})
}

// NoCache prevents caching of sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
