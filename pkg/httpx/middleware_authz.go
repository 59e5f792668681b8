package httpx

import "net/http"

// RequireRole rejects with 403 unless the verified token carries the required
// role. Single role per endpoint; run after AuthnMiddleware.
func RequireRole(required string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if roleFromContext(r.Context()) != required {
				WriteError(w, http.StatusForbidden, "Forbidden resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
