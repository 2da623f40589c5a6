package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxBodyBytes is plenty for the login, register and workout forms.
const DefaultMaxBodyBytes = 64 << 10

// LimitAndDrainRequest caps the request body at maxBytes, then drains and closes
// whatever the handler left unread so the connection can be reused.
func LimitAndDrainRequest(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && maxBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
