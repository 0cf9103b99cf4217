package httpx

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDMiddleware tags each request with an identifier so log lines and
// error envelopes can be correlated. A caller-supplied X-Request-Id wins;
// otherwise one is generated.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
	})
}
