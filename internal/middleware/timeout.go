package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout cancela o contexto da request depois de d. Handlers que respeitam
// o contexto (pgx, por exemplo) param junto. Com d <= 0 nenhum limite é
// aplicado.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
