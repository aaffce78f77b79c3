package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// AuthGate is a middleware enforcing a static shared secret on the routes it
// wraps. The request's Authorization header must equal the configured secret.
// An empty secret disables the gate entirely.
func AuthGate(api huma.API, secret string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if secret == "" {
			next(ctx)

			return
		}

		header := ctx.Header("Authorization")
		if subtle.ConstantTimeCompare([]byte(header), []byte(secret)) != 1 {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or missing authorization")

			return
		}

		next(ctx)
	}
}
