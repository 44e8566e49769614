package middleware

import (
	"net/http"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/auth"
	"github.com/buildhq/sitetrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token carrying a
// well-formed actor. Refresh and other token types are refused here so
// downstream handlers only ever see access-token claims.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil || claims["type"] != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if _, err := auth.ActorFromContext(r.Context()); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
