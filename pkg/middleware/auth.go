package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mahfuzanam/bloodlink/pkg/auth"
	"github.com/mahfuzanam/bloodlink/pkg/response"
)

type emailKey struct{}

// Auth rejects the request with 401 before any business logic runs unless a
// valid bearer token is presented. The verified email lands in the request
// context for the RBAC layer and handlers.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			token = "" // no Bearer prefix, treat as absent
		}

		claims, err := auth.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), emailKey{}, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EmailFromCtx returns the verified caller email set by Auth.
func EmailFromCtx(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey{}).(string)
	return email, ok && email != ""
}
