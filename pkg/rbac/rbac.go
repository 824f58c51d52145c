// Package rbac provides role-based access control middleware.
//
// Roles form a flat lattice: admin covers every volunteer-gated action,
// volunteer covers content-moderation reads, donors get only self-scoped
// actions. Checks re-read the user record on every request; roles and
// statuses change between calls, so nothing is cached.
package rbac

import (
	"context"
	"net/http"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/pkg/middleware"
	"github.com/mahfuzanam/bloodlink/pkg/response"
)

// UserLookup resolves a verified email to its stored user record.
// Implemented by the user repository.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// RequireRole returns middleware that allows access only to callers whose
// stored role is in the allowed set. middleware.Auth must have run first.
func RequireRole(users UserLookup, roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := middleware.EmailFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			user, err := users.FindByEmail(r.Context(), email)
			if err != nil || !allowed[user.Role] {
				response.Forbidden(w, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin allows only admins through.
func RequireAdmin(users UserLookup) func(http.Handler) http.Handler {
	return RequireRole(users, models.RoleAdmin)
}

// RequireVolunteerOrAdmin allows volunteers and admins through.
func RequireVolunteerOrAdmin(users UserLookup) func(http.Handler) http.Handler {
	return RequireRole(users, models.RoleVolunteer, models.RoleAdmin)
}
