package rbac_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/pkg/auth"
	"github.com/mahfuzanam/bloodlink/pkg/middleware"
	"github.com/mahfuzanam/bloodlink/pkg/rbac"
)

type mapLookup map[string]models.User

func (m mapLookup) FindByEmail(ctx context.Context, email string) (models.User, error) {
	u, ok := m[email]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

// do sends a request with the given identity through Auth + the rbac check.
func do(t *testing.T, mw func(http.Handler) http.Handler, email string) int {
	t.Helper()

	var called bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	handler := middleware.Auth(mw(inner))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if email != "" {
		token, err := auth.GenerateToken(email)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code == http.StatusOK && !called {
		t.Error("200 without reaching the handler")
	}
	return w.Code
}

func TestRequireAdmin(t *testing.T) {
	users := mapLookup{
		"admin@x.com": {Email: "admin@x.com", Role: models.RoleAdmin},
		"donor@x.com": {Email: "donor@x.com", Role: models.RoleDonor},
	}
	mw := rbac.RequireAdmin(users)

	if code := do(t, mw, "admin@x.com"); code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", code)
	}
	if code := do(t, mw, "donor@x.com"); code != http.StatusForbidden {
		t.Errorf("donor: status = %d, want 403", code)
	}
	if code := do(t, mw, "ghost@x.com"); code != http.StatusForbidden {
		t.Errorf("absent record: status = %d, want 403", code)
	}
	if code := do(t, mw, ""); code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", code)
	}
}

func TestRequireVolunteerOrAdmin(t *testing.T) {
	users := mapLookup{
		"vol@x.com":   {Email: "vol@x.com", Role: models.RoleVolunteer},
		"donor@x.com": {Email: "donor@x.com", Role: models.RoleDonor},
	}
	mw := rbac.RequireVolunteerOrAdmin(users)

	if code := do(t, mw, "vol@x.com"); code != http.StatusOK {
		t.Errorf("volunteer: status = %d, want 200", code)
	}
	if code := do(t, mw, "donor@x.com"); code != http.StatusForbidden {
		t.Errorf("donor: status = %d, want 403", code)
	}
}

// Role changes must take effect on the very next request: the check always
// re-reads the store.
func TestRoleChangeTakesEffectImmediately(t *testing.T) {
	users := mapLookup{"a@x.com": {Email: "a@x.com", Role: models.RoleDonor}}
	mw := rbac.RequireAdmin(users)

	if code := do(t, mw, "a@x.com"); code != http.StatusForbidden {
		t.Fatalf("donor: status = %d, want 403", code)
	}

	users["a@x.com"] = models.User{Email: "a@x.com", Role: models.RoleAdmin}

	if code := do(t, mw, "a@x.com"); code != http.StatusOK {
		t.Errorf("promoted: status = %d, want 200", code)
	}
}
