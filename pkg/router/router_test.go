package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mahfuzanam/bloodlink/pkg/router"
)

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/users/{email}", "users.get", ok)

	path, found := r.Path("users.get")
	if !found || path != "/users/{email}" {
		t.Errorf("Path = %q, %v", path, found)
	}

	url, err := r.URL("users.get", map[string]string{"email": "a@x.com"})
	if err != nil || url != "/users/a@x.com" {
		t.Errorf("URL = %q, %v", url, err)
	}

	if _, err := r.URL("users.get", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestGroupPrefixing(t *testing.T) {
	r := router.New()
	g := r.Group("/admin")
	g.Get("/stats", "admin.stats", ok)

	path, found := r.Path("admin.stats")
	if !found || path != "/admin/stats" {
		t.Errorf("Path = %q, %v", path, found)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var hits []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits = append(hits, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/api", tag("group"))
	g.Get("/thing", "thing", ok, tag("route"))

	req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
	r.Handler().ServeHTTP(httptest.NewRecorder(), req)

	if len(hits) != 2 || hits[0] != "group" || hits[1] != "route" {
		t.Errorf("middleware order = %v", hits)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)
	r.Get("/unnamed", "", ok)

	if got := len(r.Routes()); got != 2 {
		t.Errorf("Routes() returned %d entries, want 2 (unnamed excluded)", got)
	}
}
