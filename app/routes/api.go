// Package routes declares the HTTP route table.
package routes

import (
	"github.com/mahfuzanam/bloodlink/app/controllers"
	"github.com/mahfuzanam/bloodlink/pkg/metrics"
	"github.com/mahfuzanam/bloodlink/pkg/middleware"
	"github.com/mahfuzanam/bloodlink/pkg/rbac"
	"github.com/mahfuzanam/bloodlink/pkg/router"
)

// Controllers bundles every handler the route table mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Donations *controllers.DonationController
	Search    *controllers.SearchController
	Stats     *controllers.StatsController
	Blogs     *controllers.BlogController
	Fundings  *controllers.FundingController
	Health    *controllers.HealthController
}

// Register mounts the full API surface. lookup backs the per-request role
// checks.
func Register(r *router.Router, c Controllers, lookup rbac.UserLookup) {
	auth := router.Middleware(middleware.Auth)
	admin := router.Middleware(rbac.RequireAdmin(lookup))
	volunteerOrAdmin := router.Middleware(rbac.RequireVolunteerOrAdmin(lookup))

	r.Get("/", "home", c.Health.Home)
	r.Get("/healthz", "healthz", c.Health.Healthz)
	r.HandleFunc("/metrics", metrics.Handler())

	r.Post("/jwt", "jwt.issue", c.Auth.IssueToken)

	// Users.
	r.Post("/users", "users.register", c.Users.Register)
	r.Get("/users", "users.list", c.Users.List)
	r.Get("/users/admin/{email}", "users.admin-check", c.Users.AdminCheck, auth, admin)
	r.Patch("/users/role/{id}", "users.set-role", c.Users.SetRole, auth, admin)
	r.Patch("/users/status/{id}", "users.set-status", c.Users.SetStatus, auth, admin)
	r.Get("/users/{email}", "users.get", c.Users.Get)
	r.Patch("/users/{email}", "users.update", c.Users.UpdateProfile)
	r.Put("/users/{email}/avatar", "users.avatar", c.Users.UploadAvatar, auth)

	// Donation requests.
	r.Post("/donation-requests", "donations.create", c.Donations.Create)
	r.Get("/donation-requests/recent/{email}", "donations.recent", c.Donations.Recent)
	r.Get("/donation-requests/my-requests/{email}", "donations.mine", c.Donations.MyRequests)
	r.Get("/donation-request/{id}", "donations.get", c.Donations.Get)
	r.Patch("/update-donation-request/{id}", "donations.edit", c.Donations.Edit)
	r.Patch("/donation-requests/donate/{id}", "donations.claim", c.Donations.Claim)
	r.Patch("/donation-requests/status/{id}", "donations.set-status", c.Donations.SetStatus, auth)
	r.Get("/all-pending-requests", "donations.pending", c.Donations.ListPending, auth)

	// Search & stats.
	r.Get("/donor-search", "search.donors", c.Search.Donors)
	r.Get("/admin-stats", "stats.admin", c.Stats.Admin, auth, admin)

	// Blogs.
	r.Post("/blogs", "blogs.create", c.Blogs.Create, auth)
	r.Get("/all-blogs", "blogs.list", c.Blogs.List, auth, volunteerOrAdmin)
	r.Patch("/blogs/status/{id}", "blogs.set-status", c.Blogs.SetStatus, auth, admin)

	// Fundings & payments.
	r.Post("/create-payment-intent", "payments.intent", c.Fundings.CreateIntent, auth)
	r.Post("/fundings", "fundings.add", c.Fundings.Add, auth)
	r.Get("/fundings", "fundings.list", c.Fundings.List, auth)
}
