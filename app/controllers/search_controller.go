package controllers

import (
	"net/http"

	"github.com/mahfuzanam/bloodlink/app/services"
	"github.com/mahfuzanam/bloodlink/pkg/response"
)

// SearchController serves the public donor search.
type SearchController struct {
	search *services.SearchService
}

func NewSearchController(search *services.SearchService) *SearchController {
	return &SearchController{search: search}
}

// Donors handles GET /donor-search?bloodGroup&district&upazila.
func (c *SearchController) Donors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	donors, err := c.search.Donors(r.Context(), q.Get("bloodGroup"), q.Get("district"), q.Get("upazila"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, donors)
}
