package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mahfuzanam/bloodlink/app/services"
	"github.com/mahfuzanam/bloodlink/pkg/bind"
	"github.com/mahfuzanam/bloodlink/pkg/response"
)

// DonationController serves the donation request lifecycle endpoints.
type DonationController struct {
	donations *services.DonationService
}

func NewDonationController(donations *services.DonationService) *DonationController {
	return &DonationController{donations: donations}
}

// Create handles POST /donation-requests.
func (c *DonationController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateRequestInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	req, err := c.donations.Create(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, req)
}

// Get handles GET /donation-request/{id}.
func (c *DonationController) Get(w http.ResponseWriter, r *http.Request) {
	req, err := c.donations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, req)
}

// Recent handles GET /donation-requests/recent/{email}.
func (c *DonationController) Recent(w http.ResponseWriter, r *http.Request) {
	items, err := c.donations.Recent(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, items)
}

// MyRequests handles GET /donation-requests/my-requests/{email}?status&page&size.
func (c *DonationController) MyRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	size, _ := strconv.ParseInt(q.Get("size"), 10, 64)

	items, count, err := c.donations.ListMine(r.Context(),
		chi.URLParam(r, "email"), q.Get("status"), page, size)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, items, count)
}

type claimRequest struct {
	DonorName  string `json:"donorName" validate:"required"`
	DonorEmail string `json:"donorEmail" validate:"required,email"`
}

// Claim handles PATCH /donation-requests/donate/{id}.
func (c *DonationController) Claim(w http.ResponseWriter, r *http.Request) {
	var in claimRequest
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	req, err := c.donations.Claim(r.Context(), chi.URLParam(r, "id"), in.DonorName, in.DonorEmail)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, req)
}

// SetStatus handles PATCH /donation-requests/status/{id}.
func (c *DonationController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	req, err := c.donations.SetStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, req)
}

// Edit handles PATCH /update-donation-request/{id}.
func (c *DonationController) Edit(w http.ResponseWriter, r *http.Request) {
	var in services.EditRequestInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	req, err := c.donations.Edit(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, req)
}

// ListPending handles GET /all-pending-requests.
func (c *DonationController) ListPending(w http.ResponseWriter, r *http.Request) {
	items, err := c.donations.ListPending(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, items)
}
