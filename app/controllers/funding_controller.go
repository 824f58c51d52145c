package controllers

import (
	"net/http"
	"strconv"

	"github.com/mahfuzanam/bloodlink/app/services"
	"github.com/mahfuzanam/bloodlink/pkg/bind"
	"github.com/mahfuzanam/bloodlink/pkg/response"
)

// FundingController serves the funding and payment endpoints.
type FundingController struct {
	fundings *services.FundingService
}

func NewFundingController(fundings *services.FundingService) *FundingController {
	return &FundingController{fundings: fundings}
}

// CreateIntent handles POST /create-payment-intent.
func (c *FundingController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var in services.IntentInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	intent, err := c.fundings.CreatePaymentIntent(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"clientSecret": intent.ClientSecret})
}

// Add handles POST /fundings.
func (c *FundingController) Add(w http.ResponseWriter, r *http.Request) {
	var in services.FundingInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rec, err := c.fundings.Add(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, rec)
}

// List handles GET /fundings?page&size.
func (c *FundingController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	size, _ := strconv.ParseInt(q.Get("size"), 10, 64)

	records, count, err := c.fundings.List(r.Context(), page, size)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, records, count)
}
