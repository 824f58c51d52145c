// Package controllers holds the HTTP handlers. Handlers stay thin: decode,
// call a service, map the error, write the envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/pkg/logger"
	"github.com/mahfuzanam/bloodlink/pkg/response"
)

// fail maps a service error to the response envelope. Anything that is not a
// known sentinel becomes a generic 500 with the detail kept server-side.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		response.NotFound(w, "")
	case errors.Is(err, models.ErrBlocked):
		response.Forbidden(w, "Blocked users cannot create requests")
	case errors.Is(err, models.ErrForbidden):
		response.Forbidden(w, "")
	case errors.Is(err, models.ErrConflict):
		response.Conflict(w, "Request was modified concurrently")
	case errors.Is(err, models.ErrInvalidTransition):
		response.Conflict(w, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Internal(w)
	}
}
