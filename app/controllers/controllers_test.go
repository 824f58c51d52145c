package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mahfuzanam/bloodlink/app/models"
)

func TestFailMapsSentinelsToStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrBlocked, http.StatusForbidden},
		{models.ErrConflict, http.StatusConflict},
		{models.ErrInvalidTransition, http.StatusConflict},
		{models.ErrInvalidInput, http.StatusBadRequest},
		{errors.New("mongo timeout"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		fail(w, r, tc.err)

		if w.Code != tc.want {
			t.Errorf("fail(%v) wrote %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestFailNeverLeaksInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	fail(w, r, errors.New("dial tcp 10.0.0.5:27017: connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body := w.Body.String(); strings.Contains(body, "10.0.0.5") || strings.Contains(body, "dial tcp") {
		t.Errorf("internal detail leaked: %s", body)
	}
}
