package controllers

import (
	"net/http"

	"github.com/mahfuzanam/bloodlink/pkg/auth"
	"github.com/mahfuzanam/bloodlink/pkg/bind"
	"github.com/mahfuzanam/bloodlink/pkg/response"
)

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AuthController issues bearer tokens.
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// IssueToken handles POST /jwt.
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var in tokenRequest
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := auth.GenerateToken(in.Email)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]string{"token": token})
}
