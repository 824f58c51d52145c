package controllers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mahfuzanam/bloodlink/app/services"
	"github.com/mahfuzanam/bloodlink/pkg/bind"
	"github.com/mahfuzanam/bloodlink/pkg/middleware"
	"github.com/mahfuzanam/bloodlink/pkg/response"
)

// UserController serves the user directory endpoints.
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Register handles POST /users.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.users.Register(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, user)
}

// Get handles GET /users/{email}.
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	user, err := c.users.Get(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, user)
}

// UpdateProfile handles PATCH /users/{email}.
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in services.ProfileInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.users.UpdateProfile(r.Context(), chi.URLParam(r, "email"), in); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "profile updated"})
}

// List handles GET /users?status=.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, users)
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

// SetRole handles PATCH /users/role/{id}.
func (c *UserController) SetRole(w http.ResponseWriter, r *http.Request) {
	var in roleRequest
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actor, _ := middleware.EmailFromCtx(r.Context())
	if err := c.users.SetRole(r.Context(), actor, chi.URLParam(r, "id"), in.Role); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "role updated"})
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetStatus handles PATCH /users/status/{id}.
func (c *UserController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actor, _ := middleware.EmailFromCtx(r.Context())
	if err := c.users.SetStatus(r.Context(), actor, chi.URLParam(r, "id"), in.Status); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "status updated"})
}

// AdminCheck handles GET /users/admin/{email}.
func (c *UserController) AdminCheck(w http.ResponseWriter, r *http.Request) {
	isAdmin, err := c.users.IsAdmin(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"admin": isAdmin})
}

// UploadAvatar handles PUT /users/{email}/avatar. The raw image is the body;
// the filename comes from the X-Filename header.
func (c *UserController) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	filename := r.Header.Get("X-Filename")
	if filename == "" {
		response.Error(w, http.StatusBadRequest, "X-Filename header required")
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 5<<20))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read upload")
		return
	}

	url, err := c.users.SetAvatar(r.Context(), chi.URLParam(r, "email"), filename, data)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"avatar": url})
}
