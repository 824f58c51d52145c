package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mahfuzanam/bloodlink/app/services"
	"github.com/mahfuzanam/bloodlink/pkg/bind"
	"github.com/mahfuzanam/bloodlink/pkg/middleware"
	"github.com/mahfuzanam/bloodlink/pkg/response"
)

// BlogController serves the blog content endpoints.
type BlogController struct {
	blogs *services.BlogService
}

func NewBlogController(blogs *services.BlogService) *BlogController {
	return &BlogController{blogs: blogs}
}

// Create handles POST /blogs.
func (c *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.BlogInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	author, _ := middleware.EmailFromCtx(r.Context())
	blog, err := c.blogs.Create(r.Context(), author, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, blog)
}

// List handles GET /all-blogs.
func (c *BlogController) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := c.blogs.List(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, blogs)
}

// SetStatus handles PATCH /blogs/status/{id}.
func (c *BlogController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actor, _ := middleware.EmailFromCtx(r.Context())
	if err := c.blogs.SetStatus(r.Context(), actor, chi.URLParam(r, "id"), in.Status); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "blog status updated"})
}
