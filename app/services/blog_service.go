package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mahfuzanam/bloodlink/app/models"
)

// BlogStore is the slice of the blog repository the content service needs.
type BlogStore interface {
	Insert(ctx context.Context, blog *models.Blog) error
	List(ctx context.Context) ([]models.Blog, error)
	SetStatus(ctx context.Context, id string, status models.BlogStatus) error
}

// BlogInput is the payload for POST /blogs.
type BlogInput struct {
	Title     string `json:"title" validate:"required,min=3,max=200"`
	Thumbnail string `json:"thumbnail"`
	Content   string `json:"content" validate:"required"`
}

// BlogService owns blog content: creation always lands in draft, and only
// the moderation endpoint moves posts between draft and published.
type BlogService struct {
	blogs BlogStore
	audit AuditRecorder
}

func NewBlogService(blogs BlogStore, audit AuditRecorder) *BlogService {
	return &BlogService{blogs: blogs, audit: audit}
}

// Create stores a new post in the draft state, attributed to its author.
func (s *BlogService) Create(ctx context.Context, authorEmail string, in BlogInput) (models.Blog, error) {
	blog := models.Blog{
		Title:       in.Title,
		Thumbnail:   in.Thumbnail,
		Content:     in.Content,
		AuthorEmail: authorEmail,
		Status:      models.BlogDraft,
		CreatedAt:   time.Now(),
	}
	if err := s.blogs.Insert(ctx, &blog); err != nil {
		return models.Blog{}, err
	}
	return blog, nil
}

// List returns every post, drafts included. The route is volunteer/admin
// gated; there is no public listing.
func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	return s.blogs.List(ctx)
}

// SetStatus publishes or unpublishes a post.
func (s *BlogService) SetStatus(ctx context.Context, actorEmail, id, status string) error {
	if !models.ValidBlogStatus(status) {
		return fmt.Errorf("%w: unknown blog status %q", models.ErrInvalidInput, status)
	}

	if err := s.blogs.SetStatus(ctx, id, models.BlogStatus(status)); err != nil {
		return err
	}
	if s.audit != nil {
		s.audit.Record(actorEmail, "blog.status", id, bson.M{"status": status})
	}
	return nil
}
