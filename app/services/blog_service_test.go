package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/app/services"
)

type fakeBlogStore struct {
	mu    sync.Mutex
	blogs map[string]models.Blog
}

func newFakeBlogStore() *fakeBlogStore {
	return &fakeBlogStore{blogs: make(map[string]models.Blog)}
}

func (s *fakeBlogStore) Insert(ctx context.Context, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blog.ID = primitive.NewObjectID()
	s.blogs[blog.ID.Hex()] = *blog
	return nil
}

func (s *fakeBlogStore) List(ctx context.Context) ([]models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Blog{}
	for _, b := range s.blogs {
		out = append(out, b)
	}
	return out, nil
}

func (s *fakeBlogStore) SetStatus(ctx context.Context, id string, status models.BlogStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blogs[id]
	if !ok {
		return models.ErrNotFound
	}
	b.Status = status
	s.blogs[id] = b
	return nil
}

func TestBlogCreateStartsAsDraft(t *testing.T) {
	svc := services.NewBlogService(newFakeBlogStore(), nil)

	blog, err := svc.Create(context.Background(), "author@x.com", services.BlogInput{
		Title:   "Why donate",
		Content: "Because it saves lives.",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BlogDraft, blog.Status)
	assert.Equal(t, "author@x.com", blog.AuthorEmail)
	assert.False(t, blog.CreatedAt.IsZero())
}

func TestBlogPublishUnpublish(t *testing.T) {
	store := newFakeBlogStore()
	audit := &fakeAudit{}
	svc := services.NewBlogService(store, audit)
	ctx := context.Background()

	blog, err := svc.Create(ctx, "author@x.com", services.BlogInput{Title: "Title", Content: "Body"})
	require.NoError(t, err)
	id := blog.ID.Hex()

	require.NoError(t, svc.SetStatus(ctx, "admin@x.com", id, "published"))
	require.NoError(t, svc.SetStatus(ctx, "admin@x.com", id, "draft"))

	assert.Len(t, audit.events, 2)
	assert.Equal(t, "blog.status", audit.events[0].Action)

	err = svc.SetStatus(ctx, "admin@x.com", id, "archived")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = svc.SetStatus(ctx, "admin@x.com", "64b0c0ffee0000000000dead", "published")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
