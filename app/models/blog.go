package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogStatus is a blog post's moderation state. Posts are drafts until an
// admin publishes them; volunteers and admins can read everything.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// ValidBlogStatus reports whether s is a known moderation state.
func ValidBlogStatus(s string) bool {
	switch BlogStatus(s) {
	case BlogDraft, BlogPublished:
		return true
	}
	return false
}

// Blog is a content post subject to moderation.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Thumbnail   string             `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Content     string             `bson:"content" json:"content"`
	AuthorEmail string             `bson:"authorEmail" json:"authorEmail"`
	Status      BlogStatus         `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
