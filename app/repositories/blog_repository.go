package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/pkg/database"
	"github.com/mahfuzanam/bloodlink/pkg/metrics"
)

// BlogRepository handles document-store operations for blog posts.
type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{col: database.Blogs()}
}

// Insert persists a new blog post and fills in its generated id.
func (r *BlogRepository) Insert(ctx context.Context, blog *models.Blog) error {
	defer metrics.ObserveStoreOp(database.ColBlogs, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, blog)
	if err != nil {
		return fmt.Errorf("blogs: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		blog.ID = id
	}
	return nil
}

// List returns every blog post, newest first.
func (r *BlogRepository) List(ctx context.Context) ([]models.Blog, error) {
	defer metrics.ObserveStoreOp(database.ColBlogs, "find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("blogs: list: %w", err)
	}
	defer cur.Close(ctx)

	blogs := []models.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("blogs: decode list: %w", err)
	}
	return blogs, nil
}

// SetStatus moves a post between draft and published.
func (r *BlogRepository) SetStatus(ctx context.Context, id string, status models.BlogStatus) error {
	defer metrics.ObserveStoreOp(database.ColBlogs, "update", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("blogs: set status %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// EstimatedCount returns the fast, approximate collection cardinality.
func (r *BlogRepository) EstimatedCount(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp(database.ColBlogs, "count", time.Now())
	return r.col.EstimatedDocumentCount(ctx)
}
