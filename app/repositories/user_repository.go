package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mahfuzanam/bloodlink/app/models"
	"github.com/mahfuzanam/bloodlink/pkg/database"
	"github.com/mahfuzanam/bloodlink/pkg/metrics"
)

// UserRepository handles document-store operations for users.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{col: database.Users()}
}

// Create persists a new user record and fills in its generated id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer metrics.ObserveStoreOp(database.ColUsers, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("users: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveStoreOp(database.ColUsers, "find", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, models.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("users: find %s: %w", email, err)
	}

	user.Role = models.ParseRole(string(user.Role))
	return user, nil
}

// FindByID looks up a user by document id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	defer metrics.ObserveStoreOp(database.ColUsers, "find", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, models.ErrNotFound
	}

	var user models.User
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, models.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("users: find %s: %w", id, err)
	}

	user.Role = models.ParseRole(string(user.Role))
	return user, nil
}

// UpdateProfile overwrites the editable profile fields for email.
// Returns ErrNotFound when no document matched.
func (r *UserRepository) UpdateProfile(ctx context.Context, email string, fields bson.M) error {
	defer metrics.ObserveStoreOp(database.ColUsers, "update", time.Now())

	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("users: update %s: %w", email, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetRole changes a user's role by document id.
func (r *UserRepository) SetRole(ctx context.Context, id string, role models.Role) error {
	return r.setByID(ctx, id, bson.M{"role": role})
}

// SetStatus changes a user's status by document id.
func (r *UserRepository) SetStatus(ctx context.Context, id string, status models.UserStatus) error {
	return r.setByID(ctx, id, bson.M{"status": status})
}

func (r *UserRepository) setByID(ctx context.Context, id string, fields bson.M) error {
	defer metrics.ObserveStoreOp(database.ColUsers, "update", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("users: update %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// List returns users, optionally filtered by status.
func (r *UserRepository) List(ctx context.Context, status string) ([]models.User, error) {
	defer metrics.ObserveStoreOp(database.ColUsers, "find", time.Now())

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("users: decode list: %w", err)
	}
	for i := range users {
		users[i].Role = models.ParseRole(string(users[i].Role))
	}
	return users, nil
}

// SearchDonors returns active donors, narrowed by any non-empty filter.
// The role match is case-insensitive: early deployments stored "Donor".
func (r *UserRepository) SearchDonors(ctx context.Context, bloodGroup, district, upazila string) ([]models.User, error) {
	defer metrics.ObserveStoreOp(database.ColUsers, "find", time.Now())

	filter := bson.M{
		"role":   bson.M{"$regex": "^donor$", "$options": "i"},
		"status": models.StatusActive,
	}
	if bloodGroup != "" {
		filter["bloodGroup"] = bloodGroup
	}
	if district != "" {
		filter["district"] = district
	}
	if upazila != "" {
		filter["upazila"] = upazila
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("users: donor search: %w", err)
	}
	defer cur.Close(ctx)

	donors := []models.User{}
	if err := cur.All(ctx, &donors); err != nil {
		return nil, fmt.Errorf("users: decode donor search: %w", err)
	}
	for i := range donors {
		donors[i].Role = models.ParseRole(string(donors[i].Role))
	}
	return donors, nil
}

// Count returns the exact collection count.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp(database.ColUsers, "count", time.Now())
	return r.col.CountDocuments(ctx, bson.M{})
}

// EstimatedCount returns the fast, approximate collection cardinality.
func (r *UserRepository) EstimatedCount(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp(database.ColUsers, "count", time.Now())
	return r.col.EstimatedDocumentCount(ctx)
}
