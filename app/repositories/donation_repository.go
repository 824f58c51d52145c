package repositories

import (
	"context"
	"errors"
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

// DonationRepository handles document-store operations for donation requests.
type DonationRepository struct {
	col *mongo.Collection
}

func NewDonationRepository() *DonationRepository {
	return &DonationRepository{col: database.Donations()}
}

// Insert persists a new donation request and fills in its generated id.
func (r *DonationRepository) Insert(ctx context.Context, req *models.DonationRequest) error {
	defer metrics.ObserveStoreOp(database.ColDonations, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("donations: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		req.ID = id
	}
	return nil
}

// FindByID fetches one donation request by document id.
func (r *DonationRepository) FindByID(ctx context.Context, id string) (models.DonationRequest, error) {
	defer metrics.ObserveStoreOp(database.ColDonations, "find", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.DonationRequest{}, models.ErrNotFound
	}

	var req models.DonationRequest
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DonationRequest{}, models.ErrNotFound
	}
	if err != nil {
		return models.DonationRequest{}, fmt.Errorf("donations: find %s: %w", id, err)
	}
	return req, nil
}

// ClaimPending atomically moves a pending request to inprogress and records
// the donor. The filter matches on status=pending, so only one of two
// concurrent claims can succeed; the loser sees ErrNotFound here and the
// service distinguishes "absent" from "already claimed".
func (r *DonationRepository) ClaimPending(ctx context.Context, id, donorName, donorEmail string) (models.DonationRequest, error) {
	defer metrics.ObserveStoreOp(database.ColDonations, "update", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.DonationRequest{}, models.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     models.RequestInProgress,
		"donorName":  donorName,
		"donorEmail": donorEmail,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.DonationRequest
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": models.RequestPending},
		update, opts,
	).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DonationRequest{}, models.ErrNotFound
	}
	if err != nil {
		return models.DonationRequest{}, fmt.Errorf("donations: claim %s: %w", id, err)
	}
	return req, nil
}

// UpdateStatusFrom applies a conditional status change: the update only
// matches while the document is still in the expected source state. Returns
// ErrNotFound when nothing matched; the caller decides whether that means
// the document is absent or the transition lost a race.
func (r *DonationRepository) UpdateStatusFrom(ctx context.Context, id string, from, to models.RequestStatus) (models.DonationRequest, error) {
	defer metrics.ObserveStoreOp(database.ColDonations, "update", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.DonationRequest{}, models.ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.DonationRequest
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": from},
		bson.M{"$set": bson.M{"status": to}},
		opts,
	).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DonationRequest{}, models.ErrNotFound
	}
	if err != nil {
		return models.DonationRequest{}, fmt.Errorf("donations: set status %s: %w", id, err)
	}
	return req, nil
}

// UpdateFields overwrites the editable request fields; status, donor fields,
// and identity fields are never part of the set.
func (r *DonationRepository) UpdateFields(ctx context.Context, id string, fields bson.M) (models.DonationRequest, error) {
	defer metrics.ObserveStoreOp(database.ColDonations, "update", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.DonationRequest{}, models.ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.DonationRequest
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DonationRequest{}, models.ErrNotFound
	}
	if err != nil {
		return models.DonationRequest{}, fmt.Errorf("donations: update %s: %w", id, err)
	}
	return req, nil
}

// ListByRequester returns one page of a requester's requests, newest first,
// along with the total match count for the same filter.
func (r *DonationRepository) ListByRequester(ctx context.Context, email, status string, page, size int64) ([]models.DonationRequest, int64, error) {
	defer metrics.ObserveStoreOp(database.ColDonations, "find", time.Now())

	filter := bson.M{"requesterEmail": email}
	if status != "" && status != "all" {
		filter["status"] = status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page * size).
		SetLimit(size)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("donations: list %s: %w", email, err)
	}
	defer cur.Close(ctx)

	items := []models.DonationRequest{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("donations: decode list: %w", err)
	}

	count, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("donations: count %s: %w", email, err)
	}

	return items, count, nil
}

// Recent returns the requester's latest requests, newest first.
func (r *DonationRepository) Recent(ctx context.Context, email string, limit int64) ([]models.DonationRequest, error) {
	defer metrics.ObserveStoreOp(database.ColDonations, "find", time.Now())

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"requesterEmail": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("donations: recent %s: %w", email, err)
	}
	defer cur.Close(ctx)

	items := []models.DonationRequest{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("donations: decode recent: %w", err)
	}
	return items, nil
}

// ListByStatus returns every request in the given state, newest first.
func (r *DonationRepository) ListByStatus(ctx context.Context, status models.RequestStatus) ([]models.DonationRequest, error) {
	defer metrics.ObserveStoreOp(database.ColDonations, "find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("donations: list by status: %w", err)
	}
	defer cur.Close(ctx)

	items := []models.DonationRequest{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("donations: decode status list: %w", err)
	}
	return items, nil
}

// Count returns the exact collection count.
func (r *DonationRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp(database.ColDonations, "count", time.Now())
	return r.col.CountDocuments(ctx, bson.M{})
}

// CountByStatus returns the exact count of requests in one state.
func (r *DonationRepository) CountByStatus(ctx context.Context, status models.RequestStatus) (int64, error) {
	defer metrics.ObserveStoreOp(database.ColDonations, "count", time.Now())
	return r.col.CountDocuments(ctx, bson.M{"status": status})
}

// EstimatedCount returns the fast, approximate collection cardinality.
func (r *DonationRepository) EstimatedCount(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp(database.ColDonations, "count", time.Now())
	return r.col.EstimatedDocumentCount(ctx)
}
