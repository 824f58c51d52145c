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

// FundingRepository handles document-store operations for funding records.
type FundingRepository struct {
	col *mongo.Collection
}

func NewFundingRepository() *FundingRepository {
	return &FundingRepository{col: database.Fundings()}
}

// Insert persists a funding record and fills in its generated id.
func (r *FundingRepository) Insert(ctx context.Context, rec *models.FundingRecord) error {
	defer metrics.ObserveStoreOp(database.ColFundings, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("fundings: insert: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = id
	}
	return nil
}

// List returns one page of funding records, newest first, with the total count.
func (r *FundingRepository) List(ctx context.Context, page, size int64) ([]models.FundingRecord, int64, error) {
	defer metrics.ObserveStoreOp(database.ColFundings, "find", time.Now())

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page * size).
		SetLimit(size)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("fundings: list: %w", err)
	}
	defer cur.Close(ctx)

	records := []models.FundingRecord{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, 0, fmt.Errorf("fundings: decode list: %w", err)
	}

	count, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("fundings: count: %w", err)
	}

	return records, count, nil
}

// TotalAmount sums the amount field across every funding record.
// Returns 0 when the collection is empty.
func (r *FundingRepository) TotalAmount(ctx context.Context) (float64, error) {
	defer metrics.ObserveStoreOp(database.ColFundings, "aggregate", time.Now())

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("fundings: aggregate total: %w", err)
	}
	defer cur.Close(ctx)

	var out []struct {
		ID    primitive.ObjectID `bson:"_id,omitempty"`
		Total float64            `bson:"total"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("fundings: decode total: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

// EstimatedCount returns the fast, approximate collection cardinality.
func (r *FundingRepository) EstimatedCount(ctx context.Context) (int64, error) {
	defer metrics.ObserveStoreOp(database.ColFundings, "count", time.Now())
	return r.col.EstimatedDocumentCount(ctx)
}
