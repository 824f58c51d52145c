// Package database owns the MongoDB client lifecycle: connect once at
// startup, health-check on demand, disconnect on shutdown.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mahfuzanam/bloodlink/config"
)

// Collection names. The user collection is singular for compatibility with
// documents written by the first deployment.
const (
	ColUsers     = "user"
	ColDonations = "donationRequests"
	ColBlogs     = "blogs"
	ColFundings  = "fundings"
	ColAuditLog  = "audit_log"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the shared client and verifies the deployment is reachable.
// Returns an error instead of calling log.Fatal so the caller can shut down
// gracefully.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	clientOpts := options.Client().
		ApplyURI(config.MongoURI()).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	c, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDatabase())
	return nil
}

// Health pings the deployment; used by the /healthz endpoint.
func Health(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("database: not connected")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Disconnect tears down the shared client. Safe to call when never connected.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	client = nil
	db = nil
	return nil
}

// Collection returns a handle to the named collection.
func Collection(name string) *mongo.Collection {
	if db == nil {
		panic("database: Collection called before Connect")
	}
	return db.Collection(name)
}

func Users() *mongo.Collection     { return Collection(ColUsers) }
func Donations() *mongo.Collection { return Collection(ColDonations) }
func Blogs() *mongo.Collection     { return Collection(ColBlogs) }
func Fundings() *mongo.Collection  { return Collection(ColFundings) }
func AuditLog() *mongo.Collection  { return Collection(ColAuditLog) }
