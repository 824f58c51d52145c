// Package audit records admin mutations (role changes, status changes, blog
// moderation) to a MongoDB collection without touching the hot request path:
//
//   - Entries are enqueued into a buffered channel (non-blocking).
//   - A single background goroutine drains the channel and performs
//     InsertMany in batches.
//   - If the channel is full, the entry is silently dropped; auditing must
//     never block application code.
//   - Call Close() on shutdown to flush.
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	queueSize = 1024
	batchSize = 25
	drainTick = 2 * time.Second
)

// Entry is the shape written to the audit_log collection.
type Entry struct {
	Time       time.Time `bson:"time"`
	ActorEmail string    `bson:"actorEmail"`
	Action     string    `bson:"action"`
	TargetID   string    `bson:"targetId,omitempty"`
	Detail     bson.M    `bson:"detail,omitempty"`
}

// Trail is the asynchronous audit writer.
type Trail struct {
	col   *mongo.Collection
	queue chan Entry
	done  chan struct{}
}

// New starts a Trail writing to col. The caller must eventually call Close.
func New(col *mongo.Collection) *Trail {
	t := &Trail{
		col:   col,
		queue: make(chan Entry, queueSize),
		done:  make(chan struct{}),
	}
	go t.drainLoop()
	return t
}

// Record enqueues an entry. Never blocks; drops when the queue is full.
func (t *Trail) Record(actorEmail, action, targetID string, detail bson.M) {
	entry := Entry{
		Time:       time.Now(),
		ActorEmail: actorEmail,
		Action:     action,
		TargetID:   targetID,
		Detail:     detail,
	}
	select {
	case t.queue <- entry:
	default:
		// dropped; auditing must never block
	}
}

func (t *Trail) drainLoop() {
	ticker := time.NewTicker(drainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = t.col.InsertMany(ctx, batch) // errors intentionally ignored
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-t.queue:
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-t.done:
			for len(t.queue) > 0 {
				batch = append(batch, <-t.queue)
			}
			flush()
			return
		}
	}
}

// Close flushes pending entries. Safe to call multiple times.
func (t *Trail) Close() {
	select {
	case <-t.done:
	default:
		close(t.done)
	}
}
