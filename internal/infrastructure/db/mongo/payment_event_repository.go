package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

const collectionPaymentEvents = "payment_events"

// PaymentEventRepository implements ports.PaymentEventLog using MongoDB.
type PaymentEventRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewPaymentEventRepository(db *mongo.Database) *PaymentEventRepository {
	return &PaymentEventRepository{col: db.Collection(collectionPaymentEvents), now: time.Now}
}

// Insert persists a verified payment event to the audit collection.
func (r *PaymentEventRepository) Insert(ctx context.Context, event domain.PaymentEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"event_id":     event.ID,
		"type":         event.Type,
		"intent_id":    event.IntentID,
		"order_id":     event.OrderID,
		"received_at":  event.ReceivedAt.UTC(),
		"processed_at": r.now().UTC(),
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes indexes the audit trail by order.
func (r *PaymentEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "order_id", Value: 1}},
	})
	return err
}
