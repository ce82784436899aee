package mongodb

import (
	"context"
	"time"

	"github.com/qonnected/qonnected-backend/internal/models"
	"github.com/qonnected/qonnected-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PaymentRepository implements the repositories.PaymentRepository interface
type PaymentRepository struct {
	collection *mongo.Collection
}

// NewPaymentRepository creates a new PaymentRepository and ensures the
// reference and idempotency-key unique indexes exist.
func NewPaymentRepository(db *mongo.Database) repositories.PaymentRepository {
	r := &PaymentRepository{
		collection: db.Collection("payments"),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "idempotencyKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	return r
}

// Create creates a new payment record
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	payment.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// FindByReference finds a payment by its server-generated reference
func (r *PaymentRepository) FindByReference(ctx context.Context, reference string) (*models.Payment, error) {
	var payment models.Payment
	err := r.collection.FindOne(ctx, bson.M{"reference": reference}).Decode(&payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByIdempotencyKey finds a payment by idempotency key
func (r *PaymentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Payment, error) {
	var payment models.Payment
	err := r.collection.FindOne(ctx, bson.M{"idempotencyKey": key}).Decode(&payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindAll finds all payments, newest first
func (r *PaymentRepository) FindAll(ctx context.Context) ([]*models.Payment, error) {
	return r.find(ctx, bson.M{})
}

// FindByStatus finds payments with the given status, newest first
func (r *PaymentRepository) FindByStatus(ctx context.Context, status string) ([]*models.Payment, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *PaymentRepository) find(ctx context.Context, filter bson.M) ([]*models.Payment, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []*models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// Decide transitions a pending payment to a terminal status. The pending
// check lives in the update filter so two concurrent decisions cannot both
// succeed; the loser sees mongo.ErrNoDocuments.
func (r *PaymentRepository) Decide(ctx context.Context, reference, status, reviewedBy, feedback string, at time.Time) (*models.Payment, error) {
	filter := bson.M{
		"reference": reference,
		"status":    models.PaymentStatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"reviewedBy": reviewedBy,
			"feedback":   feedback,
			"updatedAt":  at,
		},
		"$push": bson.M{
			"history": models.StatusChange{
				Status:     status,
				Timestamp:  at,
				ReviewedBy: reviewedBy,
				Feedback:   feedback,
			},
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var payment models.Payment
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Count counts all payments
func (r *PaymentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
