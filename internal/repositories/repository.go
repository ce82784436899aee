package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/qonnected/qonnected-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicateKey is returned by Create operations when a unique index
// rejects the document (email already registered, idempotency-key collision).
var ErrDuplicateKey = errors.New("duplicate key")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
}

// PaymentRepository defines the interface for payment record operations.
// There is deliberately no Delete: payment records are never removed through
// any exposed interface.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByReference(ctx context.Context, reference string) (*models.Payment, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Payment, error)
	FindAll(ctx context.Context) ([]*models.Payment, error)
	FindByStatus(ctx context.Context, status string) ([]*models.Payment, error)
	// Decide atomically transitions a pending record to the given terminal
	// status and appends a history entry. It returns the updated record, or
	// mongo.ErrNoDocuments when no record matched reference+pending.
	Decide(ctx context.Context, reference, status, reviewedBy, feedback string, at time.Time) (*models.Payment, error)
	Count(ctx context.Context) (int64, error)
}

// ProofStore defines the interface for proof-image blob storage
type ProofStore interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Open(ctx context.Context, fileID string) ([]byte, string, error)
}

// NotificationRepository defines the interface for the email delivery log
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindAll(ctx context.Context) ([]*models.Notification, error)
	Count(ctx context.Context) (int64, error)
}
