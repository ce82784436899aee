package services

import (
	"context"
	"errors"
	"io"

	"github.com/qonnected/qonnected-backend/internal/models"
)

// Sentinel errors returned by services. Handlers map these to HTTP status
// codes; everything else is a 500.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserStatus  = errors.New("invalid user status")

	ErrPaymentNotFound  = errors.New("payment not found")
	ErrAlreadyDecided   = errors.New("payment already decided")
	ErrInvalidAction    = errors.New("action must be approve or reject")
	ErrFeedbackRequired = errors.New("feedback is required")
	ErrInvalidItemType  = errors.New("item type must be certification or course")
	ErrInvalidAmount    = errors.New("amount is not a valid price")
	ErrProofRequired    = errors.New("proof image is required")
	ErrProofTooLarge    = errors.New("proof image exceeds the size limit")
	ErrProofNotImage    = errors.New("proof file is not an image")
	ErrProofForbidden   = errors.New("proof belongs to another user")

	ErrInvalidTimeframe = errors.New("timeframe must be week, month or year")
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

// UserService defines the interface for admin user management
type UserService interface {
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUserCount(ctx context.Context) (int64, error)
	UpdateUserStatus(ctx context.Context, userID, status string) (*models.User, error)
}

// PaymentService defines the interface for the payment submission and
// review workflow.
type PaymentService interface {
	Submit(ctx context.Context, sub *PaymentSubmission) (*models.Payment, error)
	ListPayments(ctx context.Context, status, search string) ([]*models.Payment, error)
	Decide(ctx context.Context, reference, action, feedback, reviewedBy string) (*models.Payment, error)
	OpenProof(ctx context.Context, reference, callerID, callerRole string) ([]byte, string, error)
	ExportCSV(ctx context.Context, status, search string, w io.Writer) error
}

// PaymentSubmission carries one submission attempt. User fields are the
// denormalized snapshot written onto the record.
type PaymentSubmission struct {
	UserID    string
	UserName  string
	UserEmail string
	ClientRef string
	ItemID    string
	ItemName  string
	ItemType  string
	RawAmount string
	ProofName string
	ProofData []byte
}

// DashboardService defines the interface for admin analytics
type DashboardService interface {
	GetStats(ctx context.Context, timeframe string) (*models.DashboardStats, error)
}

// NotificationService defines the interface for the email delivery log
type NotificationService interface {
	GetAllNotifications(ctx context.Context) ([]*models.Notification, error)
	GetNotificationCount(ctx context.Context) (int64, error)
}
