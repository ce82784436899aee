package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/qonnected/qonnected-backend/internal/config"
	"github.com/qonnected/qonnected-backend/internal/models"
	"github.com/qonnected/qonnected-backend/internal/repositories"
	"github.com/qonnected/qonnected-backend/internal/utils"
	"github.com/qonnected/qonnected-backend/pkg/mailer"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

var _ PaymentService = (*PaymentServiceImpl)(nil)

type PaymentServiceImpl struct {
	paymentRepo      repositories.PaymentRepository
	notificationRepo repositories.NotificationRepository
	proofStore       repositories.ProofStore
	mailer           mailer.Mailer
	sanitizer        *bluemonday.Policy
	maxProofBytes    int64
}

// NewPaymentService creates a new PaymentService implementation
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	notificationRepo repositories.NotificationRepository,
	proofStore repositories.ProofStore,
	m mailer.Mailer,
	cfg *config.Config,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
		proofStore:       proofStore,
		mailer:           m,
		sanitizer:        bluemonday.StrictPolicy(),
		maxProofBytes:    cfg.Uploads.MaxProofBytes,
	}
}

// Submit validates one submission attempt and creates a pending payment
// record. A retried submission of the same purchase inside the idempotency
// window returns the already-created record instead of a twin.
func (s *PaymentServiceImpl) Submit(ctx context.Context, sub *PaymentSubmission) (*models.Payment, error) {
	if sub.ItemType != models.ItemTypeCertification && sub.ItemType != models.ItemTypeCourse {
		return nil, ErrInvalidItemType
	}

	amount, err := utils.ParseAmount(sub.RawAmount)
	if err != nil || amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if len(sub.ProofData) == 0 {
		return nil, ErrProofRequired
	}
	if s.maxProofBytes > 0 && int64(len(sub.ProofData)) > s.maxProofBytes {
		return nil, ErrProofTooLarge
	}
	contentType := http.DetectContentType(sub.ProofData)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrProofNotImage
	}

	userID, err := primitive.ObjectIDFromHex(sub.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	key := utils.IdempotencyKey(sub.UserID, sub.ItemID, amount, time.Now())
	if existing, err := s.paymentRepo.FindByIdempotencyKey(ctx, key); err == nil {
		slog.Info("Duplicate submission resolved to existing payment",
			"reference", existing.Reference, "userId", sub.UserID)
		return existing, nil
	}

	fileID, err := s.proofStore.Save(ctx, sub.ProofName, contentType, sub.ProofData)
	if err != nil {
		slog.Error("Failed to store proof image", "error", err)
		return nil, err
	}

	reference := "PAY-" + uuid.NewString()
	payment := &models.Payment{
		Reference:      reference,
		ClientRef:      s.sanitizer.Sanitize(sub.ClientRef),
		UserID:         userID,
		UserName:       sub.UserName,
		UserEmail:      sub.UserEmail,
		Amount:         amount,
		ItemID:         sub.ItemID,
		ItemName:       s.sanitizer.Sanitize(sub.ItemName),
		ItemType:       sub.ItemType,
		Status:         models.PaymentStatusPending,
		ProofImage:     "/api/v1/payments/" + reference + "/proof",
		ProofFileID:    fileID,
		IdempotencyKey: key,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Lost the insert race against a concurrent retry; return the winner.
			return s.paymentRepo.FindByIdempotencyKey(ctx, key)
		}
		slog.Error("Failed to create payment", "error", err, "userId", sub.UserID)
		return nil, err
	}

	slog.Info("Payment submitted", "reference", reference, "userId", sub.UserID,
		"item", payment.ItemName, "amount", amount)
	return payment, nil
}

// ListPayments returns all payments, newest first, optionally filtered by
// exact status and by a case-insensitive substring search.
func (s *PaymentServiceImpl) ListPayments(ctx context.Context, status, search string) ([]*models.Payment, error) {
	var payments []*models.Payment
	var err error
	if status != "" {
		payments, err = s.paymentRepo.FindByStatus(ctx, status)
	} else {
		payments, err = s.paymentRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if search == "" {
		return payments, nil
	}

	filtered := make([]*models.Payment, 0, len(payments))
	for _, p := range payments {
		if paymentMatches(p, search) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// paymentMatches reports whether the query appears, case-insensitively, in
// any of the searchable payment fields: reference, client ref, user name,
// email, item name, formatted amount, status, formatted date.
func paymentMatches(p *models.Payment, query string) bool {
	q := strings.ToLower(query)
	fields := []string{
		p.Reference,
		p.ClientRef,
		p.UserName,
		p.UserEmail,
		p.ItemName,
		utils.FormatAmount(p.Amount),
		p.Status,
		utils.FormatDate(p.CreatedAt),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Decide applies an admin decision to a pending payment. The transition is a
// single conditional update; a record that is no longer pending yields
// ErrAlreadyDecided and is left untouched. Exactly one notification is
// dispatched per successful transition.
func (s *PaymentServiceImpl) Decide(ctx context.Context, reference, action, feedback, reviewedBy string) (*models.Payment, error) {
	var status string
	switch action {
	case models.ActionApprove:
		status = models.PaymentStatusApproved
	case models.ActionReject:
		status = models.PaymentStatusRejected
	default:
		return nil, ErrInvalidAction
	}

	feedback = strings.TrimSpace(s.sanitizer.Sanitize(feedback))
	if feedback == "" {
		return nil, ErrFeedbackRequired
	}

	payment, err := s.paymentRepo.Decide(ctx, reference, status, reviewedBy, feedback, time.Now())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the record does not exist or it is already decided;
			// look it up to tell the two apart.
			if _, ferr := s.paymentRepo.FindByReference(ctx, reference); ferr == nil {
				return nil, ErrAlreadyDecided
			}
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	slog.Info("Payment decided", "reference", reference, "status", status, "reviewedBy", reviewedBy)
	s.notifyDecision(ctx, payment)
	return payment, nil
}

// notifyDecision emails the submitting user about the outcome and writes a
// delivery-log entry. Dispatch failure never fails the admin action.
func (s *PaymentServiceImpl) notifyDecision(ctx context.Context, p *models.Payment) {
	var subject, verdict, notifType string
	switch p.Status {
	case models.PaymentStatusApproved:
		subject = "Your payment has been approved"
		verdict = "approved"
		notifType = models.NotificationPaymentApproved
	case models.PaymentStatusRejected:
		subject = "Your payment has been rejected"
		verdict = "rejected"
		notifType = models.NotificationPaymentRejected
	default:
		return
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour payment %s for %q (%s) has been %s.\n\nReviewer note: %s\n\nQonnectED",
		p.UserName, p.Reference, p.ItemName, utils.FormatAmount(p.Amount), verdict, p.Feedback,
	)

	entry := &models.Notification{
		Type:       notifType,
		Recipient:  p.UserEmail,
		Subject:    subject,
		PaymentRef: p.Reference,
		Status:     models.NotificationSent,
	}
	if err := s.mailer.Send(ctx, p.UserEmail, subject, body); err != nil {
		slog.Error("Failed to send decision email", "error", err, "reference", p.Reference)
		entry.Status = models.NotificationFailed
		entry.Error = err.Error()
	}
	if err := s.notificationRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to log notification", "error", err, "reference", p.Reference)
	}
}

// OpenProof streams back a proof image. Only the submitting user and admins
// may read it.
func (s *PaymentServiceImpl) OpenProof(ctx context.Context, reference, callerID, callerRole string) ([]byte, string, error) {
	payment, err := s.paymentRepo.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrPaymentNotFound
		}
		return nil, "", err
	}

	if callerRole != models.RoleAdmin && payment.UserID.Hex() != callerID {
		return nil, "", ErrProofForbidden
	}

	return s.proofStore.Open(ctx, payment.ProofFileID)
}

// ExportCSV writes the filtered payment list as CSV
func (s *PaymentServiceImpl) ExportCSV(ctx context.Context, status, search string, w io.Writer) error {
	payments, err := s.ListPayments(ctx, status, search)
	if err != nil {
		return err
	}
	return utils.WritePaymentsCSV(w, payments)
}
