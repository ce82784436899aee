package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/qonnected/qonnected-backend/internal/models"
	"github.com/qonnected/qonnected-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory implementations of the repository interfaces. They reproduce the
// store semantics the services rely on: unique-index rejections, not-found as
// mongo.ErrNoDocuments, and the conditional pending-only transition.

type memUserRepo struct {
	mu    sync.Mutex
	users []*models.User
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == user.ID {
			user.UpdatedAt = time.Now()
			stored := *user
			r.users[i] = &stored
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) CountCreatedBetween(_ context.Context, start, end time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(start) && u.CreatedAt.Before(end) {
			n++
		}
	}
	return n, nil
}

type memPaymentRepo struct {
	mu       sync.Mutex
	payments []*models.Payment
}

func (r *memPaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.Reference == payment.Reference {
			return repositories.ErrDuplicateKey
		}
		if payment.IdempotencyKey != "" && p.IdempotencyKey == payment.IdempotencyKey {
			return repositories.ErrDuplicateKey
		}
	}
	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now()
	stored := *payment
	r.payments = append(r.payments, &stored)
	return nil
}

func (r *memPaymentRepo) FindByReference(_ context.Context, reference string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.Reference == reference {
			out := *p
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memPaymentRepo) FindByIdempotencyKey(_ context.Context, key string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.IdempotencyKey == key {
			out := *p
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memPaymentRepo) FindAll(_ context.Context) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *memPaymentRepo) FindByStatus(_ context.Context, status string) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.payments {
		if p.Status == status {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) Decide(_ context.Context, reference, status, reviewedBy, feedback string, at time.Time) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.Reference == reference && p.Status == models.PaymentStatusPending {
			p.Status = status
			p.ReviewedBy = reviewedBy
			p.Feedback = feedback
			p.UpdatedAt = at
			p.History = append(p.History, models.StatusChange{
				Status:     status,
				Timestamp:  at,
				ReviewedBy: reviewedBy,
				Feedback:   feedback,
			})
			out := *p
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memPaymentRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.payments)), nil
}

type storedProof struct {
	contentType string
	data        []byte
}

type memProofStore struct {
	mu    sync.Mutex
	next  int
	files map[string]storedProof
}

func newMemProofStore() *memProofStore {
	return &memProofStore{files: make(map[string]storedProof)}
}

func (s *memProofStore) Save(_ context.Context, _, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := fmt.Sprintf("file-%d", s.next)
	s.files[id] = storedProof{contentType: contentType, data: append([]byte(nil), data...)}
	return id, nil
}

func (s *memProofStore) Open(_ context.Context, fileID string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[fileID]
	if !ok {
		return nil, "", mongo.ErrNoDocuments
	}
	return f.data, f.contentType, nil
}

type memNotificationRepo struct {
	mu      sync.Mutex
	entries []*models.Notification
}

func (r *memNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	stored := *n
	r.entries = append(r.entries, &stored)
	return nil
}

func (r *memNotificationRepo) FindAll(_ context.Context) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Notification, 0, len(r.entries))
	for _, n := range r.entries {
		c := *n
		out = append(out, &c)
	}
	return out, nil
}

func (r *memNotificationRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.entries)), nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
