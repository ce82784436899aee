package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qonnected/qonnected-backend/internal/models"
	"github.com/qonnected/qonnected-backend/internal/services"
)

// stubPaymentService lets each subtest script the service outcome
type stubPaymentService struct {
	payment *models.Payment
	list    []*models.Payment
	err     error
}

func (s *stubPaymentService) Submit(context.Context, *services.PaymentSubmission) (*models.Payment, error) {
	return s.payment, s.err
}

func (s *stubPaymentService) ListPayments(context.Context, string, string) ([]*models.Payment, error) {
	return s.list, s.err
}

func (s *stubPaymentService) Decide(context.Context, string, string, string, string) (*models.Payment, error) {
	return s.payment, s.err
}

func (s *stubPaymentService) OpenProof(context.Context, string, string, string) ([]byte, string, error) {
	return nil, "", s.err
}

func (s *stubPaymentService) ExportCSV(_ context.Context, _, _ string, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := w.Write([]byte("reference\n"))
	return err
}

func newReviewRouter(svc services.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReviewHandler(svc)
	r := gin.New()
	r.GET("/admin/payments", h.ListPayments)
	r.GET("/admin/payments/export", h.ExportPayments)
	r.POST("/admin/payments/:reference/action", h.ActionPayment)
	return r
}

func TestActionPayment(t *testing.T) {
	decided := &models.Payment{Reference: "PAY-1", Status: models.PaymentStatusApproved}

	cases := []struct {
		name       string
		body       string
		serviceErr error
		wantCode   int
	}{
		{"success", `{"action":"approve","feedback":"verified"}`, nil, http.StatusOK},
		{"malformed json", `{`, nil, http.StatusBadRequest},
		{"missing feedback fails binding", `{"action":"approve"}`, nil, http.StatusBadRequest},
		{"invalid action", `{"action":"escalate","feedback":"x"}`, services.ErrInvalidAction, http.StatusBadRequest},
		{"blank feedback", `{"action":"approve","feedback":" "}`, services.ErrFeedbackRequired, http.StatusBadRequest},
		{"unknown payment", `{"action":"approve","feedback":"x"}`, services.ErrPaymentNotFound, http.StatusNotFound},
		{"already decided", `{"action":"reject","feedback":"x"}`, services.ErrAlreadyDecided, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newReviewRouter(&stubPaymentService{payment: decided, err: tc.serviceErr})

			req := httptest.NewRequest(http.MethodPost, "/admin/payments/PAY-1/action", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusOK {
				var resp struct {
					Payment models.Payment `json:"payment"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if resp.Payment.Status != models.PaymentStatusApproved {
					t.Errorf("payment.status = %q", resp.Payment.Status)
				}
			}
		})
	}
}

func TestListPayments(t *testing.T) {
	list := []*models.Payment{
		{Reference: "PAY-1", Status: models.PaymentStatusPending},
		{Reference: "PAY-2", Status: models.PaymentStatusApproved},
	}
	r := newReviewRouter(&stubPaymentService{list: list})

	req := httptest.NewRequest(http.MethodGet, "/admin/payments?status=pending&search=PAY", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Payments []models.Payment `json:"payments"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Payments) != 2 {
		t.Errorf("payments = %d, want 2", len(resp.Payments))
	}
}

func TestExportPayments(t *testing.T) {
	r := newReviewRouter(&stubPaymentService{})

	req := httptest.NewRequest(http.MethodGet, "/admin/payments/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content-type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("missing Content-Disposition header")
	}
}
