package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qonnected/qonnected-backend/internal/models"
	"github.com/qonnected/qonnected-backend/internal/services"
)

func newPaymentRouter(svc services.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(svc)
	r := gin.New()
	// Stand-in for the JWT middleware's claim injection
	r.Use(func(c *gin.Context) {
		c.Set("userID", "64f000000000000000000001")
		c.Set("userName", "Sara Ahmed")
		c.Set("userEmail", "sara@example.com")
	})
	r.POST("/payments", h.SubmitPayment)
	return r
}

func multipartSubmission(t *testing.T, withFile bool, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"paymentId": "PAY-x8k3jq",
		"itemId":    "course-go-201",
		"itemName":  "Go Fundamentals",
		"itemType":  models.ItemTypeCourse,
		"amount":    "150,000 IQD",
	}
	for k, v := range extra {
		fields[k] = v
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if withFile {
		fw, err := w.CreateFormFile("proof", "receipt.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestSubmitPayment(t *testing.T) {
	created := &models.Payment{Reference: "PAY-1", Status: models.PaymentStatusPending}

	t.Run("multipart file accepted", func(t *testing.T) {
		r := newPaymentRouter(&stubPaymentService{payment: created})
		body, contentType := multipartSubmission(t, true, nil)

		req := httptest.NewRequest(http.MethodPost, "/payments", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var resp struct {
			Success bool           `json:"success"`
			Payment models.Payment `json:"payment"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Success || resp.Payment.Status != models.PaymentStatusPending {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("base64 fallback accepted", func(t *testing.T) {
		r := newPaymentRouter(&stubPaymentService{payment: created})
		encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4E, 0x47})
		body, contentType := multipartSubmission(t, false, map[string]string{"proofBase64": encoded})

		req := httptest.NewRequest(http.MethodPost, "/payments", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing proof rejected", func(t *testing.T) {
		r := newPaymentRouter(&stubPaymentService{payment: created})
		body, contentType := multipartSubmission(t, false, nil)

		req := httptest.NewRequest(http.MethodPost, "/payments", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})

	t.Run("service validation error maps to 400", func(t *testing.T) {
		r := newPaymentRouter(&stubPaymentService{err: services.ErrInvalidAmount})
		body, contentType := multipartSubmission(t, true, nil)

		req := httptest.NewRequest(http.MethodPost, "/payments", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
	})
}
