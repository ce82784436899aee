package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qonnected/qonnected-backend/internal/models"
	"github.com/qonnected/qonnected-backend/internal/services"
)

// ReviewHandler handles the admin payment-review HTTP requests
type ReviewHandler struct {
	paymentService services.PaymentService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(paymentService services.PaymentService) *ReviewHandler {
	return &ReviewHandler{paymentService: paymentService}
}

// ListPayments handles GET /admin/payments
func (h *ReviewHandler) ListPayments(c *gin.Context) {
	payments, err := h.paymentService.ListPayments(c, c.Query("status"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// ActionPayment handles POST /admin/payments/:reference/action
func (h *ReviewHandler) ActionPayment(c *gin.Context) {
	var req models.PaymentActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentService.Decide(
		c, c.Param("reference"), req.Action, req.Feedback, c.GetString("userEmail"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction),
			errors.Is(err, services.ErrFeedbackRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply decision: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// ExportPayments handles GET /admin/payments/export
func (h *ReviewHandler) ExportPayments(c *gin.Context) {
	filename := "payments-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv")

	if err := h.paymentService.ExportCSV(c, c.Query("status"), c.Query("search"), c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export payments: " + err.Error()})
		return
	}
	c.Status(http.StatusOK)
}
