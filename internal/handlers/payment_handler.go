package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/qonnected/qonnected-backend/internal/services"
)

// PaymentHandler handles user-facing payment HTTP requests
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// SubmitPayment handles POST /payments. The body is the multipart form the
// web client's submission flow produces: the proof image plus the item
// snapshot and a formatted amount string. Clients that cannot attach the
// file directly send the same image base64-encoded in proofBase64.
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	var data []byte
	proofName := "proof"

	if file, header, err := c.Request.FormFile("proof"); err == nil {
		defer file.Close()
		data, err = io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read proof file"})
			return
		}
		proofName = header.Filename
	} else if encoded := c.PostForm("proofBase64"); encoded != "" {
		// Tolerate a data-URI prefix from canvas exports
		if i := strings.Index(encoded, ","); i >= 0 && strings.HasPrefix(encoded, "data:") {
			encoded = encoded[i+1:]
		}
		data, err = base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "proofBase64 is not valid base64"})
			return
		}
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "proof file is required"})
		return
	}

	sub := &services.PaymentSubmission{
		UserID:    c.GetString("userID"),
		UserName:  c.GetString("userName"),
		UserEmail: c.GetString("userEmail"),
		ClientRef: c.PostForm("paymentId"),
		ItemID:    c.PostForm("itemId"),
		ItemName:  c.PostForm("itemName"),
		ItemType:  c.PostForm("itemType"),
		RawAmount: c.PostForm("amount"),
		ProofName: proofName,
		ProofData: data,
	}

	payment, err := h.paymentService.Submit(c, sub)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidItemType),
			errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrProofRequired),
			errors.Is(err, services.ErrProofNotImage):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, services.ErrProofTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to submit payment: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "payment": payment})
}

// GetProof handles GET /payments/:reference/proof
func (h *PaymentHandler) GetProof(c *gin.Context) {
	data, contentType, err := h.paymentService.OpenProof(
		c, c.Param("reference"), c.GetString("userID"), c.GetString("userRole"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrProofForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load proof: " + err.Error()})
		}
		return
	}

	c.Data(http.StatusOK, contentType, data)
}
