package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qonnected/qonnected-backend/internal/services"
)

// NotificationHandler handles the admin notification-log HTTP requests
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetNotifications handles GET /admin/notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetAllNotifications(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// GetNotificationCount handles GET /admin/notifications/count
func (h *NotificationHandler) GetNotificationCount(c *gin.Context) {
	count, err := h.notificationService.GetNotificationCount(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
