package services

import (
	"context"

	"github.com/qonnected/qonnected-backend/internal/models"
	"github.com/qonnected/qonnected-backend/internal/repositories"
)

var _ NotificationService = (*NotificationServiceImpl)(nil)

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService implementation
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationServiceImpl {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

// GetAllNotifications returns the full delivery log, newest first
func (s *NotificationServiceImpl) GetAllNotifications(ctx context.Context) ([]*models.Notification, error) {
	return s.notificationRepo.FindAll(ctx)
}

// GetNotificationCount returns the delivery log size
func (s *NotificationServiceImpl) GetNotificationCount(ctx context.Context) (int64, error) {
	return s.notificationRepo.Count(ctx)
}
