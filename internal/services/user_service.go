package services

import (
	"context"
	"errors"

	"github.com/qonnected/qonnected-backend/internal/models"
	"github.com/qonnected/qonnected-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

var _ UserService = (*UserServiceImpl)(nil)

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService implementation
func NewUserService(userRepo repositories.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetAllUsers returns all users, newest first, without password hashes
func (s *UserServiceImpl) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Password = ""
	}
	return users, nil
}

// GetUserCount returns the total user count
func (s *UserServiceImpl) GetUserCount(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

// UpdateUserStatus sets a user's account status
func (s *UserServiceImpl) UpdateUserStatus(ctx context.Context, userID, status string) (*models.User, error) {
	switch status {
	case models.UserStatusPending, models.UserStatusActive, models.UserStatusSuspended:
	default:
		return nil, ErrInvalidUserStatus
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User status updated", "userId", userID, "status", status)
	user.Password = ""
	return user, nil
}
