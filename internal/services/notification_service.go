package services

import (
	"context"

	"lanka-connect/backend/internal/models"
)

type NotificationStore interface {
	GetByRecipient(ctx context.Context, recipientID string, limit, offset int64) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}

// NotificationService backs the in-app notification list.
type NotificationService struct {
	repo NotificationStore
}

func NewNotificationService(repo NotificationStore) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) GetNotifications(ctx context.Context, recipientID string, limit, offset int64) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.GetByRecipient(ctx, recipientID, limit, offset)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id string) error {
	return s.repo.MarkAsRead(ctx, id)
}
