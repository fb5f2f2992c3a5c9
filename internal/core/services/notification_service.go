package services

import (
	"context"
	"errors"
	"log"
	"time"

	"transit-backoffice/internal/adapters/events"
	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/adapters/persistence/repositories"
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationService handles notification listing, read state and fan-out
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	publisher        *events.Publisher
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repositories.NotificationRepository, publisher *events.Publisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// List lists a user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uint, offset, limit int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.ListByUser(ctx, userID, offset, limit)
}

// MarkRead marks one of the caller's notifications read. A row belonging
// to someone else is indistinguishable from a missing one.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	affected, err := s.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of the caller's notifications read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Notify creates a notification for one user and publishes the
// corresponding event when a broker is configured.
func (s *NotificationService) Notify(ctx context.Context, userID uint, title, message string) error {
	n := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	if s.publisher != nil {
		s.publisher.NotificationCreated(ctx, events.NotificationCreated{
			NotificationID: n.ID,
			UserID:         n.UserID,
			Title:          n.Title,
			CreatedAt:      n.CreatedAt,
		})
	}
	return nil
}

// NotifyRole fans one message out to every active user holding the role
func (s *NotificationService) NotifyRole(ctx context.Context, roleName, title, message string) (int, error) {
	userIDs, err := s.notificationRepo.UserIDsWithRole(ctx, roleName)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, id := range userIDs {
		if err := s.Notify(ctx, id, title, message); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// PruneRead deletes read notifications older than the retention window
func (s *NotificationService) PruneRead(ctx context.Context, retention time.Duration) error {
	deleted, err := s.notificationRepo.DeleteReadBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("🧹 Pruned %d read notifications", deleted)
	}
	return nil
}
