package repositories

import (
	"context"
	"time"

	"transit-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// notificationRepository implements NotificationRepository interface
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create creates a notification
func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// ListByUser lists a user's notifications, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkRead marks one notification read; the user filter keeps callers
// from touching rows they do not own. Returns rows affected.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// MarkAllRead marks all of a user's notifications read
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// DeleteReadBefore prunes read notifications created before cutoff
func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// UserIDsWithRole returns the ids of active users holding the role
func (r *notificationRepository) UserIDsWithRole(ctx context.Context, roleName string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ? AND users.is_active = ?", roleName, true).
		Pluck("users.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
