package repositories

import (
	"context"
	"time"

	"driveline/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByTokenHash gets a session by its token digest
func (r *sessionRepository) GetByTokenHash(ctx context.Context, hash string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Touch pushes a session's expiration forward
func (r *sessionRepository) Touch(ctx context.Context, id uint, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", id).
		Update("expires_at", expiresAt).Error
}

// DeleteByTokenHash removes a session by its token digest
func (r *sessionRepository) DeleteByTokenHash(ctx context.Context, hash string) error {
	return r.db.WithContext(ctx).Where("token_hash = ?", hash).Delete(&models.Session{}).Error
}

// DeleteByUser removes all sessions belonging to a user
func (r *sessionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

// DeleteExpired removes sessions whose expiration has passed
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
