package gormpersistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// GormChangeRepository is the GORM implementation of ChangeRepository.
type GormChangeRepository struct {
	db *gorm.DB
}

func NewGormChangeRepository(db *gorm.DB) *GormChangeRepository {
	if db == nil {
		panic("database connection cannot be nil for GormChangeRepository")
	}
	return &GormChangeRepository{db: db}
}

func (r *GormChangeRepository) Append(ctx context.Context, change *domain.Change) error {
	if err := r.db.WithContext(ctx).Create(change).Error; err != nil {
		return fmt.Errorf("gorm: append change (room %s, user %d): %w", change.RoomID, change.UserID, err)
	}
	return nil
}

func (r *GormChangeRepository) ListSince(ctx context.Context, roomID string, since time.Time) ([]domain.Change, error) {
	var changes []domain.Change
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND timestamp >= ?", roomID, since).
		Order("timestamp ASC").
		Find(&changes).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list changes for room %s since %v: %w", roomID, since, err)
	}
	return changes, nil
}

func (r *GormChangeRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&domain.Change{})
	if result.Error != nil {
		return 0, fmt.Errorf("gorm: delete changes before %v: %w", cutoff, result.Error)
	}
	return result.RowsAffected, nil
}
