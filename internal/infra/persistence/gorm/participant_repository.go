package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository"
)

// GormParticipantRepository is the GORM implementation of
// ParticipantRepository.
type GormParticipantRepository struct {
	db *gorm.DB
}

func NewGormParticipantRepository(db *gorm.DB) *GormParticipantRepository {
	if db == nil {
		panic("database connection cannot be nil for GormParticipantRepository")
	}
	return &GormParticipantRepository{db: db}
}

func (r *GormParticipantRepository) FindByRoomAndUser(ctx context.Context, roomID string, userID uint) (*domain.Participant, error) {
	var participant domain.Participant
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("gorm: find participant (room %s, user %d): %w", roomID, userID, err)
	}
	return &participant, nil
}

func (r *GormParticipantRepository) Save(ctx context.Context, participant *domain.Participant) error {
	if err := r.db.WithContext(ctx).Save(participant).Error; err != nil {
		if isDuplicateEntry(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save participant (room %s, user %d): %w", participant.RoomID, participant.UserID, err)
	}
	return nil
}

func (r *GormParticipantRepository) ListActive(ctx context.Context, roomID string) ([]domain.Participant, error) {
	var participants []domain.Participant
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND is_active = ?", roomID, true).
		Order("joined_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list active participants for room %s: %w", roomID, err)
	}
	return participants, nil
}

func (r *GormParticipantRepository) DeactivateStale(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Participant{}).
		Where("is_active = ? AND last_seen < ?", true, olderThan).
		Updates(map[string]interface{}{"is_active": false})
	if result.Error != nil {
		return 0, fmt.Errorf("gorm: deactivate stale participants before %v: %w", olderThan, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormParticipantRepository) DeactivateStaleInRoom(ctx context.Context, roomID string, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Participant{}).
		Where("room_id = ? AND is_active = ? AND last_seen < ?", roomID, true, olderThan).
		Updates(map[string]interface{}{"is_active": false})
	if result.Error != nil {
		return 0, fmt.Errorf("gorm: deactivate stale participants in room %s before %v: %w", roomID, olderThan, result.Error)
	}
	return result.RowsAffected, nil
}
