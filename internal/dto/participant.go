package dto

import (
	"time"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// ParticipantView is the presence shape returned to pollers: membership
// fields plus the last reported cursor as one optional object.
type ParticipantView struct {
	UserID   uint                   `json:"user_id"`
	UserName string                 `json:"user_name"`
	JoinedAt time.Time              `json:"joined_at"`
	LastSeen time.Time              `json:"last_seen"`
	IsActive bool                   `json:"is_active"`
	Cursor   *domain.CursorPosition `json:"cursor_position,omitempty"`
}

// NewParticipantView converts a membership row into its API shape.
func NewParticipantView(p domain.Participant) ParticipantView {
	return ParticipantView{
		UserID:   p.UserID,
		UserName: p.UserName,
		JoinedAt: p.JoinedAt,
		LastSeen: p.LastSeen,
		IsActive: p.IsActive,
		Cursor:   p.Cursor(),
	}
}

// NewParticipantViews converts a slice of membership rows, preserving order.
func NewParticipantViews(participants []domain.Participant) []ParticipantView {
	views := make([]ParticipantView, 0, len(participants))
	for _, p := range participants {
		views = append(views, NewParticipantView(p))
	}
	return views
}
