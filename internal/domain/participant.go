package domain

import "time"

// CursorPosition is a participant's caret location in the shared document.
type CursorPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Participant is a user's membership record within a room, keyed by the
// (RoomID, UserID) pair. Rows are created on first join, reactivated on
// rejoin, deactivated on leave and never hard-deleted, so the table doubles
// as a who-was-ever-present history.
//
// UserName is snapshotted at join time and is not kept in sync with later
// profile changes.
type Participant struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	RoomID       string    `gorm:"type:varchar(191);not null;uniqueIndex:idx_room_user,priority:1" json:"room_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_room_user,priority:2" json:"user_id"`
	UserName     string    `gorm:"size:191;not null" json:"user_name"`
	JoinedAt     time.Time `gorm:"not null" json:"joined_at"`
	LastSeen     time.Time `gorm:"index;not null" json:"last_seen"`
	IsActive     bool      `gorm:"index;not null" json:"is_active"`
	CursorLine   *int      `json:"-"`
	CursorColumn *int      `json:"-"`
}

// Cursor returns the participant's last reported cursor position, or nil if
// none has been reported yet.
func (p *Participant) Cursor() *CursorPosition {
	if p.CursorLine == nil || p.CursorColumn == nil {
		return nil
	}
	return &CursorPosition{Line: *p.CursorLine, Column: *p.CursorColumn}
}

// SetCursor records a reported cursor position.
func (p *Participant) SetCursor(line, column int) {
	p.CursorLine = &line
	p.CursorColumn = &column
}
