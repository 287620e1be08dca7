package domain

import "time"

// ChangeType classifies an accepted edit.
type ChangeType string

const (
	ChangeInsert  ChangeType = "insert"
	ChangeDelete  ChangeType = "delete"
	ChangeReplace ChangeType = "replace"
)

// Valid reports whether t is one of the known change types.
func (t ChangeType) Valid() bool {
	switch t {
	case ChangeInsert, ChangeDelete, ChangeReplace:
		return true
	}
	return false
}

// Position is the document range an edit touched, as reported by the client.
type Position struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	EndLine     int `json:"end_line"`
	EndColumn   int `json:"end_column"`
}

// Change is one immutable entry in a room's append-only edit log. The log
// exists for display and activity feeds; the Room's Code column is the
// source of truth for document content, so the log is never replayed.
//
// Timestamp is assigned by the server at append time. It is wall clock, not
// a logical clock, and ordering across concurrent appliers is best-effort.
type Change struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RoomID     string     `gorm:"type:varchar(191);index;not null" json:"room_id"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	UserName   string     `gorm:"size:191;not null" json:"user_name"`
	ChangeType ChangeType `gorm:"size:16;not null" json:"change_type"`
	Position   Position   `gorm:"embedded" json:"position"`
	Content    string     `gorm:"type:text" json:"content"`
	Timestamp  time.Time  `gorm:"index;not null" json:"timestamp"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"-"`
}
