package domain

import "time"

// Room is a named collaboration session holding one authoritative code
// document. RoomID is the public identifier handed to clients; the numeric
// primary key never leaves the server.
//
// Code always reflects the latest accepted edit. Writes are
// last-writer-wins by arrival order; there is no version check and no merge.
type Room struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	RoomID        string    `gorm:"type:varchar(191);uniqueIndex:idx_room_id;not null" json:"room_id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Language      string    `gorm:"size:64;not null" json:"language"`
	Code          string    `gorm:"type:text" json:"code"`
	CreatedBy     uint      `gorm:"index;not null" json:"created_by"`
	CreatedByName string    `gorm:"size:191;not null" json:"created_by_name"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	LastActivity  time.Time `gorm:"index;not null" json:"last_activity"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Touch bumps the room's activity timestamp. Any join or edit counts as
// activity.
func (r *Room) Touch(now time.Time) {
	r.LastActivity = now
}
