package domain

import "time"

// Snippet is an independently-owned, point-in-time copy of a room's
// document. Once saved it is never affected by further room edits.
type Snippet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	UserName  string    `gorm:"size:191;not null" json:"user_name"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Language  string    `gorm:"size:64;not null" json:"language"`
	Code      string    `gorm:"type:text" json:"code"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
