package domain

import "time"

// EventType labels a room event published on the room's pub/sub channel.
type EventType string

const (
	EventChange   EventType = "change"
	EventCursor   EventType = "cursor"
	EventPresence EventType = "presence"
)

// Event is the payload fanned out to WebSocket subscribers of a room. It is
// advisory: clients converge by polling the room, so a dropped event is
// recovered on the next poll.
type Event struct {
	Type      EventType       `json:"type"`
	RoomID    string          `json:"room_id"`
	UserID    uint            `json:"user_id"`
	UserName  string          `json:"user_name"`
	Change    *Change         `json:"change,omitempty"`
	Cursor    *CursorPosition `json:"cursor,omitempty"`
	Online    bool            `json:"online,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
