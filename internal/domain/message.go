package domain

import "time"

type MessageID int64

type Message struct {
	ID        MessageID `db:"id"`
	Content   string    `db:"content"`
	RoomID    RoomID    `db:"room_id"`
	CreatedBy UserID    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}
