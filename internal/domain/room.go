package domain

import "time"

type RoomID int64

type Room struct {
	ID        RoomID    `db:"id"`
	Name      string    `db:"name"`
	CreatedBy UserID    `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`

	// Участники комнаты; источник истины по вопросу
	// «кто может писать/получать события» — перечитывается на каждую операцию.
	Participants []Participant
}

type Participant struct {
	ID       UserID `db:"id"`
	Email    string `db:"email"`
	Username string `db:"username"`
}
