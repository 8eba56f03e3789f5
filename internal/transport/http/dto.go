package http

import (
	"time"

	"github.com/Nycles/chat-service/internal/domain"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=15"`
	Password string `json:"password" validate:"required,alphanum,min=4,max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AuthToken string `json:"auth_token"`
}

type UploadImageResponse struct {
	ImageURL string `json:"image_url"`
}

type CreateRoomRequest struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}

type RoomItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func newRoomItem(r domain.Room) RoomItem {
	return RoomItem{
		ID:        int64(r.ID),
		Name:      r.Name,
		CreatedBy: int64(r.CreatedBy),
		CreatedAt: r.CreatedAt,
	}
}

type MessageItem struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	RoomID    int64     `json:"room_id"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func newMessageItem(m domain.Message) MessageItem {
	return MessageItem{
		ID:        int64(m.ID),
		Content:   m.Content,
		RoomID:    int64(m.RoomID),
		CreatedBy: int64(m.CreatedBy),
		CreatedAt: m.CreatedAt,
	}
}
