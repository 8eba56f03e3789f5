package repository

import (
	"context"

	"github.com/Nycles/chat-service/internal/domain"
)

type ListMessagesFilter struct {
	RoomID domain.RoomID
	Page   int
	Size   int
}

// ChatRepository — комнаты и сообщения.
// GetRoom всегда возвращает комнату вместе с актуальным списком участников.
type ChatRepository interface {
	CreateRoom(ctx context.Context, name string, createdBy domain.UserID) (*domain.Room, error)
	ListRooms(ctx context.Context, userID domain.UserID) ([]domain.Room, error)
	GetRoom(ctx context.Context, id domain.RoomID) (*domain.Room, error)

	CreateMessage(ctx context.Context, roomID domain.RoomID, createdBy domain.UserID, content string) (*domain.Message, error)
	UpdateMessage(ctx context.Context, id domain.MessageID, content string) (*domain.Message, error)
	GetMessage(ctx context.Context, id domain.MessageID) (*domain.Message, error)
	ListMessages(ctx context.Context, f ListMessagesFilter) ([]domain.Message, error)
}
