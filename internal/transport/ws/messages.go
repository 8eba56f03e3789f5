package ws

import (
	"encoding/json"
	"time"

	"github.com/Nycles/chat-service/internal/domain"
)

// Типы событий протокола
const (
	// входящие
	EventCreateMessage = "create_message"
	EventUpdateMessage = "update_message"

	// исходящие
	EventMessage       = "message"        // новое сообщение участникам комнаты
	EventMessageUpdate = "message_update" // правка сообщения участникам комнаты
	EventError         = "error"          // только инициатору запроса
)

// Envelope — конверт входящего события; payload разбирается по Type.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type CreateMessagePayload struct {
	RoomID  int64  `json:"room_id"`
	Content string `json:"content"`
}

type UpdateMessagePayload struct {
	MessageID int64  `json:"message_id"`
	Content   string `json:"content"`
}

type MessagePayload struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	RoomID    int64     `json:"room_id"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func newMessagePayload(m *domain.Message) MessagePayload {
	return MessagePayload{
		ID:        int64(m.ID),
		Content:   m.Content,
		RoomID:    int64(m.RoomID),
		CreatedBy: int64(m.CreatedBy),
		CreatedAt: m.CreatedAt,
	}
}

// Типы ошибок, отдаваемых клиенту
const (
	ErrTypeInvalid   = "invalid_request"
	ErrTypeNotFound  = "not_found"
	ErrTypeForbidden = "forbidden"
	ErrTypeInternal  = "internal"
)

type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
