package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Nycles/chat-service/internal/domain"
	"github.com/Nycles/chat-service/internal/repository"

	"github.com/samber/lo"
)

const maxMessageLength = 4000

type ChatService struct {
	chat repository.ChatRepository
}

func NewChatService(chat repository.ChatRepository) *ChatService {
	return &ChatService{chat: chat}
}

// CreateMessage сохраняет сообщение от actor в комнате.
// Возвращает комнату с актуальными участниками — по ней рассылаются события.
// Порядок строгий: комната -> участие -> запись; до записи ничего не рассылается.
func (s *ChatService) CreateMessage(ctx context.Context, roomID domain.RoomID, actor domain.UserID, content string) (*domain.Room, *domain.Message, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, nil, err
	}

	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}

	if !isParticipant(room, actor) {
		slog.Info("chat.createMessage: user is not a room participant",
			"room_id", roomID, "user_id", actor)
		return nil, nil, domain.ErrNotParticipant
	}

	msg, err := s.chat.CreateMessage(ctx, roomID, actor, content)
	if err != nil {
		slog.Error("chat.createMessage failed", slog.Any("err", err))
		return nil, nil, fmt.Errorf("chatRepo.CreateMessage: %w", err)
	}

	return room, msg, nil
}

// UpdateMessage редактирует сообщение.
// Право на правку даёт авторство; участие в комнате перепроверяется отдельно,
// так как состав комнаты мог измениться после создания сообщения.
func (s *ChatService) UpdateMessage(ctx context.Context, messageID domain.MessageID, actor domain.UserID, content string) (*domain.Room, *domain.Message, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, nil, err
	}

	msg, err := s.chat.GetMessage(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, domain.ErrMessageNotFound
		}
		slog.Error("chat.updateMessage.getMessage failed", slog.Any("err", err))
		return nil, nil, fmt.Errorf("chatRepo.GetMessage: %w", err)
	}

	if msg.CreatedBy != actor {
		slog.Info("chat.updateMessage: user is not the message author",
			"message_id", messageID, "user_id", actor, "author_id", msg.CreatedBy)
		return nil, nil, domain.ErrNotAuthor
	}

	room, err := s.getRoom(ctx, msg.RoomID)
	if err != nil {
		return nil, nil, err
	}

	if !isParticipant(room, actor) {
		slog.Info("chat.updateMessage: author left the room",
			"room_id", room.ID, "user_id", actor)
		return nil, nil, domain.ErrNotParticipant
	}

	updated, err := s.chat.UpdateMessage(ctx, messageID, content)
	if err != nil {
		slog.Error("chat.updateMessage failed", slog.Any("err", err))
		return nil, nil, fmt.Errorf("chatRepo.UpdateMessage: %w", err)
	}

	return room, updated, nil
}

// ListMessages — история комнаты; доступна только её участникам.
func (s *ChatService) ListMessages(ctx context.Context, roomID domain.RoomID, actor domain.UserID, page, size int) ([]domain.Message, error) {
	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if !isParticipant(room, actor) {
		return nil, domain.ErrNotParticipant
	}

	msgs, err := s.chat.ListMessages(ctx, repository.ListMessagesFilter{
		RoomID: roomID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		slog.Error("chat.listMessages failed", slog.Any("err", err))
		return nil, fmt.Errorf("chatRepo.ListMessages: %w", err)
	}

	return msgs, nil
}

func (s *ChatService) CreateRoom(ctx context.Context, name string, actor domain.UserID) (*domain.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, repository.ErrInvalidInput
	}

	room, err := s.chat.CreateRoom(ctx, name, actor)
	if err != nil {
		slog.Error("chat.createRoom failed", slog.Any("err", err))
		return nil, fmt.Errorf("chatRepo.CreateRoom: %w", err)
	}

	return room, nil
}

func (s *ChatService) ListRooms(ctx context.Context, actor domain.UserID) ([]domain.Room, error) {
	rooms, err := s.chat.ListRooms(ctx, actor)
	if err != nil {
		slog.Error("chat.listRooms failed", slog.Any("err", err))
		return nil, fmt.Errorf("chatRepo.ListRooms: %w", err)
	}

	return rooms, nil
}

func (s *ChatService) getRoom(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	room, err := s.chat.GetRoom(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		slog.Error("chat.getRoom failed", slog.Any("err", err))
		return nil, fmt.Errorf("chatRepo.GetRoom: %w", err)
	}

	return room, nil
}

func isParticipant(room *domain.Room, userID domain.UserID) bool {
	return lo.SomeBy(room.Participants, func(p domain.Participant) bool {
		return p.ID == userID
	})
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.ErrEmptyMessage
	}
	if len(content) > maxMessageLength {
		return "", domain.ErrMessageTooLong
	}

	return content, nil
}
