package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Nycles/chat-service/internal/domain"
	"github.com/Nycles/chat-service/internal/repository"
)

// fakeChatRepo — память вместо postgres; счетчики записей нужны тестам
// на то, что отказ в доступе происходит до обращения к хранилищу.
type fakeChatRepo struct {
	rooms    map[domain.RoomID]*domain.Room
	messages map[domain.MessageID]*domain.Message

	nextMessageID domain.MessageID
	createCalls   int
	updateCalls   int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		rooms:         make(map[domain.RoomID]*domain.Room),
		messages:      make(map[domain.MessageID]*domain.Message),
		nextMessageID: 1,
	}
}

func (r *fakeChatRepo) addRoom(id domain.RoomID, participants ...domain.UserID) {
	room := &domain.Room{ID: id, Name: "room", CreatedBy: participants[0], CreatedAt: time.Now()}
	for _, p := range participants {
		room.Participants = append(room.Participants, domain.Participant{ID: p})
	}
	r.rooms[id] = room
}

func (r *fakeChatRepo) addMessage(id domain.MessageID, roomID domain.RoomID, author domain.UserID, content string) {
	r.messages[id] = &domain.Message{ID: id, Content: content, RoomID: roomID, CreatedBy: author, CreatedAt: time.Now()}
}

func (r *fakeChatRepo) CreateRoom(_ context.Context, name string, createdBy domain.UserID) (*domain.Room, error) {
	id := domain.RoomID(len(r.rooms) + 1)
	room := &domain.Room{
		ID: id, Name: name, CreatedBy: createdBy, CreatedAt: time.Now(),
		Participants: []domain.Participant{{ID: createdBy}},
	}
	r.rooms[id] = room
	return room, nil
}

func (r *fakeChatRepo) ListRooms(_ context.Context, userID domain.UserID) ([]domain.Room, error) {
	var out []domain.Room
	for _, room := range r.rooms {
		for _, p := range room.Participants {
			if p.ID == userID {
				out = append(out, *room)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeChatRepo) GetRoom(_ context.Context, id domain.RoomID) (*domain.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return room, nil
}

func (r *fakeChatRepo) CreateMessage(_ context.Context, roomID domain.RoomID, createdBy domain.UserID, content string) (*domain.Message, error) {
	r.createCalls++
	msg := &domain.Message{
		ID: r.nextMessageID, Content: content, RoomID: roomID,
		CreatedBy: createdBy, CreatedAt: time.Now(),
	}
	r.nextMessageID++
	r.messages[msg.ID] = msg
	return msg, nil
}

func (r *fakeChatRepo) UpdateMessage(_ context.Context, id domain.MessageID, content string) (*domain.Message, error) {
	r.updateCalls++
	msg, ok := r.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	msg.Content = content
	return msg, nil
}

func (r *fakeChatRepo) GetMessage(_ context.Context, id domain.MessageID) (*domain.Message, error) {
	msg, ok := r.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return msg, nil
}

func (r *fakeChatRepo) ListMessages(_ context.Context, f repository.ListMessagesFilter) ([]domain.Message, error) {
	var out []domain.Message
	for _, msg := range r.messages {
		if msg.RoomID == f.RoomID {
			out = append(out, *msg)
		}
	}
	return out, nil
}

func TestChatService_CreateMessage(t *testing.T) {
	repo := newFakeChatRepo()
	repo.addRoom(42, 1, 2, 3)
	svc := NewChatService(repo)

	room, msg, err := svc.CreateMessage(context.Background(), 42, 2, "  hi  ")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if room.ID != 42 || len(room.Participants) != 3 {
		t.Fatalf("unexpected room: %+v", room)
	}
	if msg.Content != "hi" || msg.CreatedBy != 2 || msg.RoomID != 42 {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestChatService_CreateMessage_RoomNotFound(t *testing.T) {
	svc := NewChatService(newFakeChatRepo())

	_, _, err := svc.CreateMessage(context.Background(), 99, 1, "hi")
	if !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestChatService_CreateMessage_NotParticipant(t *testing.T) {
	repo := newFakeChatRepo()
	repo.addRoom(42, 1, 2)
	svc := NewChatService(repo)

	_, _, err := svc.CreateMessage(context.Background(), 42, 7, "hi")
	if !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatal("message must not be persisted for a non-participant")
	}
}

func TestChatService_CreateMessage_EmptyContent(t *testing.T) {
	repo := newFakeChatRepo()
	repo.addRoom(1, 1)
	svc := NewChatService(repo)

	_, _, err := svc.CreateMessage(context.Background(), 1, 1, "   ")
	if !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}

	_, _, err = svc.CreateMessage(context.Background(), 1, 1, strings.Repeat("a", maxMessageLength+1))
	if !errors.Is(err, domain.ErrMessageTooLong) {
		t.Fatalf("expected ErrMessageTooLong, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatal("invalid content must not reach the repository")
	}
}

func TestChatService_UpdateMessage(t *testing.T) {
	repo := newFakeChatRepo()
	repo.addRoom(42, 1, 2)
	repo.addMessage(7, 42, 2, "original")
	svc := NewChatService(repo)

	room, msg, err := svc.UpdateMessage(context.Background(), 7, 2, "edited")
	if err != nil {
		t.Fatalf("UpdateMessage: %v", err)
	}
	if room.ID != 42 {
		t.Fatalf("unexpected room: %+v", room)
	}
	if msg.Content != "edited" || msg.ID != 7 {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

// Правка чужого сообщения отклоняется всегда, даже участнику комнаты,
// и без обращения к хранилищу на запись.
func TestChatService_UpdateMessage_NotAuthor(t *testing.T) {
	repo := newFakeChatRepo()
	repo.addRoom(42, 1, 2, 3)
	repo.addMessage(7, 42, 2, "original")
	svc := NewChatService(repo)

	_, _, err := svc.UpdateMessage(context.Background(), 7, 3, "hacked")
	if !errors.Is(err, domain.ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatal("non-author update must not reach the repository")
	}
	if repo.messages[7].Content != "original" {
		t.Fatal("message content must be untouched")
	}
}

// Автор, покинувший комнату, теряет право редактировать свои сообщения в ней.
func TestChatService_UpdateMessage_AuthorLeftRoom(t *testing.T) {
	repo := newFakeChatRepo()
	repo.addRoom(42, 1, 3)
	repo.addMessage(7, 42, 2, "original")
	svc := NewChatService(repo)

	_, _, err := svc.UpdateMessage(context.Background(), 7, 2, "edited")
	if !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatal("update must not reach the repository")
	}
}

func TestChatService_UpdateMessage_NotFound(t *testing.T) {
	repo := newFakeChatRepo()
	repo.addRoom(42, 1)
	svc := NewChatService(repo)

	_, _, err := svc.UpdateMessage(context.Background(), 99, 1, "edited")
	if !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestChatService_ListMessages_RequiresParticipation(t *testing.T) {
	repo := newFakeChatRepo()
	repo.addRoom(42, 1, 2)
	repo.addMessage(1, 42, 1, "a")
	repo.addMessage(2, 42, 2, "b")
	svc := NewChatService(repo)

	msgs, err := svc.ListMessages(context.Background(), 42, 2, 1, 20)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	if _, err := svc.ListMessages(context.Background(), 42, 9, 1, 20); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestChatService_CreateRoom(t *testing.T) {
	repo := newFakeChatRepo()
	svc := NewChatService(repo)

	room, err := svc.CreateRoom(context.Background(), "  general  ", 5)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.Name != "general" || room.CreatedBy != 5 {
		t.Fatalf("unexpected room: %+v", room)
	}
	if len(room.Participants) != 1 || room.Participants[0].ID != 5 {
		t.Fatal("creator must be the first participant")
	}

	if _, err := svc.CreateRoom(context.Background(), "   ", 5); !errors.Is(err, repository.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}
