package postgres

import (
	"context"
	"errors"

	"github.com/Nycles/chat-service/internal/domain"
	"github.com/Nycles/chat-service/internal/repository"
	"github.com/Nycles/chat-service/internal/repository/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatRepo struct {
	pool *pgxpool.Pool
}

func NewChatRepo(pool *pgxpool.Pool) *ChatRepo {
	return &ChatRepo{pool: pool}
}

// CreateRoom — создатель сразу становится участником (в одной транзакции).
func (r *ChatRepo) CreateRoom(ctx context.Context, name string, createdBy domain.UserID) (*domain.Room, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var room domain.Room
	err = tx.QueryRow(ctx, queries.QueryCreateRoom, name, int64(createdBy)).
		Scan(&room.ID, &room.Name, &room.CreatedBy, &room.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}

	if _, err := tx.Exec(ctx, queries.QueryJoinRoom, int64(room.ID), int64(createdBy)); err != nil {
		return nil, mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	room.Participants, err = r.listParticipants(ctx, r.pool, room.ID)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *ChatRepo) ListRooms(ctx context.Context, userID domain.UserID) ([]domain.Room, error) {
	rows, err := r.pool.Query(ctx, queries.QueryListRoomsByUser, int64(userID))
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.CreatedBy, &rm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}

	return out, rows.Err()
}

// GetRoom возвращает комнату вместе с актуальным списком участников.
func (r *ChatRepo) GetRoom(ctx context.Context, id domain.RoomID) (*domain.Room, error) {
	var room domain.Room
	err := r.pool.QueryRow(ctx, queries.QueryGetRoom, int64(id)).
		Scan(&room.ID, &room.Name, &room.CreatedBy, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}

	room.Participants, err = r.listParticipants(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *ChatRepo) CreateMessage(ctx context.Context, roomID domain.RoomID, createdBy domain.UserID, content string) (*domain.Message, error) {
	return r.scanMessage(r.pool.QueryRow(ctx, queries.QueryCreateMessage, content, int64(roomID), int64(createdBy)))
}

func (r *ChatRepo) UpdateMessage(ctx context.Context, id domain.MessageID, content string) (*domain.Message, error) {
	return r.scanMessage(r.pool.QueryRow(ctx, queries.QueryUpdateMessage, int64(id), content))
}

func (r *ChatRepo) GetMessage(ctx context.Context, id domain.MessageID) (*domain.Message, error) {
	return r.scanMessage(r.pool.QueryRow(ctx, queries.QueryGetMessage, int64(id)))
}

func (r *ChatRepo) ListMessages(ctx context.Context, f repository.ListMessagesFilter) ([]domain.Message, error) {
	size := f.Size
	if size <= 0 {
		size = 50
	}
	if size > 100 {
		size = 100
	}
	offset := 0
	if f.Page > 1 {
		offset = (f.Page - 1) * size
	}

	rows, err := r.pool.Query(ctx, queries.QueryListMessages, int64(f.RoomID), size, offset)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Content, &m.RoomID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *ChatRepo) listParticipants(ctx context.Context, q querier, roomID domain.RoomID) ([]domain.Participant, error) {
	rows, err := q.Query(ctx, queries.QueryListRoomParticipants, int64(roomID))
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var out []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.Email, &p.Username); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *ChatRepo) scanMessage(row pgx.Row) (*domain.Message, error) {
	var m domain.Message
	err := row.Scan(&m.ID, &m.Content, &m.RoomID, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}

	return &m, nil
}
