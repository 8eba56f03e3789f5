package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/Nycles/chat-service/internal/domain"
	"github.com/Nycles/chat-service/internal/repository"
	"github.com/Nycles/chat-service/internal/repository/queries"

	"github.com/jackc/pgx/v5"
)

type UserRepo struct {
	q querier
}

// NewUserRepoFromPool - конструктор от пула (*pgxpool.Pool)
func NewUserRepoFromPool(q querier) *UserRepo {
	return &UserRepo{q: q}
}

// NewUserRepoFromTx - конструктор от транзакции (pgx.Tx), удобно для составных операций
func NewUserRepoFromTx(tx pgx.Tx) *UserRepo {
	return &UserRepo{q: tx}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (domain.UserID, error) {
	var id int64
	err := r.q.QueryRow(
		ctx,
		queries.QueryCreateUser,
		u.Email,
		u.Username,
		u.PasswordHash,
		u.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}

	return domain.UserID(id), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return r.getOne(ctx, queries.QueryGetUserByID, int64(id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, queries.QueryGetUserByEmail, strings.TrimSpace(strings.ToLower(email)))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, queries.QueryGetUserByUsername, strings.TrimSpace(username))
}

func (r *UserRepo) UpdateImageURL(ctx context.Context, id domain.UserID, imageURL string) error {
	tag, err := r.q.Exec(ctx, queries.QueryUpdateUserImageURL, int64(id), imageURL)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepo) getOne(ctx context.Context, sql string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.q.QueryRow(ctx, sql, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.ImageURL,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, mapPgError(err)
	}

	return &u, nil
}
