package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nycles/chat-service/internal/domain"
	"github.com/Nycles/chat-service/internal/repository"
	"github.com/Nycles/chat-service/internal/security"
)

// FileStorage — внешнее хранилище файлов (S3-совместимое).
type FileStorage interface {
	UploadFile(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type RegisterResult struct {
	User      *domain.User
	AuthToken string
}

type LoginResult struct {
	User      *domain.User
	AuthToken string
}

type UserService struct {
	users      repository.UserRepository
	files      FileStorage
	jwt        *security.JWTSigner
	passPolicy security.BcryptConfig
	now        func() time.Time
}

func NewUserService(
	users repository.UserRepository,
	files FileStorage,
	jwt *security.JWTSigner,
	passPolicy security.BcryptConfig,
	now func() time.Time,
) *UserService {
	if now == nil {
		now = time.Now
	}

	return &UserService{
		users:      users,
		files:      files,
		jwt:        jwt,
		passPolicy: passPolicy,
		now:        now,
	}
}

// Register создает пользователя и сразу выдает access-токен
func (s *UserService) Register(ctx context.Context, email, username, password string) (*RegisterResult, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		slog.Info("user.register: email already exists")
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		slog.Error("user.register.getByEmail failed", slog.Any("err", err))
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		slog.Info("user.register: username already exists")
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		slog.Error("user.register.getByUsername failed", slog.Any("err", err))
		return nil, err
	}

	hash, err := security.HashPassword(password, &s.passPolicy)
	if err != nil {
		slog.Error("user.register.hashPassword failed", slog.Any("err", err))
		return nil, err
	}

	u, err := domain.NewUser(email, username, hash, s.now())
	if err != nil {
		slog.Error("user.register.newUser failed", slog.Any("err", err))
		return nil, err
	}

	id, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, domain.ErrEmailTaken
		}
		slog.Error("user.register.createUser failed", slog.Any("err", err))
		return nil, err
	}
	u.ID = id

	token, err := s.jwt.SignAccessToken(u.ID, s.now())
	if err != nil {
		slog.Error("user.register.signAccessToken failed", slog.Any("err", err))
		return nil, err
	}

	return &RegisterResult{User: u, AuthToken: token}, nil
}

// Login аутентифицирует по email+пароль и выдает access-токен
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Info("user.login: user not found")
			return nil, domain.ErrInvalidCredentials
		}
		slog.Error("user.login.getByEmail failed", slog.Any("err", err))
		return nil, err
	}

	if err := security.ComparePassword(u.PasswordHash, password); err != nil {
		slog.Info("user.login: password mismatch", "user_id", u.ID)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.jwt.SignAccessToken(u.ID, s.now())
	if err != nil {
		slog.Error("user.login.signAccessToken failed", slog.Any("err", err))
		return nil, err
	}

	return &LoginResult{User: u, AuthToken: token}, nil
}

// UploadImage кладет аватар в объектное хранилище и обновляет image_url.
func (s *UserService) UploadImage(ctx context.Context, userID domain.UserID, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("user/images/%d", int64(userID))

	imageURL, err := s.files.UploadFile(ctx, key, data, contentType)
	if err != nil {
		slog.Error("user.uploadImage.uploadFile failed", slog.Any("err", err))
		return "", err
	}

	if err := s.users.UpdateImageURL(ctx, userID, imageURL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", domain.ErrUserNotFound
		}
		slog.Error("user.uploadImage.updateImageURL failed", slog.Any("err", err))
		return "", err
	}

	return imageURL, nil
}
