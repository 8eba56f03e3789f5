package http

import (
	"context"

	"github.com/Nycles/chat-service/internal/domain"
	"github.com/Nycles/chat-service/internal/service"

	"github.com/go-playground/validator/v10"
)

type UserSvc interface {
	Register(ctx context.Context, email, username, password string) (*service.RegisterResult, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	UploadImage(ctx context.Context, userID domain.UserID, data []byte, contentType string) (string, error)
}

type ChatSvc interface {
	CreateRoom(ctx context.Context, name string, actor domain.UserID) (*domain.Room, error)
	ListRooms(ctx context.Context, actor domain.UserID) ([]domain.Room, error)
	ListMessages(ctx context.Context, roomID domain.RoomID, actor domain.UserID, page, size int) ([]domain.Message, error)
}

type Handler struct {
	userSvc UserSvc
	chatSvc ChatSvc

	validate         *validator.Validate
	maxUploadBytes   int64
	allowedImageMime []string
}

type HandlerConfig struct {
	MaxUploadBytes   int64
	AllowedImageMime []string
}

func NewHandler(userSvc UserSvc, chatSvc ChatSvc, cfg HandlerConfig) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 2 << 20 // 2MB
	}
	if len(cfg.AllowedImageMime) == 0 {
		cfg.AllowedImageMime = []string{"image/jpeg", "image/png"}
	}

	return &Handler{
		userSvc:          userSvc,
		chatSvc:          chatSvc,
		validate:         validator.New(),
		maxUploadBytes:   cfg.MaxUploadBytes,
		allowedImageMime: cfg.AllowedImageMime,
	}
}
