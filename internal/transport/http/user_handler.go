package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Nycles/chat-service/internal/domain"
	httpmw "github.com/Nycles/chat-service/internal/transport/http/middleware"
	"github.com/Nycles/chat-service/pkg/httputil"

	"github.com/samber/lo"
)

// POST /api/v1/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json", "validation")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		slog.Info("handler.Register: invalid request body", "err", err)
		httputil.Error(w, http.StatusBadRequest, "invalid request body", "validation")
		return
	}

	res, err := h.userSvc.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrUsernameTaken):
			httputil.Error(w, http.StatusConflict, err.Error(), "already_exists")
		default:
			slog.Error("handler.Register failed", slog.Any("err", err))
			httputil.Error(w, http.StatusInternalServerError, "failed to register user", "")
		}
		return
	}

	httputil.JSON(w, http.StatusCreated, AuthResponse{AuthToken: res.AuthToken})
}

// POST /api/v1/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json", "validation")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		slog.Info("handler.Login: invalid request body", "err", err)
		httputil.Error(w, http.StatusBadRequest, "invalid request body", "validation")
		return
	}

	res, err := h.userSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.Error(w, http.StatusUnauthorized, "invalid credentials", "invalid_credentials")
			return
		}
		slog.Error("handler.Login failed", slog.Any("err", err))
		httputil.Error(w, http.StatusInternalServerError, "failed to login user", "")
		return
	}

	httputil.JSON(w, http.StatusOK, AuthResponse{AuthToken: res.AuthToken})
}

// POST /api/v1/user/image — multipart, поле "file"
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID := httpmw.UserIDFromCtx(r.Context())

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid multipart form", "validation")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "no file uploaded", "no_file_uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !lo.Contains(h.allowedImageMime, contentType) {
		slog.Info("handler.UploadImage: mime type not allowed", "content_type", contentType)
		httputil.Error(w, http.StatusBadRequest, "mime type is not allowed", "invalid_mime_type")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		slog.Error("handler.UploadImage: read file failed", slog.Any("err", err))
		httputil.Error(w, http.StatusInternalServerError, "failed to read file", "")
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		httputil.Error(w, http.StatusBadRequest, "file is too large", "file_is_too_large")
		return
	}

	imageURL, err := h.userSvc.UploadImage(r.Context(), userID, data, contentType)
	if err != nil {
		slog.Error("handler.UploadImage failed", slog.Any("err", err))
		httputil.Error(w, http.StatusInternalServerError, "failed to upload user image", "")
		return
	}

	httputil.JSON(w, http.StatusOK, UploadImageResponse{ImageURL: imageURL})
}
