package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Nycles/chat-service/internal/domain"
	httpmw "github.com/Nycles/chat-service/internal/transport/http/middleware"
	"github.com/Nycles/chat-service/pkg/httputil"

	"github.com/samber/lo"
)

// POST /api/v1/chat/rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json", "validation")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body", "validation")
		return
	}

	room, err := h.chatSvc.CreateRoom(r.Context(), req.Name, httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		slog.Error("handler.CreateRoom failed", slog.Any("err", err))
		httputil.Error(w, http.StatusInternalServerError, "failed to create room", "")
		return
	}

	httputil.JSON(w, http.StatusCreated, newRoomItem(*room))
}

// GET /api/v1/chat/rooms
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.chatSvc.ListRooms(r.Context(), httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		slog.Error("handler.ListRooms failed", slog.Any("err", err))
		httputil.Error(w, http.StatusInternalServerError, "failed to list rooms", "")
		return
	}

	httputil.OK(w, lo.Map(rooms, func(rm domain.Room, _ int) RoomItem {
		return newRoomItem(rm)
	}))
}

// GET /api/v1/chat/messages?room_id=&page=&size=
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	roomID, err := strconv.ParseInt(q.Get("room_id"), 10, 64)
	if err != nil || roomID <= 0 {
		httputil.Error(w, http.StatusBadRequest, "invalid room_id", "validation")
		return
	}
	page := intQueryParam(q.Get("page"), 1)
	size := intQueryParam(q.Get("size"), 50)

	msgs, err := h.chatSvc.ListMessages(r.Context(), domain.RoomID(roomID), httpmw.UserIDFromCtx(r.Context()), page, size)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			httputil.Error(w, http.StatusNotFound, "room not found", "not_found")
		case errors.Is(err, domain.ErrNotParticipant):
			httputil.Error(w, http.StatusForbidden, "user is not a room participant", "forbidden")
		default:
			slog.Error("handler.ListMessages failed", slog.Any("err", err))
			httputil.Error(w, http.StatusInternalServerError, "failed to get chat messages", "")
		}
		return
	}

	httputil.OK(w, lo.Map(msgs, func(m domain.Message, _ int) MessageItem {
		return newMessageItem(m)
	}))
}

func intQueryParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
