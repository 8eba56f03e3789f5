package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Nycles/chat-service/internal/domain"
	"github.com/Nycles/chat-service/internal/security"

	"github.com/gorilla/websocket"
)

// ChatSvc — create/update проходят через сервис: он владеет авторизацией
// и порядком «сначала запись, потом рассылка».
type ChatSvc interface {
	CreateMessage(ctx context.Context, roomID domain.RoomID, actor domain.UserID, content string) (*domain.Room, *domain.Message, error)
	UpdateMessage(ctx context.Context, messageID domain.MessageID, actor domain.UserID, content string) (*domain.Room, *domain.Message, error)
}

// TokenVerifier проверяет handshake-токен и извлекает личность.
type TokenVerifier interface {
	Verify(token string) (domain.UserID, error)
}

type Server struct {
	upgrader websocket.Upgrader
	registry *Registry
	fanout   *Fanout
	chatSvc  ChatSvc
	verifier TokenVerifier

	pingEvery    time.Duration
	writeTimeout time.Duration
	reqTimeout   time.Duration
}

func NewServer(registry *Registry, chatSvc ChatSvc, verifier TokenVerifier) *Server {
	return &Server{
		registry: registry,
		fanout:   NewFanout(registry),
		chatSvc:  chatSvc,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery:    15 * time.Second,
		writeTimeout: 5 * time.Second,
		reqTimeout:   10 * time.Second,
	}
}

// WS endpoint: GET /ws?access_token=... (или Authorization: Bearer).
// Верификация идет до upgrade: провалившийся handshake не получает
// ни соединения, ни записи в Registry, ни цикла событий.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	token, err := handshakeToken(r)

	var userID domain.UserID
	if err == nil {
		userID, err = s.verifier.Verify(token)
	}
	if err != nil {
		slog.Warn("ws handshake rejected", "err", err)
		http.Error(w, `{"error":"`+authErrorMessage(err)+`"}`, http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn, s.writeTimeout)
	if err := c.authenticate(userID); err != nil {
		slog.Error("ws authenticate failed", "user_id", userID, "err", err)
		_ = c.Close()
		return
	}

	if prev, replaced := s.registry.Register(userID, c); replaced {
		// прежний хендл остается бесхозным и не закрывается (политика last-wins)
		slog.Info("ws reconnect: previous connection superseded",
			"user_id", userID, "established_at", prevEstablishedAt(prev))
	}
	slog.Info("ws connected", "user_id", userID)

	go s.writeLoop(r.Context(), c)
	s.readLoop(r.Context(), c)

	s.registry.Unregister(userID, c)
	_ = c.Close()
	slog.Info("ws disconnected", "user_id", userID)
}

// readLoop — диспетчер событий соединения.
func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.sendError(c, ErrTypeInvalid, "invalid event json")
			continue
		}

		// события принимаются только в состоянии authenticated
		if !c.isAuthenticated() {
			return
		}

		switch env.Type {
		case EventCreateMessage:
			s.handleCreateMessage(ctx, c, env.Payload)
		case EventUpdateMessage:
			s.handleUpdateMessage(ctx, c, env.Payload)
		default:
			s.sendError(c, ErrTypeInvalid, "unknown event type: "+env.Type)
		}
	}
}

func (s *Server) handleCreateMessage(ctx context.Context, c *wsConn, raw json.RawMessage) {
	var p CreateMessagePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		s.sendError(c, ErrTypeInvalid, "invalid create_message payload")
		return
	}

	// актор — только из состояния соединения, никогда из payload
	actor := c.UserID()

	ctx, cancel := context.WithTimeout(ctx, s.reqTimeout)
	defer cancel()

	room, msg, err := s.chatSvc.CreateMessage(ctx, domain.RoomID(p.RoomID), actor, p.Content)
	if err != nil {
		slog.Info("ws create_message failed", "room_id", p.RoomID, "user_id", actor, "err", err)
		s.sendServiceError(c, err)
		return
	}

	s.fanout.Deliver(EventMessage, room, actor, msg)
}

func (s *Server) handleUpdateMessage(ctx context.Context, c *wsConn, raw json.RawMessage) {
	var p UpdateMessagePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		s.sendError(c, ErrTypeInvalid, "invalid update_message payload")
		return
	}

	actor := c.UserID()

	ctx, cancel := context.WithTimeout(ctx, s.reqTimeout)
	defer cancel()

	room, msg, err := s.chatSvc.UpdateMessage(ctx, domain.MessageID(p.MessageID), actor, p.Content)
	if err != nil {
		slog.Info("ws update_message failed", "message_id", p.MessageID, "user_id", actor, "err", err)
		s.sendServiceError(c, err)
		return
	}

	s.fanout.Deliver(EventMessageUpdate, room, actor, msg)
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.writeTimeout))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

// sendServiceError — ошибка запроса уходит только инициатору.
func (s *Server) sendServiceError(c *wsConn, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrMessageNotFound):
		s.sendError(c, ErrTypeNotFound, err.Error())
	case errors.Is(err, domain.ErrNotParticipant), errors.Is(err, domain.ErrNotAuthor):
		s.sendError(c, ErrTypeForbidden, err.Error())
	case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrMessageTooLong):
		s.sendError(c, ErrTypeInvalid, err.Error())
	default:
		// без деталей наружу; подробности уже в серверном логе
		s.sendError(c, ErrTypeInternal, "internal server error")
	}
}

func (s *Server) sendError(c *wsConn, errType, msg string) {
	if err := c.Deliver(EventError, ErrorPayload{Type: errType, Message: msg}); err != nil {
		slog.Debug("ws send error event failed", "err", err)
	}
}

// handshakeToken — Authorization: Bearer имеет приоритет, затем access_token.
func handshakeToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		return security.BearerToken(h)
	}

	token := strings.TrimSpace(r.URL.Query().Get("access_token"))
	if token == "" {
		return "", security.ErrTokenMissing
	}
	return token, nil
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, security.ErrTokenMissing):
		return "missing auth token"
	case errors.Is(err, security.ErrTokenMalformed):
		return "malformed auth credential"
	case errors.Is(err, security.ErrTokenExpired):
		return "token expired, please login again"
	case errors.Is(err, security.ErrTokenInvalid), errors.Is(err, security.ErrInvalidIssuer), errors.Is(err, security.ErrInvalidSubject):
		return "invalid token, please try again"
	default:
		return "internal server error"
	}
}

func prevEstablishedAt(c Conn) time.Time {
	if wc, ok := c.(*wsConn); ok {
		return wc.establishedAt
	}
	return time.Time{}
}
