package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/Nycles/chat-service/internal/domain"

	"github.com/gorilla/websocket"
)

// Conn — непрозрачный хендл доставки; бизнес-логика не видит сокет.
type Conn interface {
	Deliver(event string, payload any) error
	Close() error
	UserID() domain.UserID
}

// Состояния соединения; переходы только вперед:
// unauthenticated -> authenticated -> closed.
type connState int

const (
	stateUnauthenticated connState = iota
	stateAuthenticated
	stateClosed
)

var (
	errConnClosed       = errors.New("ws: connection closed")
	errNotAuthenticated = errors.New("ws: connection not authenticated")
	errBadTransition    = errors.New("ws: invalid state transition")
)

type wsConn struct {
	conn          *websocket.Conn
	establishedAt time.Time

	mu     sync.Mutex // state + userID
	state  connState
	userID domain.UserID

	sendMu chan struct{} // семафор на запись в сокет
	closed chan struct{}

	writeTimeout time.Duration
}

func newWsConn(c *websocket.Conn, writeTimeout time.Duration) *wsConn {
	return &wsConn{
		conn:          c,
		establishedAt: time.Now(),
		state:         stateUnauthenticated,
		sendMu:        make(chan struct{}, 1),
		closed:        make(chan struct{}),
		writeTimeout:  writeTimeout,
	}
}

// authenticate привязывает личность к соединению; допустим ровно один раз.
func (c *wsConn) authenticate(userID domain.UserID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateUnauthenticated {
		return errBadTransition
	}
	c.state = stateAuthenticated
	c.userID = userID

	return nil
}

func (c *wsConn) isAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state == stateAuthenticated
}

func (c *wsConn) UserID() domain.UserID {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.userID
}

func (c *wsConn) Deliver(event string, payload any) error {
	select {
	case <-c.closed:
		return errConnClosed
	default:
	}
	if !c.isAuthenticated() {
		return errNotAuthenticated
	}

	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))

	return c.conn.WriteJSON(Message{Type: event, Payload: payload})
}

// Close — терминальный переход; выполняется ровно один раз.
func (c *wsConn) Close() error {
	c.mu.Lock()
	already := c.state == stateClosed
	c.state = stateClosed
	c.mu.Unlock()

	if already {
		return nil
	}
	close(c.closed)

	return c.conn.Close()
}
