package ws

import (
	"sync"

	"github.com/Nycles/chat-service/internal/domain"
)

// Registry — общепроцессная карта userID -> живое соединение.
// Единственное разделяемое состояние между соединениями; весь доступ
// только через Register/Unregister/Lookup, без внешней итерации.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.UserID]Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.UserID]Conn)}
}

// Register — последняя регистрация выигрывает: прежняя запись замещается,
// вытесненный хендл возвращается вызывающему и не закрывается (политика).
func (r *Registry) Register(userID domain.UserID, c Conn) (prev Conn, replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, replaced = r.conns[userID]
	r.conns[userID] = c

	return prev, replaced
}

// Unregister удаляет запись, только если она всё ещё указывает на c:
// умирающее вытесненное соединение не должно снять свежую регистрацию.
// Повторный вызов — no-op.
func (r *Registry) Unregister(userID domain.UserID, c Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.conns[userID]
	if !ok || cur != c {
		return false
	}
	delete(r.conns, userID)

	return true
}

func (r *Registry) Lookup(userID domain.UserID) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.conns[userID]
	return c, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}
