package ws

import (
	"log/slog"

	"github.com/Nycles/chat-service/internal/domain"
)

// Fanout — доставка события всем достижимым участникам комнаты, кроме актора.
type Fanout struct {
	registry *Registry
}

func NewFanout(registry *Registry) *Fanout {
	return &Fanout{registry: registry}
}

// Deliver вызывается строго после успешной записи сообщения в БД.
// Достижимость получателя определяется по Registry в момент доставки,
// а не по снапшоту: отключившийся к этому моменту участник молча пропускается.
// Ошибка отправки одному получателю не прерывает доставку остальным.
func (f *Fanout) Deliver(event string, room *domain.Room, actor domain.UserID, msg *domain.Message) {
	payload := newMessagePayload(msg)

	for _, p := range room.Participants {
		if p.ID == actor {
			continue
		}

		c, ok := f.registry.Lookup(p.ID)
		if !ok {
			continue // не подключен — офлайн-доставки нет
		}

		if err := c.Deliver(event, payload); err != nil {
			slog.Warn("ws fanout deliver failed",
				"event", event,
				"room_id", room.ID,
				"recipient_id", p.ID,
				"err", err,
			)
		}
	}
}
