package notifications

import (
	"sync"
	"time"
)

type Event struct {
	Type       string      `json:"type"`
	Collection string      `json:"collection,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       interface{} `json:"data,omitempty"`
}

// Hub рассылает события об изменении коллекций всем открытым вкладкам.
// Вторая вкладка перечитывает данные по событию; это не отменяет
// правила "последний писатель побеждает".
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

// NewHub создает хаб для SSE-подписок.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe подписывает вкладку на события и возвращает канал и функцию отписки.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if _, exists := h.subscribers[ch]; exists {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
}

// Publish отправляет событие всем подписчикам.
func (h *Hub) Publish(event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishCollectionChanged сообщает о перезаписи коллекции.
func (h *Hub) PublishCollectionChanged(collection string) {
	h.Publish(Event{Type: "collection_updated", Collection: collection})
}
