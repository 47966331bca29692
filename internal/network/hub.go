package network

import (
	"sync"
	"ursa-server/pkg/api"
)

// subscription - личный канал подписчика и уровень, на который он смотрит
type subscription struct {
	level string
	ch    chan api.Snapshot
}

// Broadcaster занимается только рассылкой снимков подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SessionID -> подписка
	subscribers map[string]subscription
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]subscription),
	}
}

// Register создает личный канал для сессии (игрок, зритель или бот)
func (b *Broadcaster) Register(sessionID, level string) chan api.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[sessionID]; ok {
		close(old.ch)
	}

	ch := make(chan api.Snapshot, 100)
	b.subscribers[sessionID] = subscription{level: level, ch: ch}
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[sessionID]; ok {
		close(sub.ch)
		delete(b.subscribers, sessionID)
	}
}

// SendTo отправляет снимок конкретной сессии (Unicast)
func (b *Broadcaster) SendTo(sessionID string, msg api.Snapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if sub, ok := b.subscribers[sessionID]; ok {
		select {
		case sub.ch <- msg:
		default:
			// Медленный клиент пропускает кадр
		}
	}
}

// Publish отправляет снимок всем, кто смотрит на уровень
func (b *Broadcaster) Publish(level string, msg api.Snapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if sub.level != level {
			continue
		}
		select {
		case sub.ch <- msg:
		default:
		}
	}
}

// HasSubscriber проверяет, подключена ли сессия
func (b *Broadcaster) HasSubscriber(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[sessionID]
	return ok
}

// Watchers возвращает количество подписчиков уровня.
// Инстанс без зрителей не собирает снимки.
func (b *Broadcaster) Watchers(level string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, sub := range b.subscribers {
		if sub.level == level {
			n++
		}
	}
	return n
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
