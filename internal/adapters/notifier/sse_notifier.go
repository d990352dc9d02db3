package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/port"
	"sync"
)

// ClientChannel - канал, через который события уходят одному SSE-соединению (вкладке браузера)
type ClientChannel chan []byte

type sessionEvent struct {
	ctx       context.Context
	sessionID string
	eventType string
	payload   any
}

// SSENotifier рассылает события подписчикам поисковой сессии
type SSENotifier struct {
	// clients: ключ - ID сессии, значение - каналы открытых вкладок
	clients map[string][]ClientChannel
	mu      sync.RWMutex

	eventChan chan sessionEvent
	done      chan struct{}
	closeOnce sync.Once

	logger port.LoggerPort
}

// NewSSENotifier создает нотификатор и запускает горутину-диспетчер
func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	n := &SSENotifier{
		clients:   make(map[string][]ClientChannel),
		eventChan: make(chan sessionEvent, 100),
		done:      make(chan struct{}),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}

	go n.dispatcher()

	return n
}

func (n *SSENotifier) dispatcher() {
	n.logger.Debug("Notifier dispatcher started.", nil)
	for {
		select {
		case <-n.done:
			n.logger.Debug("Notifier dispatcher stopped.", nil)
			return
		case event := <-n.eventChan:
			n.dispatch(event)
		}
	}
}

func (n *SSENotifier) dispatch(event sessionEvent) {
	eventLogger := contextkeys.LoggerFromContext(event.ctx).WithFields(port.Fields{
		"component":  "SSENotifier.dispatcher",
		"event_type": event.eventType,
		"session_id": event.sessionID,
	})

	data, err := json.Marshal(event.payload)
	if err != nil {
		eventLogger.Error("Failed to marshal event", err, nil)
		return
	}

	message := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event.eventType, string(data)))

	n.mu.RLock()
	defer n.mu.RUnlock()

	channels, found := n.clients[event.sessionID]
	if !found {
		eventLogger.Debug("No active clients for session, event dropped.", nil)
		return
	}

	for _, ch := range channels {
		// канал клиента переполнен - пропускаем, соединение не блокирует остальных
		select {
		case ch <- message:
		default:
			eventLogger.Warn("Client channel is full, skipping.", nil)
		}
	}
}

// Notify ставит событие в очередь рассылки
func (n *SSENotifier) Notify(ctx context.Context, sessionID, eventType string, payload any) {
	select {
	case n.eventChan <- sessionEvent{ctx: ctx, sessionID: sessionID, eventType: eventType, payload: payload}:
	case <-n.done:
	}
}

// AddClient регистрирует новое SSE-соединение сессии
func (n *SSENotifier) AddClient(sessionID string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, 16)
	n.clients[sessionID] = append(n.clients[sessionID], ch)

	n.logger.Info("Client connected for session", port.Fields{
		"session_id":        sessionID,
		"total_connections": len(n.clients[sessionID]),
	})

	return ch
}

// RemoveClient удаляет канал при закрытии соединения
func (n *SSENotifier) RemoveClient(sessionID string, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels, found := n.clients[sessionID]
	if !found {
		return
	}

	remaining := make([]ClientChannel, 0, len(channels))
	for _, c := range channels {
		if c != ch {
			remaining = append(remaining, c)
		}
	}

	if len(remaining) == 0 {
		delete(n.clients, sessionID)
		n.logger.Debug("Last client disconnected for session.", port.Fields{"session_id": sessionID})
		return
	}

	n.clients[sessionID] = remaining
	n.logger.Info("Client disconnected for session.", port.Fields{
		"session_id":            sessionID,
		"remaining_connections": len(remaining),
	})
}

// ClientCount - число открытых соединений сессии
func (n *SSENotifier) ClientCount(sessionID string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.clients[sessionID])
}

// Close останавливает диспетчер. Повторный вызов безопасен.
func (n *SSENotifier) Close() {
	n.closeOnce.Do(func() { close(n.done) })
}
