package usecase

import (
	"context"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/port"
	"listing-search-service/internal/core/port/usecases_port"
	"sync"
	"time"
)

// SessionFactory создает новую поисковую сессию по идентификатору
type SessionFactory func(sessionID string) *SearchSession

// SessionRegistry хранит поисковые сессии и удаляет неактивные
type SessionRegistry struct {
	factory SessionFactory
	idleTTL time.Duration
	metrics port.SearchMetricsPort
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*SearchSession
}

func NewSessionRegistry(factory SessionFactory, idleTTL time.Duration, metrics port.SearchMetricsPort) *SessionRegistry {
	if metrics == nil {
		metrics = port.NopSearchMetrics{}
	}
	return &SessionRegistry{
		factory:  factory,
		idleTTL:  idleTTL,
		metrics:  metrics,
		now:      time.Now,
		sessions: make(map[string]*SearchSession),
	}
}

func (r *SessionRegistry) GetOrCreate(ctx context.Context, sessionID string) usecases_port.SearchSessionUseCase {
	r.mu.RLock()
	session, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if ok {
		return session
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[sessionID]; ok {
		return session
	}
	session = r.factory(sessionID)
	r.sessions[sessionID] = session
	r.metrics.SessionsActive(len(r.sessions))

	contextkeys.LoggerFromContext(ctx).Info("Search session created", port.Fields{
		"session_id":      sessionID,
		"active_sessions": len(r.sessions),
	})
	return session
}

func (r *SessionRegistry) Get(sessionID string) (usecases_port.SearchSessionUseCase, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return session, true
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle закрывает и удаляет сессии без активности дольше idleTTL.
// Возвращает количество удаленных сессий.
func (r *SessionRegistry) EvictIdle(ctx context.Context) int {
	threshold := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var evicted []*SearchSession
	for id, session := range r.sessions {
		if session.LastActivity().Before(threshold) {
			evicted = append(evicted, session)
			delete(r.sessions, id)
		}
	}
	remaining := len(r.sessions)
	r.mu.Unlock()

	for _, session := range evicted {
		session.Close()
	}

	if len(evicted) > 0 {
		r.metrics.SessionsActive(remaining)
		contextkeys.LoggerFromContext(ctx).Info("Idle search sessions evicted", port.Fields{
			"evicted":         len(evicted),
			"active_sessions": remaining,
		})
	}
	return len(evicted)
}

// RunEvictionLoop периодически вызывает EvictIdle до отмены контекста
func (r *SessionRegistry) RunEvictionLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.EvictIdle(ctx)
		}
	}
}

// Close закрывает все сессии
func (r *SessionRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, session := range r.sessions {
		session.Close()
		delete(r.sessions, id)
	}
}
