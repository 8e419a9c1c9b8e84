package repo

import (
	"context"
	"sync"

	"github.com/finsage-core-poc/server/internal/loan/model"
)

// MemoryMessageLog is an in-process transcript store for tests and for
// running the engine without Redis.
type MemoryMessageLog struct {
	mu   sync.Mutex
	logs map[string][]model.Message
}

func NewMemoryMessageLog() *MemoryMessageLog {
	return &MemoryMessageLog{logs: make(map[string][]model.Message)}
}

func (m *MemoryMessageLog) Append(_ context.Context, sessionID string, msg model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[sessionID] = append(m.logs[sessionID], msg)
	return nil
}

func (m *MemoryMessageLog) History(_ context.Context, sessionID string) ([]model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src := m.logs[sessionID]
	out := make([]model.Message, len(src))
	copy(out, src)
	return out, nil
}

func (m *MemoryMessageLog) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.logs, sessionID)
	return nil
}

func (m *MemoryMessageLog) Count(_ context.Context, sessionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.logs[sessionID]), nil
}

var _ model.MessageLog = (*MemoryMessageLog)(nil)
