package inmemory

import (
	"context"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/repo"
)

// ConfigStore holds one framework configuration in memory.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg *entity.FrameworkConfig
}

var _ repo.ConfigRepo = (*ConfigStore)(nil)

func NewConfigStore(cfg *entity.FrameworkConfig) *ConfigStore {
	return &ConfigStore{cfg: cfg}
}

// Set replaces the stored configuration.
func (s *ConfigStore) Set(cfg *entity.FrameworkConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *ConfigStore) Load(_ context.Context) (*entity.FrameworkConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &entity.FrameworkConfig{}
	if s.cfg == nil {
		return out, nil
	}
	if err := copier.CopyWithOption(out, s.cfg, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return out, nil
}

// HistoryStore keeps message histories keyed by session id.
type HistoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]*entity.Message
}

var _ repo.HistoryRepo = (*HistoryStore)(nil)

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{sessions: make(map[string][]*entity.Message)}
}

// Append adds messages to the end of a session's history.
func (s *HistoryStore) Append(sessionID string, msgs ...*entity.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msgs...)
}

func (s *HistoryStore) List(_ context.Context, sessionID string) ([]*entity.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.sessions[sessionID]
	out := make([]*entity.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}
