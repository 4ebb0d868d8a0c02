package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/repo"
)

// HistoryStore reads a message history from a JSON or YAML array, oldest first.
// The file holds a single conversation, so the session id is ignored.
type HistoryStore struct {
	path string
}

var _ repo.HistoryRepo = (*HistoryStore)(nil)

func NewHistoryStore(path string) (*HistoryStore, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}
	return &HistoryStore{path: absPath}, nil
}

func (s *HistoryStore) List(_ context.Context, _ string) ([]*entity.Message, error) {
	var msgs []*entity.Message
	if err := decodeFile(s.path, &msgs); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return msgs, nil
}
