package repo

import (
	"context"

	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
)

// ConfigRepo provides the framework configuration of a turn.
type ConfigRepo interface {
	// Load returns a fresh copy of the configuration on every call.
	Load(ctx context.Context) (*entity.FrameworkConfig, error)
}

// HistoryRepo provides the conversation history of a session, oldest first.
type HistoryRepo interface {
	List(ctx context.Context, sessionID string) ([]*entity.Message, error)
}
