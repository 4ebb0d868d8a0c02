package prompt

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/repo"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/modifier"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/modifier/builtin"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/runtime"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/store/file"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/store/inmemory"
	genericoptions "github.com/kiosk404/promptloom/internal/pkg/options"
	"github.com/kiosk404/promptloom/pkg/logger"
)

// Config holds the configuration for the prompt module.
// Follows K8S-style: Config → Complete() → New(ctx, deps).
type Config struct {
	// ConfigFile is the framework configuration file. Required unless
	// Deps.ConfigRepo is given.
	ConfigFile string

	// HistoryFile is the message history file. Empty means no history.
	HistoryFile string

	// Modifiers filters the built-in modifiers.
	Modifiers *genericoptions.ModifierOptions
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.Modifiers == nil {
		c.Modifiers = genericoptions.NewModifierOptions()
	}
	return CompletedConfig{c}
}

// Deps are optional collaborators; nil fields fall back to file or memory stores.
type Deps struct {
	ConfigRepo  repo.ConfigRepo
	HistoryRepo repo.HistoryRepo
	ChatModel   model.BaseChatModel
}

// Module wires the modifier registry, the runner and the input repositories.
type Module struct {
	Registry    *modifier.Registry
	Runner      *runtime.Runner
	ConfigRepo  repo.ConfigRepo
	HistoryRepo repo.HistoryRepo
}

// New builds the module.
func (c CompletedConfig) New(_ context.Context, deps Deps) (*Module, error) {
	registry, err := builtin.NewInTreeRegistry(c.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("failed to register built-in modifiers: %w", err)
	}

	configRepo := deps.ConfigRepo
	if configRepo == nil {
		if c.ConfigFile == "" {
			return nil, fmt.Errorf("prompt module: no config file and no config repo")
		}
		if configRepo, err = file.NewConfigStore(c.ConfigFile); err != nil {
			return nil, err
		}
	}

	historyRepo := deps.HistoryRepo
	if historyRepo == nil {
		if c.HistoryFile != "" {
			if historyRepo, err = file.NewHistoryStore(c.HistoryFile); err != nil {
				return nil, err
			}
		} else {
			historyRepo = inmemory.NewHistoryStore()
		}
	}

	var runnerOpts []runtime.Option
	if deps.ChatModel != nil {
		runnerOpts = append(runnerOpts, runtime.WithChatModel(deps.ChatModel))
	}

	logger.Info("[PromptModule] initialized with %d modifier(s): %v", registry.Len(), registry.IDs())
	return &Module{
		Registry:    registry,
		Runner:      runtime.NewRunner(registry, runnerOpts...),
		ConfigRepo:  configRepo,
		HistoryRepo: historyRepo,
	}, nil
}

// Turn loads a fresh configuration and the session history.
func (m *Module) Turn(ctx context.Context, sessionID string) (*runtime.Turn, error) {
	cfg, err := m.ConfigRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	msgs, err := m.HistoryRepo.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &runtime.Turn{
		Config:    cfg,
		Messages:  msgs,
		SessionID: sessionID,
	}, nil
}

// Assemble runs the process-prompts phase for a session and flattens the result.
func (m *Module) Assemble(ctx context.Context, sessionID string) (*runtime.PromptResult, []*schema.Message, error) {
	turn, err := m.Turn(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	pr, err := m.Runner.ProcessPrompts(ctx, turn)
	if err != nil {
		return nil, nil, err
	}
	return pr, m.Runner.Flatten(pr.Prompts), nil
}

// Run executes a whole turn for a session.
func (m *Module) Run(ctx context.Context, sessionID string) (*runtime.TurnResult, error) {
	turn, err := m.Turn(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return m.Runner.Run(ctx, turn)
}

// Close releases file watchers held by the module.
func (m *Module) Close() {
	if c, ok := m.ConfigRepo.(interface{ Close() }); ok {
		c.Close()
	}
}

// History returns the stored history of a session, unfiltered.
func (m *Module) History(ctx context.Context, sessionID string) ([]*entity.Message, error) {
	return m.HistoryRepo.List(ctx, sessionID)
}
