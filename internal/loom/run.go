package loom

import (
	"context"
	"os"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/promptloom/internal/loom/config"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/modifier"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/modifier/builtin"
	genericoptions "github.com/kiosk404/promptloom/internal/pkg/options"
	"github.com/kiosk404/promptloom/pkg/logger"
)

// InitLogging applies the log options to the process logger.
func InitLogging(opts *genericoptions.LogOptions) error {
	if err := logger.SetLevel(opts.Level); err != nil {
		return err
	}
	if err := logger.SetFormat(opts.Format); err != nil {
		return err
	}
	return logger.InitLog(opts.File)
}

// NewPromptModule builds the prompt module from the running configuration.
// chatModel may be nil when only the prompt phase is needed.
func NewPromptModule(ctx context.Context, cfg *config.Config, chatModel model.BaseChatModel) (*prompt.Module, error) {
	mc := &prompt.Config{
		ConfigFile:  cfg.PipelineOptions.ConfigFile,
		HistoryFile: cfg.PipelineOptions.HistoryFile,
		Modifiers:   cfg.ModifierOptions,
	}
	return mc.Complete().New(ctx, prompt.Deps{ChatModel: chatModel})
}

// NewModifierRegistry builds the registry of built-in modifiers allowed by cfg.
func NewModifierRegistry(cfg *config.Config) (*modifier.Registry, error) {
	return builtin.NewInTreeRegistry(cfg.ModifierOptions)
}

// NewChatModel creates an OpenAI-compatible chat model from the model options.
func NewChatModel(ctx context.Context, opts *genericoptions.ModelOptions) (model.BaseChatModel, error) {
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	cfg := &einoOpenAI.ChatModelConfig{
		Model:       opts.Model,
		APIKey:      apiKey,
		Temperature: gptr.Of(opts.Temperature),
		ResponseFormat: &einoOpenAI.ChatCompletionResponseFormat{
			Type: einoOpenAI.ChatCompletionResponseFormatTypeText,
		},
	}
	if opts.MaxTokens > 0 {
		cfg.MaxTokens = gptr.Of(opts.MaxTokens)
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return einoOpenAI.NewChatModel(ctx, cfg)
}
