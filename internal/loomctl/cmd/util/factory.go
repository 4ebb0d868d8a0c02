package util

import (
	"context"
	"io"

	"github.com/cloudwego/eino/components/model"
	"github.com/kiosk404/promptloom/internal/loom"
	"github.com/kiosk404/promptloom/internal/loom/config"
	"github.com/kiosk404/promptloom/internal/loom/options"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/modifier"
)

// IOStreams holds the standard streams of a command.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Factory builds the collaborators loomctl subcommands need, from the
// options resolved by the root command.
type Factory interface {
	Config() (*config.Config, error)
	ModifierRegistry() (*modifier.Registry, error)
	PromptModule(ctx context.Context, chatModel model.BaseChatModel) (*prompt.Module, error)
	ChatModel(ctx context.Context) (model.BaseChatModel, error)
}

type defaultFactory struct {
	opts *options.Options
}

// NewFactory returns a Factory reading opts at call time, after flags are parsed.
func NewFactory(opts *options.Options) Factory {
	return &defaultFactory{opts: opts}
}

func (f *defaultFactory) Config() (*config.Config, error) {
	return config.CreateConfigFromOptions(f.opts)
}

func (f *defaultFactory) ModifierRegistry() (*modifier.Registry, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	return loom.NewModifierRegistry(cfg)
}

func (f *defaultFactory) PromptModule(ctx context.Context, chatModel model.BaseChatModel) (*prompt.Module, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	return loom.NewPromptModule(ctx, cfg, chatModel)
}

func (f *defaultFactory) ChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if errs := f.opts.ModelOptions.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}
	return loom.NewChatModel(ctx, f.opts.ModelOptions)
}
