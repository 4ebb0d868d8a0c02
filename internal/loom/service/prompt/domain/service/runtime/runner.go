package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/jinzhu/copier"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/hook"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/modifier"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/pkg/errno"
	"github.com/kiosk404/promptloom/pkg/logger"
)

// Turn is the input of one pipeline run.
type Turn struct {
	Config *entity.FrameworkConfig

	// Messages is the stored history, oldest first. It is never modified.
	Messages []*entity.Message

	SessionID string
	Extra     map[string]interface{}
}

// PromptResult is the outcome of the process-prompts phase.
type PromptResult struct {
	Prompts  []*entity.Prompt
	Statuses []*hook.Status
}

// ResponseResult is the outcome of the post-process phase.
type ResponseResult struct {
	Responses []*entity.Response
	Statuses  []*hook.Status
}

// TurnResult is the outcome of a full Run.
type TurnResult struct {
	Prompts       []*entity.Prompt
	Request       []*schema.Message
	ModelResponse string
	Responses     []*entity.Response
	Statuses      []*hook.Status
}

// Runner drives the two hook phases around a model call.
//
// A Runner keeps no per-turn state; one instance may serve concurrent turns.
type Runner struct {
	hooks     *hook.Hooks
	flattener Flattener
	chatModel model.BaseChatModel
}

// Option configures a Runner.
type Option func(*Runner)

// WithFlattener replaces FlattenPrompts.
func WithFlattener(f Flattener) Option {
	return func(r *Runner) {
		r.flattener = f
	}
}

// WithChatModel sets the model Run calls.
func WithChatModel(m model.BaseChatModel) Option {
	return func(r *Runner) {
		r.chatModel = m
	}
}

// NewRunner creates a runner whose hooks carry every modifier in registry.
func NewRunner(registry *modifier.Registry, opts ...Option) *Runner {
	r := &Runner{
		hooks:     registry.NewHooks(),
		flattener: FlattenPrompts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Hooks exposes the phases so callers can tap extra, non-modifier work.
func (r *Runner) Hooks() *hook.Hooks {
	return r.hooks
}

// Flatten turns a processed prompt tree into model messages with the
// runner's flattener.
func (r *Runner) Flatten(prompts []*entity.Prompt) []*schema.Message {
	return r.flattener(prompts)
}

func (r *Runner) frameworkContext(turn *Turn) *entity.FrameworkContext {
	return &entity.FrameworkContext{
		Config:    turn.Config,
		SessionID: turn.SessionID,
		Extra:     turn.Extra,
	}
}

// ProcessPrompts runs every tool config of the turn through the process-prompts
// phase, in configuration order, over a copy of the configured prompt tree.
func (r *Runner) ProcessPrompts(ctx context.Context, turn *Turn) (*PromptResult, error) {
	if turn == nil || turn.Config == nil {
		return nil, fmt.Errorf("%w: missing framework config", errno.ErrInvalidFrameworkConfig)
	}

	prompts := make([]*entity.Prompt, 0, len(turn.Config.Prompts))
	if len(turn.Config.Prompts) > 0 {
		if err := copier.CopyWithOption(&prompts, &turn.Config.Prompts, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("failed to copy prompt tree: %w", err)
		}
	}

	fc := r.frameworkContext(turn)
	result := &PromptResult{}
	for _, tc := range turn.Config.Tools {
		if tc == nil {
			continue
		}
		statuses := r.hooks.ProcessPrompts.Call(ctx, &hook.ProcessPromptsContext{
			ToolConfig:       tc,
			Prompts:          &prompts,
			Messages:         turn.Messages,
			FrameworkContext: fc,
		})
		result.Statuses = append(result.Statuses, statuses...)
	}
	result.Prompts = prompts
	return result, nil
}

// PostProcess runs every tool config through the post-process phase against
// the raw model output and returns the response fragments.
func (r *Runner) PostProcess(ctx context.Context, turn *Turn, modelResponse string) (*ResponseResult, error) {
	if turn == nil || turn.Config == nil {
		return nil, fmt.Errorf("%w: missing framework config", errno.ErrInvalidFrameworkConfig)
	}

	responses := turn.Config.Response.NewResponses()
	fc := r.frameworkContext(turn)
	result := &ResponseResult{}
	for _, tc := range turn.Config.Tools {
		if tc == nil {
			continue
		}
		statuses := r.hooks.PostProcess.Call(ctx, &hook.PostProcessContext{
			ToolConfig:       tc,
			Messages:         turn.Messages,
			FrameworkContext: fc,
			ModelResponse:    modelResponse,
			Responses:        &responses,
		})
		result.Statuses = append(result.Statuses, statuses...)
	}
	result.Responses = responses
	return result, nil
}

// Run executes a whole turn: process prompts, flatten, call the model, post process.
func (r *Runner) Run(ctx context.Context, turn *Turn) (*TurnResult, error) {
	if r.chatModel == nil {
		return nil, errno.ErrModelNotConfigured
	}

	start := time.Now()
	pr, err := r.ProcessPrompts(ctx, turn)
	if err != nil {
		return nil, err
	}

	request := r.Flatten(pr.Prompts)
	logger.Debug("[Runner] sending %d message(s) to the model", len(request))

	msg, err := r.chatModel.Generate(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("model generate failed: %w", err)
	}
	content := ""
	if msg != nil {
		content = msg.Content
	}

	rr, err := r.PostProcess(ctx, turn, content)
	if err != nil {
		return nil, err
	}

	statuses := append(pr.Statuses, rr.Statuses...)
	if errs := hook.Errors(statuses); len(errs) > 0 {
		logger.Warn("[Runner] turn finished with %d failed tap(s) in %v", len(errs), time.Since(start))
	} else {
		logger.Debug("[Runner] turn finished in %v", time.Since(start))
	}

	return &TurnResult{
		Prompts:       pr.Prompts,
		Request:       request,
		ModelResponse: content,
		Responses:     rr.Responses,
		Statuses:      statuses,
	}, nil
}
