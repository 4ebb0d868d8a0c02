package hook

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/pkg/logger"
)

const (
	// PhaseProcessPrompts runs before the model call and mutates the prompt tree.
	PhaseProcessPrompts = "processPrompts"

	// PhasePostProcess runs after the model call and mutates the response fragments.
	PhasePostProcess = "postProcess"
)

// ProcessPromptsContext is handed to every process-prompts tap.
type ProcessPromptsContext struct {
	ToolConfig *entity.ToolConfig

	// Prompts is the top level of the tree being assembled. Taps mutate it in place.
	Prompts *[]*entity.Prompt

	// Messages is the conversation history. Read only.
	Messages []*entity.Message

	FrameworkContext *entity.FrameworkContext
}

// PostProcessContext is handed to every post-process tap.
type PostProcessContext struct {
	ToolConfig       *entity.ToolConfig
	Messages         []*entity.Message
	FrameworkContext *entity.FrameworkContext

	// ModelResponse is the raw model output of this turn.
	ModelResponse string

	// Responses are the fragments being produced. Taps mutate them in place.
	Responses *[]*entity.Response
}

// TapFunc is one unit of work on a hook. Returning is its completion signal;
// the returned status (nil for success) is recorded by the hook.
type TapFunc[C any] func(ctx context.Context, hc C) *Status

type tapEntry[C any] struct {
	name string
	fn   TapFunc[C]
}

// Hook is an ordered list of named taps sharing one context type.
//
// Call runs the taps strictly one after another in registration order, so
// every tap observes the mutations of the taps before it. A failing or
// panicking tap is logged and the chain moves on.
type Hook[C any] struct {
	name string

	mu   sync.RWMutex
	taps []tapEntry[C]
}

// NewHook creates an empty hook.
func NewHook[C any](name string) *Hook[C] {
	return &Hook[C]{name: name}
}

// Name returns the hook name.
func (h *Hook[C]) Name() string {
	return h.name
}

// Tap appends fn to the chain.
func (h *Hook[C]) Tap(name string, fn TapFunc[C]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.taps = append(h.taps, tapEntry[C]{name: name, fn: fn})
}

// Len returns the number of taps.
func (h *Hook[C]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.taps)
}

// TapNames returns the tap names in execution order.
func (h *Hook[C]) TapNames() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.taps))
	for _, t := range h.taps {
		names = append(names, t.name)
	}
	return names
}

// Call runs every tap with hc and returns one status per tap.
func (h *Hook[C]) Call(ctx context.Context, hc C) []*Status {
	h.mu.RLock()
	taps := make([]tapEntry[C], len(h.taps))
	copy(taps, h.taps)
	h.mu.RUnlock()

	statuses := make([]*Status, 0, len(taps))
	for _, t := range taps {
		st := h.runTap(ctx, t, hc)
		switch st.Code() {
		case Error:
			logger.WithFields(logger.Fields{"hook": h.name, "tap": t.name}).
				Errorf("[HookEngine] tap failed, continuing: %s", st.Message())
		case Skip:
			logger.Debug("[HookEngine] %s", st)
		}
		statuses = append(statuses, st)
	}
	return statuses
}

func (h *Hook[C]) runTap(ctx context.Context, t tapEntry[C], hc C) (st *Status) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("[HookEngine] %s/%s panic stack:\n%s", h.name, t.name, debug.Stack())
			st = NewStatusWithError(fmt.Errorf("tap %q panicked: %v", t.name, r)).stamp(h.name, t.name)
		}
	}()

	st = t.fn(ctx, hc)
	if st == nil {
		st = NewStatus(Success)
	}
	return st.stamp(h.name, t.name)
}

// Hooks bundles the two phases of the pipeline.
type Hooks struct {
	ProcessPrompts *Hook[*ProcessPromptsContext]
	PostProcess    *Hook[*PostProcessContext]
}

// NewHooks creates both phases with no taps.
func NewHooks() *Hooks {
	return &Hooks{
		ProcessPrompts: NewHook[*ProcessPromptsContext](PhaseProcessPrompts),
		PostProcess:    NewHook[*PostProcessContext](PhasePostProcess),
	}
}
