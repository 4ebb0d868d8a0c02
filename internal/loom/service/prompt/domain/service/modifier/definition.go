package modifier

import (
	"context"
	"fmt"

	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/hook"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/pkg/errno"
)

// ProcessPromptsHandler is the body of a modifier in the process-prompts phase.
type ProcessPromptsHandler[T any] func(ctx context.Context, mc *ProcessPromptsContext[T]) error

// PostProcessHandler is the body of a modifier in the post-process phase.
type PostProcessHandler[T any] func(ctx context.Context, mc *PostProcessContext[T]) error

// Definition declares a modifier. T is the type of its "<ID>Param" object.
//
// Either handler may be nil; a tap is generated only for the phases that
// have one.
type Definition[T any] struct {
	// ID is matched against ToolConfig.ToolID.
	ID string

	Caption     string
	Description string

	// Schema parses the parameters. Defaults to StructSchema[T]().
	Schema Schema[T]

	OnProcessPrompts ProcessPromptsHandler[T]
	OnPostProcess    PostProcessHandler[T]
}

// Descriptor is the registry listing entry of a modifier.
type Descriptor struct {
	ID          string   `json:"id"`
	Caption     string   `json:"caption,omitempty"`
	Description string   `json:"description,omitempty"`
	Phases      []string `json:"phases"`
}

// Modifier is a Definition with its parameter type erased, as stored in a Registry.
type Modifier interface {
	ModifierID() string
	Describe() Descriptor

	// Install taps the modifier onto the phases it handles.
	Install(hooks *hook.Hooks)
}

var _ Modifier = (*Definition[struct{}])(nil)

func (d *Definition[T]) ModifierID() string {
	return d.ID
}

func (d *Definition[T]) Describe() Descriptor {
	desc := Descriptor{
		ID:          d.ID,
		Caption:     d.Caption,
		Description: d.Description,
	}
	if d.OnProcessPrompts != nil {
		desc.Phases = append(desc.Phases, hook.PhaseProcessPrompts)
	}
	if d.OnPostProcess != nil {
		desc.Phases = append(desc.Phases, hook.PhasePostProcess)
	}
	return desc
}

func (d *Definition[T]) Install(hooks *hook.Hooks) {
	if d.OnProcessPrompts != nil {
		hooks.ProcessPrompts.Tap(d.ID, d.processPromptsTap)
	}
	if d.OnPostProcess != nil {
		hooks.PostProcess.Tap(d.ID, d.postProcessTap)
	}
}

// match checks the discriminator and parses the parameters.
// A non-nil status means the tap must stop and return it.
func (d *Definition[T]) match(tc *entity.ToolConfig) (T, *hook.Status) {
	var zero T
	if tc == nil {
		return zero, hook.Skipf("no tool config")
	}
	if tc.ToolID != d.ID {
		return zero, hook.Skipf("toolId %q is not %q", tc.ToolID, d.ID)
	}
	if tc.Param == nil {
		return zero, hook.Skipf("tool %q has no %s", tc.ID, entity.ParamKey(d.ID))
	}

	raw, err := tc.ParamObject()
	if err != nil {
		return zero, hook.NewStatusWithError(fmt.Errorf("modifier %q, tool %q: %w: %v",
			d.ID, tc.ID, errno.ErrInvalidModifierConfig, err))
	}
	schema := d.Schema
	if schema == nil {
		schema = StructSchema[T]()
	}
	cfg, err := schema.Parse(raw)
	if err != nil {
		return zero, hook.NewStatusWithError(fmt.Errorf("modifier %q, tool %q: %w", d.ID, tc.ID, err))
	}
	return cfg, nil
}

func (d *Definition[T]) processPromptsTap(ctx context.Context, hc *hook.ProcessPromptsContext) *hook.Status {
	if hc == nil {
		return hook.Skipf("no hook context")
	}
	cfg, st := d.match(hc.ToolConfig)
	if st != nil {
		return st
	}

	mc := &ProcessPromptsContext[T]{
		Config:           cfg,
		ModifierConfig:   hc.ToolConfig,
		Prompts:          hc.Prompts,
		Messages:         hc.Messages,
		FrameworkContext: hc.FrameworkContext,
		modifierID:       d.ID,
	}
	if err := d.OnProcessPrompts(ctx, mc); err != nil {
		return hook.NewStatusWithError(fmt.Errorf("modifier %q, tool %q: %w", d.ID, hc.ToolConfig.ID, err))
	}
	return nil
}

func (d *Definition[T]) postProcessTap(ctx context.Context, hc *hook.PostProcessContext) *hook.Status {
	if hc == nil {
		return hook.Skipf("no hook context")
	}
	cfg, st := d.match(hc.ToolConfig)
	if st != nil {
		return st
	}

	mc := &PostProcessContext[T]{
		Config:           cfg,
		ModifierConfig:   hc.ToolConfig,
		Messages:         hc.Messages,
		FrameworkContext: hc.FrameworkContext,
		ModelResponse:    hc.ModelResponse,
		Responses:        hc.Responses,
		modifierID:       d.ID,
	}
	if err := d.OnPostProcess(ctx, mc); err != nil {
		return hook.NewStatusWithError(fmt.Errorf("modifier %q, tool %q: %w", d.ID, hc.ToolConfig.ID, err))
	}
	return nil
}
