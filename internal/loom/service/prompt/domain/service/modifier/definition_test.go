package modifier

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/hook"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoConfig struct {
	TargetID string `json:"targetId"`
	Text     string `json:"text"`
}

func (c *echoConfig) Validate() error {
	if c.TargetID == "" {
		return fmt.Errorf("targetId is required")
	}
	return nil
}

func echoModifier() *Definition[echoConfig] {
	return &Definition[echoConfig]{
		ID:      "echo",
		Caption: "Echo",
		OnProcessPrompts: func(_ context.Context, mc *ProcessPromptsContext[echoConfig]) error {
			mc.ReplaceContent(mc.Config.TargetID, TextContent(mc.Config.Text))
			return nil
		},
		OnPostProcess: func(_ context.Context, mc *PostProcessContext[echoConfig]) error {
			r, ok := mc.FindResponse(mc.Config.TargetID)
			if !ok {
				return errno.ErrResponseNotFound
			}
			r.Text = mc.Config.Text + ":" + mc.ModelResponse
			return nil
		},
	}
}

func processPrompts(t *testing.T, hooks *hook.Hooks, tc *entity.ToolConfig, prompts *[]*entity.Prompt) []*hook.Status {
	t.Helper()
	return hooks.ProcessPrompts.Call(context.Background(), &hook.ProcessPromptsContext{
		ToolConfig:       tc,
		Prompts:          prompts,
		FrameworkContext: &entity.FrameworkContext{},
	})
}

func TestDefinition_Describe(t *testing.T) {
	d := echoModifier().Describe()
	assert.Equal(t, "echo", d.ID)
	assert.Equal(t, []string{hook.PhaseProcessPrompts, hook.PhasePostProcess}, d.Phases)

	onlyPost := &Definition[struct{}]{
		ID:            "post",
		OnPostProcess: func(context.Context, *PostProcessContext[struct{}]) error { return nil },
	}
	assert.Equal(t, []string{hook.PhasePostProcess}, onlyPost.Describe().Phases)

	hooks := hook.NewHooks()
	onlyPost.Install(hooks)
	assert.Equal(t, 0, hooks.ProcessPrompts.Len())
	assert.Equal(t, 1, hooks.PostProcess.Len())
}

func TestDefinition_SkipsOtherToolIDs(t *testing.T) {
	hooks := hook.NewHooks()
	echoModifier().Install(hooks)

	prompts := []*entity.Prompt{{ID: "p", Text: "old"}}
	tc := entity.NewToolConfig("t1", "somethingElse", map[string]interface{}{"targetId": "p"})

	statuses := processPrompts(t, hooks, tc, &prompts)
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].IsSkip())
	assert.Contains(t, statuses[0].Message(), `"somethingElse"`)
	assert.Equal(t, hook.PhaseProcessPrompts, statuses[0].Phase())
	assert.Equal(t, "old", prompts[0].Text)
}

func TestDefinition_MissingParamSkips(t *testing.T) {
	hooks := hook.NewHooks()
	echoModifier().Install(hooks)

	prompts := []*entity.Prompt{{ID: "p", Text: "old"}}
	statuses := processPrompts(t, hooks, entity.NewToolConfig("t1", "echo", nil), &prompts)

	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].IsSkip())
	assert.Contains(t, statuses[0].Message(), "echoParam")
	assert.Equal(t, "old", prompts[0].Text)
}

func TestDefinition_InvalidParamIsError(t *testing.T) {
	hooks := hook.NewHooks()
	echoModifier().Install(hooks)
	prompts := []*entity.Prompt{{ID: "p", Text: "old"}}

	cases := map[string]interface{}{
		"validation fails": map[string]interface{}{"text": "x"},
		"unknown key":      map[string]interface{}{"targetId": "p", "bogus": true},
		"wrong type":       map[string]interface{}{"targetId": 12},
		"not an object":    "p",
		"array":            []interface{}{"p"},
	}
	for name, param := range cases {
		t.Run(name, func(t *testing.T) {
			statuses := processPrompts(t, hooks, entity.NewToolConfig("t1", "echo", param), &prompts)
			require.Len(t, statuses, 1)
			assert.Equal(t, hook.Error, statuses[0].Code())
			assert.ErrorIs(t, statuses[0].Err(), errno.ErrInvalidModifierConfig)
			assert.Equal(t, "old", prompts[0].Text)
		})
	}
}

func TestDefinition_ProcessPromptsRuns(t *testing.T) {
	hooks := hook.NewHooks()
	echoModifier().Install(hooks)

	prompts := []*entity.Prompt{{ID: "p", Text: "old"}}
	tc := entity.NewToolConfig("t1", "echo", map[string]interface{}{"targetId": "p", "text": "new"})

	statuses := processPrompts(t, hooks, tc, &prompts)
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].IsSuccess())
	assert.Equal(t, "new", prompts[0].Text)
}

func TestDefinition_PostProcessHandlerError(t *testing.T) {
	hooks := hook.NewHooks()
	echoModifier().Install(hooks)

	responses := []*entity.Response{{ID: "answer"}}
	call := func(target string) []*hook.Status {
		return hooks.PostProcess.Call(context.Background(), &hook.PostProcessContext{
			ToolConfig:    entity.NewToolConfig("t1", "echo", map[string]interface{}{"targetId": target, "text": "said"}),
			ModelResponse: "hello",
			Responses:     &responses,
		})
	}

	statuses := call("answer")
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].IsSuccess())
	assert.Equal(t, "said:hello", responses[0].Text)

	statuses = call("missing")
	require.Len(t, statuses, 1)
	assert.True(t, errors.Is(statuses[0].Err(), errno.ErrResponseNotFound))
}

func TestDefinition_CustomSchema(t *testing.T) {
	d := &Definition[string]{
		ID: "upper",
		Schema: SchemaFunc[string](func(raw map[string]interface{}) (string, error) {
			s, _ := raw["value"].(string)
			return s, nil
		}),
		OnProcessPrompts: func(_ context.Context, mc *ProcessPromptsContext[string]) error {
			mc.ReplaceContent("p", TextContent(mc.Config))
			return nil
		},
	}
	hooks := hook.NewHooks()
	d.Install(hooks)

	prompts := []*entity.Prompt{{ID: "p"}}
	processPrompts(t, hooks, entity.NewToolConfig("t", "upper", map[string]interface{}{"value": "V"}), &prompts)
	assert.Equal(t, "V", prompts[0].Text)
}
