package prompt

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/modifier/builtin"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/runtime"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/pkg/errno"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/store/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModule(t *testing.T) (*Module, *inmemory.HistoryStore) {
	t.Helper()
	history := inmemory.NewHistoryStore()
	configs := inmemory.NewConfigStore(&entity.FrameworkConfig{
		Prompts: []*entity.Prompt{
			{ID: "system", Text: "rules"},
			{ID: "history"},
		},
		Tools: []*entity.ToolConfig{
			entity.NewToolConfig("h", builtin.FullReplacementID, map[string]interface{}{
				"targetId": "history", "sourceType": builtin.SourceHistoryOfSession,
			}),
		},
	})

	cfg := &Config{}
	module, err := cfg.Complete().New(context.Background(), Deps{ConfigRepo: configs, HistoryRepo: history})
	require.NoError(t, err)
	return module, history
}

func TestModule_Assemble(t *testing.T) {
	module, history := newTestModule(t)
	defer module.Close()

	history.Append("s1",
		&entity.Message{ID: "u1", Role: entity.MessageRoleUser, Content: "hi"},
		&entity.Message{ID: "a1", Role: entity.MessageRoleAssistant, Content: "hello"},
		&entity.Message{ID: "u2", Role: entity.MessageRoleUser, Content: "current"},
	)

	result, msgs, err := module.Assemble(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, result.Prompts[1].Children, 2)
	require.Len(t, msgs, 3)
	assert.Equal(t, "hello", msgs[2].Content)

	result, msgs, err = module.Assemble(context.Background(), "empty-session")
	require.NoError(t, err)
	assert.Equal(t, builtin.NoHistoryPlaceholder, result.Prompts[1].Text)
	assert.Len(t, msgs, 2)

	stored, err := module.History(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestModule_AssembleUsesRunnerFlattener(t *testing.T) {
	module, _ := newTestModule(t)
	defer module.Close()

	var seen int
	module.Runner = runtime.NewRunner(module.Registry, runtime.WithFlattener(func(p []*entity.Prompt) []*schema.Message {
		seen = len(p)
		return []*schema.Message{schema.UserMessage("flattened")}
	}))

	result, msgs, err := module.Assemble(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, len(result.Prompts), seen)
	require.Len(t, msgs, 1)
	assert.Equal(t, "flattened", msgs[0].Content)
}

func TestModule_RunWithoutModel(t *testing.T) {
	module, _ := newTestModule(t)
	_, err := module.Run(context.Background(), "s1")
	assert.ErrorIs(t, err, errno.ErrModelNotConfigured)
}

func TestModule_RequiresConfigSource(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Complete().New(context.Background(), Deps{})
	assert.Error(t, err)
}
