package runtime

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenPrompts(t *testing.T) {
	file := &entity.FileRef{Name: "report.pdf"}
	prompts := []*entity.Prompt{
		{ID: "sys", Text: "rules"},
		{ID: "empty"},
		{ID: "chat", Role: entity.RoleUser, Children: []*entity.Prompt{
			{ID: "q", Text: "question", File: file},
			{ID: "a", Role: entity.RoleAssistant, Text: "answer"},
		}},
	}

	msgs := FlattenPrompts(prompts)
	require.Len(t, msgs, 3)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, "rules", msgs[0].Content)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Same(t, file, msgs[1].Extra["file"])
	assert.Equal(t, schema.Assistant, msgs[2].Role)

	assert.Equal(t, 4, CountLeaves(prompts))
	assert.Empty(t, FlattenPrompts(nil))
}
