package builtin

import (
	"testing"

	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/hook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positionTool(position, content string) *entity.ToolConfig {
	return positionToolWithRole(position, content, "")
}

func positionToolWithRole(position, content, role string) *entity.ToolConfig {
	param := map[string]interface{}{
		"targetId": "A",
		"position": position,
	}
	if role != "" {
		param["role"] = role
	}
	tc := entity.NewToolConfig("pos", DynamicPositionID, param)
	tc.Content = content
	tc.Caption = "Injected"
	return tc
}

func twoNodes() []*entity.Prompt {
	return []*entity.Prompt{{ID: "A", Text: "a"}, {ID: "B", Text: "b"}}
}

func texts(nodes []*entity.Prompt) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Text)
	}
	return out
}

func TestDynamicPosition_Before(t *testing.T) {
	prompts := twoNodes()
	statuses := runProcess(t, positionTool(PositionBefore, "new"), &prompts, nil)

	assert.Empty(t, hook.Errors(statuses))
	assert.Equal(t, []string{"new", "a", "b"}, texts(prompts))
	assert.Equal(t, "Injected", prompts[0].Caption)
	assert.NotEmpty(t, prompts[0].ID)
}

func TestDynamicPosition_After(t *testing.T) {
	prompts := twoNodes()
	runProcess(t, positionTool(PositionAfter, "new"), &prompts, nil)

	assert.Equal(t, []string{"a", "new", "b"}, texts(prompts))
}

func TestDynamicPosition_Relative(t *testing.T) {
	prompts := twoNodes()
	runProcess(t, positionTool(PositionRelative, "new"), &prompts, nil)

	require.Len(t, prompts, 2)
	require.Len(t, prompts[0].Children, 2)
	assert.Equal(t, []string{"a", "new"}, texts(prompts[0].Children))
	assert.Equal(t, "A-text", prompts[0].Children[0].ID)
	assert.Empty(t, prompts[0].Text)
}

func TestDynamicPosition_NoOps(t *testing.T) {
	cases := map[string]*entity.ToolConfig{
		"empty content":    positionTool(PositionBefore, ""),
		"unknown position": positionTool("above", "new"),
		"missing target": entity.NewToolConfig("pos", DynamicPositionID, map[string]interface{}{
			"targetId": "Z", "position": PositionBefore,
		}),
	}
	cases["missing target"].Content = "new"

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			prompts := twoNodes()
			statuses := runProcess(t, tc, &prompts, nil)

			assert.Empty(t, hook.Errors(statuses))
			assert.Equal(t, []string{"a", "b"}, texts(prompts))
		})
	}
}

func TestDynamicPosition_Role(t *testing.T) {
	tc := positionToolWithRole(PositionAfter, "new", "user")
	prompts := twoNodes()
	runProcess(t, tc, &prompts, nil)
	assert.Equal(t, entity.RoleUser, prompts[1].Role)

	tc = positionToolWithRole(PositionAfter, "new", "narrator")
	prompts = twoNodes()
	statuses := runProcess(t, tc, &prompts, nil)
	assert.Len(t, hook.Errors(statuses), 1)
	assert.Len(t, prompts, 2)
}
