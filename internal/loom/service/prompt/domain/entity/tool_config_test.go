package entity

import (
	"testing"

	"github.com/kiosk404/promptloom/pkg/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolConfig_UnmarshalKeepsOwnParam(t *testing.T) {
	data := []byte(`{
		"id": "h1",
		"toolId": "fullReplacement",
		"caption": "History",
		"forbidOverrides": true,
		"fullReplacementParam": {"targetId": "history", "sourceType": "historyOfSession"},
		"dynamicPositionParam": {"targetId": "ignored", "position": "before"}
	}`)

	var tc ToolConfig
	require.NoError(t, json.Unmarshal(data, &tc))

	assert.Equal(t, "h1", tc.ID)
	assert.Equal(t, "fullReplacement", tc.ToolID)
	assert.Equal(t, "History", tc.Caption)
	assert.True(t, tc.ForbidOverrides)
	assert.Equal(t, map[string]interface{}{"targetId": "history", "sourceType": "historyOfSession"}, tc.Param)
}

func TestToolConfig_UnmarshalWithoutParam(t *testing.T) {
	var tc ToolConfig
	require.NoError(t, json.Unmarshal([]byte(`{"id": "x", "toolId": "dynamicPosition", "content": "hi"}`), &tc))
	assert.Nil(t, tc.Param)
	assert.Equal(t, "hi", tc.Content)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "x", "toolId": "dynamicPosition", "dynamicPositionParam": null}`), &tc))
	assert.Nil(t, tc.Param)
}

func TestToolConfig_UnmarshalKeepsMalformedParam(t *testing.T) {
	var tc ToolConfig
	require.NoError(t, json.Unmarshal([]byte(`{"id": "x", "toolId": "dynamicPosition", "dynamicPositionParam": "before"}`), &tc))
	assert.Equal(t, "before", tc.Param)

	_, err := tc.ParamObject()
	assert.EqualError(t, err, "dynamicPositionParam must be an object, got string")
}

func TestToolConfig_MarshalUsesParamKey(t *testing.T) {
	tc := NewToolConfig("p1", "dynamicPosition", map[string]interface{}{"targetId": "a"})

	data, err := json.Marshal(tc)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "dynamicPosition", raw["toolId"])
	assert.Equal(t, map[string]interface{}{"targetId": "a"}, raw["dynamicPositionParam"])
	assert.NotContains(t, raw, "caption")
}

func TestFrameworkConfig_Decode(t *testing.T) {
	data := []byte(`{
		"prompts": [{"id": "root", "children": [{"id": "leaf", "text": "hello", "role": "user"}]}],
		"tools": [{"id": "t", "toolId": "dynamicPosition", "dynamicPositionParam": {"targetId": "leaf"}}],
		"response": {"slots": [{"id": "answer"}]}
	}`)

	var cfg FrameworkConfig
	require.NoError(t, json.Unmarshal(data, &cfg))
	require.Len(t, cfg.Prompts, 1)
	assert.Equal(t, RoleUser, cfg.Prompts[0].Children[0].Role)
	require.Len(t, cfg.Tools, 1)
	param, err := cfg.Tools[0].ParamObject()
	require.NoError(t, err)
	assert.Equal(t, "leaf", param["targetId"])

	responses := cfg.Response.NewResponses()
	require.Len(t, responses, 1)
	assert.Equal(t, "answer", responses[0].ID)
}
