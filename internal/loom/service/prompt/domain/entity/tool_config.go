package entity

import (
	"fmt"

	"github.com/kiosk404/promptloom/pkg/utils/json"
)

// ToolConfig configures one modifier or model-callable tool.
//
// On the wire the parameters live under a "<toolId>Param" key next to
// the discriminator, e.g.
//
//	{"id": "h1", "toolId": "fullReplacement",
//	 "fullReplacementParam": {"targetId": "history", "sourceType": "historyOfSession"}}
//
// Only the key matching ToolID is kept when decoding.
type ToolConfig struct {
	ID              string
	ToolID          string
	Caption         string
	Content         string
	ForbidOverrides bool

	// Param is the untyped payload of the variant ToolID selects, exactly as
	// decoded. The modifier registered under ToolID gives it its type and
	// rejects a payload of the wrong shape. Nil when absent.
	Param interface{}
}

// ParamKey returns the wire key holding the parameters of toolID.
func ParamKey(toolID string) string {
	return toolID + "Param"
}

// NewToolConfig creates a tool config for the given variant.
func NewToolConfig(id, toolID string, param interface{}) *ToolConfig {
	return &ToolConfig{ID: id, ToolID: toolID, Param: param}
}

// ParamObject returns Param as a JSON object. It fails when Param holds any
// other kind of value.
func (t *ToolConfig) ParamObject() (map[string]interface{}, error) {
	if m, ok := t.Param.(map[string]interface{}); ok {
		return m, nil
	}
	return nil, fmt.Errorf("%s must be an object, got %T", ParamKey(t.ToolID), t.Param)
}

type toolConfigWire struct {
	ID              string `json:"id"`
	ToolID          string `json:"toolId"`
	Caption         string `json:"caption,omitempty"`
	Content         string `json:"content,omitempty"`
	ForbidOverrides bool   `json:"forbidOverrides,omitempty"`
}

func (t *ToolConfig) UnmarshalJSON(data []byte) error {
	var w toolConfigWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = ToolConfig{
		ID:              w.ID,
		ToolID:          w.ToolID,
		Caption:         w.Caption,
		Content:         w.Content,
		ForbidOverrides: w.ForbidOverrides,
	}

	if p, ok := raw[ParamKey(w.ToolID)]; ok && p != nil {
		t.Param = p
	}
	return nil
}

func (t ToolConfig) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id":     t.ID,
		"toolId": t.ToolID,
	}
	if t.Caption != "" {
		out["caption"] = t.Caption
	}
	if t.Content != "" {
		out["content"] = t.Content
	}
	if t.ForbidOverrides {
		out["forbidOverrides"] = true
	}
	if t.Param != nil {
		out[ParamKey(t.ToolID)] = t.Param
	}
	return json.Marshal(out)
}
