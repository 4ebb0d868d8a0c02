package entity

// FrameworkConfig is the per-turn input of the prompt pipeline.
type FrameworkConfig struct {
	// Prompts is the top level of the prompt tree.
	Prompts []*Prompt `json:"prompts" yaml:"prompts"`

	// Tools is the ordered list of modifier and tool configurations.
	// Modifiers run in this order.
	Tools []*ToolConfig `json:"tools" yaml:"tools"`

	Response *ResponseConfig `json:"response,omitempty" yaml:"response,omitempty"`
}

// FrameworkContext is shared, read-only data every hook may consult.
type FrameworkContext struct {
	Config *FrameworkConfig

	// SessionID identifies the conversation being answered, if known.
	SessionID string

	// Extra holds caller-defined values for custom modifiers.
	Extra map[string]interface{}
}
