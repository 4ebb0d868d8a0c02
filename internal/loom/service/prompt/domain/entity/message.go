package entity

// MessageRole is the sender of a history message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleTool      MessageRole = "tool"
	MessageRoleError     MessageRole = "error"
)

// MessageMetadata carries the flags the duration filter needs for
// pairing tool calls with their results.
type MessageMetadata struct {
	IsToolResult     bool     `json:"isToolResult,omitempty" yaml:"isToolResult,omitempty"`
	ToolID           string   `json:"toolId,omitempty" yaml:"toolId,omitempty"`
	ContainsToolCall bool     `json:"containsToolCall,omitempty" yaml:"containsToolCall,omitempty"`
	File             *FileRef `json:"file,omitempty" yaml:"file,omitempty"`
}

// Message is a single conversation record owned by an external store.
// It is treated as immutable here.
type Message struct {
	ID      string      `json:"id" yaml:"id"`
	Role    MessageRole `json:"role" yaml:"role"`
	Content string      `json:"content" yaml:"content"`

	// Duration is the number of rounds the message stays in model context.
	// Nil keeps it forever, zero hides it from the model immediately.
	Duration *int `json:"duration,omitempty" yaml:"duration,omitempty"`

	Metadata *MessageMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// IsToolResult reports whether the message is the result of a tool call.
func (m *Message) IsToolResult() bool {
	return m.Metadata != nil && m.Metadata.IsToolResult
}

// ContainsToolCall reports whether the message requested a tool call.
func (m *Message) ContainsToolCall() bool {
	return m.Metadata != nil && m.Metadata.ContainsToolCall
}

// ToolID returns the tool id from the metadata, or "".
func (m *Message) ToolID() string {
	if m.Metadata == nil {
		return ""
	}
	return m.Metadata.ToolID
}

// File returns the attached file reference, if any.
func (m *Message) File() *FileRef {
	if m.Metadata == nil {
		return nil
	}
	return m.Metadata.File
}
