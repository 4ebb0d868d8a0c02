package entity

// Role is the speaker a prompt node is attributed to when the tree is flattened.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// FileRef points at a file attached to a message or prompt node.
type FileRef struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
}

// Prompt is one node of the prompt tree.
//
// A node is either a leaf carrying Text or a branch carrying Children.
// SetText and SetChildren keep the two mutually exclusive.
type Prompt struct {
	// ID is unique within one tree.
	ID string `json:"id" yaml:"id"`

	// Caption is a human readable label, never sent to the model.
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`

	// Role is inherited by descendants that leave it empty.
	Role Role `json:"role,omitempty" yaml:"role,omitempty"`

	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	Children []*Prompt `json:"children,omitempty" yaml:"children,omitempty"`

	// File is an attachment carried over from a history message.
	File *FileRef `json:"file,omitempty" yaml:"file,omitempty"`
}

// SetText turns the node into a leaf.
func (p *Prompt) SetText(text string) {
	p.Text = text
	p.Children = nil
}

// SetChildren turns the node into a branch.
func (p *Prompt) SetChildren(children []*Prompt) {
	p.Children = children
	p.Text = ""
}

// IsLeaf reports whether the node has no children.
func (p *Prompt) IsLeaf() bool {
	return len(p.Children) == 0
}
