package modifier

import (
	"github.com/google/uuid"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/tree"
	"github.com/kiosk404/promptloom/pkg/logger"
)

// Position says where InsertContent places the new node relative to its target.
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
	PositionChild  Position = "child"
)

// InsertOptions describes a node to insert into the prompt tree.
type InsertOptions struct {
	TargetID string
	Position Position

	// Node is inserted as is when set. Otherwise a leaf is built from Text,
	// Caption, ID and Role.
	Node *entity.Prompt

	Text    string
	Caption string
	Role    entity.Role

	// ID of the built node. A random id is generated when empty.
	ID string
}

func (o InsertOptions) node() *entity.Prompt {
	if o.Node != nil {
		return o.Node
	}
	id := o.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &entity.Prompt{
		ID:      id,
		Caption: o.Caption,
		Role:    o.Role,
		Text:    o.Text,
	}
}

// Content is the new content of a replaced node: either text or child nodes.
type Content struct {
	text    string
	nodes   []*entity.Prompt
	isNodes bool
}

// TextContent makes the target a leaf with text.
func TextContent(text string) Content {
	return Content{text: text}
}

// NodesContent makes the target a branch with the given children.
func NodesContent(nodes ...*entity.Prompt) Content {
	if nodes == nil {
		nodes = []*entity.Prompt{}
	}
	return Content{nodes: nodes, isNodes: true}
}

// ProcessPromptsContext is what a modifier sees while the prompt tree is assembled.
type ProcessPromptsContext[T any] struct {
	// Config is the parsed "<toolId>Param" object.
	Config T

	// ModifierConfig is the tool config this run was triggered by.
	ModifierConfig *entity.ToolConfig

	Prompts          *[]*entity.Prompt
	Messages         []*entity.Message
	FrameworkContext *entity.FrameworkContext

	modifierID string
}

// FindPrompt locates a node of the tree being assembled.
func (c *ProcessPromptsContext[T]) FindPrompt(id string) (tree.Location, bool) {
	return tree.FindByID(c.Prompts, id)
}

// InsertContent adds a node before, after or under the target. It returns
// false and logs a warning when the target does not exist.
func (c *ProcessPromptsContext[T]) InsertContent(opts InsertOptions) bool {
	loc, ok := c.FindPrompt(opts.TargetID)
	if !ok {
		logger.Warn("[Modifier] %s: insert target %q not found, skipping", c.modifierID, opts.TargetID)
		return false
	}

	switch opts.Position {
	case PositionBefore:
		loc.InsertBefore(opts.node())
	case PositionAfter:
		loc.InsertAfter(opts.node())
	case PositionChild:
		loc.AppendChild(opts.node())
	default:
		logger.Warn("[Modifier] %s: unknown insert position %q, skipping", c.modifierID, opts.Position)
		return false
	}
	return true
}

// ReplaceContent swaps the content of the target node and reports whether it exists.
func (c *ProcessPromptsContext[T]) ReplaceContent(targetID string, content Content) bool {
	loc, ok := c.FindPrompt(targetID)
	if !ok {
		logger.Warn("[Modifier] %s: replace target %q not found, skipping", c.modifierID, targetID)
		return false
	}
	if content.isNodes {
		loc.Node.SetChildren(content.nodes)
	} else {
		loc.Node.SetText(content.text)
	}
	return true
}

// PostProcessContext is what a modifier sees after the model has answered.
// The prompt tree is final at this point.
type PostProcessContext[T any] struct {
	Config           T
	ModifierConfig   *entity.ToolConfig
	Messages         []*entity.Message
	FrameworkContext *entity.FrameworkContext

	// ModelResponse is the raw model output.
	ModelResponse string

	Responses *[]*entity.Response

	modifierID string
}

// FindResponse returns the fragment with the given id.
func (c *PostProcessContext[T]) FindResponse(id string) (*entity.Response, bool) {
	if c.Responses == nil {
		return nil, false
	}
	for _, r := range *c.Responses {
		if r != nil && r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// InsertContent is not available after the prompt phase; it only warns.
func (c *PostProcessContext[T]) InsertContent(opts InsertOptions) bool {
	logger.Warn("[Modifier] %s: InsertContent(%q) called during post processing, ignored", c.modifierID, opts.TargetID)
	return false
}

// ReplaceContent is not available after the prompt phase; it only warns.
func (c *PostProcessContext[T]) ReplaceContent(targetID string, _ Content) bool {
	logger.Warn("[Modifier] %s: ReplaceContent(%q) called during post processing, ignored", c.modifierID, targetID)
	return false
}
