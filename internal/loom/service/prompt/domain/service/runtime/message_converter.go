package runtime

import (
	"github.com/cloudwego/eino/schema"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/tree"
)

// Flattener turns a finished prompt tree into the request sent to the model.
type Flattener func(prompts []*entity.Prompt) []*schema.Message

// FlattenPrompts emits one message per non-empty leaf in document order.
// A leaf without a role inherits the role of its nearest ancestor that has
// one; the top level defaults to system.
func FlattenPrompts(prompts []*entity.Prompt) []*schema.Message {
	var result []*schema.Message
	flatten(prompts, entity.RoleSystem, &result)
	return result
}

func flatten(nodes []*entity.Prompt, inherited entity.Role, out *[]*schema.Message) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		role := inherited
		if n.Role != "" {
			role = n.Role
		}
		if !n.IsLeaf() {
			flatten(n.Children, role, out)
			continue
		}
		if n.Text == "" {
			continue
		}
		*out = append(*out, toSchemaMessage(n, role))
	}
}

func toSchemaMessage(n *entity.Prompt, role entity.Role) *schema.Message {
	sm := &schema.Message{
		Role:    toSchemaRole(role),
		Content: n.Text,
	}
	if n.File != nil {
		sm.Extra = map[string]any{
			"file": n.File,
		}
	}
	return sm
}

// toSchemaRole converts a prompt role to an Eino schema role.
func toSchemaRole(role entity.Role) schema.RoleType {
	switch role {
	case entity.RoleUser:
		return schema.User
	case entity.RoleAssistant:
		return schema.Assistant
	case entity.RoleSystem:
		return schema.System
	default:
		return schema.System
	}
}

// CountLeaves returns the number of leaf nodes in the tree.
func CountLeaves(prompts []*entity.Prompt) int {
	n := 0
	tree.Walk(prompts, func(p *entity.Prompt, _ int) bool {
		if p.IsLeaf() {
			n++
		}
		return true
	})
	return n
}
