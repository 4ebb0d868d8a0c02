package builtin

import (
	"context"
	"fmt"

	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/modifier"
	"github.com/kiosk404/promptloom/pkg/logger"
)

const (
	// DynamicPositionID is the tool id of the dynamic position modifier.
	DynamicPositionID = "dynamicPosition"

	PositionBefore   = "before"
	PositionAfter    = "after"
	PositionRelative = "relative"
)

// DynamicPositionConfig is the "dynamicPositionParam" object.
type DynamicPositionConfig struct {
	TargetID string `json:"targetId"`
	Position string `json:"position"`

	// Role of the inserted node. Empty inherits from the surrounding tree.
	Role string `json:"role,omitempty"`
}

func (c *DynamicPositionConfig) Validate() error {
	if c.TargetID == "" {
		return fmt.Errorf("targetId is required")
	}
	switch entity.Role(c.Role) {
	case "", entity.RoleSystem, entity.RoleUser, entity.RoleAssistant:
		return nil
	default:
		return fmt.Errorf("invalid role %q", c.Role)
	}
}

// DynamicPosition inserts the tool config's content next to, or under, a target prompt.
func DynamicPosition() *modifier.Definition[DynamicPositionConfig] {
	return &modifier.Definition[DynamicPositionConfig]{
		ID:               DynamicPositionID,
		Caption:          "Dynamic position",
		Description:      "Insert static content before, after or inside a target prompt.",
		OnProcessPrompts: insertAtPosition,
	}
}

var insertPositions = map[string]modifier.Position{
	PositionBefore:   modifier.PositionBefore,
	PositionAfter:    modifier.PositionAfter,
	PositionRelative: modifier.PositionChild,
}

func insertAtPosition(_ context.Context, mc *modifier.ProcessPromptsContext[DynamicPositionConfig]) error {
	tc := mc.ModifierConfig
	if tc.Content == "" {
		logger.Warn("[Modifier] %s: tool %q has no content, skipping", DynamicPositionID, tc.ID)
		return nil
	}
	pos, ok := insertPositions[mc.Config.Position]
	if !ok {
		logger.Warn("[Modifier] %s: unknown position %q on tool %q, skipping",
			DynamicPositionID, mc.Config.Position, tc.ID)
		return nil
	}

	mc.InsertContent(modifier.InsertOptions{
		TargetID: mc.Config.TargetID,
		Position: pos,
		Text:     tc.Content,
		Caption:  tc.Caption,
		Role:     entity.Role(mc.Config.Role),
	})
	return nil
}
