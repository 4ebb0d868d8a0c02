package builtin

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/duration"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/modifier"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/pkg/errno"
	"github.com/kiosk404/promptloom/pkg/logger"
)

const (
	// FullReplacementID is the tool id of the full replacement modifier.
	FullReplacementID = "fullReplacement"

	// SourceHistoryOfSession replaces the target prompt with the session history.
	SourceHistoryOfSession = "historyOfSession"

	// SourceLLMResponse replaces the target response fragment with the model output.
	SourceLLMResponse = "llmResponse"

	// NoHistoryPlaceholder is the target text when no history survives filtering.
	NoHistoryPlaceholder = "No conversation history."
)

// FullReplacementConfig is the "fullReplacementParam" object.
type FullReplacementConfig struct {
	TargetID   string `json:"targetId"`
	SourceType string `json:"sourceType"`
}

func (c *FullReplacementConfig) Validate() error {
	if c.TargetID == "" {
		return fmt.Errorf("targetId is required")
	}
	return nil
}

// FullReplacement replaces the whole content of a target with data of the
// current turn: the session history before the model call, or the model
// output after it.
func FullReplacement() *modifier.Definition[FullReplacementConfig] {
	return &modifier.Definition[FullReplacementConfig]{
		ID:               FullReplacementID,
		Caption:          "Full replacement",
		Description:      "Replace a prompt with the session history, or a response with the model output.",
		OnProcessPrompts: replaceWithHistory,
		OnPostProcess:    replaceWithModelResponse,
	}
}

func replaceWithHistory(_ context.Context, mc *modifier.ProcessPromptsContext[FullReplacementConfig]) error {
	switch mc.Config.SourceType {
	case SourceHistoryOfSession:
	case SourceLLMResponse:
		return nil
	default:
		logger.Warn("[Modifier] %s: unknown sourceType %q on tool %q, skipping",
			FullReplacementID, mc.Config.SourceType, mc.ModifierConfig.ID)
		return nil
	}

	history, err := cloneMessages(mc.Messages)
	if err != nil {
		return err
	}
	history = dropCurrentUserMessage(history)
	kept := duration.Filter(history)

	if len(kept) == 0 {
		mc.ReplaceContent(mc.Config.TargetID, modifier.TextContent(NoHistoryPlaceholder))
		return nil
	}

	children := make([]*entity.Prompt, 0, len(kept))
	for i, msg := range kept {
		children = append(children, historyPrompt(mc.Config.TargetID, i, msg))
	}
	if mc.ReplaceContent(mc.Config.TargetID, modifier.NodesContent(children...)) {
		logger.Debug("[Modifier] %s: %q now holds %d history message(s) of %d",
			FullReplacementID, mc.Config.TargetID, len(kept), len(history))
	}
	return nil
}

func replaceWithModelResponse(_ context.Context, mc *modifier.PostProcessContext[FullReplacementConfig]) error {
	if mc.Config.SourceType != SourceLLMResponse {
		return nil
	}
	resp, ok := mc.FindResponse(mc.Config.TargetID)
	if !ok {
		logger.Warn("[Modifier] %s: %v: %q, skipping", FullReplacementID, errno.ErrResponseNotFound, mc.Config.TargetID)
		return nil
	}
	resp.Text = mc.ModelResponse
	return nil
}

// cloneMessages deep copies the history so pruning never reaches the caller's slice.
func cloneMessages(msgs []*entity.Message) ([]*entity.Message, error) {
	if len(msgs) == 0 {
		return nil, nil
	}
	out := make([]*entity.Message, 0, len(msgs))
	if err := copier.CopyWithOption(&out, &msgs, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy history: %w", err)
	}
	return out, nil
}

// dropCurrentUserMessage removes the newest user message: it is the one being
// answered, not history.
func dropCurrentUserMessage(msgs []*entity.Message) []*entity.Message {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i] != nil && msgs[i].Role == entity.MessageRoleUser {
			return append(msgs[:i], msgs[i+1:]...)
		}
	}
	return msgs
}

func historyPrompt(targetID string, index int, msg *entity.Message) *entity.Prompt {
	id := msg.ID
	if id == "" {
		id = fmt.Sprintf("%s-%d", targetID, index)
	}
	role := entity.RoleAssistant
	if msg.Role == entity.MessageRoleUser {
		role = entity.RoleUser
	}
	return &entity.Prompt{
		ID:   id,
		Role: role,
		Text: msg.Content,
		File: msg.File(),
	}
}
