package duration

import (
	"testing"

	"github.com/bytedance/gg/gptr"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/stretchr/testify/assert"
)

func msg(id string, d *int) *entity.Message {
	return &entity.Message{ID: id, Role: entity.MessageRoleAssistant, Content: id, Duration: d}
}

func toolCall(id, toolID string, d *int) *entity.Message {
	m := msg(id, d)
	m.Metadata = &entity.MessageMetadata{ContainsToolCall: true, ToolID: toolID}
	return m
}

func toolResult(id, toolID string, d *int) *entity.Message {
	m := msg(id, d)
	m.Role = entity.MessageRoleTool
	m.Metadata = &entity.MessageMetadata{IsToolResult: true, ToolID: toolID}
	return m
}

func msgIDs(msgs []*entity.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.ID)
	}
	return out
}

func TestRoundsFromCurrent(t *testing.T) {
	assert.Equal(t, 0, RoundsFromCurrent(4, 5))
	assert.Equal(t, 4, RoundsFromCurrent(0, 5))
}

func TestFilter_MixedDurations(t *testing.T) {
	msgs := []*entity.Message{
		msg("forever", nil),
		msg("hidden", gptr.Of(0)),
		msg("one", gptr.Of(1)),
	}

	assert.Equal(t, []string{"forever", "one"}, msgIDs(Filter(msgs)))
}

func TestFilter_OnlyNewestSurvivesDurationOne(t *testing.T) {
	msgs := []*entity.Message{
		msg("m0", gptr.Of(1)),
		msg("m1", gptr.Of(1)),
		msg("m2", gptr.Of(1)),
	}

	assert.Equal(t, []string{"m2"}, msgIDs(Filter(msgs)))
}

func TestFilter_Properties(t *testing.T) {
	msgs := []*entity.Message{
		msg("a", nil),
		msg("b", gptr.Of(5)),
		msg("c", gptr.Of(0)),
		msg("d", gptr.Of(3)),
		msg("e", gptr.Of(-1)),
		msg("f", nil),
	}

	got := Filter(msgs)
	assert.Equal(t, []string{"a", "b", "d", "f"}, msgIDs(got))
	assert.LessOrEqual(t, len(got), len(msgs))

	// Same pointers, same order, input untouched.
	assert.Same(t, msgs[0], got[0])
	assert.Len(t, msgs, 6)

	assert.Empty(t, Filter(nil))
}

func TestFilter_ResultKeepsEarlierCall(t *testing.T) {
	msgs := []*entity.Message{
		toolCall("call", "search", gptr.Of(1)),
		toolResult("result", "search", nil),
		msg("answer", nil),
	}

	assert.Equal(t, []string{"call", "result", "answer"}, msgIDs(Filter(msgs)))
	assert.True(t, IsExpiredForAI(msgs[0], 0, len(msgs)))
}

func TestFilter_ExpiredResultDoesNotKeepCall(t *testing.T) {
	msgs := []*entity.Message{
		toolCall("call", "search", gptr.Of(1)),
		toolResult("result", "search", gptr.Of(1)),
		msg("answer", nil),
	}

	assert.Equal(t, []string{"answer"}, msgIDs(Filter(msgs)))
}

func TestFilter_CallAfterResultNotForced(t *testing.T) {
	msgs := []*entity.Message{
		toolResult("result", "search", nil),
		toolCall("late-call", "search", gptr.Of(0)),
	}

	assert.Equal(t, []string{"result"}, msgIDs(Filter(msgs)))
}

func TestFilter_PairingMatchesByToolIDOnly(t *testing.T) {
	msgs := []*entity.Message{
		toolCall("call-1", "search", gptr.Of(0)),
		toolCall("call-2", "search", gptr.Of(0)),
		toolCall("other", "fetch", gptr.Of(0)),
		toolResult("result", "search", nil),
	}

	assert.Equal(t, []string{"call-1", "call-2", "result"}, msgIDs(Filter(msgs)))
}

func TestIsExpiredForAI(t *testing.T) {
	assert.False(t, IsExpiredForAI(msg("x", nil), 0, 10))
	assert.True(t, IsExpiredForAI(msg("x", gptr.Of(0)), 9, 10))
	assert.False(t, IsExpiredForAI(msg("x", gptr.Of(2)), 8, 10))
	assert.True(t, IsExpiredForAI(msg("x", gptr.Of(2)), 7, 10))
	assert.False(t, IsExpiredForAI(nil, 0, 1))
}
