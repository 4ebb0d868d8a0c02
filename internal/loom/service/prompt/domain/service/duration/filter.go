package duration

import (
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/pkg/logger"
)

// RoundsFromCurrent returns how many rounds a message at position lies behind
// the newest of total messages. The newest message is 0 rounds away.
func RoundsFromCurrent(position, total int) int {
	return total - 1 - position
}

// retained applies the per-message duration rule.
func retained(msg *entity.Message, position, total int) bool {
	if msg.Duration == nil {
		return true
	}
	d := *msg.Duration
	if d == 0 {
		return false
	}
	return RoundsFromCurrent(position, total) < d
}

// IsExpiredForAI reports whether msg, on its own, would be left out of model
// context. The tool call/result pairing of Filter is not applied: a call kept
// alive by its result still reports expired here.
func IsExpiredForAI(msg *entity.Message, position, total int) bool {
	if msg == nil {
		return false
	}
	return !retained(msg, position, total)
}

// Filter returns the messages that remain eligible for model context.
//
// messages must be in chronological order. The result is a subsequence of
// the input in the same order; messages themselves are shared, not copied.
//
// A retained tool result keeps every earlier tool call with the same tool id,
// whatever that call's own duration says. Calls are matched by tool id only,
// so several calls to one tool are all kept.
func Filter(messages []*entity.Message) []*entity.Message {
	total := len(messages)
	if total == 0 {
		return nil
	}

	keep := make([]bool, total)
	resultTools := make(map[string]struct{})

	// Pass 1: base retention, newest first.
	for i := total - 1; i >= 0; i-- {
		msg := messages[i]
		if msg == nil {
			continue
		}
		keep[i] = retained(msg, i, total)
		if keep[i] && msg.IsToolResult() && msg.ToolID() != "" {
			resultTools[msg.ToolID()] = struct{}{}
		}
	}

	// Pass 2: keep calls that precede a retained result of the same tool.
	if len(resultTools) > 0 {
		seen := make(map[string]struct{}, len(resultTools))
		forced := 0
		for i := total - 1; i >= 0; i-- {
			msg := messages[i]
			if msg == nil {
				continue
			}
			id := msg.ToolID()
			if keep[i] && msg.IsToolResult() && id != "" {
				seen[id] = struct{}{}
				continue
			}
			if keep[i] || !msg.ContainsToolCall() {
				continue
			}
			if _, ok := seen[id]; ok {
				keep[i] = true
				forced++
			}
		}
		if forced > 0 {
			logger.Debug("[DurationFilter] kept %d tool call message(s) paired with retained results", forced)
		}
	}

	// Pass 3: emit in input order.
	result := make([]*entity.Message, 0, total)
	for i, msg := range messages {
		if keep[i] {
			result = append(result, msg)
		}
	}
	return result
}
