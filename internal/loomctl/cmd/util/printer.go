package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/fatih/color"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/hook"
	"github.com/kiosk404/promptloom/pkg/utils/json"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

var roleColors = map[schema.RoleType]*color.Color{
	schema.System:    color.New(color.FgYellow, color.Bold),
	schema.User:      color.New(color.FgGreen, color.Bold),
	schema.Assistant: color.New(color.FgCyan, color.Bold),
}

// ValidateOutput checks an --output value.
func ValidateOutput(output string) error {
	if output != OutputText && output != OutputJSON {
		return fmt.Errorf("invalid output format %q, must be %q or %q", output, OutputText, OutputJSON)
	}
	return nil
}

// PrintJSON writes v as indented JSON.
func PrintJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// PrintMessages writes flattened request messages, one block per message.
func PrintMessages(out io.Writer, msgs []*schema.Message) {
	for i, m := range msgs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		c, ok := roleColors[m.Role]
		if !ok {
			c = color.New(color.Bold)
		}
		c.Fprintf(out, "[%s]\n", strings.ToUpper(string(m.Role)))
		fmt.Fprintln(out, m.Content)
	}
}

// PrintStatuses reports failed taps; successful and skipped taps are not shown.
func PrintStatuses(out io.Writer, statuses []*hook.Status) {
	warn := color.New(color.FgRed)
	for _, s := range statuses {
		if s.Code() != hook.Error {
			continue
		}
		warn.Fprintf(out, "%s failed: %s\n", s.Origin(), s.Message())
	}
}
