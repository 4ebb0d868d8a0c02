package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/duration"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/store/file"
	"github.com/kiosk404/promptloom/internal/loomctl/cmd/util"
	"github.com/spf13/cobra"
)

const contentWidth = 48

// Row is one message of the history view.
type Row struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Duration  *int   `json:"duration,omitempty"`
	Rounds    int    `json:"roundsFromCurrent"`
	Expired   bool   `json:"expiredForAI"`
	InContext bool   `json:"inContext"`
	Content   string `json:"content"`
}

type HistoryOptions struct {
	Output string

	factory util.Factory
	util.IOStreams
}

func NewCmdHistory(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &HistoryOptions{
		Output:    util.OutputText,
		factory:   f,
		IOStreams: ioStreams,
	}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show which history messages remain in model context",
		Long: heredoc.Doc(`
			Print the message history with each message's retention window.
			EXPIRED is the message's own verdict; IN CONTEXT additionally applies
			tool call/result pairing, so an expired call kept by its result shows
			both.`),
		Example: "  loomctl history --pipeline.history history.json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.ValidateOutput(o.Output); err != nil {
				return err
			}
			return o.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format: text or json.")
	return cmd
}

func (o *HistoryOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := o.factory.Config()
	if err != nil {
		return err
	}
	if cfg.PipelineOptions.HistoryFile == "" {
		return fmt.Errorf("--pipeline.history is required")
	}
	store, err := file.NewHistoryStore(cfg.PipelineOptions.HistoryFile)
	if err != nil {
		return err
	}
	msgs, err := store.List(ctx, cfg.PipelineOptions.SessionID)
	if err != nil {
		return err
	}

	rows := BuildRows(msgs)
	if o.Output == util.OutputJSON {
		return util.PrintJSON(o.Out, rows)
	}

	faint := color.New(color.Faint)
	table := uitable.New()
	table.AddRow("#", "ID", "ROLE", "DURATION", "ROUNDS", "EXPIRED", "IN CONTEXT", "CONTENT")
	for i, r := range rows {
		d := "-"
		if r.Duration != nil {
			d = strconv.Itoa(*r.Duration)
		}
		content := truncate(r.Content, contentWidth)
		if !r.InContext {
			content = faint.Sprint(content)
		}
		table.AddRow(i, r.ID, r.Role, d, r.Rounds, r.Expired, r.InContext, content)
	}
	_, err = fmt.Fprintln(o.Out, table)
	return err
}

// BuildRows annotates msgs with their retention state.
func BuildRows(msgs []*entity.Message) []Row {
	kept := make(map[*entity.Message]struct{})
	for _, m := range duration.Filter(msgs) {
		kept[m] = struct{}{}
	}

	rows := make([]Row, 0, len(msgs))
	for i, m := range msgs {
		if m == nil {
			continue
		}
		_, inContext := kept[m]
		rows = append(rows, Row{
			ID:        m.ID,
			Role:      string(m.Role),
			Duration:  m.Duration,
			Rounds:    duration.RoundsFromCurrent(i, len(msgs)),
			Expired:   duration.IsExpiredForAI(m, i, len(msgs)),
			InContext: inContext,
			Content:   m.Content,
		})
	}
	return rows
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
