package run

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/kiosk404/promptloom/internal/loomctl/cmd/util"
	"github.com/spf13/cobra"
)

var runExample = heredoc.Doc(`
	# Run one turn against the default OpenAI endpoint ($OPENAI_API_KEY)
	loomctl run -f conf/framework.yaml --pipeline.history history.json

	# Use another OpenAI-compatible endpoint
	loomctl run -f conf/framework.yaml --model.base-url http://localhost:11434/v1 --model.name qwen2.5`)

type RunOptions struct {
	Output      string
	ShowRequest bool

	factory util.Factory
	util.IOStreams
}

func NewRunOptions(f util.Factory, ioStreams util.IOStreams) *RunOptions {
	return &RunOptions{
		Output:    util.OutputText,
		factory:   f,
		IOStreams: ioStreams,
	}
}

func NewCmdRun(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := NewRunOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a full turn: assemble, call the model, post process",
		Long: heredoc.Doc(`
			Assemble the prompt, send it to an OpenAI-compatible model and run the
			post-process phase over the answer. The resulting response fragments
			are printed.`),
		Example: runExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := util.ValidateOutput(o.Output); err != nil {
				return err
			}
			return o.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format: text or json.")
	cmd.Flags().BoolVar(&o.ShowRequest, "show-request", o.ShowRequest, "Also print the request sent to the model.")
	return cmd
}

func (o *RunOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := o.factory.Config()
	if err != nil {
		return err
	}
	chatModel, err := o.factory.ChatModel(ctx)
	if err != nil {
		return fmt.Errorf("failed to create chat model: %w", err)
	}
	module, err := o.factory.PromptModule(ctx, chatModel)
	if err != nil {
		return err
	}
	defer module.Close()

	result, err := module.Run(ctx, cfg.PipelineOptions.SessionID)
	if err != nil {
		return err
	}
	util.PrintStatuses(o.ErrOut, result.Statuses)

	if o.Output == util.OutputJSON {
		return util.PrintJSON(o.Out, result)
	}

	if o.ShowRequest {
		util.PrintMessages(o.Out, result.Request)
		fmt.Fprintln(o.Out, "---")
	}
	if len(result.Responses) == 0 {
		fmt.Fprintln(o.Out, result.ModelResponse)
		return nil
	}
	heading := color.New(color.FgMagenta, color.Bold)
	for _, r := range result.Responses {
		heading.Fprintf(o.Out, "[%s]\n", r.ID)
		fmt.Fprintln(o.Out, r.Text)
	}
	return nil
}
