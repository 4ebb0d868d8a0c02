package assemble

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/entity"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/store/file"
	"github.com/kiosk404/promptloom/internal/loomctl/cmd/util"
	"github.com/kiosk404/promptloom/pkg/logger"
	"github.com/spf13/cobra"
)

var assembleExample = heredoc.Doc(`
	# Assemble the prompt of the configured framework without history
	loomctl assemble -f conf/framework.yaml

	# Include a message history and print the request as JSON
	loomctl assemble -f conf/framework.yaml --pipeline.history history.json -o json

	# Re-assemble every time the framework file changes
	loomctl assemble -f conf/framework.yaml --watch`)

type AssembleOptions struct {
	Output string
	Tree   bool
	Watch  bool

	factory util.Factory
	util.IOStreams
}

func NewAssembleOptions(f util.Factory, ioStreams util.IOStreams) *AssembleOptions {
	return &AssembleOptions{
		Output:    util.OutputText,
		factory:   f,
		IOStreams: ioStreams,
	}
}

func NewCmdAssemble(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := NewAssembleOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Run the prompt phase and print the resulting request",
		Long: heredoc.Doc(`
			Run every configured modifier over a copy of the prompt tree and print
			the flattened request that would be sent to the model.`),
		Example: assembleExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format: text or json.")
	cmd.Flags().BoolVar(&o.Tree, "tree", o.Tree, "Print the processed prompt tree instead of the flattened request.")
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", o.Watch, "Re-assemble whenever the framework file changes.")
	return cmd
}

func (o *AssembleOptions) Validate() error {
	return util.ValidateOutput(o.Output)
}

func (o *AssembleOptions) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := o.factory.Config()
	if err != nil {
		return err
	}
	module, err := o.factory.PromptModule(ctx, nil)
	if err != nil {
		return err
	}
	defer module.Close()

	session := cfg.PipelineOptions.SessionID
	if err := o.assembleOnce(ctx, module, session); err != nil {
		return err
	}
	if !o.Watch {
		return nil
	}

	store, ok := module.ConfigRepo.(*file.ConfigStore)
	if !ok {
		return fmt.Errorf("--watch needs a file based framework config")
	}
	if err := store.Watch(func(*entity.FrameworkConfig) {
		fmt.Fprintln(o.Out, "---")
		if err := o.assembleOnce(ctx, module, session); err != nil {
			logger.Warn("[loomctl] assemble failed: %v", err)
		}
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

func (o *AssembleOptions) assembleOnce(ctx context.Context, module *prompt.Module, session string) error {
	pr, msgs, err := module.Assemble(ctx, session)
	if err != nil {
		return err
	}
	util.PrintStatuses(o.ErrOut, pr.Statuses)

	switch {
	case o.Tree:
		return util.PrintJSON(o.Out, pr.Prompts)
	case o.Output == util.OutputJSON:
		return util.PrintJSON(o.Out, msgs)
	default:
		util.PrintMessages(o.Out, msgs)
		return nil
	}
}
