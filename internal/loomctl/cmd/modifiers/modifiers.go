package modifiers

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gosuri/uitable"
	"github.com/kiosk404/promptloom/internal/loomctl/cmd/util"
	"github.com/spf13/cobra"
)

type ModifiersOptions struct {
	Output string

	factory util.Factory
	util.IOStreams
}

func NewCmdModifiers(f util.Factory, ioStreams util.IOStreams) *cobra.Command {
	o := &ModifiersOptions{
		Output:    util.OutputText,
		factory:   f,
		IOStreams: ioStreams,
	}

	cmd := &cobra.Command{
		Use:     "modifiers",
		Aliases: []string{"mods"},
		Short:   "List the registered modifiers",
		Long: heredoc.Doc(`
			List the modifiers a framework configuration can reference through
			its tools' toolId, together with the phases they run in.`),
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := util.ValidateOutput(o.Output); err != nil {
				return err
			}
			return o.Run()
		},
	}
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format: text or json.")
	return cmd
}

func (o *ModifiersOptions) Run() error {
	registry, err := o.factory.ModifierRegistry()
	if err != nil {
		return err
	}
	descriptors := registry.List()
	if o.Output == util.OutputJSON {
		return util.PrintJSON(o.Out, descriptors)
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("ID", "PHASES", "CAPTION", "DESCRIPTION")
	for _, d := range descriptors {
		table.AddRow(d.ID, strings.Join(d.Phases, ","), d.Caption, d.Description)
	}
	_, err = fmt.Fprintln(o.Out, table)
	return err
}
