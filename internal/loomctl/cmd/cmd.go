package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/promptloom/internal/loom"
	"github.com/kiosk404/promptloom/internal/loom/options"
	"github.com/kiosk404/promptloom/internal/loomctl/cmd/assemble"
	"github.com/kiosk404/promptloom/internal/loomctl/cmd/history"
	"github.com/kiosk404/promptloom/internal/loomctl/cmd/modifiers"
	"github.com/kiosk404/promptloom/internal/loomctl/cmd/run"
	cmdutil "github.com/kiosk404/promptloom/internal/loomctl/cmd/util"
	"github.com/kiosk404/promptloom/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "LOOM"

// NewDefaultLoomCtlCommand creates the `loomctl` command with default arguments.
func NewDefaultLoomCtlCommand() *cobra.Command {
	return NewLoomCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewLoomCtlCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := options.NewOptions()
	v := viper.New()
	var settingsFile string

	cmds := &cobra.Command{
		Use:   "loomctl",
		Short: "loomctl assembles model prompts from a prompt tree and a set of modifiers",
		Long: heredoc.Doc(`
			loomctl runs the prompt pipeline: it loads a framework configuration
			(prompt tree + ordered modifier configs) and a message history, applies
			every modifier to a copy of the tree and prints or sends the result.

			Every flag can also be set in a settings file (--config) or through
			LOOM_* environment variables, e.g. LOOM_LOG_LEVEL=debug.`),
		Run:           runHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadSettings(v, settingsFile, cmd); err != nil {
				return err
			}
			if err := v.Unmarshal(opts); err != nil {
				return fmt.Errorf("failed to decode options: %w", err)
			}
			return loom.InitLogging(opts.LogOptions)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.FlushLog()
		},
	}
	cmds.SetIn(in)
	cmds.SetOut(out)
	cmds.SetErr(errOut)

	flags := cmds.PersistentFlags()
	flags.StringVar(&settingsFile, "config", "", "Settings file (YAML or JSON) holding loomctl flags.")
	opts.AddFlags(flags)

	ioStreams := cmdutil.IOStreams{In: in, Out: out, ErrOut: errOut}
	f := cmdutil.NewFactory(opts)

	cmds.AddCommand(
		assemble.NewCmdAssemble(f, ioStreams),
		run.NewCmdRun(f, ioStreams),
		modifiers.NewCmdModifiers(f, ioStreams),
		history.NewCmdHistory(f, ioStreams),
	)
	return cmds
}

// loadSettings binds flags, environment and the optional settings file into v.
// Precedence: flag > env > settings file > flag default.
func loadSettings(v *viper.Viper, settingsFile string, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if settingsFile == "" {
		return nil
	}
	v.SetConfigFile(settingsFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read settings file %q: %w", settingsFile, err)
	}
	logger.Debug("[loomctl] using settings file %s", v.ConfigFileUsed())
	return nil
}

func runHelp(cmd *cobra.Command, _ []string) {
	_ = cmd.Help()
}
