package options

import (
	"errors"

	"github.com/spf13/pflag"
)

// PipelineOptions points at the per-turn inputs of the prompt pipeline.
type PipelineOptions struct {
	// ConfigFile is the framework configuration (prompt tree + tools), JSON or YAML.
	ConfigFile string `json:"config" mapstructure:"config"`
	// HistoryFile is a JSON or YAML array of messages, oldest first.
	HistoryFile string `json:"history" mapstructure:"history"`
	SessionID   string `json:"session-id" mapstructure:"session-id"`
}

func NewPipelineOptions() *PipelineOptions {
	return &PipelineOptions{
		ConfigFile: "conf/framework.yaml",
	}
}

func (o *PipelineOptions) Validate() []error {
	if o.ConfigFile == "" {
		return []error{errors.New("pipeline.config is required")}
	}
	return nil
}

func (o *PipelineOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ConfigFile, "pipeline.config", "f", o.ConfigFile, "Framework configuration file (JSON or YAML).")
	fs.StringVar(&o.HistoryFile, "pipeline.history", o.HistoryFile, "Message history file (JSON or YAML array, oldest first).")
	fs.StringVar(&o.SessionID, "pipeline.session-id", o.SessionID, "Session id exposed to modifiers.")
}
