package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// LogOptions controls the process logger.
type LogOptions struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	// File additionally writes logs to this path when set.
	File string `json:"file" mapstructure:"file"`
}

func NewLogOptions() *LogOptions {
	return &LogOptions{
		Level:  "info",
		Format: "text",
	}
}

func (o *LogOptions) Validate() []error {
	var errs []error
	switch o.Level {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", o.Level))
	}
	if o.Format != "text" && o.Format != "json" {
		errs = append(errs, fmt.Errorf("invalid log format %q, must be 'text' or 'json'", o.Format))
	}
	return errs
}

func (o *LogOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Log level: debug, info, warn or error.")
	fs.StringVar(&o.Format, "log.format", o.Format, "Log format: 'text' or 'json'.")
	fs.StringVar(&o.File, "log.file", o.File, "Also write logs to this file.")
}
