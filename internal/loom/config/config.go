package config

import (
	"errors"

	"github.com/kiosk404/promptloom/internal/loom/options"
)

// Config is the running configuration of loomctl.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions validates opts and wraps them in a Config.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	if err := opts.Complete(); err != nil {
		return nil, err
	}
	if errs := opts.Validate(); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Config{opts}, nil
}
