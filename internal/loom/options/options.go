package options

import (
	genericoptions "github.com/kiosk404/promptloom/internal/pkg/options"
	"github.com/kiosk404/promptloom/pkg/utils/json"
	"github.com/spf13/pflag"
)

type Options struct {
	LogOptions      *genericoptions.LogOptions      `json:"log"       mapstructure:"log"`
	PipelineOptions *genericoptions.PipelineOptions `json:"pipeline"  mapstructure:"pipeline"`
	ModifierOptions *genericoptions.ModifierOptions `json:"modifiers" mapstructure:"modifiers"`
	ModelOptions    *genericoptions.ModelOptions    `json:"model"     mapstructure:"model"`
}

func NewOptions() *Options {
	return &Options{
		LogOptions:      genericoptions.NewLogOptions(),
		PipelineOptions: genericoptions.NewPipelineOptions(),
		ModifierOptions: genericoptions.NewModifierOptions(),
		ModelOptions:    genericoptions.NewModelOptions(),
	}
}

// AddFlags registers every option group on fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.LogOptions.AddFlags(fs)
	o.PipelineOptions.AddFlags(fs)
	o.ModifierOptions.AddFlags(fs)
	o.ModelOptions.AddFlags(fs)
}

// Validate checks the option groups needed to assemble prompts.
// Model options are validated separately, only when a model is called.
func (o *Options) Validate() []error {
	var errs []error
	errs = append(errs, o.LogOptions.Validate()...)
	errs = append(errs, o.PipelineOptions.Validate()...)
	errs = append(errs, o.ModifierOptions.Validate()...)
	return errs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}

// Complete set default Options.
func (o *Options) Complete() error {
	if o.LogOptions.Format == "" {
		o.LogOptions.Format = "text"
	}
	return nil
}
