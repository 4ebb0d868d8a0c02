package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ModelOptions describes the OpenAI-compatible endpoint used by `loomctl run`.
type ModelOptions struct {
	BaseURL     string  `json:"base-url" mapstructure:"base-url"`
	APIKey      string  `json:"-" mapstructure:"api-key"`
	Model       string  `json:"name" mapstructure:"name"`
	MaxTokens   int     `json:"max-tokens" mapstructure:"max-tokens"`
	Temperature float32 `json:"temperature" mapstructure:"temperature"`
}

func NewModelOptions() *ModelOptions {
	return &ModelOptions{
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o-mini",
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

func (o *ModelOptions) Validate() []error {
	var errs []error
	if o.Model == "" {
		errs = append(errs, fmt.Errorf("model.name is required"))
	}
	if o.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("model.max-tokens must not be negative, got %d", o.MaxTokens))
	}
	if o.Temperature < 0 || o.Temperature > 2 {
		errs = append(errs, fmt.Errorf("model.temperature must be within [0, 2], got %v", o.Temperature))
	}
	return errs
}

func (o *ModelOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BaseURL, "model.base-url", o.BaseURL, "Base URL of the OpenAI-compatible endpoint.")
	fs.StringVar(&o.APIKey, "model.api-key", o.APIKey, "API key of the endpoint. Falls back to $OPENAI_API_KEY.")
	fs.StringVar(&o.Model, "model.name", o.Model, "Model id to call.")
	fs.IntVar(&o.MaxTokens, "model.max-tokens", o.MaxTokens, "Maximum tokens to generate.")
	fs.Float32Var(&o.Temperature, "model.temperature", o.Temperature, "Sampling temperature.")
}
