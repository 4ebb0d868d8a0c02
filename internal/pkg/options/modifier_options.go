package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ModifierOptions controls which built-in modifiers are registered.
type ModifierOptions struct {
	// Allow lists modifiers that may be registered. Empty allows all.
	Allow []string `json:"allow" mapstructure:"allow"`
	// Deny lists modifiers that are never registered. Deny wins over Allow.
	Deny []string `json:"deny" mapstructure:"deny"`
}

// NewModifierOptions returns a new instance of ModifierOptions.
func NewModifierOptions() *ModifierOptions {
	return &ModifierOptions{
		Allow: []string{},
		Deny:  []string{},
	}
}

// Allowed reports whether the modifier id passes the allow and deny lists.
func (o *ModifierOptions) Allowed(id string) bool {
	for _, d := range o.Deny {
		if d == id {
			return false
		}
	}
	if len(o.Allow) == 0 {
		return true
	}
	for _, a := range o.Allow {
		if a == id {
			return true
		}
	}
	return false
}

// Validate checks ModifierOptions fields.
func (o *ModifierOptions) Validate() []error {
	var errs []error
	for _, id := range append(append([]string{}, o.Allow...), o.Deny...) {
		if id == "" {
			errs = append(errs, fmt.Errorf("empty modifier id in allow/deny list"))
			continue
		}
		for _, c := range id {
			if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_') {
				errs = append(errs, fmt.Errorf("invalid character %q in modifier id %q", c, id))
				break
			}
		}
	}
	return errs
}

// AddFlags adds flags for the modifier options.
func (o *ModifierOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.Allow, "modifiers.allow", o.Allow, "Built-in modifiers to register (default all).")
	fs.StringSliceVar(&o.Deny, "modifiers.deny", o.Deny, "Built-in modifiers to leave out.")
}
