package builtin

import (
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/modifier"
	genericoptions "github.com/kiosk404/promptloom/internal/pkg/options"
	"github.com/kiosk404/promptloom/pkg/logger"
)

// Modifiers returns the built-in modifiers in their default order.
func Modifiers() []modifier.Modifier {
	return []modifier.Modifier{
		FullReplacement(),
		DynamicPosition(),
	}
}

// NewInTreeRegistry creates a registry holding the built-in modifiers that
// opts allows. A nil opts allows all of them.
func NewInTreeRegistry(opts *genericoptions.ModifierOptions) (*modifier.Registry, error) {
	registry := modifier.NewRegistry()
	for _, m := range Modifiers() {
		if opts != nil && !opts.Allowed(m.ModifierID()) {
			logger.Info("[Modifier] built-in modifier %q disabled by configuration", m.ModifierID())
			continue
		}
		if err := registry.Register(m); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
