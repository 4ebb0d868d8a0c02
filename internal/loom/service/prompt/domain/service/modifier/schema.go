package modifier

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/pkg/errno"
)

// Schema turns the raw "<toolId>Param" object into a typed configuration.
type Schema[T any] interface {
	Parse(raw map[string]interface{}) (T, error)
}

// Validator is implemented by configuration types that check their own fields
// after decoding.
type Validator interface {
	Validate() error
}

// SchemaFunc adapts a plain function to Schema.
type SchemaFunc[T any] func(raw map[string]interface{}) (T, error)

func (f SchemaFunc[T]) Parse(raw map[string]interface{}) (T, error) {
	return f(raw)
}

// StructSchema decodes the raw parameters into T using its json tags.
// Unknown keys are rejected. If *T implements Validator, Validate runs last.
func StructSchema[T any]() Schema[T] {
	return structSchema[T]{}
}

type structSchema[T any] struct{}

func (structSchema[T]) Parse(raw map[string]interface{}) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &out,
		TagName:     "json",
		ErrorUnused: true,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(raw); err != nil {
		return out, fmt.Errorf("%w: %v", errno.ErrInvalidModifierConfig, err)
	}
	if v, ok := any(&out).(Validator); ok {
		if err := v.Validate(); err != nil {
			return out, fmt.Errorf("%w: %v", errno.ErrInvalidModifierConfig, err)
		}
	}
	return out, nil
}
