package errno

import (
	"errors"
)

var (
	ErrInvalidModifierConfig      = errors.New("invalid modifier config")
	ErrModifierAlreadyRegistered  = errors.New("modifier already registered")
	ErrResponseNotFound           = errors.New("response not found")
	ErrInvalidFrameworkConfig     = errors.New("invalid framework config")
	ErrModelNotConfigured         = errors.New("model not configured")
	ErrUnsupportedConfigExtension = errors.New("unsupported config file extension")
)
