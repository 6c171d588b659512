package domain

import "errors"

var (
	ErrInvalidHomePath     = errors.New("invalid home path")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrInvalidPath         = errors.New("invalid path")
	ErrCorruptConfig       = errors.New("corrupt configuration")
	ErrLinkFailed          = errors.New("link operation failed")
	ErrNetwork             = errors.New("network error")
	ErrPresetNotFound      = errors.New("preset not found")
	ErrLastPreset          = errors.New("cannot delete the last preset")
	ErrModNotFound         = errors.New("mod not found")
	ErrNoWorkshopPage      = errors.New("mod has no workshop page")
)
