package game

import "errors"

var (
	// ErrInvalidConfig is returned when a round cannot be created from the
	// configured dimensions and mine count
	ErrInvalidConfig = errors.New("invalid game config")

	// ErrInvalidLayout is returned for malformed fixed board layouts
	ErrInvalidLayout = errors.New("invalid board layout")
)
