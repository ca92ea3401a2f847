package game

import "fmt"

type Config struct {
	Width, Height int
	NumMines      int

	Seed int64

	// Fixed mine layout to play instead of a randomly generated one. Its
	// dimensions and mine count take precedence over the fields above.
	Layout *Layout
}

func NewConfig() Config {
	return Config{
		Width:    16,
		Height:   16,
		NumMines: 40,
	}
}

func (config Config) Validate() error {
	if config.Layout != nil {
		if err := config.Layout.validate(); err != nil {
			return err
		}
		width, height := config.Layout.Dimensions()
		return validateDimensions(width, height, config.Layout.NumMines())
	}
	return validateDimensions(config.Width, config.Height, config.NumMines)
}

func validateDimensions(width, height, numMines int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, width, height)
	}
	if numMines < 0 {
		return fmt.Errorf("%w: negative mine count %d", ErrInvalidConfig, numMines)
	}
	if numMines >= width*height {
		return fmt.Errorf("%w: %d mines do not fit a %dx%d board", ErrInvalidConfig, numMines, width, height)
	}
	return nil
}
