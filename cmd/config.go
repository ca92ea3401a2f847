package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/they4kman/minefield/game"
	"gopkg.in/yaml.v2"
)

// options holds everything the command line and config file control
type options struct {
	width, height, mines int
	seed                 int64
	layoutPath           string
	configPath           string

	ui               uiKind
	director         directorKind
	rounds           int
	directorInterval time.Duration

	logLevel string
	logFile  string
}

// fileConfig is the YAML config file. Unset fields keep the flag defaults.
type fileConfig struct {
	Width            *int           `yaml:"width"`
	Height           *int           `yaml:"height"`
	Mines            *int           `yaml:"mines"`
	Seed             *int64         `yaml:"seed"`
	Layout           string         `yaml:"layout"`
	UI               string         `yaml:"ui"`
	Director         string         `yaml:"director"`
	Rounds           *int           `yaml:"rounds"`
	DirectorInterval *time.Duration `yaml:"director_interval"`
	LogLevel         string         `yaml:"log_level"`
	LogFile          string         `yaml:"log_file"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config fileConfig
	if err := yaml.UnmarshalStrict(in, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &config, nil
}

// apply copies the file's values into opts, except for flags given
// explicitly on the command line
func (config *fileConfig) apply(flags *pflag.FlagSet, opts *options) error {
	fromFile := func(name string) bool {
		return !flags.Changed(name)
	}

	if config.Width != nil && fromFile("width") {
		opts.width = *config.Width
	}
	if config.Height != nil && fromFile("height") {
		opts.height = *config.Height
	}
	if config.Mines != nil && fromFile("mines") {
		opts.mines = *config.Mines
	}
	if config.Seed != nil && fromFile("seed") {
		opts.seed = *config.Seed
	}
	if config.Layout != "" && fromFile("layout") {
		opts.layoutPath = config.Layout
	}
	if config.UI != "" && fromFile("ui") {
		if err := (*uiValue)(&opts.ui).Set(config.UI); err != nil {
			return err
		}
	}
	if config.Director != "" && fromFile("director") {
		if err := (*directorValue)(&opts.director).Set(config.Director); err != nil {
			return err
		}
	}
	if config.Rounds != nil && fromFile("rounds") {
		opts.rounds = *config.Rounds
	}
	if config.DirectorInterval != nil && fromFile("director-interval") {
		opts.directorInterval = *config.DirectorInterval
	}
	if config.LogLevel != "" && fromFile("log-level") {
		opts.logLevel = config.LogLevel
	}
	if config.LogFile != "" && fromFile("log-file") {
		opts.logFile = config.LogFile
	}
	return nil
}

// gameConfig builds the round configuration. A zero seed means "pick one".
func (opts *options) gameConfig() (game.Config, error) {
	config := game.NewConfig()
	config.Width = opts.width
	config.Height = opts.height
	config.NumMines = opts.mines

	config.Seed = opts.seed
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	if opts.layoutPath != "" {
		in, err := os.ReadFile(opts.layoutPath)
		if err != nil {
			return config, err
		}
		if config.Layout, err = game.LoadLayout(string(in)); err != nil {
			return config, fmt.Errorf("%s: %w", opts.layoutPath, err)
		}
	}

	return config, config.Validate()
}

// newLogger configures logging. The terminal ui owns the screen, so unless a
// log file is given its logs are dropped.
func (opts *options) newLogger(stderr io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetOutput(stderr)

	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(level)

	var closer io.Closer = io.NopCloser(nil)
	switch {
	case opts.logFile != "":
		file, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		logger.SetOutput(file)
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
		closer = file
	case opts.ui == terminalUI:
		logger.SetOutput(io.Discard)
	}

	return logger, closer, nil
}
