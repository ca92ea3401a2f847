package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/minefield/game"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func execute(args ...string) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	return rootCmd.ExecuteContext(context.Background())
}

func TestUIValue(t *testing.T) {
	var kind uiKind
	value := newUIValue(windowUI, &kind)
	if value.String() != "window" {
		t.Errorf("expected window, got %s", value.String())
	}

	if err := value.Set("log"); err != nil || kind != logUI {
		t.Errorf("expected log ui, got %v (%v)", kind, err)
	}
	if err := value.Set("web"); err == nil {
		t.Error("expected an error for an unknown ui")
	}
}

func TestDirectorValue(t *testing.T) {
	var kind directorKind
	value := newDirectorValue(noDirector, &kind)

	tests := []struct {
		name     string
		expected directorKind
		playing  bool
	}{
		{"none", noDirector, false},
		{"random", randomDirector, true},
		{"constraint", constraintDirector, true},
	}
	for _, test := range tests {
		if err := value.Set(test.name); err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if kind != test.expected || value.String() != test.name {
			t.Errorf("expected %s, got %s", test.name, value.String())
		}
		if director := kind.newDirector(nil); (director != nil) != test.playing {
			t.Errorf("%s: unexpected director %T", test.name, director)
		}
	}

	if err := value.Set("genius"); err == nil {
		t.Error("expected an error for an unknown director")
	}
}

func TestFileConfigFlagsTakePrecedence(t *testing.T) {
	path := writeFile(t, "minefield.yaml", `
width: 30
height: 20
mines: 99
seed: 42
ui: log
director: random
rounds: 3
director_interval: 10ms
log_level: debug
`)

	rootCmd := newRootCmd()
	if err := rootCmd.Flags().Parse([]string{"-w", "9", "--ui", "window"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	fileConfig, err := loadFileConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	opts := &options{width: 9, height: 16, mines: 40, ui: windowUI, logLevel: "info"}
	if err := fileConfig.apply(rootCmd.Flags(), opts); err != nil {
		t.Fatalf("failed to apply config: %v", err)
	}

	expected := options{
		width:            9,
		height:           20,
		mines:            99,
		seed:             42,
		ui:               windowUI,
		director:         randomDirector,
		rounds:           3,
		directorInterval: 10 * time.Millisecond,
		logLevel:         "debug",
	}
	if *opts != expected {
		t.Errorf("expected %+v, got %+v", expected, *opts)
	}
}

func TestFileConfigRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "minefield.yaml", "colour: blue\n")
	if _, err := loadFileConfig(path); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestGameConfig(t *testing.T) {
	opts := &options{width: 5, height: 4, mines: 3, seed: 7}
	config, err := opts.gameConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Width != 5 || config.Height != 4 || config.NumMines != 3 || config.Seed != 7 {
		t.Errorf("unexpected config %+v", config)
	}

	opts.seed = 0
	if config, _ = opts.gameConfig(); config.Seed == 0 {
		t.Error("expected a seed to be picked")
	}

	opts.mines = 20
	if _, err := opts.gameConfig(); !errors.Is(err, game.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	opts.layoutPath = writeFile(t, "layout.yaml", "board: |\n  ..*\n  ...\n")
	config, err = opts.gameConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if width, height := config.Layout.Dimensions(); width != 3 || height != 2 {
		t.Errorf("expected a 3x2 layout, got %dx%d", width, height)
	}

	opts.layoutPath = writeFile(t, "bad.yaml", "board: |\n  ..x\n")
	if _, err := opts.gameConfig(); !errors.Is(err, game.ErrInvalidLayout) {
		t.Errorf("expected ErrInvalidLayout, got %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var stderr bytes.Buffer

	opts := &options{logLevel: "debug", ui: logUI}
	logger, closer, err := opts.newLogger(&stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closer.Close()

	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}
	logger.Debug("hello")
	if stderr.Len() == 0 {
		t.Error("expected the log ui to write to stderr")
	}

	opts.ui = terminalUI
	stderr.Reset()
	logger, _, _ = opts.newLogger(&stderr)
	logger.Info("hello")
	if stderr.Len() != 0 {
		t.Error("expected the terminal ui not to write to stderr")
	}

	opts.logFile = filepath.Join(t.TempDir(), "minefield.log")
	logger, closer, err = opts.newLogger(&stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello")
	closer.Close()
	if content, _ := os.ReadFile(opts.logFile); !bytes.Contains(content, []byte("hello")) {
		t.Errorf("expected the log file to hold the message, got %q", content)
	}

	opts.logLevel = "loud"
	if _, _, err := opts.newLogger(&stderr); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"too many mines", []string{"--ui", "log", "--director=random", "-w", "2", "-h", "2", "-m", "4", "--log-level", "panic"}},
		{"log ui without director", []string{"--ui", "log", "--log-level", "panic"}},
		{"unknown ui", []string{"--ui", "web"}},
		{"missing config", []string{"--config", "/does/not/exist.yaml"}},
		{"positional args", []string{"extra"}},
	}

	for _, test := range tests {
		if err := execute(test.args...); err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
}

func TestExecuteHeadlessRounds(t *testing.T) {
	layout := writeFile(t, "layout.yaml", "board: |\n  .*\n")

	for _, director := range []string{"random", "constraint"} {
		err := execute(
			"--ui", "log",
			"--director="+director,
			"--rounds", "1",
			"--director-interval", "1ms",
			"--layout", layout,
			"--log-level", "panic",
		)
		if err != nil {
			t.Errorf("%s: expected the round to finish, got %v", director, err)
		}
	}
}

func TestBareDirectorFlag(t *testing.T) {
	rootCmd := newRootCmd()
	if err := rootCmd.Flags().Parse([]string{"-d"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if value := rootCmd.Flags().Lookup("director").Value.String(); value != "constraint" {
		t.Errorf("expected -d to pick the constraint director, got %s", value)
	}
}
