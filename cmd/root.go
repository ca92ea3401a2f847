package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/faiface/pixel/pixelgl"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/termview"
	"github.com/they4kman/minefield/window"
)

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "minefield",
		Short: "Play manual or computer-driven Minesweeper",
		Long: `minefield is a Minesweeper game which supports human- or
computer-driven playing, in a terminal or a window.

Run with no arguments to play in the terminal
	minefield

Use the director flag to make the computer play for you
	minefield -d

Let the computer play 100 rounds headless and log how they went
	minefield --ui log --director=constraint --rounds 100 --director-interval 1ms
`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath != "" {
				fileConfig, err := loadFileConfig(opts.configPath)
				if err != nil {
					return err
				}
				if err := fileConfig.apply(cmd.Flags(), opts); err != nil {
					return err
				}
			}
			return run(cmd.Context(), opts)
		},
	}

	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	defaults := game.NewConfig()
	rootCmd.Flags().IntVarP(&opts.width, "width", "w", defaults.Width, "Width of game board, in cells")
	rootCmd.Flags().IntVarP(&opts.height, "height", "h", defaults.Height, "Height of game board, in cells")
	rootCmd.Flags().IntVarP(&opts.mines, "mines", "m", defaults.NumMines, "Number of mines to place in the game board")
	rootCmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for mine placement (0 picks one from the clock)")
	rootCmd.Flags().StringVar(&opts.layoutPath, "layout", "", "YAML file with a fixed mine layout to play instead of a random board")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config file; flags given on the command line take precedence")

	rootCmd.Flags().Var(newUIValue(terminalUI, &opts.ui), "ui", `How to show the game.
terminal: draw in this terminal, playable with keys and mouse
window: open an OpenGL window
log: headless, log every change (needs a director)`)
	rootCmd.Flags().VarP(newDirectorValue(noDirector, &opts.director), "director", "d", `Make the computer play (-d alone picks constraint, --director=NAME picks another).
none: a human plays
random: reveal random cells
constraint: deduce from the revealed numbers, guessing only when stuck`)
	rootCmd.Flags().Lookup("director").NoOptDefVal = "constraint"
	rootCmd.Flags().IntVar(&opts.rounds, "rounds", 0, "Number of rounds the director plays before exiting (0 plays until interrupted)")
	rootCmd.Flags().DurationVar(&opts.directorInterval, "director-interval", game.DefaultDirectorInterval, "Time between director moves")

	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", logrus.InfoLevel.String(), "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")

	return rootCmd
}

func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	logger, logCloser, err := opts.newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	game.SetLogger(logger)

	config, err := opts.gameConfig()
	if err != nil {
		return err
	}

	var loopOptions []game.LoopOption
	director := opts.director.newDirector(rand.New(rand.NewSource(config.Seed)))
	if director != nil {
		loopOptions = append(loopOptions, game.WithDirector(director, opts.directorInterval), game.WithRounds(opts.rounds))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger.WithFields(logrus.Fields{
		"width":    config.Width,
		"height":   config.Height,
		"mines":    config.NumMines,
		"seed":     config.Seed,
		"ui":       (*uiValue)(&opts.ui).String(),
		"director": (*directorValue)(&opts.director).String(),
	}).Info("starting")

	switch opts.ui {
	case logUI:
		if director == nil {
			return errors.New("the log ui needs a director to play")
		}
		return runHeadless(ctx, config, logger, loopOptions)
	case windowUI:
		return runWindow(ctx, config, loopOptions)
	default:
		return runTerminal(ctx, config, loopOptions)
	}
}

func runHeadless(ctx context.Context, config game.Config, logger *logrus.Logger, loopOptions []game.LoopOption) error {
	engine, err := game.NewEngine(config, game.NewLogPresenter(logger))
	if err != nil {
		return err
	}

	err = game.Run(ctx, engine, nil, loopOptions...)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// input is a presenter that also produces the player's actions
type input interface {
	game.Presenter
	Run(ctx context.Context, actions chan<- game.CellAction) error
}

// play runs the game loop alongside an input's own loop until either ends
func play(ctx context.Context, config game.Config, in input, loopOptions []game.LoopOption) error {
	engine, err := game.NewEngine(config, in)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	actions := make(chan game.CellAction)
	gameErrs := make(chan error, 1)
	go func() {
		defer cancel()
		gameErrs <- game.Run(ctx, engine, actions, loopOptions...)
	}()

	inputErr := in.Run(ctx, actions)
	gameErr := <-gameErrs

	for _, err := range []error{gameErr, inputErr} {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}

func runTerminal(ctx context.Context, config game.Config, loopOptions []game.LoopOption) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	return play(ctx, config, termview.New(screen), loopOptions)
}

func runWindow(ctx context.Context, config game.Config, loopOptions []game.LoopOption) error {
	var err error
	pixelgl.Run(func() {
		err = play(ctx, config, window.New(window.NewConfig()), loopOptions)
	})
	return err
}
