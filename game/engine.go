package game

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine runs rounds on behalf of a Presenter: it turns input into session
// actions, reports every change, and owns the round's clock. Like Session, it
// must only be used from a single goroutine (see Run).
type Engine struct {
	config    Config
	presenter Presenter
	newTicker TickerFactory

	session *Session
	ticker  Ticker
}

type EngineOption func(*Engine)

// WithTickerFactory replaces the wall-clock ticker used for the round timer
func WithTickerFactory(factory TickerFactory) EngineOption {
	return func(engine *Engine) {
		engine.newTicker = factory
	}
}

// NewEngine starts the first round and hands it to the presenter
func NewEngine(config Config, presenter Presenter, options ...EngineOption) (*Engine, error) {
	session, err := NewSession(config)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:    config,
		presenter: presenter,
		newTicker: NewTimeTicker,
		session:   session,
	}
	for _, option := range options {
		option(engine)
	}

	presenter.Init(session.StatusGrid(), session.MinesRemaining())
	return engine, nil
}

func (engine *Engine) Session() *Session {
	return engine.session
}

func (engine *Engine) View() View {
	return engine.session.View()
}

// PrimarySelect reveals a cell
func (engine *Engine) PrimarySelect(x, y int) {
	engine.apply(engine.session.Reveal(x, y))
}

// SecondarySelect toggles a flag
func (engine *Engine) SecondarySelect(x, y int) {
	engine.apply(engine.session.ToggleFlag(x, y))
}

// TertiarySelect chords on a revealed number
func (engine *Engine) TertiarySelect(x, y int) {
	engine.apply(engine.session.Chord(x, y))
}

// Restart throws the current round away and starts a new one with the same
// dimensions and mine count
func (engine *Engine) Restart() error {
	engine.stopTicker()

	config := engine.config
	config.Seed = engine.session.rand.Int63()

	session, err := NewSession(config)
	if err != nil {
		return err
	}
	engine.config = config
	engine.session = session

	engine.presenter.TimeTick(0)
	engine.presenter.GameStart()
	engine.presenter.Render(session.StatusGrid(), session.MinesRemaining())
	return nil
}

func (engine *Engine) Dispatch(cellAction CellAction) error {
	switch cellAction.Action {
	case Click:
		engine.PrimarySelect(cellAction.X, cellAction.Y)
	case RightClick:
		engine.SecondarySelect(cellAction.X, cellAction.Y)
	case MiddleClick:
		engine.TertiarySelect(cellAction.X, cellAction.Y)
	case Restart:
		return engine.Restart()
	default:
		return fmt.Errorf("unknown action %v", cellAction.Action)
	}
	return nil
}

// Ticks returns the channel of the running round clock, or nil while the
// clock is stopped
func (engine *Engine) Ticks() <-chan time.Time {
	if engine.ticker == nil {
		return nil
	}
	return engine.ticker.C()
}

// Tick advances the round clock by one second
func (engine *Engine) Tick() {
	if seconds, running := engine.session.Tick(); running {
		engine.presenter.TimeTick(seconds)
	}
}

// Close stops the round clock
func (engine *Engine) Close() {
	engine.stopTicker()
}

func (engine *Engine) apply(outcome Outcome) {
	if outcome.TimerStarted {
		engine.presenter.TimeTick(0)
	}

	if outcome.PhaseChanged {
		switch outcome.Phase {
		case Lost:
			engine.presenter.GameOver()
		case Won:
			engine.presenter.GameWon()
		}

		if log.IsLevelEnabled(logrus.DebugLevel) {
			engine.session.log.WithFields(logrus.Fields{
				"phase":   outcome.Phase,
				"elapsed": engine.session.elapsed,
			}).Debugf("round over, mines:\n%s", LayoutFromBoard(engine.session.board).Serialize())
		}
	}

	if outcome.Changed() {
		engine.presenter.Render(engine.session.StatusGrid(), engine.session.MinesRemaining())
	}

	engine.syncTicker()
}

// syncTicker keeps exactly one ticker alive while the round clock runs
func (engine *Engine) syncTicker() {
	running := engine.session.TimerRunning()
	switch {
	case running && engine.ticker == nil:
		engine.ticker = engine.newTicker(time.Second)
	case !running && engine.ticker != nil:
		engine.stopTicker()
	}
}

func (engine *Engine) stopTicker() {
	if engine.ticker != nil {
		engine.ticker.Stop()
		engine.ticker = nil
	}
}
