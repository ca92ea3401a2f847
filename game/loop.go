package game

import (
	"context"
	"time"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
)

const DefaultDirectorInterval = 500 * time.Millisecond

type loop struct {
	engine *Engine

	director         Director
	directorInterval time.Duration
	rounds           int
	roundsFinished   int
	pending          *deque.Deque[CellAction]
}

type LoopOption func(*loop)

// WithDirector lets a Director play, asking it for actions every interval
func WithDirector(director Director, interval time.Duration) LoopOption {
	return func(l *loop) {
		l.director = director
		l.directorInterval = interval
	}
}

// WithRounds makes the director play the given number of rounds, restarting
// between them, before Run returns
func WithRounds(rounds int) LoopOption {
	return func(l *loop) {
		l.rounds = rounds
	}
}

// Run is the game's single thread of control: every input action, clock tick
// and director move is applied to the engine from here. It returns when the
// context is cancelled, the actions channel is closed, or the requested
// director rounds have been played.
func Run(ctx context.Context, engine *Engine, actions <-chan CellAction, options ...LoopOption) error {
	l := &loop{
		engine:           engine,
		directorInterval: DefaultDirectorInterval,
		pending:          deque.New[CellAction](),
	}
	for _, option := range options {
		option(l)
	}

	defer engine.Close()

	var directorTicks <-chan time.Time
	if l.director != nil {
		ticker := time.NewTicker(l.directorInterval)
		defer ticker.Stop()
		directorTicks = ticker.C

		l.director.Init(engine.View())
		defer l.director.End()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cellAction, ok := <-actions:
			if !ok {
				return nil
			}
			if err := engine.Dispatch(cellAction); err != nil {
				return err
			}
			if cellAction.Action == Restart && l.director != nil {
				l.pending.Clear()
				l.director.Init(engine.View())
			}

		case <-engine.Ticks():
			engine.Tick()

		case <-directorTicks:
			done, err := l.direct()
			if err != nil || done {
				return err
			}
		}
	}
}

// direct applies the director's next action, asking it for a new batch once
// the previous one has been played, or handles a finished round
func (l *loop) direct() (bool, error) {
	view := l.engine.View()

	if view.Phase != Playing {
		if l.rounds <= 0 {
			return false, nil
		}

		l.roundsFinished++
		log.WithFields(logrus.Fields{
			"round":   l.roundsFinished,
			"of":      l.rounds,
			"phase":   view.Phase,
			"elapsed": view.Elapsed,
		}).Info("director finished round")

		if l.roundsFinished >= l.rounds {
			return true, nil
		}
		if err := l.engine.Restart(); err != nil {
			return false, err
		}
		l.pending.Clear()
		l.director.Init(l.engine.View())
		return false, nil
	}

	if l.pending.Len() == 0 {
		actions := make(chan CellAction)
		go l.director.Act(view, actions)
		for cellAction := range actions {
			l.pending.PushBack(cellAction)
		}
	}

	if l.pending.Len() == 0 {
		return false, nil
	}
	return false, l.engine.Dispatch(l.pending.PopFront())
}
