package game

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/minefield/util/grid"
)

// Session is a single round: the board, what the player has uncovered of it,
// the flag counter and the clock. Sessions are not safe for concurrent use;
// every call must come from the same goroutine.
type Session struct {
	id    uuid.UUID
	board *Board
	rand  *rand.Rand

	status   [][]CellStatus // [y][x]
	numFlags int
	phase    Phase

	elapsed      int
	timerStarted bool
	timerRunning bool

	log *logrus.Entry
}

// NewSession starts a new round
func NewSession(config Config) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(config.Seed))

	var board *Board
	if config.Layout != nil {
		board = config.Layout.board()
	} else {
		board = newRandomBoard(config.Width, config.Height, config.NumMines, r)
	}

	session := &Session{
		id:     uuid.New(),
		board:  board,
		rand:   r,
		status: make([][]CellStatus, board.height),
		phase:  Playing,
	}
	for y := range session.status {
		row := make([]CellStatus, board.width)
		for x := range row {
			row[x] = Hidden
		}
		session.status[y] = row
	}

	session.log = log.WithField("round", session.id.String())
	session.log.WithFields(logrus.Fields{
		"width":  board.width,
		"height": board.height,
		"mines":  board.numMines,
		"seed":   config.Seed,
	}).Debug("new round")

	return session, nil
}

func (session *Session) ID() uuid.UUID {
	return session.id
}

func (session *Session) Board() *Board {
	return session.board
}

func (session *Session) Phase() Phase {
	return session.phase
}

func (session *Session) NumFlags() int {
	return session.numFlags
}

func (session *Session) MinesRemaining() int {
	return session.board.numMines - session.numFlags
}

func (session *Session) Elapsed() int {
	return session.elapsed
}

func (session *Session) TimerRunning() bool {
	return session.timerRunning
}

// StatusAt returns the player-visible status of a cell, or Hidden when out of bounds
func (session *Session) StatusAt(x, y int) CellStatus {
	if !session.board.InBounds(x, y) {
		return Hidden
	}
	return session.status[y][x]
}

// StatusGrid returns a copy of the player-visible grid
func (session *Session) StatusGrid() [][]CellStatus {
	return grid.CopyMatrix(session.status)
}

func (session *Session) View() View {
	return View{
		Width:          session.board.width,
		Height:         session.board.height,
		Status:         session.StatusGrid(),
		MinesRemaining: session.MinesRemaining(),
		Phase:          session.phase,
		Elapsed:        session.elapsed,
	}
}

func (session *Session) noop() Outcome {
	return Outcome{Phase: session.phase}
}

func (session *Session) canPlay(x, y int) bool {
	return session.phase == Playing && session.board.InBounds(x, y)
}

// Reveal uncovers a hidden cell. Revealing a mine loses the round; revealing
// an empty cell opens its whole empty region along with the numbered border.
func (session *Session) Reveal(x, y int) Outcome {
	if !session.canPlay(x, y) || session.status[y][x] != Hidden {
		return session.noop()
	}

	outcome := session.noop()

	// The clock only starts if no flag has been placed yet
	if !session.timerStarted && session.numFlags == 0 {
		session.startTimer()
		outcome.TimerStarted = true
	}

	value := session.board.values[y][x]
	switch {
	case value.IsMine():
		session.lose(x, y, &outcome)
	case value.IsEmpty():
		session.cascadeEmpty(x, y, &outcome)
		session.checkWin(&outcome)
	default:
		session.setStatus(x, y, revealedStatus(value), &outcome)
		session.checkWin(&outcome)
	}

	outcome.Phase = session.phase
	return outcome
}

// ToggleFlag places or clears a flag on a hidden cell. Flags can only be
// placed once the clock has started.
func (session *Session) ToggleFlag(x, y int) Outcome {
	if !session.canPlay(x, y) || !session.timerStarted {
		return session.noop()
	}

	outcome := session.noop()

	switch session.status[y][x] {
	case Flagged:
		session.setStatus(x, y, Hidden, &outcome)
		session.numFlags--
	case Hidden:
		session.setStatus(x, y, Flagged, &outcome)
		session.numFlags++
		session.checkWin(&outcome)
	default:
		return outcome
	}

	outcome.Phase = session.phase
	return outcome
}

// Chord reveals every hidden neighbour of a revealed number once the player
// has flagged as many neighbours as the number shows
func (session *Session) Chord(x, y int) Outcome {
	if !session.canPlay(x, y) {
		return session.noop()
	}

	status := session.status[y][x]
	if !status.IsRevealed() || status == Empty {
		return session.noop()
	}

	neighbors := session.board.neighbors(x, y)

	numFlaggedNeighbors := 0
	for _, neighbor := range neighbors {
		if session.status[neighbor.y][neighbor.x] == Flagged {
			numFlaggedNeighbors++
		}
	}
	if numFlaggedNeighbors != status.Number() {
		return session.noop()
	}

	outcome := session.noop()
	for _, neighbor := range neighbors {
		if session.phase != Playing {
			break
		}
		outcome.merge(session.Reveal(neighbor.x, neighbor.y))
	}
	return outcome
}

// Tick advances the clock by a second, returning the elapsed seconds and
// whether the clock is running
func (session *Session) Tick() (int, bool) {
	if !session.timerRunning {
		return session.elapsed, false
	}
	session.elapsed++
	return session.elapsed, true
}

func (session *Session) startTimer() {
	session.elapsed = 0
	session.timerStarted = true
	session.timerRunning = true
}

func (session *Session) stopTimer() {
	session.timerRunning = false
}

func (session *Session) setStatus(x, y int, status CellStatus, outcome *Outcome) {
	if session.status[y][x] == status {
		return
	}
	session.status[y][x] = status
	outcome.record(x, y, status)
}

// revealHidden shows the ground truth of a cell, leaving flagged and already
// revealed cells alone
func (session *Session) revealHidden(x, y int, outcome *Outcome) {
	if session.status[y][x] != Hidden {
		return
	}
	session.setStatus(x, y, revealedStatus(session.board.values[y][x]), outcome)
}

// lose ends the round on the mine at (x, y), showing every hidden mine and
// marking flags over safe cells as wrong. Flags over mines are kept, so the
// flag count still matches the flagged cells.
func (session *Session) lose(x, y int, outcome *Outcome) {
	session.phase = Lost
	session.stopTimer()
	outcome.PhaseChanged = true

	session.setStatus(x, y, MineExploded, outcome)

	for cy, row := range session.board.values {
		for cx, value := range row {
			if cx == x && cy == y {
				continue
			}

			switch status := session.status[cy][cx]; {
			case value.IsMine() && status == Hidden:
				session.setStatus(cx, cy, MineShown, outcome)
			case !value.IsMine() && status == Flagged:
				session.setStatus(cx, cy, FlagWrong, outcome)
			}
		}
	}

	session.log.WithFields(logrus.Fields{
		"x":       x,
		"y":       y,
		"elapsed": session.elapsed,
	}).Info("mine revealed, round lost")
}

func (session *Session) checkWin(outcome *Outcome) {
	if session.numFlags != session.board.numMines {
		return
	}

	for y, row := range session.status {
		for x, status := range row {
			if status == Hidden {
				return
			}
			if status == Flagged && !session.board.values[y][x].IsMine() {
				return
			}
		}
	}

	session.phase = Won
	session.stopTimer()
	outcome.PhaseChanged = true

	session.log.WithField("elapsed", session.elapsed).Info("round won")
}
