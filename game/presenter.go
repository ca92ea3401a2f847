package game

import (
	"github.com/sirupsen/logrus"
	"github.com/they4kman/minefield/util/grid"
)

// Presenter draws the game. The engine calls it from its own goroutine.
type Presenter interface {
	// Init is called once with the first round's grid
	Init(status [][]CellStatus, minesRemaining int)
	// Render is called after every change to the grid or flag counter
	Render(status [][]CellStatus, minesRemaining int)
	// TimeTick reports the clock, in seconds
	TimeTick(seconds int)

	GameOver()
	GameStart()
	GameWon()
}

// LogPresenter is a headless Presenter writing every call to a logger
type LogPresenter struct {
	log logrus.FieldLogger
}

func NewLogPresenter(logger logrus.FieldLogger) *LogPresenter {
	return &LogPresenter{log: logger}
}

func (presenter *LogPresenter) Init(status [][]CellStatus, minesRemaining int) {
	height := len(status)
	width := 0
	if height > 0 {
		width = len(status[0])
	}

	presenter.log.WithFields(logrus.Fields{
		"width":           width,
		"height":          height,
		"mines_remaining": minesRemaining,
	}).Info("board ready")
}

func (presenter *LogPresenter) Render(status [][]CellStatus, minesRemaining int) {
	presenter.log.WithField("mines_remaining", minesRemaining).
		Debugf("board:\n%s", FormatStatusGrid(status))
}

func (presenter *LogPresenter) TimeTick(seconds int) {
	presenter.log.WithField("time", grid.FormatTime(seconds)).Trace("tick")
}

func (presenter *LogPresenter) GameOver() {
	presenter.log.Info("game over")
}

func (presenter *LogPresenter) GameStart() {
	presenter.log.Info("new game")
}

func (presenter *LogPresenter) GameWon() {
	presenter.log.Info("game won")
}
