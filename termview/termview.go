// Package termview draws the game in a terminal with tcell and turns keys and
// mouse clicks into game actions.
package termview

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/util/grid"
)

const (
	headerRows = 2
	cellCols   = 2
)

var numberColors = [...]tcell.Color{
	1: tcell.ColorBlue,
	2: tcell.ColorGreen,
	3: tcell.ColorRed,
	4: tcell.ColorNavy,
	5: tcell.ColorMaroon,
	6: tcell.ColorTeal,
	7: tcell.ColorWhite,
	8: tcell.ColorGray,
}

// Terminal is a game.Presenter drawing on a tcell screen. Presenter calls
// arrive from the game loop while Run reads input, so all drawing state is
// guarded by mu.
type Terminal struct {
	screen tcell.Screen

	mu             sync.Mutex
	status         [][]game.CellStatus
	minesRemaining int
	seconds        int
	phase          game.Phase
	cursorX        int
	cursorY        int
	buttons        tcell.ButtonMask
}

func New(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen, phase: game.Playing}
}

func (terminal *Terminal) Init(status [][]game.CellStatus, minesRemaining int) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()

	terminal.status, terminal.minesRemaining = status, minesRemaining
	terminal.phase = game.Playing
	terminal.draw()
}

func (terminal *Terminal) Render(status [][]game.CellStatus, minesRemaining int) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()

	terminal.status, terminal.minesRemaining = status, minesRemaining
	terminal.draw()
}

func (terminal *Terminal) TimeTick(seconds int) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()

	terminal.seconds = seconds
	terminal.draw()
}

func (terminal *Terminal) GameOver() {
	terminal.setPhase(game.Lost)
}

func (terminal *Terminal) GameStart() {
	terminal.setPhase(game.Playing)
}

func (terminal *Terminal) GameWon() {
	terminal.setPhase(game.Won)
}

func (terminal *Terminal) setPhase(phase game.Phase) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()

	terminal.phase = phase
	terminal.draw()
}

// Run reads terminal input until the player quits or ctx is done, sending
// the resulting actions. actions is closed on return.
func (terminal *Terminal) Run(ctx context.Context, actions chan<- game.CellAction) error {
	defer close(actions)

	stop := context.AfterFunc(ctx, func() {
		_ = terminal.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		event := terminal.screen.PollEvent()
		if event == nil {
			return nil
		}

		if _, ok := event.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}

		cellAction, send, quit := terminal.handle(event)
		if quit {
			return nil
		}
		if !send {
			continue
		}

		select {
		case actions <- cellAction:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// handle updates the cursor for an input event and reports the game action
// it stands for, if any
func (terminal *Terminal) handle(event tcell.Event) (cellAction game.CellAction, send, quit bool) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()

	switch event := event.(type) {
	case *tcell.EventResize:
		terminal.screen.Sync()
		terminal.draw()

	case *tcell.EventKey:
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return cellAction, false, true
		case tcell.KeyUp:
			terminal.moveCursor(0, -1)
		case tcell.KeyDown:
			terminal.moveCursor(0, 1)
		case tcell.KeyLeft:
			terminal.moveCursor(-1, 0)
		case tcell.KeyRight:
			terminal.moveCursor(1, 0)
		case tcell.KeyEnter:
			return game.ClickAt(terminal.cursorX, terminal.cursorY), true, false
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				return cellAction, false, true
			case 'k':
				terminal.moveCursor(0, -1)
			case 'j':
				terminal.moveCursor(0, 1)
			case 'h':
				terminal.moveCursor(-1, 0)
			case 'l':
				terminal.moveCursor(1, 0)
			case ' ':
				return game.ClickAt(terminal.cursorX, terminal.cursorY), true, false
			case 'f':
				return game.RightClickAt(terminal.cursorX, terminal.cursorY), true, false
			case 'c':
				return game.MiddleClickAt(terminal.cursorX, terminal.cursorY), true, false
			case 'r':
				return game.RestartAction(), true, false
			}
		}

	case *tcell.EventMouse:
		buttons := event.Buttons()
		pressed := buttons &^ terminal.buttons
		terminal.buttons = buttons

		x, y, ok := terminal.cellAt(event.Position())
		if !ok || pressed == tcell.ButtonNone {
			return cellAction, false, false
		}

		terminal.cursorX, terminal.cursorY = x, y
		terminal.draw()

		switch {
		case pressed&tcell.Button1 != 0:
			return game.ClickAt(x, y), true, false
		case pressed&tcell.Button2 != 0:
			return game.RightClickAt(x, y), true, false
		case pressed&tcell.Button3 != 0:
			return game.MiddleClickAt(x, y), true, false
		}
	}

	return cellAction, false, false
}

func (terminal *Terminal) moveCursor(dx, dy int) {
	width, height := terminal.size()
	terminal.cursorX = clamp(terminal.cursorX+dx, 0, width-1)
	terminal.cursorY = clamp(terminal.cursorY+dy, 0, height-1)
	terminal.draw()
}

// cellAt maps a screen position to the cell drawn there
func (terminal *Terminal) cellAt(screenX, screenY int) (x, y int, ok bool) {
	if screenX < 0 || screenY < headerRows {
		return 0, 0, false
	}

	x, y = screenX/cellCols, screenY-headerRows
	width, height := terminal.size()
	return x, y, x < width && y < height
}

func (terminal *Terminal) size() (width, height int) {
	height = len(terminal.status)
	if height > 0 {
		width = len(terminal.status[0])
	}
	return width, height
}

// Cursor returns the cell under the keyboard cursor
func (terminal *Terminal) Cursor() (x, y int) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()

	return terminal.cursorX, terminal.cursorY
}

func (terminal *Terminal) draw() {
	terminal.screen.Clear()

	header := fmt.Sprintf("%03d  %s", terminal.minesRemaining, grid.FormatTime(terminal.seconds))
	headerStyle := tcell.StyleDefault.Bold(true)
	switch terminal.phase {
	case game.Won:
		header += "  WIN!  r: new game"
		headerStyle = headerStyle.Foreground(tcell.ColorGreen)
	case game.Lost:
		header += "  LOSE :(  r: new game"
		headerStyle = headerStyle.Foreground(tcell.ColorRed)
	}
	drawString(terminal.screen, 0, 0, header, headerStyle)

	for y, row := range terminal.status {
		for x, status := range row {
			style := cellStyle(status)
			if x == terminal.cursorX && y == terminal.cursorY {
				style = style.Reverse(true)
			}
			terminal.screen.SetContent(x*cellCols, headerRows+y, game.StatusRune(status), nil, style)
			terminal.screen.SetContent(x*cellCols+1, headerRows+y, ' ', nil, tcell.StyleDefault)
		}
	}

	terminal.screen.Show()
}

func cellStyle(status game.CellStatus) tcell.Style {
	style := tcell.StyleDefault
	switch {
	case status == game.Hidden:
		return style.Foreground(tcell.ColorGray)
	case status == game.Flagged:
		return style.Foreground(tcell.ColorYellow).Bold(true)
	case status == game.FlagWrong, status == game.MineExploded:
		return style.Foreground(tcell.ColorRed).Bold(true)
	case status == game.MineShown:
		return style.Foreground(tcell.ColorRed)
	case status.Number() > 0:
		return style.Foreground(numberColors[status.Number()])
	}
	return style
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
