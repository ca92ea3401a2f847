package window

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/gammazero/deque"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/util/grid"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	cellWidth     = 24
	headerHeight  = 50
	minWindowWidth = 200
)

var numberColors = [...]color.RGBA{
	1: colornames.Blue,
	2: colornames.Green,
	3: colornames.Red,
	4: colornames.Navy,
	5: colornames.Maroon,
	6: colornames.Teal,
	7: colornames.Black,
	8: colornames.Gray,
}

type annotation struct {
	x, y       int
	action     game.Action
	firstShown time.Time
}

type Config struct {
	Title string

	// Transparency of annotations when first displayed
	AnnotationBaseAlpha float64
	// Total time an annotation will be displayed
	AnnotationDuration time.Duration
}

func NewConfig() Config {
	return Config{
		Title:               "minefield",
		AnnotationBaseAlpha: 0.5,
		AnnotationDuration:  200 * time.Millisecond,
	}
}

// Window is a game.Presenter drawing in an OpenGL window. Presenter calls
// come from the game loop while Run draws on the main thread, so the state
// they share is guarded by mu.
type Window struct {
	config Config

	mu             sync.Mutex
	status         [][]game.CellStatus
	minesRemaining int
	seconds        int
	phase          game.Phase

	annotations *deque.Deque[annotation]
}

func New(config Config) *Window {
	return &Window{
		config:      config,
		phase:       game.Playing,
		annotations: deque.New[annotation](),
	}
}

func (window *Window) Init(status [][]game.CellStatus, minesRemaining int) {
	window.Render(status, minesRemaining)
}

func (window *Window) Render(status [][]game.CellStatus, minesRemaining int) {
	window.mu.Lock()
	defer window.mu.Unlock()

	window.status, window.minesRemaining = status, minesRemaining
}

func (window *Window) TimeTick(seconds int) {
	window.mu.Lock()
	defer window.mu.Unlock()

	window.seconds = seconds
}

func (window *Window) GameOver() {
	window.setPhase(game.Lost)
}

func (window *Window) GameStart() {
	window.setPhase(game.Playing)
}

func (window *Window) GameWon() {
	window.setPhase(game.Won)
}

func (window *Window) setPhase(phase game.Phase) {
	window.mu.Lock()
	defer window.mu.Unlock()

	window.phase = phase
}

// Run opens the window and draws until it is closed or ctx is done, sending
// clicks as actions. It must be called from the function passed to
// pixelgl.Run. actions is closed on return.
func (window *Window) Run(ctx context.Context, actions chan<- game.CellAction) error {
	defer close(actions)

	window.mu.Lock()
	width, height := window.size()
	window.mu.Unlock()

	cfg := pixelgl.WindowConfig{
		Title:  window.config.Title,
		Bounds: windowBounds(width, height),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}
	defer win.Destroy()

	topLeft := win.Bounds().Vertices()[1]
	topRight := win.Bounds().Max
	boardTopLeft := topLeft.Sub(pixel.V(0, headerHeight))

	basicAtlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	scoreText := text.New(topLeft.Add(pixel.V(20, -30)), basicAtlas)
	cellPosText := text.New(topRight.Add(pixel.V(-60, -30)), basicAtlas)
	cellPosText.Color = colornames.Darkcyan
	numberText := text.New(pixel.ZV, basicAtlas)

	var (
		frames = 0
		second = time.NewTicker(time.Second)
	)
	defer second.Stop()

	bgColor := colornames.Gainsboro
	for !win.Closed() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		win.Update()
		win.Clear(bgColor)

		frames++
		select {
		case <-second.C:
			win.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Title, frames))
			frames = 0
		default:
		}

		window.mu.Lock()
		status := window.status
		width, height := window.size()
		header, headerColor := headerText(window.minesRemaining, window.seconds, window.phase)
		window.mu.Unlock()

		scoreText.Clear()
		scoreText.Color = headerColor
		fmt.Fprint(scoreText, header)
		scoreText.Draw(win, pixel.IM)

		hoveredX, hoveredY, hovered := 0, 0, false
		if win.MouseInsideWindow() {
			hoveredX, hoveredY, hovered = cellAt(boardTopLeft, win.MousePosition(), width, height)
		}

		cellPosText.Clear()
		if hovered {
			fmt.Fprintf(cellPosText, "(%d, %d)", hoveredX, hoveredY)
			cellPosText.Draw(win, pixel.IM)
		}

		imd := imdraw.New(nil)
		numberText.Clear()
		for y, row := range status {
			for x, cellStatus := range row {
				drawCell(imd, numberText, boardTopLeft, x, y, cellStatus)
			}
		}
		window.drawAnnotations(imd, boardTopLeft)
		imd.Draw(win)
		numberText.Draw(win, pixel.IM)

		var cellAction game.CellAction
		send := false
		switch {
		case win.JustPressed(pixelgl.KeyEnter):
			cellAction, send = game.RestartAction(), true
		case hovered && win.JustPressed(pixelgl.MouseButtonLeft):
			cellAction, send = game.ClickAt(hoveredX, hoveredY), true
		case hovered && win.JustPressed(pixelgl.MouseButtonRight):
			cellAction, send = game.RightClickAt(hoveredX, hoveredY), true
		case hovered && win.JustPressed(pixelgl.MouseButtonMiddle):
			cellAction, send = game.MiddleClickAt(hoveredX, hoveredY), true
		}
		if !send {
			continue
		}

		if cellAction.Action != game.Restart {
			window.annotate(cellAction)
		}
		select {
		case actions <- cellAction:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func (window *Window) size() (width, height int) {
	height = len(window.status)
	if height > 0 {
		width = len(window.status[0])
	}
	return width, height
}

func (window *Window) annotate(cellAction game.CellAction) {
	window.annotations.PushBack(annotation{
		x:          cellAction.X,
		y:          cellAction.Y,
		action:     cellAction.Action,
		firstShown: time.Now(),
	})
}

// drawAnnotations fades out the highlight over recently clicked cells
func (window *Window) drawAnnotations(imd *imdraw.IMDraw, boardTopLeft pixel.Vec) {
	now := time.Now()
	for window.annotations.Len() > 0 && now.Sub(window.annotations.Front().firstShown) > window.config.AnnotationDuration {
		window.annotations.PopFront()
	}

	for i := 0; i < window.annotations.Len(); i++ {
		annotation := window.annotations.At(i)

		baseColor := pixel.Alpha(0)
		switch annotation.action {
		case game.Click:
			baseColor = pixel.RGB(1, 0, 0)
		case game.RightClick:
			baseColor = pixel.RGB(0, 0, 1)
		case game.MiddleClick:
			baseColor = pixel.RGB(0, 1, 0)
		}

		progress := 1 - float64(now.Sub(annotation.firstShown))/float64(window.config.AnnotationDuration)
		alpha := window.config.AnnotationBaseAlpha * InOutCubic(progress)

		start, end := cellRect(boardTopLeft, annotation.x, annotation.y)
		imd.Color = baseColor.Mul(pixel.Alpha(alpha))
		imd.Push(start, end)
		imd.Rectangle(0) // 0 = filled
	}
}

func drawCell(imd *imdraw.IMDraw, numberText *text.Text, boardTopLeft pixel.Vec, x, y int, status game.CellStatus) {
	start, end := cellRect(boardTopLeft, x, y)

	fill := colornames.Silver
	switch {
	case status == game.MineExploded:
		fill = colornames.Red
	case status.IsRevealed(), status == game.MineShown, status == game.FlagWrong:
		fill = colornames.Whitesmoke
	}
	imd.Color = fill
	imd.Push(start, end)
	imd.Rectangle(0)

	imd.Color = colornames.Gray
	imd.Push(start, end)
	imd.Rectangle(1)

	center := start.Add(pixel.V(cellWidth/2, cellWidth/2))
	switch {
	case status == game.Flagged:
		imd.Color = colornames.Red
		imd.Push(center.Add(pixel.V(-4, -6)), center.Add(pixel.V(-4, 6)), center.Add(pixel.V(6, 2)))
		imd.Polygon(0)

	case status == game.FlagWrong:
		imd.Color = colornames.Red
		imd.Push(center.Add(pixel.V(-6, -6)), center.Add(pixel.V(6, 6)))
		imd.Line(2)
		imd.Push(center.Add(pixel.V(-6, 6)), center.Add(pixel.V(6, -6)))
		imd.Line(2)

	case status == game.MineShown, status == game.MineExploded:
		imd.Color = colornames.Black
		imd.Push(center)
		imd.Circle(cellWidth/4, 0)

	case status.Number() > 0:
		label := fmt.Sprint(status.Number())
		numberText.Dot = center.Sub(pixel.V(numberText.BoundsOf(label).W()/2, numberText.LineHeight/3))
		numberText.Color = numberColors[status.Number()]
		fmt.Fprint(numberText, label)
	}
}

// cellRect returns the bottom-left and top-right corners of a cell
func cellRect(boardTopLeft pixel.Vec, x, y int) (pixel.Vec, pixel.Vec) {
	start := boardTopLeft.Add(pixel.V(float64(cellWidth*x), -float64(cellWidth*(y+1))))
	return start, start.Add(pixel.V(cellWidth, cellWidth))
}

// cellAt maps a window position to the cell under it
func cellAt(boardTopLeft, pos pixel.Vec, width, height int) (x, y int, ok bool) {
	offset := pos.Sub(boardTopLeft)
	if offset.X < 0 || offset.Y > 0 {
		return 0, 0, false
	}

	x = int(offset.X / cellWidth)
	y = int(-offset.Y / cellWidth)
	return x, y, x < width && y < height
}

func windowBounds(width, height int) pixel.Rect {
	return pixel.R(
		0, 0,
		math.Max(float64(width*cellWidth), minWindowWidth),
		float64(height*cellWidth+headerHeight),
	)
}

func headerText(minesRemaining, seconds int, phase game.Phase) (string, color.RGBA) {
	header := fmt.Sprintf("%03d  %s", minesRemaining, grid.FormatTime(seconds))
	switch phase {
	case game.Won:
		return header + "  WIN!", colornames.Green
	case game.Lost:
		return header + "  LOSE :(", colornames.Red
	}
	return header, colornames.Black
}

func InOutCubic(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t * t
	} else {
		t -= 2
		return 0.5 * (t*t*t + 2)
	}
}
