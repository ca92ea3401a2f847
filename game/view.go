package game

import "strings"

// View is a read-only snapshot of what the player can see of a round
type View struct {
	Width, Height  int
	Status         [][]CellStatus // [y][x]
	MinesRemaining int
	Phase          Phase
	Elapsed        int
}

func (view View) StatusAt(x, y int) CellStatus {
	if x < 0 || y < 0 || x >= view.Width || y >= view.Height {
		return Hidden
	}
	return view.Status[y][x]
}

// Neighbors calls fn for every in-bounds neighbour of (x, y)
func (view View) Neighbors(x, y int, fn func(x, y int, status CellStatus)) {
	for _, offset := range neighborOffsets {
		nx, ny := x+offset.x, y+offset.y
		if nx >= 0 && ny >= 0 && nx < view.Width && ny < view.Height {
			fn(nx, ny, view.Status[ny][nx])
		}
	}
}

var statusRunes = map[CellStatus]rune{
	Hidden:       '#',
	Empty:        '.',
	Flagged:      'F',
	FlagWrong:    'x',
	MineShown:    '*',
	MineExploded: '@',
}

// StatusRune returns the single character used to draw a status in text
func StatusRune(status CellStatus) rune {
	if r, ok := statusRunes[status]; ok {
		return r
	}
	if status.IsRevealed() {
		return rune('0' + status.Number())
	}
	return '?'
}

// FormatStatusGrid draws a status grid as text, one row per line
func FormatStatusGrid(status [][]CellStatus) string {
	var out strings.Builder
	for y, row := range status {
		if y > 0 {
			out.WriteByte('\n')
		}
		for _, cell := range row {
			out.WriteRune(StatusRune(cell))
		}
	}
	return out.String()
}

func (view View) String() string {
	return FormatStatusGrid(view.Status)
}
