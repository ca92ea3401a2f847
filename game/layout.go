package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	layoutMine = '*'
	layoutSafe = '.'
)

// Layout is a fixed mine field, stored as YAML rows where '*' is a mine and
// '.' a safe cell:
//
//	board: |
//	  ..*.
//	  ....
type Layout struct {
	SerializedBoard string `yaml:"board,flow"`
}

func LoadLayout(in string) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal([]byte(in), &layout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := layout.validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// LayoutFromBoard captures the mine positions of a board
func LayoutFromBoard(board *Board) *Layout {
	rows := make([]string, board.height)
	for y, values := range board.values {
		var row strings.Builder
		for _, value := range values {
			if value.IsMine() {
				row.WriteByte(layoutMine)
			} else {
				row.WriteByte(layoutSafe)
			}
		}
		rows[y] = row.String()
	}
	return &Layout{SerializedBoard: strings.Join(rows, "\n")}
}

func (layout *Layout) Serialize() string {
	out, err := yaml.Marshal(layout)
	if err != nil {
		panic(err)
	}

	return string(out)
}

func (layout *Layout) rows() []string {
	lines := strings.Split(strings.TrimSpace(layout.SerializedBoard), "\n")
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

func (layout *Layout) Dimensions() (width, height int) {
	rows := layout.rows()
	if len(rows) == 0 {
		return 0, 0
	}
	return len(rows[0]), len(rows)
}

func (layout *Layout) NumMines() int {
	return strings.Count(layout.SerializedBoard, string(layoutMine))
}

func (layout *Layout) validate() error {
	rows := layout.rows()
	if len(rows) == 0 {
		return fmt.Errorf("%w: empty board", ErrInvalidLayout)
	}

	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrInvalidLayout, y, len(row), width)
		}
		for x, c := range row {
			if c != layoutMine && c != layoutSafe {
				return fmt.Errorf("%w: unexpected %q at (%d, %d)", ErrInvalidLayout, c, x, y)
			}
		}
	}
	return nil
}

func (layout *Layout) mines() []point {
	var mines []point
	for y, row := range layout.rows() {
		for x, c := range row {
			if c == layoutMine {
				mines = append(mines, point{x, y})
			}
		}
	}
	return mines
}

func (layout *Layout) board() *Board {
	width, height := layout.Dimensions()
	return newBoardWithMines(width, height, layout.mines())
}
