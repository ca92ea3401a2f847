package game

import (
	"math/rand"
	"testing"
)

func countMines(board *Board) int {
	count := 0
	for _, row := range board.values {
		for _, value := range row {
			if value.IsMine() {
				count++
			}
		}
	}
	return count
}

func TestRandomBoardMineCount(t *testing.T) {
	cases := []struct {
		width, height, mines int
	}{
		{1, 2, 1},
		{3, 3, 0},
		{3, 3, 8},
		{9, 9, 10},
		{16, 16, 40},
		{30, 16, 99},
		{10, 10, 99},
	}

	for _, tc := range cases {
		for seed := int64(0); seed < 5; seed++ {
			board := newRandomBoard(tc.width, tc.height, tc.mines, rand.New(rand.NewSource(seed)))

			if got := countMines(board); got != tc.mines {
				t.Errorf("%dx%d/%d seed %d: expected %d mines, got %d",
					tc.width, tc.height, tc.mines, seed, tc.mines, got)
			}
			if board.NumMines() != tc.mines {
				t.Errorf("%dx%d/%d seed %d: NumMines() = %d", tc.width, tc.height, tc.mines, seed, board.NumMines())
			}
		}
	}
}

func TestRandomBoardIsSeeded(t *testing.T) {
	a := newRandomBoard(16, 16, 40, rand.New(rand.NewSource(42)))
	b := newRandomBoard(16, 16, 40, rand.New(rand.NewSource(42)))

	if LayoutFromBoard(a).SerializedBoard != LayoutFromBoard(b).SerializedBoard {
		t.Error("expected identical boards for identical seeds")
	}
}

func TestNumbersMatchNeighboringMines(t *testing.T) {
	mines := []point{{0, 0}, {3, 0}, {1, 2}, {3, 3}, {4, 4}, {2, 2}}
	board := newBoardWithMines(5, 5, mines)

	isMine := func(x, y int) bool {
		for _, mine := range mines {
			if mine.x == x && mine.y == y {
				return true
			}
		}
		return false
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			value := board.ValueAt(x, y)
			if isMine(x, y) {
				if !value.IsMine() {
					t.Errorf("expected mine at (%d, %d)", x, y)
				}
				continue
			}

			expected := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if (dx != 0 || dy != 0) && nx >= 0 && ny >= 0 && nx < 5 && ny < 5 && isMine(nx, ny) {
						expected++
					}
				}
			}
			if int(value) != expected {
				t.Errorf("(%d, %d): expected %d, got %d", x, y, expected, value)
			}
		}
	}
}

func TestBoardWithDuplicateMines(t *testing.T) {
	board := newBoardWithMines(2, 2, []point{{1, 1}, {1, 1}})
	if board.NumMines() != 1 {
		t.Errorf("expected duplicate mines to collapse, got %d", board.NumMines())
	}
}

func TestNeighborsAtBorders(t *testing.T) {
	board := newEmptyBoard(4, 3)

	cases := []struct {
		x, y, expected int
	}{
		{0, 0, 3},
		{3, 2, 3},
		{1, 0, 5},
		{0, 1, 5},
		{1, 1, 8},
	}
	for _, tc := range cases {
		if got := len(board.neighbors(tc.x, tc.y)); got != tc.expected {
			t.Errorf("(%d, %d): expected %d neighbors, got %d", tc.x, tc.y, tc.expected, got)
		}
	}

	if single := newEmptyBoard(1, 1); len(single.neighbors(0, 0)) != 0 {
		t.Error("expected a 1x1 board cell to have no neighbors")
	}
}

func TestValueAtOutOfBounds(t *testing.T) {
	board := newBoardWithMines(2, 2, []point{{0, 0}})
	for _, p := range []point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if board.InBounds(p.x, p.y) {
			t.Errorf("(%d, %d) should be out of bounds", p.x, p.y)
		}
		if board.ValueAt(p.x, p.y) != 0 {
			t.Errorf("expected out of bounds (%d, %d) to read as empty", p.x, p.y)
		}
	}
}
