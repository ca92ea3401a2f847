package game

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/minefield/util/grid"
)

// Draws allowed per cell before mine placement stops resampling and picks
// from the remaining free cells instead
const samplingBudgetFactor = 16

type point struct {
	x, y int
}

var neighborOffsets = [8]point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Board holds the ground truth of a round: where the mines are, and how many
// mines border every other cell
type Board struct {
	width, height int
	numMines      int
	values        [][]CellValue // [y][x]
}

func newEmptyBoard(width, height int) *Board {
	board := &Board{
		width:  width,
		height: height,
		values: make([][]CellValue, height),
	}
	for y := range board.values {
		board.values[y] = make([]CellValue, width)
	}
	return board
}

func newRandomBoard(width, height, numMines int, r *rand.Rand) *Board {
	board := newEmptyBoard(width, height)
	board.placeMines(numMines, r)
	board.fillNumbers()
	return board
}

func newBoardWithMines(width, height int, mines []point) *Board {
	board := newEmptyBoard(width, height)
	for _, mine := range mines {
		if !board.values[mine.y][mine.x].IsMine() {
			board.values[mine.y][mine.x] = MineValue
			board.numMines++
		}
	}
	board.fillNumbers()
	return board
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumCells() int {
	return board.width * board.height
}

func (board *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < board.width && y < board.height
}

// ValueAt returns the ground truth of a cell. Out-of-bounds cells read as empty.
func (board *Board) ValueAt(x, y int) CellValue {
	if !board.InBounds(x, y) {
		return 0
	}
	return board.values[y][x]
}

func (board *Board) neighbors(x, y int) []point {
	neighbors := make([]point, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		nx, ny := x+offset.x, y+offset.y
		if board.InBounds(nx, ny) {
			neighbors = append(neighbors, point{nx, ny})
		}
	}
	return neighbors
}

// placeMines drops mines on random free cells until count are placed.
// Occupied draws are resampled; once the draw budget runs out, the remaining
// mines are chosen among the free cells directly.
func (board *Board) placeMines(count int, r *rand.Rand) {
	budget := samplingBudgetFactor * board.NumCells()

	placed := 0
	for draws := 0; placed < count && draws < budget; draws++ {
		x := grid.RandomInt(r, 0, board.width)
		y := grid.RandomInt(r, 0, board.height)

		if board.values[y][x].IsMine() {
			continue
		}
		board.values[y][x] = MineValue
		placed++
	}

	if placed < count {
		log.WithFields(logrus.Fields{
			"placed":    placed,
			"requested": count,
			"budget":    budget,
		}).Debug("mine sampling budget exhausted, drawing from free cells")

		free := board.freeCells()
		for ; placed < count; placed++ {
			i := grid.RandomInt(r, 0, len(free))
			cell := free[i]
			board.values[cell.y][cell.x] = MineValue

			free[i] = free[len(free)-1]
			free = free[:len(free)-1]
		}
	}

	board.numMines = placed
}

func (board *Board) freeCells() []point {
	free := make([]point, 0, board.NumCells())
	for y, row := range board.values {
		for x, value := range row {
			if !value.IsMine() {
				free = append(free, point{x, y})
			}
		}
	}
	return free
}

func (board *Board) fillNumbers() {
	for y, row := range board.values {
		for x, value := range row {
			if value.IsMine() {
				continue
			}

			numMines := CellValue(0)
			for _, neighbor := range board.neighbors(x, y) {
				if board.values[neighbor.y][neighbor.x].IsMine() {
					numMines++
				}
			}
			board.values[y][x] = numMines
		}
	}
}
