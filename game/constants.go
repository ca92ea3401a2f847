package game

import "fmt"

// CellValue is the ground truth of a cell: Mine, or the number of
// neighbouring mines (0 for an empty cell).
type CellValue int

const MineValue CellValue = -1

func (value CellValue) IsMine() bool {
	return value == MineValue
}

func (value CellValue) IsEmpty() bool {
	return value == 0
}

// CellStatus is what the player sees of a cell
type CellStatus int

const (
	Hidden CellStatus = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flagged
	FlagWrong
	MineShown
	MineExploded
)

var CellStatuses = []CellStatus{
	Hidden,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flagged,
	FlagWrong,
	MineShown,
	MineExploded,
}

// revealedStatus is the status a non-mine cell shows once revealed
func revealedStatus(value CellValue) CellStatus {
	return CellStatus(value)
}

func (status CellStatus) IsRevealed() bool {
	return status >= Empty && status <= Number8
}

func (status CellStatus) IsFlag() bool {
	return status == Flagged || status == FlagWrong
}

// Number returns the neighbouring mine count shown by a revealed cell
func (status CellStatus) Number() int {
	if status.IsRevealed() {
		return int(status)
	}
	return 0
}

func (status CellStatus) String() string {
	switch {
	case status == Hidden:
		return "hidden"
	case status == Empty:
		return "empty"
	case status.IsRevealed():
		return fmt.Sprintf("number%d", int(status))
	case status == Flagged:
		return "flagged"
	case status == FlagWrong:
		return "flag_wrong"
	case status == MineShown:
		return "mine"
	case status == MineExploded:
		return "mine_exploded"
	}
	return fmt.Sprintf("CellStatus(%d)", int(status))
}

type Phase int

const (
	Lost Phase = iota
	Won
	Playing
)

func (phase Phase) String() string {
	switch phase {
	case Lost:
		return "lost"
	case Won:
		return "won"
	case Playing:
		return "playing"
	}
	return fmt.Sprintf("Phase(%d)", int(phase))
}
