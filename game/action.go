package game

import "fmt"

type Action int

const (
	Click Action = iota
	RightClick
	MiddleClick
	Restart
)

func (action Action) String() string {
	switch action {
	case Click:
		return "click"
	case RightClick:
		return "right_click"
	case MiddleClick:
		return "middle_click"
	case Restart:
		return "restart"
	}
	return fmt.Sprintf("Action(%d)", int(action))
}

// CellAction is an input event aimed at the engine
type CellAction struct {
	Action Action
	X, Y   int
}

func ClickAt(x, y int) CellAction {
	return CellAction{Action: Click, X: x, Y: y}
}

func RightClickAt(x, y int) CellAction {
	return CellAction{Action: RightClick, X: x, Y: y}
}

func MiddleClickAt(x, y int) CellAction {
	return CellAction{Action: MiddleClick, X: x, Y: y}
}

func RestartAction() CellAction {
	return CellAction{Action: Restart}
}

func (cellAction CellAction) String() string {
	if cellAction.Action == Restart {
		return cellAction.Action.String()
	}
	return fmt.Sprintf("%s(%d, %d)", cellAction.Action, cellAction.X, cellAction.Y)
}
