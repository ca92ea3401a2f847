package game

// CellChange records a cell whose status changed during an action
type CellChange struct {
	X, Y   int
	Status CellStatus
}

// Outcome describes what an action did to a round. A zero-change Outcome
// means the action was a no-op.
type Outcome struct {
	Changes []CellChange
	Phase   Phase

	// PhaseChanged is set when the action ended the round
	PhaseChanged bool
	// TimerStarted is set when the action was the round's first reveal
	TimerStarted bool
}

func (outcome Outcome) Changed() bool {
	return len(outcome.Changes) > 0
}

func (outcome *Outcome) record(x, y int, status CellStatus) {
	outcome.Changes = append(outcome.Changes, CellChange{X: x, Y: y, Status: status})
}

func (outcome *Outcome) merge(other Outcome) {
	outcome.Changes = append(outcome.Changes, other.Changes...)
	outcome.Phase = other.Phase
	outcome.PhaseChanged = outcome.PhaseChanged || other.PhaseChanged
	outcome.TimerStarted = outcome.TimerStarted || other.TimerStarted
}
