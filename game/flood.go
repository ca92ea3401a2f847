package game

import (
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/minefield/util/collections"
	"github.com/they4kman/minefield/util/grid"
)

// collectEmptyRegion walks the 8-connected region of empty cells containing
// (x, y), returning the keys of its cells. Only ground truth is consulted, so
// the walk passes under flags.
func collectEmptyRegion(board *Board, x, y int) []string {
	visited := collections.NewSet(grid.EncodeKey(x, y))
	region := make([]string, 0)

	stack := deque.New[point]()
	stack.PushBack(point{x, y})

	for stack.Len() > 0 {
		cell := stack.PopBack()
		region = append(region, grid.EncodeKey(cell.x, cell.y))

		for _, neighbor := range board.neighbors(cell.x, cell.y) {
			key := grid.EncodeKey(neighbor.x, neighbor.y)
			if visited.Contains(key) || !board.values[neighbor.y][neighbor.x].IsEmpty() {
				continue
			}
			visited.Add(key)
			stack.PushBack(neighbor)
		}
	}

	return region
}

// cascadeEmpty reveals the empty region around (x, y) and then every hidden
// cell bordering it. The region is collected in full before anything is
// revealed, so numbered border cells never join the walk.
func (session *Session) cascadeEmpty(x, y int, outcome *Outcome) {
	region := collectEmptyRegion(session.board, x, y)

	for _, key := range region {
		cx, cy, err := grid.DecodeKey(key)
		if err != nil {
			session.log.WithError(err).Error("skipping undecodable cell key")
			continue
		}

		session.revealHidden(cx, cy, outcome)
		for _, neighbor := range session.board.neighbors(cx, cy) {
			session.revealHidden(neighbor.x, neighbor.y, outcome)
		}
	}

	session.log.WithFields(logrus.Fields{
		"x":        x,
		"y":        y,
		"region":   len(region),
		"revealed": len(outcome.Changes),
	}).Debug("flood revealed empty region")
}
