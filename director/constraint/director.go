package constraint

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/util/collections"
)

type cell struct {
	x, y int
}

// Director plays from what the grid shows: every revealed number is an
// observation about its hidden neighbours, and observations that settle a
// cell are acted upon before guessing.
type Director struct {
	rand   *rand.Rand
	random *random.Director
	log    *logrus.Entry
}

// Observation states that exactly numMines of cells hold a mine
type Observation struct {
	origin   *cell
	numMines int
	cells    collections.Set[cell]
}

func (observation Observation) String() string {
	cells := make([]string, 0, len(observation.cells))
	for c := range observation.cells {
		cells = append(cells, fmt.Sprintf("(%d, %d)", c.x, c.y))
	}
	sort.Strings(cells)

	originRepr := "?"
	if observation.origin != nil {
		originRepr = fmt.Sprintf("(%d, %d)", observation.origin.x, observation.origin.y)
	}

	return fmt.Sprintf("Obs[%8s, %d ε %s]", originRepr, observation.numMines, strings.Join(cells, ", "))
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func New(r *rand.Rand) *Director {
	return &Director{rand: r}
}

func (director *Director) Init(view game.View) {
	if director.rand == nil {
		director.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	director.random = random.New(director.rand)
	director.random.Init(view)
	director.log = game.Logger().WithField("director", "constraint")
}

func (director *Director) Act(view game.View, actions chan<- game.CellAction) {
	defer close(actions)

	observations := director.observe(view)

	if deliberate := director.actDeliberate(observations); len(deliberate) > 0 {
		for _, cellAction := range deliberate {
			actions <- cellAction
		}
		return
	}

	if cellAction, ok := director.actLowestProbability(observations); ok {
		actions <- cellAction
		return
	}

	if x, y, ok := director.random.Pick(view); ok {
		director.log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("guessing")
		actions <- game.ClickAt(x, y)
	}
}

func (director *Director) End() {
	if director.random != nil {
		director.random.End()
	}
}

// observe turns every revealed number bordering hidden cells into an
// observation, then derives more from observations contained in others
func (director *Director) observe(view game.View) []*Observation {
	var observations []*Observation

	for y := 0; y < view.Height; y++ {
		for x := 0; x < view.Width; x++ {
			status := view.StatusAt(x, y)
			if !status.IsRevealed() || status.Number() == 0 {
				continue
			}

			observation := &Observation{
				origin:   &cell{x, y},
				numMines: status.Number(),
				cells:    collections.NewSet[cell](),
			}
			view.Neighbors(x, y, func(nx, ny int, neighbor game.CellStatus) {
				switch {
				case neighbor.IsFlag():
					observation.numMines--
				case neighbor == game.Hidden:
					observation.cells.Add(cell{nx, ny})
				}
			})

			if observation.cells.Len() == 0 || observation.numMines < 0 || observation.numMines > observation.cells.Len() {
				continue
			}
			observations = append(observations, observation)
		}
	}

	return simplifyObservations(observations)
}

// simplifyObservations splits every observation containing another into the
// leftover cells and mines
func simplifyObservations(observations []*Observation) []*Observation {
	derived := make([]*Observation, 0)

	for _, inner := range observations {
		for _, outer := range observations {
			if inner == outer || inner.cells.Len() >= outer.cells.Len() {
				continue
			}
			if inner.cells.Difference(outer.cells).Len() != 0 {
				continue
			}

			splitObs := &Observation{
				numMines: outer.numMines - inner.numMines,
				cells:    outer.cells.Difference(inner.cells),
			}
			if splitObs.numMines < 0 || splitObs.numMines > splitObs.cells.Len() {
				continue
			}
			derived = append(derived, splitObs)
		}
	}

	return append(observations, derived...)
}

// actDeliberate returns every action some observation proves safe: flags
// where an observation's cells are all mines and reveals where none are
func (director *Director) actDeliberate(observations []*Observation) []game.CellAction {
	var cellActions []game.CellAction
	acted := collections.NewSet[cell]()

	for _, observation := range observations {
		var action game.Action
		switch observation.numMines {
		case observation.cells.Len():
			action = game.RightClick
		case 0:
			action = game.Click
		default:
			continue
		}

		director.log.WithField("observation", observation.String()).Debug("deliberate")

		for _, c := range sortedCells(observation.cells) {
			if acted.Contains(c) {
				continue
			}
			acted.Add(c)
			cellActions = append(cellActions, game.CellAction{Action: action, X: c.x, Y: c.y})
		}
	}

	return cellActions
}

// actLowestProbability reveals one of the cells least likely to hold a mine
func (director *Director) actLowestProbability(observations []*Observation) (game.CellAction, bool) {
	cellProbabilities := make(map[cell]float64)
	for _, observation := range observations {
		probability := observation.MineProbability()
		for c := range observation.cells {
			if past, ok := cellProbabilities[c]; !ok || probability > past {
				cellProbabilities[c] = probability
			}
		}
	}

	lowestProbability := math.Inf(1)
	var lowestProbabilityCells []cell
	for c, probability := range cellProbabilities {
		switch {
		case probability < lowestProbability:
			lowestProbability = probability
			lowestProbabilityCells = []cell{c}
		case probability == lowestProbability:
			lowestProbabilityCells = append(lowestProbabilityCells, c)
		}
	}

	if len(lowestProbabilityCells) == 0 {
		return game.CellAction{}, false
	}

	sortCells(lowestProbabilityCells)
	c := lowestProbabilityCells[director.rand.Intn(len(lowestProbabilityCells))]
	director.log.WithFields(logrus.Fields{
		"x":           c.x,
		"y":           c.y,
		"probability": lowestProbability,
	}).Debug("lowest probability")
	return game.ClickAt(c.x, c.y), true
}

func sortedCells(set collections.Set[cell]) []cell {
	cells := make([]cell, 0, set.Len())
	for c := range set {
		cells = append(cells, c)
	}
	sortCells(cells)
	return cells
}

func sortCells(cells []cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].y != cells[j].y {
			return cells[i].y < cells[j].y
		}
		return cells[i].x < cells[j].x
	})
}
