package random

import (
	"math/rand"
	"time"

	"github.com/they4kman/minefield/game"
)

type cell struct {
	x, y int
}

// Director reveals hidden cells in a random order fixed at the start of each
// round
type Director struct {
	rand  *rand.Rand
	order []cell
}

func New(r *rand.Rand) *Director {
	return &Director{rand: r}
}

func (director *Director) Init(view game.View) {
	if director.rand == nil {
		director.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	director.order = make([]cell, 0, view.Width*view.Height)
	for y := 0; y < view.Height; y++ {
		for x := 0; x < view.Width; x++ {
			director.order = append(director.order, cell{x, y})
		}
	}

	director.rand.Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) Act(view game.View, actions chan<- game.CellAction) {
	defer close(actions)

	if x, y, ok := director.Pick(view); ok {
		actions <- game.ClickAt(x, y)
	}
}

// Pick returns the next hidden cell in the shuffled order. Cells that have
// since been revealed or flagged are dropped from the order.
func (director *Director) Pick(view game.View) (x, y int, ok bool) {
	for len(director.order) > 0 {
		next := director.order[0]
		if view.StatusAt(next.x, next.y) == game.Hidden {
			return next.x, next.y, true
		}
		director.order = director.order[1:]
	}
	return 0, 0, false
}

func (director *Director) End() {
	director.order = nil
}
