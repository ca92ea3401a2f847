package constraint

import (
	"io"
	"math/rand"
	"reflect"
	"testing"

	"github.com/they4kman/minefield/game"
)

func TestMain(m *testing.M) {
	game.Logger().SetOutput(io.Discard)
	m.Run()
}

// viewOf builds a view from rows where # is hidden, F is a flag, . is an
// empty cell and digits are revealed numbers
func viewOf(rows ...string) game.View {
	status := make([][]game.CellStatus, len(rows))
	for y, row := range rows {
		status[y] = make([]game.CellStatus, len(row))
		for x, r := range row {
			switch {
			case r == '#':
				status[y][x] = game.Hidden
			case r == 'F':
				status[y][x] = game.Flagged
			case r == '.':
				status[y][x] = game.Empty
			default:
				status[y][x] = game.CellStatus(r - '0')
			}
		}
	}
	return game.View{Width: len(rows[0]), Height: len(rows), Status: status, Phase: game.Playing}
}

func act(t *testing.T, rows ...string) ([]game.CellAction, game.View) {
	t.Helper()

	view := viewOf(rows...)
	director := New(rand.New(rand.NewSource(3)))
	director.Init(view)
	defer director.End()

	actions := make(chan game.CellAction)
	go director.Act(view, actions)

	var out []game.CellAction
	for cellAction := range actions {
		out = append(out, cellAction)
	}
	return out, view
}

func TestActDeliberate(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		expected []game.CellAction
	}{
		{
			name:     "flags a cell that must be a mine",
			rows:     []string{"1#", "11"},
			expected: []game.CellAction{game.RightClickAt(1, 0)},
		},
		{
			name: "reveals the rest once a number is satisfied",
			rows: []string{"F1#", "#1#"},
			expected: []game.CellAction{
				game.ClickAt(2, 0),
				game.ClickAt(0, 1),
				game.ClickAt(2, 1),
			},
		},
		{
			name:     "splits observations contained in others",
			rows:     []string{"###", "121"},
			expected: []game.CellAction{game.RightClickAt(2, 0), game.RightClickAt(0, 0)},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actions, _ := act(t, test.rows...)
			if !reflect.DeepEqual(actions, test.expected) {
				t.Errorf("expected %v, got %v", test.expected, actions)
			}
		})
	}
}

func TestActGuessesLowestProbability(t *testing.T) {
	actions, _ := act(t,
		"###",
		"#1#",
		"###",
	)

	if len(actions) != 1 || actions[0].Action != game.Click {
		t.Fatalf("expected a single click, got %v", actions)
	}
	if actions[0].X == 1 && actions[0].Y == 1 {
		t.Error("expected a hidden neighbour to be clicked")
	}
}

func TestActFallsBackToRandom(t *testing.T) {
	actions, view := act(t,
		"###",
		"###",
	)

	if len(actions) != 1 || actions[0].Action != game.Click {
		t.Fatalf("expected a single click, got %v", actions)
	}
	if view.StatusAt(actions[0].X, actions[0].Y) != game.Hidden {
		t.Errorf("expected a hidden cell, got %v", actions[0])
	}
}

func TestActNothingLeft(t *testing.T) {
	if actions, _ := act(t, "1F", "11"); len(actions) != 0 {
		t.Errorf("expected no actions, got %v", actions)
	}
}

func TestObservationString(t *testing.T) {
	observation := Observation{
		origin:   &cell{1, 1},
		numMines: 1,
	}
	observation.cells = map[cell]struct{}{{0, 0}: {}, {2, 0}: {}}

	if got := observation.String(); got != "Obs[  (1, 1), 1 ε (0, 0), (2, 0)]" {
		t.Errorf("unexpected observation string %q", got)
	}
}
