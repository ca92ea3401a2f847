package cmd

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/they4kman/minefield/director/constraint"
	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
)

type uiKind int

const (
	terminalUI uiKind = iota
	windowUI
	logUI
)

var uiKinds = map[string]uiKind{
	"terminal": terminalUI,
	"window":   windowUI,
	"log":      logUI,
}

type uiValue uiKind

func newUIValue(val uiKind, p *uiKind) *uiValue {
	*p = val
	return (*uiValue)(p)
}

func (uiVal *uiValue) String() string {
	for name, kind := range uiKinds {
		if kind == uiKind(*uiVal) {
			return name
		}
	}
	return fmt.Sprint(int(*uiVal))
}

func (uiVal *uiValue) Set(value string) error {
	if kind, isValid := uiKinds[value]; isValid {
		*uiVal = uiValue(kind)
		return nil
	}
	return fmt.Errorf("invalid ui %q, expected one of %s", value, names(uiKinds))
}

func (uiVal *uiValue) Type() string {
	return "ui"
}

type directorKind int

const (
	noDirector directorKind = iota
	randomDirector
	constraintDirector
)

var directorKinds = map[string]directorKind{
	"none":       noDirector,
	"random":     randomDirector,
	"constraint": constraintDirector,
}

// newDirector returns the player for a kind, or nil when a human plays
func (kind directorKind) newDirector(r *rand.Rand) game.Director {
	switch kind {
	case randomDirector:
		return random.New(r)
	case constraintDirector:
		return constraint.New(r)
	}
	return nil
}

type directorValue directorKind

func newDirectorValue(val directorKind, p *directorKind) *directorValue {
	*p = val
	return (*directorValue)(p)
}

func (directorVal *directorValue) String() string {
	for name, kind := range directorKinds {
		if kind == directorKind(*directorVal) {
			return name
		}
	}
	return fmt.Sprint(int(*directorVal))
}

func (directorVal *directorValue) Set(value string) error {
	if kind, isValid := directorKinds[value]; isValid {
		*directorVal = directorValue(kind)
		return nil
	}
	return fmt.Errorf("invalid director %q, expected one of %s", value, names(directorKinds))
}

func (directorVal *directorValue) Type() string {
	return "director"
}

func names[V any](values map[string]V) string {
	keys := make([]string, 0, len(values))
	for name := range values {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
