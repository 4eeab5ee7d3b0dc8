package model

import (
	"fmt"
	"math/rand"
	"time"
)

type Timetabler interface {
	Build(
		modelInput ModelInput,
	) (timetable *Timetable, report Report, err error)

	Verify(
		timetable *Timetable,
		modelInput ModelInput,
	) bool
}

type Strategy string

const (
	RandomStrategy   Strategy = "random"
	MatchingStrategy Strategy = "matching"
)

const DefaultAttempts = 400

func ParseStrategy(raw string) (Strategy, error) {
	switch strategy := Strategy(raw); strategy {
	case RandomStrategy, MatchingStrategy:
		return strategy, nil
	case "":
		return RandomStrategy, nil
	default:
		return "", fmt.Errorf("unknown strategy %q", raw)
	}
}

type Params struct {
	// Consecutive failed draws allowed per demand item before it's given up; every successful placement resets the count
	Attempts int
	Mode     ConflictMode
}

func DefaultParams() Params {
	return Params{Attempts: DefaultAttempts, Mode: IdentityConflicts}
}

func (params Params) normalized() Params {
	if params.Attempts <= 0 {
		params.Attempts = DefaultAttempts
	}
	if params.Mode == "" {
		params.Mode = IdentityConflicts
	}
	return params
}

// Source supplies the uniform draws of the random strategy. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSource returns a seeded source; a zero seed is replaced by the current time
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func NewTimetabler(strategy Strategy, source Source, params Params) (Timetabler, error) {
	switch strategy {
	case RandomStrategy, "":
		if source == nil {
			source = NewSource(0)
		}
		return NewRandomTimetabler(source, params), nil
	case MatchingStrategy:
		return NewMatchingTimetabler(params), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}
