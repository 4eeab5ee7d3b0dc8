package model

import "fmt"

type ConflictMode string

const (
	// Conflicts are detected by comparing the lab and teacher identity keys of each cell
	IdentityConflicts ConflictMode = "identity"
	// Conflicts are detected by searching the lab or teacher name inside the cell text
	TextConflicts ConflictMode = "text"
)

func ParseConflictMode(raw string) (ConflictMode, error) {
	switch mode := ConflictMode(raw); mode {
	case IdentityConflicts, TextConflicts:
		return mode, nil
	case "":
		return IdentityConflicts, nil
	default:
		return "", fmt.Errorf("unknown conflict mode %q", raw)
	}
}

type predicateEvaluator interface {
	// Checks whether the lab is already running in any section at the given day and period
	LabConflict(lab string, day, period int) bool

	// Checks whether the actor (department head or staff member) is already teaching in any section at the given day and period
	ActorConflict(actor string, day, period int) bool

	// Checks whether the assignment involves the actor
	Involves(assignment Assignment, actor string) bool
}

func newPredicateEvaluator(mode ConflictMode, grid *Grid) predicateEvaluator {
	if mode == TextConflicts {
		return &predicateEvaluatorText{grid: grid}
	}
	return &predicateEvaluatorStandard{grid: grid}
}
