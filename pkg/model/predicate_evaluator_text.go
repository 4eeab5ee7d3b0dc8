package model

import "strings"

// predicateEvaluatorText matches names as substrings of the cell text. A teacher named "Ali" collides with "Alice" under this
// evaluator, which is why it's opt-in.
type predicateEvaluatorText struct {
	grid *Grid
}

func (evaluator *predicateEvaluatorText) LabConflict(lab string, day, period int) bool {
	marker := "Lab(" + lab + ")"
	for section := range evaluator.grid.Sections() {
		if strings.Contains(evaluator.grid.Get(section, day, period).Text(), marker) {
			return true
		}
	}
	return false
}

func (evaluator *predicateEvaluatorText) ActorConflict(actor string, day, period int) bool {
	for section := range evaluator.grid.Sections() {
		if evaluator.Involves(evaluator.grid.Get(section, day, period), actor) {
			return true
		}
	}
	return false
}

func (evaluator *predicateEvaluatorText) Involves(assignment Assignment, actor string) bool {
	return actor != "" && !assignment.IsEmpty() && strings.Contains(assignment.Text(), actor)
}
