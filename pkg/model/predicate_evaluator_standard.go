package model

type predicateEvaluatorStandard struct {
	grid *Grid
}

func (evaluator *predicateEvaluatorStandard) LabConflict(lab string, day, period int) bool {
	for section := range evaluator.grid.Sections() {
		assignment := evaluator.grid.Get(section, day, period)
		if assignment.Kind == LabKind && assignment.Lab == lab {
			return true
		}
	}
	return false
}

func (evaluator *predicateEvaluatorStandard) ActorConflict(actor string, day, period int) bool {
	for section := range evaluator.grid.Sections() {
		if evaluator.Involves(evaluator.grid.Get(section, day, period), actor) {
			return true
		}
	}
	return false
}

func (evaluator *predicateEvaluatorStandard) Involves(assignment Assignment, actor string) bool {
	return actor != "" && assignment.Teacher == actor
}
