package model

import (
	"github.com/samber/lo"
)

type matchingTimetabler struct {
	params Params
}

// NewMatchingTimetabler places demand deterministically: every lab, and every teacher's whole course load, is matched against
// the free slots of the week through a maximum bipartite matching, so an hour is only left out when no assignment could fit it
func NewMatchingTimetabler(params Params) Timetabler {
	return &matchingTimetabler{
		params: params.normalized(),
	}
}

// courseUnit is one hour of a course waiting for a slot
type courseUnit struct {
	course  int
	section int
}

func (timetabler *matchingTimetabler) Build(modelInput ModelInput) (*Timetable, Report, error) {
	if err := ValidateInput(modelInput); err != nil {
		return nil, Report{}, err
	}

	//** Initialize dependencies
	timetable := newTimetable(modelInput, timetabler.params.Mode)
	grid := timetable.Grid
	evaluator := newPredicateEvaluator(timetabler.params.Mode, grid)
	indexer := newIndexer(modelInput.Classes)
	generator := newSlotGenerator(Days, Periods)
	report := Report{Strategy: MatchingStrategy}

	//** Static hours
	report.Results = append(report.Results, placeStaticHours(grid, indexer, modelInput.StaticHours)...)

	//** Labs
	for _, lab := range modelInput.Labs {
		sections := indexer.LabSections(lab.YearGroup)
		result := PlacementResult{Kind: LabDemand, Name: lab.Name, Teacher: lab.StaffA, Sections: sections, Requested: lab.Hours}
		if len(sections) > 0 {
			slots := generator.ConstrainedSlots(labConstraints(grid, evaluator, lab, sections))
			units := lo.Range(lab.Hours)
			assignments, err := assignSlots(units, slots, func(int, Slot) bool { return true })
			if err != nil {
				return nil, Report{}, err
			}
			for _, slot := range assignments {
				commitLab(grid, lab, sections, slot)
			}
			result.Placed = len(assignments)
		}
		report.Results = append(report.Results, result)
	}

	//** Department-head courses
	results, err := timetabler.placeTeacher(grid, evaluator, indexer, generator, HodDemand, modelInput.Hod.Name, modelInput.Hod.Courses, HodPeriods)
	if err != nil {
		return nil, Report{}, err
	}
	report.Results = append(report.Results, results...)

	//** Staff courses
	for _, staff := range modelInput.Staff {
		results, err := timetabler.placeTeacher(grid, evaluator, indexer, generator, StaffDemand, staff.Name, staff.Courses, Periods)
		if err != nil {
			return nil, Report{}, err
		}
		report.Results = append(report.Results, results...)
	}

	return timetable, report, nil
}

func (timetabler *matchingTimetabler) Verify(timetable *Timetable, modelInput ModelInput) bool {
	return verify(timetable, modelInput)
}

// placeTeacher matches every hour of a teacher's courses at once, since the hours compete for the same teacher
func (timetabler *matchingTimetabler) placeTeacher(grid *Grid, evaluator predicateEvaluator, indexer indexer, generator slotGenerator, kind DemandKind, teacher string, courses []Course, periods int) ([]PlacementResult, error) {
	results := make([]PlacementResult, len(courses))
	units := make([]courseUnit, 0)
	for i, course := range courses {
		results[i] = PlacementResult{Kind: kind, Name: course.Name, Teacher: teacher, Requested: course.Duration}
		section, ok := indexer.Index(course.Year, course.Section)
		if !ok {
			continue
		}
		results[i].Sections = []int{section}
		for range course.Duration {
			units = append(units, courseUnit{course: i, section: section})
		}
	}

	// Slots where the teacher is free; whether the section is free as well depends on the unit
	slots := generator.ConstrainedSlots([]slotConstraint{
		periodBelow(periods),
		actorFree(evaluator, teacher),
	})

	assignments, err := assignSlots(lo.Range(len(units)), slots, func(unit int, slot Slot) bool {
		return !grid.IsOccupied(units[unit].section, slot.Day, slot.Period)
	})
	if err != nil {
		return nil, err
	}

	for unit, slot := range assignments {
		course := courses[units[unit].course]
		grid.Set(units[unit].section, slot.Day, slot.Period, CourseAssignment(course.Name, teacher))
		results[units[unit].course].Placed++
	}
	return results, nil
}
