package model

type randomTimetabler struct {
	source Source
	params Params
}

// NewRandomTimetabler places demand by drawing random slots until a free one shows up or the attempt budget runs out
func NewRandomTimetabler(source Source, params Params) Timetabler {
	return &randomTimetabler{
		source: source,
		params: params.normalized(),
	}
}

func (timetabler *randomTimetabler) Build(modelInput ModelInput) (*Timetable, Report, error) {
	if err := ValidateInput(modelInput); err != nil {
		return nil, Report{}, err
	}

	//** Initialize dependencies
	timetable := newTimetable(modelInput, timetabler.params.Mode)
	grid := timetable.Grid
	evaluator := newPredicateEvaluator(timetabler.params.Mode, grid)
	indexer := newIndexer(modelInput.Classes)
	report := Report{Strategy: RandomStrategy}

	//** Static hours
	report.Results = append(report.Results, placeStaticHours(grid, indexer, modelInput.StaticHours)...)

	//** Labs
	for _, lab := range modelInput.Labs {
		sections := indexer.LabSections(lab.YearGroup)
		result := PlacementResult{Kind: LabDemand, Name: lab.Name, Teacher: lab.StaffA, Sections: sections, Requested: lab.Hours}
		if len(sections) > 0 {
			timetabler.draw(&result, Periods, labConstraints(grid, evaluator, lab, sections), func(slot Slot) {
				commitLab(grid, lab, sections, slot)
			})
		}
		report.Results = append(report.Results, result)
	}

	//** Department-head courses
	for _, course := range modelInput.Hod.Courses {
		report.Results = append(report.Results, timetabler.placeCourse(grid, evaluator, indexer, HodDemand, modelInput.Hod.Name, course, HodPeriods))
	}

	//** Staff courses
	for _, staff := range modelInput.Staff {
		for _, course := range staff.Courses {
			report.Results = append(report.Results, timetabler.placeCourse(grid, evaluator, indexer, StaffDemand, staff.Name, course, Periods))
		}
	}

	return timetable, report, nil
}

func (timetabler *randomTimetabler) Verify(timetable *Timetable, modelInput ModelInput) bool {
	return verify(timetable, modelInput)
}

func (timetabler *randomTimetabler) placeCourse(grid *Grid, evaluator predicateEvaluator, indexer indexer, kind DemandKind, teacher string, course Course, periods int) PlacementResult {
	section, ok := indexer.Index(course.Year, course.Section)
	result := PlacementResult{Kind: kind, Name: course.Name, Teacher: teacher, Requested: course.Duration}
	if !ok {
		return result
	}
	result.Sections = []int{section}

	assignment := CourseAssignment(course.Name, teacher)
	timetabler.draw(&result, periods, courseConstraints(grid, evaluator, teacher, section, periods), func(slot Slot) {
		grid.Set(section, slot.Day, slot.Period, assignment)
	})
	return result
}

// draw keeps trying random slots (day first, then period) until every requested hour is placed or the attempt budget of
// consecutive failures is spent
func (timetabler *randomTimetabler) draw(result *PlacementResult, periods int, constraints []slotConstraint, commit func(slot Slot)) {
	failures := 0
	for result.Placed < result.Requested && failures < timetabler.params.Attempts {
		slot := Slot{
			Day:    timetabler.source.Intn(Days),
			Period: timetabler.source.Intn(periods),
		}
		result.Draws++

		if !satisfies(slot, constraints) {
			failures++
			continue
		}

		commit(slot)
		result.Placed++
		failures = 0
	}
}
