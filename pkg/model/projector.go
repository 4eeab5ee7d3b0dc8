package model

import (
	"fmt"

	"github.com/samber/lo"
)

const FreeCell = "Free"

// TeacherSchedule is a teacher's week: "<section name>: <cell text>" where they teach, FreeCell elsewhere
type TeacherSchedule [Days][Periods]string

// TeacherNames lists the staff members in order followed by the department head, skipping blanks and repeats
func TeacherNames(modelInput ModelInput) []string {
	names := lo.Map(modelInput.Staff, func(staff Staff, _ int) string { return staff.Name })
	names = append(names, modelInput.Hod.Name)
	return lo.Uniq(lo.Compact(names))
}

// ProjectTeacherSchedules derives each teacher's week from the timetable. When a teacher shows up in several sections at the
// same slot, the lowest section wins.
func ProjectTeacherSchedules(timetable *Timetable, names []string) map[string]TeacherSchedule {
	evaluator := newPredicateEvaluator(timetable.Mode, timetable.Grid)
	schedules := make(map[string]TeacherSchedule, len(names))

	for _, name := range names {
		var schedule TeacherSchedule
		for day := range Days {
			for period := range Periods {
				schedule[day][period] = FreeCell
				for section := range timetable.Sections() {
					assignment := timetable.Cell(section, day, period)
					if evaluator.Involves(assignment, name) {
						schedule[day][period] = fmt.Sprintf("%s: %s", SectionName(section), assignment.Text())
						break
					}
				}
			}
		}
		schedules[name] = schedule
	}
	return schedules
}
