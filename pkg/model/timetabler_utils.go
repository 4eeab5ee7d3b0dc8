package model

import (
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// placeStaticHours writes every static hour unconditionally; a later static hour sharing a cell with an earlier one wins
func placeStaticHours(grid *Grid, indexer indexer, staticHours []StaticHour) []PlacementResult {
	results := make([]PlacementResult, 0, len(staticHours))
	for _, staticHour := range staticHours {
		result := PlacementResult{Kind: StaticDemand, Name: staticHour.Subject, Requested: len(staticHour.Slots)}
		section, ok := indexer.Index(staticHour.YearGroup+1, staticHour.Section)
		if ok {
			result.Sections = []int{section}
			assignment := StaticAssignment(staticHour.Subject)
			for _, slot := range staticHour.Slots {
				if grid.InRange(section, slot.Day, slot.Period) {
					grid.Set(section, slot.Day, slot.Period, assignment)
					result.Placed++
				}
			}
		}
		results = append(results, result)
	}
	return results
}

// commitLab writes a lab hour to all its sections: StaffA takes the lower section, StaffB the higher one
func commitLab(grid *Grid, lab Lab, sections []int, slot Slot) {
	grid.Set(sections[0], slot.Day, slot.Period, LabAssignment(lab.Name, lab.StaffA))
	if len(sections) > 1 {
		grid.Set(sections[1], slot.Day, slot.Period, LabAssignment(lab.Name, lab.StaffB))
	}
}

// assignSlots finds a maximum matching between units and slots, returning the slot given to each matched unit
func assignSlots(units []int, slots []Slot, neighbours func(unit int, slot Slot) bool) (map[int]Slot, error) {
	assignments := make(map[int]Slot, len(units))
	if len(units) == 0 || len(slots) == 0 {
		return assignments, nil
	}

	// Transform units and slots to slices of any
	unitsAny, slotsAny := lo.Map(units, func(unit int, _ int) any { return unit }), lo.Map(slots, func(slot Slot, _ int) any { return slot })

	graph, err := bipartitegraph.NewBipartiteGraph(unitsAny, slotsAny, func(unitAny any, slotAny any) (bool, error) {
		return neighbours(unitAny.(int), slotAny.(Slot)), nil
	})
	if err != nil {
		return nil, err
	}

	for _, edge := range graph.LargestMatching() {
		unitIndex, slotIndex := edge.Node1, edge.Node2-len(units)
		assignments[units[unitIndex]] = slots[slotIndex]
	}
	return assignments, nil
}

type demandKey struct {
	teacher, course string
	section         int
}

// labKey tells apart declarations of the same lab room made for different year groups
type labKey struct {
	name      string
	yearGroup int
}

// labRunsAt holds when the lab occupies exactly its year group's sections at the slot, each with the right staff
func labRunsAt(grid *Grid, indexer indexer, lab Lab, sections []int, day, period int) bool {
	expected := indexer.LabSections(lab.YearGroup)
	if len(sections) != len(expected) {
		return false
	}
	for i, section := range expected {
		staff := lab.StaffA
		if i > 0 {
			staff = lab.StaffB
		}
		if sections[i] != section || grid.Get(section, day, period).Teacher != staff {
			return false
		}
	}
	return true
}

func verify(timetable *Timetable, modelInput ModelInput) bool {
	if timetable == nil || timetable.Grid == nil || timetable.Grid.Sections() != modelInput.Classes {
		return false
	}
	grid := timetable.Grid
	indexer := newIndexer(modelInput.Classes)

	//** Static precedence: the last static hour written to a cell must still be there
	expectedStatic := make(map[[3]int]string)
	for _, staticHour := range modelInput.StaticHours {
		section, ok := indexer.Index(staticHour.YearGroup+1, staticHour.Section)
		if !ok {
			continue
		}
		for _, slot := range staticHour.Slots {
			expectedStatic[[3]int{section, slot.Day, slot.Period}] = staticHour.Subject
		}
	}
	for key, subject := range expectedStatic {
		if grid.Get(key[0], key[1], key[2]) != StaticAssignment(subject) {
			return false
		}
	}

	//** Requested hours
	labs := lo.GroupBy(modelInput.Labs, func(lab Lab) string { return lab.Name })
	labHours := make(map[labKey]int)
	for _, lab := range modelInput.Labs {
		labHours[labKey{lab.Name, lab.YearGroup}] += lab.Hours
	}

	courseHours := make(map[demandKey]int)
	hodOnly := make(map[demandKey]bool)
	for _, course := range modelInput.Hod.Courses {
		section, _ := indexer.Index(course.Year, course.Section)
		key := demandKey{modelInput.Hod.Name, course.Name, section}
		courseHours[key] += course.Duration
		hodOnly[key] = true
	}
	for _, staff := range modelInput.Staff {
		for _, course := range staff.Courses {
			section, _ := indexer.Index(course.Year, course.Section)
			key := demandKey{staff.Name, course.Name, section}
			courseHours[key] += course.Duration
			delete(hodOnly, key)
		}
	}

	labsTaught := make(map[labKey]int)
	coursesTaught := make(map[demandKey]int)

	for day := range Days {
		for period := range Periods {
			labSections := make(map[string][]int)
			teacherAssistance := make(map[string]string) // Teacher -> lab being supervised, or "" when teaching a course

			for section := range grid.Sections() {
				assignment := grid.Get(section, day, period)
				switch assignment.Kind {
				case LabKind:
					// A staff member may supervise both sections of the same lab, but nothing else at the same time
					if previous, ok := teacherAssistance[assignment.Teacher]; assignment.Teacher != "" && ok && previous != assignment.Lab {
						return false
					}
					if assignment.Teacher != "" {
						teacherAssistance[assignment.Teacher] = assignment.Lab
					}
					labSections[assignment.Lab] = append(labSections[assignment.Lab], section)

				case CourseKind:
					if _, ok := teacherAssistance[assignment.Teacher]; ok {
						return false
					}
					teacherAssistance[assignment.Teacher] = ""

					key := demandKey{assignment.Teacher, assignment.Subject, section}
					if _, ok := courseHours[key]; !ok {
						return false
					}
					// Department-head courses are restricted to the first periods
					if hodOnly[key] && period >= HodPeriods {
						return false
					}
					coursesTaught[key]++
				}
			}

			// Every lab running in the slot must match one of its declarations: all its sections, with the right staff
			for name, sections := range labSections {
				lab, ok := lo.Find(labs[name], func(lab Lab) bool {
					return labRunsAt(grid, indexer, lab, sections, day, period)
				})
				if !ok {
					return false
				}
				labsTaught[labKey{lab.Name, lab.YearGroup}]++
			}
		}
	}

	//** Placed hours never exceed requested ones
	for key, taught := range labsTaught {
		if taught > labHours[key] {
			return false
		}
	}
	for key, taught := range coursesTaught {
		if taught > courseHours[key] {
			return false
		}
	}
	return true
}
