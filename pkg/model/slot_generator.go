package model

type slotGenerator interface {
	// Returns, in day-major order, every slot of the week that satisfies all the constraints.
	//
	// Example:
	//
	//	generator := newSlotGenerator(Days, Periods)
	//
	//	slots := generator.ConstrainedSlots([]slotConstraint{
	//		periodBelow(HodPeriods),
	//		cellsEmpty(grid, section),
	//	})
	ConstrainedSlots(constraints []slotConstraint) []Slot
}

func newSlotGenerator(days, periods int) slotGenerator {
	return &slotGeneratorImplementation{days, periods}
}

type slotGeneratorImplementation struct {
	days, periods int
}

func (generator *slotGeneratorImplementation) ConstrainedSlots(constraints []slotConstraint) []Slot {
	slots := make([]Slot, 0, generator.days*generator.periods)
	for day := range generator.days {
		for period := range generator.periods {
			slot := Slot{Day: day, Period: period}
			if satisfies(slot, constraints) {
				slots = append(slots, slot)
			}
		}
	}
	return slots
}
