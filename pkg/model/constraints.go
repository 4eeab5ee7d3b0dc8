package model

// slotConstraint tells whether a demand may be placed at the given slot, evaluated against the grid as it is at call time
type slotConstraint func(slot Slot) bool

func satisfies(slot Slot, constraints []slotConstraint) bool {
	for _, constraint := range constraints {
		if !constraint(slot) {
			return false
		}
	}
	return true
}

// cellsEmpty holds when every given section is free at the slot
func cellsEmpty(grid *Grid, sections ...int) slotConstraint {
	return func(slot Slot) bool {
		for _, section := range sections {
			if grid.IsOccupied(section, slot.Day, slot.Period) {
				return false
			}
		}
		return true
	}
}

func labFree(evaluator predicateEvaluator, lab string) slotConstraint {
	return func(slot Slot) bool {
		return !evaluator.LabConflict(lab, slot.Day, slot.Period)
	}
}

// actorFree holds when none of the actors teaches anywhere at the slot. Blank actors are ignored.
func actorFree(evaluator predicateEvaluator, actors ...string) slotConstraint {
	return func(slot Slot) bool {
		for _, actor := range actors {
			if actor != "" && evaluator.ActorConflict(actor, slot.Day, slot.Period) {
				return false
			}
		}
		return true
	}
}

func periodBelow(limit int) slotConstraint {
	return func(slot Slot) bool {
		return slot.Period < limit
	}
}

//** Per-demand constraint sets shared by every strategy

// labConstraints requires the lab staff to be free whatever the conflict mode
func labConstraints(grid *Grid, evaluator predicateEvaluator, lab Lab, sections []int) []slotConstraint {
	staff := []string{lab.StaffA}
	if len(sections) > 1 {
		staff = append(staff, lab.StaffB)
	}
	return []slotConstraint{
		cellsEmpty(grid, sections...),
		labFree(evaluator, lab.Name),
		actorFree(evaluator, staff...),
	}
}

func courseConstraints(grid *Grid, evaluator predicateEvaluator, teacher string, section, periods int) []slotConstraint {
	return []slotConstraint{
		periodBelow(periods),
		cellsEmpty(grid, section),
		actorFree(evaluator, teacher),
	}
}
