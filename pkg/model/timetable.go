package model

// Timetable is the outcome of a Build: the grid, the cells pinned by static hours and the conflict mode it was built with
type Timetable struct {
	Grid   *Grid                 `json:"grid"`
	Locked [][Days][Periods]bool `json:"locked"`
	Mode   ConflictMode          `json:"mode"`
}

func newTimetable(modelInput ModelInput, mode ConflictMode) *Timetable {
	timetable := &Timetable{
		Grid:   NewGrid(modelInput.Classes),
		Locked: make([][Days][Periods]bool, modelInput.Classes),
		Mode:   mode,
	}

	indexer := newIndexer(modelInput.Classes)
	for _, staticHour := range modelInput.StaticHours {
		section, ok := indexer.Index(staticHour.YearGroup+1, staticHour.Section)
		if !ok {
			continue
		}
		for _, slot := range staticHour.Slots {
			if timetable.Grid.InRange(section, slot.Day, slot.Period) {
				timetable.Locked[section][slot.Day][slot.Period] = true
			}
		}
	}
	return timetable
}

func (timetable *Timetable) Sections() int {
	return timetable.Grid.Sections()
}

func (timetable *Timetable) Cell(section, day, period int) Assignment {
	return timetable.Grid.Get(section, day, period)
}

func (timetable *Timetable) IsLocked(section, day, period int) bool {
	if section < 0 || section >= len(timetable.Locked) || !timetable.Grid.InRange(section, day, period) {
		return false
	}
	return timetable.Locked[section][day][period]
}

// UpdateCell overwrites a cell with the assignment parsed from value; blank text clears it. Cells pinned by a static hour and
// cells out of range are left untouched, in which case false is returned. No conflict checking is done.
func (timetable *Timetable) UpdateCell(section, day, period int, value string) bool {
	if !timetable.Grid.InRange(section, day, period) || timetable.IsLocked(section, day, period) {
		return false
	}
	timetable.Grid.Set(section, day, period, ParseAssignment(value))
	return true
}

func (timetable *Timetable) Clone() *Timetable {
	locked := make([][Days][Periods]bool, len(timetable.Locked))
	copy(locked, timetable.Locked)
	return &Timetable{
		Grid:   timetable.Grid.Clone(),
		Locked: locked,
		Mode:   timetable.Mode,
	}
}
