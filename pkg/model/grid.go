package model

import "encoding/json"

// Grid holds one Assignment per class-section, day and period. It knows nothing about conflicts: Set overwrites unconditionally.
type Grid struct {
	cells [][Days][Periods]Assignment
}

func NewGrid(sections int) *Grid {
	return &Grid{cells: make([][Days][Periods]Assignment, sections)}
}

func (grid *Grid) Sections() int {
	return len(grid.cells)
}

func (grid *Grid) InRange(section, day, period int) bool {
	return section >= 0 && section < len(grid.cells) &&
		day >= 0 && day < Days &&
		period >= 0 && period < Periods
}

func (grid *Grid) Get(section, day, period int) Assignment {
	return grid.cells[section][day][period]
}

func (grid *Grid) Set(section, day, period int, assignment Assignment) {
	grid.cells[section][day][period] = assignment
}

func (grid *Grid) IsOccupied(section, day, period int) bool {
	return !grid.cells[section][day][period].IsEmpty()
}

func (grid *Grid) Clone() *Grid {
	cells := make([][Days][Periods]Assignment, len(grid.cells))
	copy(cells, grid.cells)
	return &Grid{cells: cells}
}

func (grid *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(grid.cells)
}

func (grid *Grid) UnmarshalJSON(data []byte) error {
	var cells [][Days][Periods]Assignment
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	grid.cells = cells
	return nil
}
