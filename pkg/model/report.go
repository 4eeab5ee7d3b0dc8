package model

import "github.com/samber/lo"

type DemandKind string

const (
	StaticDemand DemandKind = "static"
	LabDemand    DemandKind = "lab"
	HodDemand    DemandKind = "hod"
	StaffDemand  DemandKind = "staff"
)

// PlacementResult tells how much of a single demand item made it into the grid. Draws counts the random slots tried for it and
// stays at zero for deterministic strategies.
type PlacementResult struct {
	Kind      DemandKind `json:"kind"`
	Name      string     `json:"name"`
	Teacher   string     `json:"teacher,omitempty"`
	Sections  []int      `json:"sections"`
	Requested int        `json:"requested"`
	Placed    int        `json:"placed"`
	Draws     int        `json:"draws"`
}

func (result PlacementResult) Exhausted() bool {
	return result.Placed < result.Requested
}

type Report struct {
	Strategy Strategy          `json:"strategy"`
	Results  []PlacementResult `json:"results"`
}

func (report Report) Requested() int {
	return lo.SumBy(report.Results, func(result PlacementResult) int { return result.Requested })
}

func (report Report) Placed() int {
	return lo.SumBy(report.Results, func(result PlacementResult) int { return result.Placed })
}

func (report Report) Unplaced() int {
	return report.Requested() - report.Placed()
}

func (report Report) Complete() bool {
	return !lo.SomeBy(report.Results, PlacementResult.Exhausted)
}

func (report Report) Exhausted() []PlacementResult {
	return lo.Filter(report.Results, func(result PlacementResult, _ int) bool { return result.Exhausted() })
}

// UnplacedBy sums the hours left out per demand kind
func (report Report) UnplacedBy() map[DemandKind]int {
	unplaced := make(map[DemandKind]int)
	for _, result := range report.Exhausted() {
		unplaced[result.Kind] += result.Requested - result.Placed
	}
	return unplaced
}
