package models

import (
	"time"

	"github.com/limaJavier/classgrid/pkg/model"
)

// TimetableRecord is a generated timetable together with the input and report it came from.
type TimetableRecord struct {
	ID        string           `json:"id"`
	Strategy  model.Strategy   `json:"strategy"`
	Seed      int64            `json:"seed"`
	Input     model.ModelInput `json:"input"`
	Timetable *model.Timetable `json:"timetable"`
	Report    model.Report     `json:"report"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Clone deep-copies the timetable so stores never hand out shared grids.
func (r *TimetableRecord) Clone() *TimetableRecord {
	if r == nil {
		return nil
	}
	clone := *r
	if r.Timetable != nil {
		clone.Timetable = r.Timetable.Clone()
	}
	clone.Report.Results = append([]model.PlacementResult(nil), r.Report.Results...)
	return &clone
}
