package dto

import (
	"time"

	"github.com/limaJavier/classgrid/pkg/model"
)

// GenerateTimetableRequest asks for a new timetable; strategy, seed and attempts fall back to the engine configuration.
type GenerateTimetableRequest struct {
	Input        model.ModelInput `json:"input"`
	Strategy     string           `json:"strategy" validate:"omitempty,oneof=random matching"`
	Seed         *int64           `json:"seed"`
	Attempts     int              `json:"attempts" validate:"gte=0"`
	ConflictMode string           `json:"conflictMode" validate:"omitempty,oneof=identity text"`
}

// UpdateCellRequest replaces the text of one cell; an empty value clears it.
type UpdateCellRequest struct {
	Section *int   `json:"section" validate:"required,gte=0,lt=8"`
	Day     *int   `json:"day" validate:"required,gte=0,lt=6"`
	Period  *int   `json:"period" validate:"required,gte=0,lt=5"`
	Value   string `json:"value" validate:"cellsafe"`
}

type CellView struct {
	Text   string               `json:"text"`
	Kind   model.AssignmentKind `json:"kind,omitempty"`
	Locked bool                 `json:"locked,omitempty"`
}

type SectionView struct {
	Index int                                 `json:"index"`
	Name  string                              `json:"name"`
	Days  [model.Days][model.Periods]CellView `json:"days"`
}

type ReportView struct {
	Strategy  model.Strategy           `json:"strategy"`
	Requested int                      `json:"requested"`
	Placed    int                      `json:"placed"`
	Unplaced  int                      `json:"unplaced"`
	Complete  bool                     `json:"complete"`
	ByKind    map[model.DemandKind]int `json:"unplacedByKind,omitempty"`
	Exhausted []model.PlacementResult  `json:"exhausted,omitempty"`
}

type TimetableResponse struct {
	ID        string         `json:"id"`
	Strategy  model.Strategy `json:"strategy"`
	Seed      int64          `json:"seed,omitempty"`
	Mode      string         `json:"conflictMode"`
	Sections  []SectionView  `json:"sections"`
	Report    ReportView     `json:"report"`
	Verified  bool           `json:"verified"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type UpdateCellResponse struct {
	Applied bool     `json:"applied"`
	Cell    CellView `json:"cell"`
}

type TeacherScheduleView struct {
	Name string                            `json:"name"`
	Days [model.Days][model.Periods]string `json:"days"`
}
