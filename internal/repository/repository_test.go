package repository

import (
	"time"

	"github.com/limaJavier/classgrid/internal/models"
	"github.com/limaJavier/classgrid/pkg/model"
)

func sampleRecord(id string) *models.TimetableRecord {
	input := model.ModelInput{
		Classes: 1,
		Staff:   []model.Staff{{Name: "Asha", Courses: []model.Course{{Year: 1, Section: "A", Name: "C", Duration: 2}}}},
	}
	timetable, report, err := model.NewRandomTimetabler(model.NewSource(3), model.DefaultParams()).Build(input)
	if err != nil {
		panic(err)
	}
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &models.TimetableRecord{
		ID:        id,
		Strategy:  model.RandomStrategy,
		Seed:      3,
		Input:     input,
		Timetable: timetable,
		Report:    report,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
