package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFromJson(t *testing.T) {
	t.Run("Sample file", func(t *testing.T) {
		input, err := InputFromJson(testDirectory + "department.json")

		require.NoError(t, err)
		assert.Equal(t, 8, input.Classes)
		assert.Len(t, input.StaticHours, 4)
		assert.Equal(t, Slot{Day: 3, Period: 4}, input.StaticHours[0].Slots[1])
		assert.Equal(t, "Dr.Rao", input.Hod.Name)
		assert.Equal(t, 3, input.Hod.Courses[0].Year)
		assert.Equal(t, "Bala", input.Labs[0].StaffB)
		assert.Equal(t, 4, input.Staff[3].Courses[0].Year)
		assert.NoError(t, ValidateInput(input))
	})

	t.Run("Loosely typed values", func(t *testing.T) {
		input, err := InputFromBytes([]byte(`{"classes": "2", "staff": [{"name": "Asha", "courses": [{"year": "1", "section": "B", "name": "C", "duration": 2.0}]}]}`))

		require.NoError(t, err)
		assert.Equal(t, 2, input.Classes)
		assert.Equal(t, Course{Year: 1, Section: "B", Name: "C", Duration: 2}, input.Staff[0].Courses[0])
	})

	t.Run("Embedded in a request", func(t *testing.T) {
		var request struct {
			Input ModelInput `json:"input"`
		}
		err := json.Unmarshal([]byte(`{"input": {"classes": 1, "hod": {"name": "Dr.Rao", "courses": [{"year": "1", "section": "A", "name": "X", "duration": "2"}]}}}`), &request)

		require.NoError(t, err)
		assert.Equal(t, Course{Year: 1, Section: "A", Name: "X", Duration: 2}, request.Input.Hod.Courses[0])
	})

	t.Run("Malformed json", func(t *testing.T) {
		_, err := InputFromBytes([]byte(`{"classes":`))
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := InputFromJson(testDirectory + "missing.json")
		assert.Error(t, err)
	})
}

func TestCellSafe(t *testing.T) {
	for _, text := range []string{"", "Library", "Lab(DB Lab)-Asha", "Maths-Dr.Rao", "Talk "} {
		assert.True(t, CellSafe(text), text)
	}
	for _, text := range []string{"a,b", `Dr "R" Talk`, " Seminar", "\tSeminar", "two\nlines", `\.`} {
		assert.False(t, CellSafe(text), text)
	}
}

func TestValidateInput(t *testing.T) {
	valid := func() ModelInput {
		return ModelInput{
			Classes: 2,
			Labs:    []Lab{{YearGroup: 0, Name: "DB", Hours: 1, StaffA: "Asha"}},
			Staff:   []Staff{{Name: "Bala", Courses: []Course{{Year: 1, Section: "A", Name: "C", Duration: 1}}}},
		}
	}

	assert.NoError(t, ValidateInput(valid()))

	cases := map[string]func(input *ModelInput){
		"no classes":         func(input *ModelInput) { input.Classes = 0 },
		"too many classes":   func(input *ModelInput) { input.Classes = 9 },
		"comma in lab name":  func(input *ModelInput) { input.Labs[0].Name = "DB,Lab" },
		"newline in staff":   func(input *ModelInput) { input.Staff[0].Name = "Bala\n" },
		"quote in course":    func(input *ModelInput) { input.Staff[0].Courses[0].Name = `Dr "R" Talk` },
		"leading space":      func(input *ModelInput) { input.Labs[0].StaffA = " Asha" },
		"unknown section":    func(input *ModelInput) { input.Staff[0].Courses[0].Section = "C" },
		"zero hours":         func(input *ModelInput) { input.Labs[0].Hours = 0 },
		"year out of range":  func(input *ModelInput) { input.Staff[0].Courses[0].Year = 6 },
		"hod without a name": func(input *ModelInput) { input.Hod.Courses = []Course{{Year: 1, Section: "A", Name: "X", Duration: 1}} },
		"bad slot": func(input *ModelInput) {
			input.StaticHours = []StaticHour{{Section: "A", Subject: "Library", Slots: []Slot{{Day: 6, Period: 0}}}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := valid()
			mutate(&input)
			assert.Error(t, ValidateInput(input))
		})
	}
}
