package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type Slot struct {
	Day    int `json:"day" mapstructure:"day" validate:"gte=0,lt=6"`
	Period int `json:"period" mapstructure:"period" validate:"gte=0,lt=5"`
}

// StaticHour pins a subject to fixed slots of one class-section. YearGroup is zero-based.
type StaticHour struct {
	YearGroup int    `json:"yearGroup" mapstructure:"yearGroup" validate:"gte=0,lte=4"`
	Section   string `json:"section" mapstructure:"section" validate:"oneof=A B"`
	Subject   string `json:"subject" mapstructure:"subject" validate:"required,cellsafe"`
	Slots     []Slot `json:"slots" mapstructure:"slots" validate:"dive"`
}

// Lab runs in every section of its year group at once, StaffA supervising the lower section and StaffB the higher one.
type Lab struct {
	YearGroup int    `json:"yearGroup" mapstructure:"yearGroup" validate:"gte=0,lte=4"`
	Name      string `json:"name" mapstructure:"name" validate:"required,cellsafe"`
	Hours     int    `json:"hours" mapstructure:"hours" validate:"gte=1"`
	StaffA    string `json:"staffA" mapstructure:"staffA" validate:"required,cellsafe"`
	StaffB    string `json:"staffB" mapstructure:"staffB" validate:"cellsafe"`
}

// Course is a weekly demand of Duration hours for one section. Year is one-based.
type Course struct {
	Year     int    `json:"year" mapstructure:"year" validate:"gte=1,lte=5"`
	Section  string `json:"section" mapstructure:"section" validate:"oneof=A B"`
	Name     string `json:"name" mapstructure:"name" validate:"required,cellsafe"`
	Duration int    `json:"duration" mapstructure:"duration" validate:"gte=1"`
}

type Hod struct {
	Name    string   `json:"name" mapstructure:"name" validate:"required_with=Courses,cellsafe"`
	Courses []Course `json:"courses" mapstructure:"courses" validate:"dive"`
}

type Staff struct {
	Name    string   `json:"name" mapstructure:"name" validate:"required,cellsafe"`
	Courses []Course `json:"courses" mapstructure:"courses" validate:"dive"`
}

type ModelInput struct {
	Classes     int          `json:"classes" mapstructure:"classes" validate:"gte=1,lte=8"`
	StaticHours []StaticHour `json:"staticHours" mapstructure:"staticHours" validate:"dive"`
	Hod         Hod          `json:"hod" mapstructure:"hod"`
	Labs        []Lab        `json:"labs" mapstructure:"labs" validate:"dive"`
	Staff       []Staff      `json:"staff" mapstructure:"staff" validate:"dive"`
}

// TotalHours returns the number of weekly hours requested by labs, department-head and staff courses
func (input ModelInput) TotalHours() int {
	courseHours := func(courses []Course) int {
		return lo.SumBy(courses, func(course Course) int { return course.Duration })
	}
	return lo.SumBy(input.Labs, func(lab Lab) int { return lab.Hours }) +
		courseHours(input.Hod.Courses) +
		lo.SumBy(input.Staff, func(staff Staff) int { return courseHours(staff.Courses) })
}

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}
	return InputFromBytes(bytes)
}

func InputFromBytes(bytes []byte) (ModelInput, error) {
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}
	return InputFromMap(inputJson)
}

// UnmarshalJSON accepts the same loosely typed documents as InputFromBytes
func (input *ModelInput) UnmarshalJSON(bytes []byte) error {
	decoded, err := InputFromBytes(bytes)
	if err != nil {
		return err
	}
	*input = decoded
	return nil
}

// InputFromMap decodes loosely typed input (years given as "1", numbers as floats) into a ModelInput
func InputFromMap(inputMap map[string]any) (ModelInput, error) {
	var input ModelInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &input,
	})
	if err != nil {
		return ModelInput{}, err
	}
	if err := decoder.Decode(inputMap); err != nil {
		return ModelInput{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return input, nil
}

//** Validation

var validate = NewValidator()

// NewValidator returns a validator aware of the "cellsafe" tag, which rejects text the flat-text export would have to quote
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("cellsafe", func(fl validator.FieldLevel) bool {
		return CellSafe(fl.Field().String())
	})
	return v
}

// CellSafe reports whether text can be written as a bare export field: no separators, line breaks or quotes, and no leading
// whitespace
func CellSafe(text string) bool {
	if strings.ContainsAny(text, ",\"\r\n") || text == `\.` {
		return false
	}
	first, _ := utf8.DecodeRuneInString(text)
	return text == "" || !unicode.IsSpace(first)
}

func ValidateInput(input ModelInput) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}
