package model

import (
	"fmt"
	"strings"
)

type AssignmentKind string

const (
	EmptyKind  AssignmentKind = ""
	StaticKind AssignmentKind = "static"
	LabKind    AssignmentKind = "lab"
	CourseKind AssignmentKind = "course"
	ManualKind AssignmentKind = "manual"
)

// Assignment is the occupant of a grid cell. Lab and Teacher are the identity keys conflicts are checked against; Subject holds
// the static subject, the course name or the raw text of a manual edit.
type Assignment struct {
	Kind    AssignmentKind `json:"kind,omitempty"`
	Subject string         `json:"subject,omitempty"`
	Lab     string         `json:"lab,omitempty"`
	Teacher string         `json:"teacher,omitempty"`
}

func StaticAssignment(subject string) Assignment {
	return Assignment{Kind: StaticKind, Subject: subject}
}

func LabAssignment(lab, staff string) Assignment {
	return Assignment{Kind: LabKind, Lab: lab, Teacher: staff}
}

func CourseAssignment(course, teacher string) Assignment {
	return Assignment{Kind: CourseKind, Subject: course, Teacher: teacher}
}

func (a Assignment) IsEmpty() bool {
	return a.Kind == EmptyKind
}

// Text returns the cell text shown to users and written to exports
func (a Assignment) Text() string {
	switch a.Kind {
	case LabKind:
		return fmt.Sprintf("Lab(%s)-%s", a.Lab, a.Teacher)
	case CourseKind:
		return fmt.Sprintf("%s-%s", a.Subject, a.Teacher)
	case StaticKind, ManualKind:
		return a.Subject
	default:
		return ""
	}
}

// ParseAssignment reads cell text back into an Assignment: "Lab(<lab>)-<staff>" is a lab, "<course>-<teacher>" (split at the
// last dash) a course, blank text an empty cell, and anything else is kept verbatim as a manual entry.
func ParseAssignment(text string) Assignment {
	if strings.TrimSpace(text) == "" {
		return Assignment{}
	}

	if strings.HasPrefix(text, "Lab(") {
		if end := strings.Index(text, ")-"); end > len("Lab(") {
			return LabAssignment(text[len("Lab("):end], text[end+len(")-"):])
		}
	}

	if dash := strings.LastIndex(text, "-"); dash > 0 && dash < len(text)-1 {
		return CourseAssignment(text[:dash], text[dash+1:])
	}

	return Assignment{Kind: ManualKind, Subject: text}
}
