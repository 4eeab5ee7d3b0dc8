package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/classgrid/pkg/model"
)

func TestPDFExporter(t *testing.T) {
	t.Run("Timetable", func(t *testing.T) {
		timetable, _ := buildTimetable(t)

		content, err := NewPDFExporter().Render(timetable, "Department timetable")

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	})

	t.Run("Teachers", func(t *testing.T) {
		timetable, input := buildTimetable(t)
		names := model.TeacherNames(input)

		content, err := NewPDFExporter().RenderTeachers(model.ProjectTeacherSchedules(timetable, names), names, "")

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	})

	t.Run("Nothing to draw", func(t *testing.T) {
		_, err := NewPDFExporter().RenderTeachers(map[string]model.TeacherSchedule{}, []string{"Asha"}, "")
		assert.Error(t, err)
	})
}
