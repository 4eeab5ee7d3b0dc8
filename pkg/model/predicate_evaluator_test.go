package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicateEvaluator(t *testing.T) {
	grid := NewGrid(3)
	grid.Set(0, 1, 2, LabAssignment("DB Lab", "Asha"))
	grid.Set(2, 1, 2, CourseAssignment("Maths", "Alice"))
	grid.Set(1, 3, 0, StaticAssignment("Library"))

	t.Run("Identity", func(t *testing.T) {
		evaluator := newPredicateEvaluator(IdentityConflicts, grid)

		assert.True(t, evaluator.LabConflict("DB Lab", 1, 2))
		assert.False(t, evaluator.LabConflict("DB", 1, 2))
		assert.False(t, evaluator.LabConflict("DB Lab", 1, 3))

		assert.True(t, evaluator.ActorConflict("Asha", 1, 2))
		assert.True(t, evaluator.ActorConflict("Alice", 1, 2))
		assert.False(t, evaluator.ActorConflict("Ali", 1, 2))
		assert.False(t, evaluator.ActorConflict("Library", 3, 0))
		assert.False(t, evaluator.ActorConflict("", 1, 2))
	})

	t.Run("Text", func(t *testing.T) {
		evaluator := newPredicateEvaluator(TextConflicts, grid)

		assert.True(t, evaluator.LabConflict("DB Lab", 1, 2))
		assert.False(t, evaluator.LabConflict("DB", 1, 2))

		assert.True(t, evaluator.ActorConflict("Asha", 1, 2))
		assert.True(t, evaluator.ActorConflict("Ali", 1, 2))
		assert.True(t, evaluator.ActorConflict("Library", 3, 0))
		assert.False(t, evaluator.ActorConflict("", 1, 2))
	})

	t.Run("Mode parsing", func(t *testing.T) {
		mode, err := ParseConflictMode("")
		assert.NoError(t, err)
		assert.Equal(t, IdentityConflicts, mode)

		mode, err = ParseConflictMode("text")
		assert.NoError(t, err)
		assert.Equal(t, TextConflicts, mode)

		_, err = ParseConflictMode("fuzzy")
		assert.Error(t, err)
	})
}

func TestConstraints(t *testing.T) {
	grid := NewGrid(2)
	grid.Set(0, 0, 0, StaticAssignment("Library"))
	grid.Set(1, 0, 1, LabAssignment("C Lab", "Bala"))
	evaluator := newPredicateEvaluator(IdentityConflicts, grid)
	generator := newSlotGenerator(Days, Periods)

	t.Run("Lab constraints", func(t *testing.T) {
		lab := Lab{YearGroup: 0, Name: "DB Lab", Hours: 1, StaffA: "Asha", StaffB: "Bala"}
		slots := generator.ConstrainedSlots(labConstraints(grid, evaluator, lab, []int{0, 1}))

		assert.Len(t, slots, Days*Periods-2)
		assert.NotContains(t, slots, Slot{Day: 0, Period: 0})
		assert.NotContains(t, slots, Slot{Day: 0, Period: 1})
	})

	t.Run("Lab staff must be free under text conflicts", func(t *testing.T) {
		//** Arrange
		busy := NewGrid(4)
		busy.Set(2, 2, 3, CourseAssignment("DBMS", "Bala"))
		lab := Lab{YearGroup: 0, Name: "DB Lab", Hours: 1, StaffA: "Asha", StaffB: "Bala"}

		//** Act
		slots := generator.ConstrainedSlots(labConstraints(busy, newPredicateEvaluator(TextConflicts, busy), lab, []int{0, 1}))

		//** Assert
		assert.Len(t, slots, Days*Periods-1)
		assert.NotContains(t, slots, Slot{Day: 2, Period: 3})
	})

	t.Run("Course constraints", func(t *testing.T) {
		slots := generator.ConstrainedSlots(courseConstraints(grid, evaluator, "Bala", 0, HodPeriods))

		assert.Len(t, slots, Days*HodPeriods-2)
		assert.Equal(t, Slot{Day: 0, Period: 2}, slots[0])
	})
}
