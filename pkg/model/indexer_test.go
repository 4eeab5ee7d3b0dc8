package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionIndex(t *testing.T) {
	cases := []struct {
		year     int
		section  string
		expected int
	}{
		{1, "A", 0}, {1, "B", 1},
		{2, "A", 2}, {2, "B", 3},
		{3, "A", 4}, {3, "B", 5},
		{4, "A", 6}, {4, "B", 6},
		{5, "A", 7}, {5, "B", 7},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, SectionIndex(c.year, c.section), "year %d section %s", c.year, c.section)
	}
}

func TestSectionsForYearGroup(t *testing.T) {
	assert.Equal(t, []int{0, 1}, SectionsForYearGroup(0, 8))
	assert.Equal(t, []int{4, 5}, SectionsForYearGroup(2, 8))
	assert.Equal(t, []int{6}, SectionsForYearGroup(3, 8))
	assert.Equal(t, []int{7}, SectionsForYearGroup(4, 8))
	assert.Equal(t, []int{0}, SectionsForYearGroup(0, 1))
	assert.Empty(t, SectionsForYearGroup(3, 6))
	assert.Empty(t, SectionsForYearGroup(5, 8))

	t.Run("Indexer bounds", func(t *testing.T) {
		indexer := newIndexer(3)

		index, ok := indexer.Index(2, "A")
		assert.Equal(t, 2, index)
		assert.True(t, ok)

		_, ok = indexer.Index(2, "B")
		assert.False(t, ok)
		assert.Equal(t, []int{2}, indexer.LabSections(1))
	})
}

func TestNames(t *testing.T) {
	assert.Equal(t, "I-BCA-A", SectionName(0))
	assert.Equal(t, "II-MCA", SectionName(7))
	assert.Equal(t, "", SectionName(8))
	assert.Equal(t, "Monday", DayName(0))
	assert.Equal(t, "Saturday", DayName(5))
	assert.Equal(t, "", DayName(6))
}
