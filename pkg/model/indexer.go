package model

const (
	Days       = 6
	Periods    = 5
	HodPeriods = 3 // Department-head courses only run in the first three periods
	MaxClasses = 8
)

var (
	sectionNames = []string{"I-BCA-A", "I-BCA-B", "II-BCA-A", "II-BCA-B", "III-BCA-A", "III-BCA-B", "I-MCA", "II-MCA"}
	dayNames     = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	yearBases    = map[int]int{1: 0, 2: 2, 3: 4, 4: 6, 5: 7}
)

// indexer interface is designed to give a class-section index to the year and section a demand refers to, bounded by the number of classes in use
type indexer interface {
	// Returns the class-section index of a year (one-based) and section, and whether it's within the classes in use
	Index(year int, section string) (int, bool)
	// Returns the class-sections (within the classes in use) a lab of the given year group is taught to
	LabSections(yearGroup int) []int
}

func newIndexer(classes int) indexer {
	return &indexerImplementation{classes: classes}
}

// SectionIndex maps a one-based year and a section letter onto a class-section index. Postgraduate years (4 and 5) have a single section.
func SectionIndex(year int, section string) int {
	base := yearBases[year]
	if year <= 3 {
		if section == "A" {
			return base
		}
		return base + 1
	}
	return base
}

// SectionsForYearGroup returns the class-sections a zero-based year group spans, limited to the first classes indices
func SectionsForYearGroup(yearGroup, classes int) []int {
	var candidates []int
	switch {
	case yearGroup >= 0 && yearGroup <= 2:
		candidates = []int{2 * yearGroup, 2*yearGroup + 1}
	case yearGroup == 3:
		candidates = []int{6}
	case yearGroup == 4:
		candidates = []int{7}
	}

	sections := make([]int, 0, len(candidates))
	for _, section := range candidates {
		if section < classes {
			sections = append(sections, section)
		}
	}
	return sections
}

func SectionName(section int) string {
	if section < 0 || section >= len(sectionNames) {
		return ""
	}
	return sectionNames[section]
}

func DayName(day int) string {
	if day < 0 || day >= len(dayNames) {
		return ""
	}
	return dayNames[day]
}
