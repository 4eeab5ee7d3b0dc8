package model

type indexerImplementation struct {
	classes int
}

func (indexer *indexerImplementation) Index(year int, section string) (int, bool) {
	index := SectionIndex(year, section)
	return index, index < indexer.classes
}

func (indexer *indexerImplementation) LabSections(yearGroup int) []int {
	return SectionsForYearGroup(yearGroup, indexer.classes)
}
