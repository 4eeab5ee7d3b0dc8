package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/limaJavier/classgrid/pkg/model"
)

const (
	pageWidth   = 277.0 // A4 landscape minus margins
	dayColumn   = 32.0
	periodWidth = (pageWidth - dayColumn) / model.Periods
)

// PDFExporter renders weekly tables into a landscape PDF, one page per block
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render draws every class-section of the timetable; cells pinned by static hours are shaded
func (e *PDFExporter) Render(timetable *model.Timetable, title string) ([]byte, error) {
	blocks := SectionBlocks(timetable)
	return e.render(blocks, title, func(block, day, period int) bool {
		return timetable.IsLocked(block, day, period)
	})
}

func (e *PDFExporter) RenderTeachers(schedules map[string]model.TeacherSchedule, names []string, title string) ([]byte, error) {
	blocks := TeacherBlocks(schedules, names)
	return e.render(blocks, title, func(block, day, period int) bool {
		return blocks[block].Cells[day][period] == model.FreeCell
	})
}

func (e *PDFExporter) render(blocks []Block, title string, shaded func(block, day, period int) bool) ([]byte, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("pdf requires at least one table")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	for i, block := range blocks {
		pdf.AddPage()

		if title != "" {
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(0, 6, translate(title), "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, translate(strings.ToUpper(block.Title)), "", 1, "C", false, 0, "")
		pdf.Ln(4)

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(dayColumn, 9, "Day", "1", 0, "C", false, 0, "")
		for period := range model.Periods {
			pdf.CellFormat(periodWidth, 9, fmt.Sprint(period+1), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFillColor(225, 225, 225)
		for day := range model.Days {
			pdf.SetFont("Arial", "B", 9)
			pdf.CellFormat(dayColumn, 14, model.DayName(day), "1", 0, "", false, 0, "")
			pdf.SetFont("Arial", "", 8)
			for period := range model.Periods {
				text := translate(block.Cells[day][period])
				pdf.CellFormat(periodWidth, 14, text, "1", 0, "C", shaded(i, day, period), 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
