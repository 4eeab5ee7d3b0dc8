package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/limaJavier/classgrid/pkg/model"
)

// Row is one day of a weekly table as written to the flat-text export
type Row struct {
	Day     string `csv:"Day"`
	Period1 string `csv:"1"`
	Period2 string `csv:"2"`
	Period3 string `csv:"3"`
	Period4 string `csv:"4"`
	Period5 string `csv:"5"`
}

func (row *Row) cells() [model.Periods]string {
	return [model.Periods]string{row.Period1, row.Period2, row.Period3, row.Period4, row.Period5}
}

// Block is a titled weekly table: a class-section of the timetable or a teacher's schedule
type Block struct {
	Title string
	Cells [model.Days][model.Periods]string
}

func (block Block) rows() []*Row {
	rows := make([]*Row, 0, model.Days)
	for day, cells := range block.Cells {
		rows = append(rows, &Row{
			Day:     model.DayName(day),
			Period1: cells[0],
			Period2: cells[1],
			Period3: cells[2],
			Period4: cells[3],
			Period5: cells[4],
		})
	}
	return rows
}

// SectionBlocks returns one block per class-section, empty cells left blank
func SectionBlocks(timetable *model.Timetable) []Block {
	blocks := make([]Block, 0, timetable.Sections())
	for section := range timetable.Sections() {
		block := Block{Title: model.SectionName(section)}
		for day := range model.Days {
			for period := range model.Periods {
				block.Cells[day][period] = timetable.Cell(section, day, period).Text()
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// TeacherBlocks returns one block per name, in the given order
func TeacherBlocks(schedules map[string]model.TeacherSchedule, names []string) []Block {
	blocks := make([]Block, 0, len(names))
	for _, name := range names {
		schedule, ok := schedules[name]
		if !ok {
			continue
		}
		blocks = append(blocks, Block{Title: name, Cells: schedule})
	}
	return blocks
}

// TextExporter writes blocks as the flat-text format: a title line, the "Day,1,2,3,4,5" header, six day rows and a blank line
type TextExporter struct{}

func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

func (e *TextExporter) Write(w io.Writer, blocks []Block) error {
	for _, block := range blocks {
		if _, err := fmt.Fprintf(w, "%s\n", block.Title); err != nil {
			return fmt.Errorf("write block title: %w", err)
		}
		if err := gocsv.Marshal(block.rows(), w); err != nil {
			return fmt.Errorf("write block %q: %w", block.Title, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("write block separator: %w", err)
		}
	}
	return nil
}

func (e *TextExporter) Render(timetable *model.Timetable) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := e.Write(buf, SectionBlocks(timetable)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *TextExporter) RenderTeachers(schedules map[string]model.TeacherSchedule, names []string) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := e.Write(buf, TeacherBlocks(schedules, names)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reads back the blocks of a flat-text export
func Parse(r io.Reader) ([]Block, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")

	blocks := make([]Block, 0)
	for _, chunk := range strings.Split(content, "\n\n") {
		chunk = strings.Trim(chunk, "\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		title, table, found := strings.Cut(chunk, "\n")
		if !found {
			return nil, fmt.Errorf("block %q has no table", title)
		}

		var rows []*Row
		if err := gocsv.UnmarshalString(table, &rows); err != nil {
			return nil, fmt.Errorf("parse block %q: %w", title, err)
		}
		if len(rows) != model.Days {
			return nil, fmt.Errorf("block %q has %d days, expected %d", title, len(rows), model.Days)
		}

		block := Block{Title: title}
		for day, row := range rows {
			if row.Day != model.DayName(day) {
				return nil, fmt.Errorf("block %q: unexpected day %q in row %d", title, row.Day, day+1)
			}
			block.Cells[day] = row.cells()
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// Apply copies the cells of section blocks onto the timetable through UpdateCell, so locked cells keep their static hour.
// Text that would need quoting in the export is refused as well. It returns how many cells changed and how many differing
// cells were refused.
func Apply(timetable *model.Timetable, blocks []Block) (applied, refused int, err error) {
	sections := make(map[string]int, timetable.Sections())
	for section := range timetable.Sections() {
		sections[model.SectionName(section)] = section
	}

	for _, block := range blocks {
		section, ok := sections[block.Title]
		if !ok {
			return applied, refused, fmt.Errorf("unknown class-section %q", block.Title)
		}
		for day := range model.Days {
			for period := range model.Periods {
				value := block.Cells[day][period]
				if timetable.Cell(section, day, period).Text() == value {
					continue
				}
				if model.CellSafe(value) && timetable.UpdateCell(section, day, period, value) {
					applied++
				} else {
					refused++
				}
			}
		}
	}
	return applied, refused, nil
}
