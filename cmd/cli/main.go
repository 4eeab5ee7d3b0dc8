package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/limaJavier/classgrid/pkg/export"
	"github.com/limaJavier/classgrid/pkg/logger"
	"github.com/limaJavier/classgrid/pkg/model"
)

var (
	validStrategies = []string{string(model.RandomStrategy), string(model.MatchingStrategy)}
	validModes      = []string{string(model.IdentityConflicts), string(model.TextConflicts)}
)

func main() {
	// Define arguments
	strategyPtr := flag.String("strategy", "random", `Strategy to build the timetable. Allowed values are:
- "random" (slots are drawn at random and each demand gives up after -attempts consecutive failed draws) and
- "matching" (slots are assigned through maximum bipartite matching, deterministic), where "random" is the default`)
	seedPtr := flag.Int64("seed", 0, "Seed of the random strategy; 0 seeds from the clock")
	attemptsPtr := flag.Int("attempts", model.DefaultAttempts, "Consecutive failed draws allowed per demand before it's given up")
	conflictsPtr := flag.String("conflicts", "identity", "How conflicts are detected: \"identity\" (lab and teacher keys) or \"text\" (name search inside the cell text)")
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the flat-text export will be written; if empty, it'll be written into the Standard Output")
	pdfFilePathPtr := flag.String("pdf", "", "Path to the file where a PDF rendition will be written")
	teachersFilePathPtr := flag.String("teachers", "", "Path to the file where the teacher schedules will be written; \"-\" writes them into the Standard Output")
	applyFilePathPtr := flag.String("apply", "", "Path to an edited flat-text export whose cells are applied to the built timetable")
	verbosePtr := flag.Bool("verbose", false, "Log every demand item")
	flag.Parse()
	strategy := strings.ToLower(*strategyPtr)
	mode := strings.ToLower(*conflictsPtr)
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if !slices.Contains(validStrategies, strategy) {
		log.Fatalf("%v is not a valid strategy", strategy)
	} else if !slices.Contains(validModes, mode) {
		log.Fatalf("%v is not a valid conflict mode", mode)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	} else if *attemptsPtr <= 0 {
		log.Fatalf("attempts must be greater than 0: %v", *attemptsPtr)
	}

	logr := logger.NewConsole(*verbosePtr)
	exit := func(code int) {
		_ = logr.Sync()
		os.Exit(code)
	}

	// Extract input
	input, err := model.InputFromJson(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	// Initialize engine
	params := model.Params{Attempts: *attemptsPtr, Mode: model.ConflictMode(mode)}
	timetabler, err := model.NewTimetabler(model.Strategy(strategy), model.NewSource(*seedPtr), params)
	if err != nil {
		log.Fatalf("cannot initialize timetabler: %v", err)
	}

	// Build timetable
	timetable, report, err := timetabler.Build(input)
	if err != nil {
		log.Fatalf("an error occurred during timetable construction: %v", err)
	}
	logReport(logr, report)

	// Verify timetable correctness
	if !timetabler.Verify(timetable, input) {
		logr.Error("timetable verification failed")
		exit(15)
	}

	if *applyFilePathPtr != "" {
		applyEdits(logr, timetable, *applyFilePathPtr)
	}

	// Build outputs from timetable
	textExporter := export.NewTextExporter()
	content, err := textExporter.Render(timetable)
	if err != nil {
		log.Fatalf("an error occurred while building the export: %v", err)
	}
	writeOutput(outFile, content)

	if *teachersFilePathPtr != "" {
		names := model.TeacherNames(input)
		teachers, err := textExporter.RenderTeachers(model.ProjectTeacherSchedules(timetable, names), names)
		if err != nil {
			log.Fatalf("an error occurred while building the teacher schedules: %v", err)
		}
		if *teachersFilePathPtr == "-" {
			writeOutput("", teachers)
		} else {
			writeOutput(*teachersFilePathPtr, teachers)
		}
	}

	if *pdfFilePathPtr != "" {
		pdf, err := export.NewPDFExporter().Render(timetable, fmt.Sprintf("Timetable (%v)", strategy))
		if err != nil {
			log.Fatalf("an error occurred while rendering the pdf: %v", err)
		}
		writeOutput(*pdfFilePathPtr, pdf)
	}

	if !report.Complete() {
		exit(20)
	}
	exit(10)
}

func logReport(logr *zap.Logger, report model.Report) {
	for _, result := range report.Results {
		fields := []zap.Field{
			zap.String("kind", string(result.Kind)),
			zap.String("name", result.Name),
			zap.String("teacher", result.Teacher),
			zap.Ints("sections", result.Sections),
			zap.Int("requested", result.Requested),
			zap.Int("placed", result.Placed),
			zap.Int("draws", result.Draws),
		}
		if result.Exhausted() {
			logr.Warn("demand exhausted", fields...)
		} else {
			logr.Debug("demand placed", fields...)
		}
	}

	logr.Info("timetable built",
		zap.String("strategy", string(report.Strategy)),
		zap.Int("requested", report.Requested()),
		zap.Int("placed", report.Placed()),
		zap.Int("unplaced", report.Unplaced()),
		zap.Any("unplacedByKind", report.UnplacedBy()),
	)
}

func applyEdits(logr *zap.Logger, timetable *model.Timetable, filePath string) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("cannot read edits file: %v", err)
	}
	blocks, err := export.Parse(bytes.NewReader(raw))
	if err != nil {
		log.Fatalf("cannot parse edits file: %v", err)
	}
	applied, refused, err := export.Apply(timetable, blocks)
	if err != nil {
		log.Fatalf("cannot apply edits: %v", err)
	}
	logr.Info("edits applied", zap.Int("applied", applied), zap.Int("refusedLocked", refused))
}

func writeOutput(outFile string, content []byte) {
	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Print(string(content))
		return
	}
	if err := os.WriteFile(outFile, content, 0666); err != nil {
		log.Fatalf("an error occurred while writing to the output file: %v", err)
	}
}
