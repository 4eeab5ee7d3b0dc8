package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"

	"github.com/limaJavier/classgrid/pkg/model"
)

const (
	executablePath          = "../../bin/classgrid"
	testDirectory           = "../../pkg/model/testdata/"
	resultsFile             = "benchmark_results.csv"
	runsPerStrategy         = 5
	MB              float32 = 1024
)

type ResultType int

const (
	complete ResultType = iota
	incomplete
	unverified
)

var (
	strategies  = []model.Strategy{model.RandomStrategy, model.MatchingStrategy}
	resultTypes = map[ResultType]string{
		complete:   "complete",
		incomplete: "incomplete",
		unverified: "unverified",
	}
)

type TestMetadata struct {
	Name    string
	Classes int
	Labs    int
	Staff   int
	Hours   int
}

type BenchmarkResult struct {
	Test          string  `csv:"Test"`
	Classes       int     `csv:"Classes"`
	Labs          int     `csv:"Labs"`
	Staff         int     `csv:"Staff"`
	Strategy      string  `csv:"Strategy"`
	Seed          int64   `csv:"Seed"`
	Requested     int     `csv:"Requested"`
	Placed        int     `csv:"Placed"`
	FillRate      string  `csv:"FillRate(%)"`
	UnplacedLab   int     `csv:"UnplacedLab"`
	UnplacedHod   int     `csv:"UnplacedHod"`
	UnplacedStaff int     `csv:"UnplacedStaff"`
	Draws         int     `csv:"Draws"`
	Duration      int64   `csv:"Duration(ms)"`
	Memory        float32 `csv:"Memory(MB)"`
	CpuPercentage int64   `csv:"CPU(%)"`
	Result        string  `csv:"Result"`
}

func main() {
	tests := getTests()
	results := make([]*BenchmarkResult, 0, len(tests)*len(strategies)*runsPerStrategy)

	for _, test := range tests {
		for _, strategy := range strategies {
			for _, seed := range getSeeds(strategy) {
				fmt.Printf("Benchmarking test \"%v\" with strategy \"%v\" and seed \"%v\"\n", test.Name, strategy, seed)

				duration, maxMemory, cpuPercentage, result := measure(strategy, seed, test.Name)
				report := replay(strategy, seed, test.Name)

				results = append(results, newResult(test, strategy, seed, report, duration, maxMemory, cpuPercentage, result))
			}
		}
	}

	toCsv(results)
}

func getTests() []TestMetadata {
	testFiles, err := os.ReadDir(testDirectory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0)
	for _, file := range testFiles {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		filename := testDirectory + file.Name()
		input, err := model.InputFromJson(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		tests = append(tests, TestMetadata{
			Name:    filename,
			Classes: input.Classes,
			Labs:    len(input.Labs),
			Staff:   len(input.Staff),
			Hours:   input.TotalHours(),
		})
	}

	return tests
}

// The matching strategy is deterministic, so a single run is enough
func getSeeds(strategy model.Strategy) []int64 {
	if strategy == model.MatchingStrategy {
		return []int64{0}
	}
	return lo.Map(lo.Range(runsPerStrategy), func(i int, _ int) int64 { return int64(i + 1) })
}

func measure(strategy model.Strategy, seed int64, testFile string) (duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "-strategy", string(strategy), "-seed", fmt.Sprint(seed), "-file", testFile, "-out", os.DevNull)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	switch cmd.ProcessState.ExitCode() {
	case 10:
		result = complete
	case 20:
		result = incomplete
	case 15:
		result = unverified
	default:
		log.Fatalf("an error occurred during the execution \"classgrid\" at test \"%v\" using strategy \"%v\" and seed \"%v\": %v\n", testFile, strategy, seed, stdErr.String())
	}
	splits := strings.Split(stdErr.String(), "\n")
	getLine := func(substr string) string {
		line, ok := lo.Find(splits, func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	duration = parseDurationLine(getLine("wall clock"))
	maxMemory = parseMemoryLine(getLine("maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine("percent of cpu"))

	return duration, maxMemory, cpuPercentage, result
}

// replay rebuilds the timetable in process with the same seed to recover the placement report
func replay(strategy model.Strategy, seed int64, testFile string) model.Report {
	input, err := model.InputFromJson(testFile)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	timetabler, err := model.NewTimetabler(strategy, model.NewSource(seed), model.DefaultParams())
	if err != nil {
		log.Fatalf("cannot initialize timetabler: %v", err)
	}
	_, report, err := timetabler.Build(input)
	if err != nil {
		log.Fatalf("an error occurred during timetable construction: %v", err)
	}
	return report
}

func newResult(test TestMetadata, strategy model.Strategy, seed int64, report model.Report, duration int64, maxMemory float32, cpuPercentage int64, result ResultType) *BenchmarkResult {
	unplaced := report.UnplacedBy()
	return &BenchmarkResult{
		Test:          test.Name,
		Classes:       test.Classes,
		Labs:          test.Labs,
		Staff:         test.Staff,
		Strategy:      string(strategy),
		Seed:          seed,
		Requested:     report.Requested(),
		Placed:        report.Placed(),
		FillRate:      fillRate(report),
		UnplacedLab:   unplaced[model.LabDemand],
		UnplacedHod:   unplaced[model.HodDemand],
		UnplacedStaff: unplaced[model.StaffDemand],
		Draws:         lo.SumBy(report.Results, func(result model.PlacementResult) int { return result.Draws }),
		Duration:      duration,
		Memory:        maxMemory,
		CpuPercentage: cpuPercentage,
		Result:        resultTypes[result],
	}
}

func fillRate(report model.Report) string {
	if report.Requested() == 0 {
		return "100.0"
	}
	return fmt.Sprintf("%.1f", float64(report.Placed())*100/float64(report.Requested()))
}

func toCsv(results []*BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV records: %v", err)
	}
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

// Maximum resident set size is reported in kilobytes
func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / MB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
