package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// JobResult is the outcome of carving one picture.
type JobResult struct {
	ID           string
	Input        string
	Output       string
	SourceWidth  int
	SourceHeight int
	Width        int
	Height       int
	// SeamCosts holds the total energy of every removed seam, in removal order.
	SeamCosts []float64
	Duration  time.Duration
	Err       error
}

// Summary aggregates the results of one run.
type Summary struct {
	RunID    string
	Build    string
	Jobs     int
	Failed   int
	Seams    int
	MeanCost float64
	StdDev   float64
	MaxCost  float64
	Duration time.Duration
}

func Summarize(runID, build string, results []JobResult, elapsed time.Duration) Summary {
	s := Summary{RunID: runID, Build: build, Jobs: len(results), Duration: elapsed}

	var costs []float64
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		costs = append(costs, r.SeamCosts...)
	}

	s.Seams = len(costs)
	switch len(costs) {
	case 0:
	case 1:
		s.MeanCost, s.MaxCost = costs[0], costs[0]
	default:
		s.MeanCost, s.StdDev = stat.MeanStdDev(costs, nil)
		s.MaxCost = floats.Max(costs)
	}
	return s
}

// SeamsPerSecond is zero for an empty or instant run.
func (s Summary) SeamsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Seams) / s.Duration.Seconds()
}

// PrintSummary writes a colored report of s and of every failed job.
func PrintSummary(w io.Writer, s Summary, results []JobResult) {
	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.FgHiBlack)

	header.Fprintln(w, "--- [CARVING REPORT] ---")
	dim.Fprintf(w, "Run: %s  Build: %s\n", s.RunID, s.Build)
	fmt.Fprintf(w, "Jobs: %d  Seams removed: %d\n", s.Jobs, s.Seams)
	fmt.Fprintf(w, "Seam energy: mean %.2f  stddev %.2f  max %.2f\n", s.MeanCost, s.StdDev, s.MaxCost)
	fmt.Fprintf(w, "Total Time: %.2fs  (%.1f seams/s)\n", s.Duration.Seconds(), s.SeamsPerSecond())

	for _, r := range results {
		if r.Err != nil {
			color.New(color.FgRed).Fprintf(w, "[!] %s: %v\n", r.Input, r.Err)
		}
	}

	if s.Failed == 0 {
		color.New(color.FgGreen, color.Bold).Fprintln(w, "All jobs succeeded")
	} else {
		color.New(color.FgRed, color.Bold).Fprintf(w, "%d of %d jobs failed\n", s.Failed, s.Jobs)
	}
	header.Fprintln(w, "------------------------")
}

// AppendBenchmark appends a one-line entry for s to the log at path.
func AppendBenchmark(path, input string, s Summary, now time.Time) error {
	entry := fmt.Sprintf("[%s] Build: %s | Run: %s | Input: %s | Jobs: %d | Seams: %d | Mean: %.2f | Total: %.2fs | Seams/s: %.1f\n",
		now.Format("2006-01-02 15:04:05"),
		s.Build,
		s.RunID,
		filepath.Base(input),
		s.Jobs,
		s.Seams,
		s.MeanCost,
		s.Duration.Seconds(),
		s.SeamsPerSecond(),
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("report: open benchmark log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("report: write benchmark log: %w", err)
	}
	return nil
}

func finite(costs []float64) bool {
	for _, c := range costs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
