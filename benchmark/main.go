// Package main provides a performance benchmarking tool for the headcount CLI.
// It measures report execution times across generated event streams of
// different sizes and feature sets, running each test multiple times, treating
// the first successful run as cold and averaging the rest as warm, generating
// CSV output for performance analysis and documentation.
//
// Prerequisites:
// - headcount binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Scratch directory for generated datasets and outputs
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir   string
	Timeout   time.Duration
	Runs      int
	Weeks     int
	Reference string
	Sizes     []int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:   workDir,
		Timeout:   5 * time.Minute,
		Runs:      4,
		Weeks:     52,
		Reference: "2013-12-26",
		Sizes:     []int{10000, 100000, 1000000},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the headcount binary and work directory are usable
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if headcount is available
	if _, err := exec.LookPath("headcount"); err != nil {
		return fmt.Errorf("headcount binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", config.WorkDir, err)
	}

	return nil
}

// datasetName labels a generated event stream by its size.
func datasetName(size int) string {
	if size >= 1000000 {
		return fmt.Sprintf("%dm-events", size/1000000)
	}
	return fmt.Sprintf("%dk-events", size/1000)
}

// generateDataset writes a deterministic event stream plus a matching
// offsets file and returns their paths.
func generateDataset(config BenchmarkConfig, size int) (eventsPath, offsetsPath string, err error) {
	dir := filepath.Join(config.WorkDir, datasetName(size))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	reference, err := time.Parse(time.DateOnly, config.Reference)
	if err != nil {
		return "", "", err
	}
	windowDays := config.Weeks * 7
	courses := size / 5000
	if courses < 4 {
		courses = 4
	}

	rng := rand.New(rand.NewSource(int64(size)))

	var events strings.Builder
	for i := 0; i < size; i++ {
		course := fmt.Sprintf("course_%03d", rng.Intn(courses))
		day := reference.AddDate(0, 0, -rng.Intn(windowDays))
		delta := rng.Intn(14) - 3
		fmt.Fprintf(&events, "%s\t%s\t%d\n", course, day.Format(time.DateOnly), delta)
	}
	eventsPath = filepath.Join(dir, "events.tsv")
	if err := os.WriteFile(eventsPath, []byte(events.String()), 0o644); err != nil {
		return "", "", err
	}

	// One baseline offset per course, dated before the window
	baseline := reference.AddDate(0, 0, -windowDays-30)
	var offsets strings.Builder
	for c := 0; c < courses; c++ {
		fmt.Fprintf(&offsets, "course_%03d\t%s\t%d\n", c, baseline.Format(time.DateOnly), rng.Intn(500))
	}
	offsetsPath = filepath.Join(dir, "offsets.tsv")
	if err := os.WriteFile(offsetsPath, []byte(offsets.String()), 0o644); err != nil {
		return "", "", err
	}

	return eventsPath, offsetsPath, nil
}

// runBenchmarks executes all benchmark tests across configured dataset sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d dataset sizes, %v timeout, %d runs each\n",
		len(config.Sizes), config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		dataset := datasetName(size)
		fmt.Printf("Benchmarking %s\n", dataset)

		eventsPath, offsetsPath, err := generateDataset(config, size)
		if err != nil {
			fmt.Printf("  Failed to generate dataset: %v\n", err)
			continue
		}

		// Plain report
		result := runBenchmarkSuite(config, dataset, "report", "plain report",
			[]string{eventsPath})
		results = append(results, result)

		// Report with offsets merged in
		result = runBenchmarkSuite(config, dataset, "report-offsets", "report with offsets",
			[]string{eventsPath, "--offsets", offsetsPath})
		results = append(results, result)

		// Report recorded into a SQLite archive
		archiveHome := filepath.Join(config.WorkDir, dataset, "archive-home")
		if err := os.MkdirAll(archiveHome, 0o755); err != nil {
			fmt.Printf("  Failed to create archive home: %v\n", err)
			continue
		}
		result = runBenchmarkSuite(config, dataset, "report-archive", "report with sqlite archive",
			[]string{eventsPath, "--archive-backend", "sqlite"}, "HOME="+archiveHome)
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs the cold/warm benchmark phases for one command variant
func runBenchmarkSuite(config BenchmarkConfig, dataset, command, description string, args []string, extraEnv ...string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	cold, times := runBenchmark(config, dataset, command, args, extraEnv)

	coldTimeStr := "TIMEOUT"
	if cold > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cold)
	}

	warmAvg := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:  dataset,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a headcount command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataset, command string, args []string, extraEnv []string) (coldTime float64, warmTimes []float64) {
	outFile := filepath.Join(config.WorkDir, dataset, command+".csv")
	fullArgs := append([]string{"report"}, args...)
	fullArgs = append(fullArgs,
		"--date", config.Reference,
		"--weeks", fmt.Sprintf("%d", config.Weeks),
		"--output", "csv",
		"--output-file", outFile)

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("headcount", fullArgs...)
		if len(extraEnv) > 0 {
			cmd.Env = append(os.Environ(), extraEnv...)
		}

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(outFile) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks that the run produced a non-empty report file
func isSuccess(outFile string) bool {
	info, err := os.Stat(outFile)
	return err == nil && info.Size() > 0
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/headcount_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "report", "Plain Report:")
	printCommandSummary(results, "report-offsets", "Report With Offsets:")
	printCommandSummary(results, "report-archive", "Report With SQLite Archive:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command variant
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: Cold: %s, Warm: %s\n", result.Dataset, result.ColdTime, result.WarmTime)
		}
	}
}
