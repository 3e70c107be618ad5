//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedHeadcountPath holds the path to a shared headcount binary built once for all tests.
	sharedHeadcountPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getHeadcountBinary returns the path to the headcount binary, building it once if needed.
func getHeadcountBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "headcount-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		headcountPath := filepath.Join(tempDir, "headcount")
		buildCmd := exec.Command("go", "build", "-o", headcountPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build headcount: %v", err))
		}

		sharedHeadcountPath = headcountPath
	})

	return sharedHeadcountPath
}

// writeEventsFile writes a small enrollment events fixture and returns its path.
func writeEventsFile(t *testing.T) string {
	t.Helper()

	content := "course_1\t2013-01-01\t10\n" +
		"course_1\t2013-01-02\t10\n" +
		"course_1\t2013-01-03\t10\n" +
		"course_1\t2013-01-09\t10\n" +
		"course_1\t2013-01-17\t10\n" +
		"course_2\t2013-01-01\t10\n" +
		"course_3\t2013-01-01\t10\n"

	path := filepath.Join(t.TempDir(), "enrollments.tsv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write events fixture: %v", err)
	}
	return path
}
