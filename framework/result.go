package framework

import (
	"fmt"
	"io"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	// Aborted is the reason the run was stopped early, or nil if every selected test ran.
	Aborted error
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
	Aborted bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0 && r.Aborted == nil
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

func (t TestID) IsRoot() bool {
	return len(t.Path) == 0
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the run.
func PrintResults(out io.Writer, results Results) {
	if results.Aborted != nil {
		fmt.Fprintf(out, "Test run was aborted: %s\n", results.Aborted)
	}
	if len(results.Failures) == 0 {
		if results.Aborted == nil {
			fmt.Fprintln(out, "All tests passed")
		}
		return
	}
	fmt.Fprintf(out, "FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  * %s\n", f.TestID)
	}
}
