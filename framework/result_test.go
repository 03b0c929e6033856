package framework

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintResults(t *testing.T) {
	var out bytes.Buffer
	PrintResults(&out, Results{})
	assert.Equal(t, "All tests passed\n", out.String())

	out.Reset()
	failure := TestResult{TestID: TestID{Path: []string{"linting", "linter"}}}
	PrintResults(&out, Results{
		Failures: []TestResult{failure},
		Aborted:  errors.New("unexpected application state"),
	})
	assert.Equal(t, "Test run was aborted: unexpected application state\n"+
		"FAILED TESTS (1):\n"+
		"  * linting/linter\n", out.String())
}

func TestPrintFilterDescription(t *testing.T) {
	var out bytes.Buffer
	PrintFilterDescription(&out, RegexFilters{})
	assert.Empty(t, out.String())

	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("formatting"))
	require.NoError(t, filters.MustNotMatch.Set("big ints"))
	PrintFilterDescription(&out, filters)
	assert.Equal(t, "Some tests will be skipped based on the filter criteria for this test run:\n"+
		"  skip any not matching \"formatting\"\n"+
		"  skip any matching \"big ints\"\n\n", out.String())
}
