package crcverify

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMain runs one of the tool entry points with args, capturing what it
// writes.  Used by the cmd/ packages, which can't reach the unexported
// *_run functions.  The matrix file search is turned off, so without
// --matrix the built-in matrix is used.
func RunMain(t *testing.T, tool string, args []string, stdin io.Reader) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	var status int

	// A crcverify.yaml lying around must not change what the tests run.
	var savedLocations = matrix_search_locations
	matrix_search_locations = nil

	defer func() { matrix_search_locations = savedLocations }()

	switch tool {
	case "crcverify":
		status = crcverify_run(args, &stdout, &stderr)
	case "crcmonitor":
		if stdin == nil {
			stdin = bytes.NewReader(nil)
		}

		status = crcmonitor_run(args, stdin, &stdout, &stderr)
	default:
		require.FailNow(t, "unknown tool", tool)
	}

	return status, stdout.String(), stderr.String()
}

func AssertOutputContains(t *testing.T, output string, expectedOutputContains string) {
	t.Helper()

	assert.Contains(t, output, expectedOutputContains)
}
