package warnings

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSetWarningWriterRestoresAndCaptures tests the behavior of SetWarningWriter.
//
// It verifies:
//   - Original writer is restored after calling restore function
//   - Warning messages are captured by the new writer
//   - nil writer defaults to os.Stderr
func TestSetWarningWriterRestoresAndCaptures(t *testing.T) {
	original := WarningWriter()

	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)
	Warnf("Unknown command: %s", "--frobnicate")
	Warnf("already terminated\n")
	restore()

	assert.Equal(t, original, WarningWriter())
	assert.Equal(t, "Unknown command: --frobnicate\nalready terminated\n", buf.String())

	restore = SetWarningWriter(nil)
	assert.Equal(t, os.Stderr, WarningWriter())
	restore()
}

// TestCount tests the warning counter.
//
// It verifies:
//   - every Warnf call is counted
//   - Reset zeroes the counter
func TestCount(t *testing.T) {
	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)
	defer restore()

	Reset()
	assert.Equal(t, 0, Count())
	Warnf("one")
	Warnf("two")
	assert.Equal(t, 2, Count())

	Reset()
	assert.Equal(t, 0, Count())
}
