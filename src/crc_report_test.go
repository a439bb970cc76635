package crcverify

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportHeader(t *testing.T) {
	var buf bytes.Buffer
	var report = NewReportSink(&buf, false)

	report.Header()

	assert.Equal(t, "\n"+REPORT_HEADER+"\n"+REPORT_RULE+"\n", buf.String())
	assert.Len(t, REPORT_RULE, len(REPORT_HEADER))
}

func TestReportRows(t *testing.T) {
	text_color_init(0)

	var buf bytes.Buffer
	var report = NewReportSink(&buf, false)

	var config = NewCrcConfig(BitReflectionNone, false, 0x00000000, Crc8(0x07))
	report.Row(config, 1, 0xC9, 0xC9)
	report.Row(config, 1, 0xC8, 0xC9)

	config = NewCrcConfig(BitReflectionByWord, true, 0xFFFFFFFF, Crc32(0x1EDC6F41))
	report.Row(config, 6, 0x5E3440DD, 0x5E3440DD)

	assert.Equal(t, []string{
		" Crc8 | 0x00000007 |   Disabled |    Disabled | 0x00000000 |    1 | 0x000000c9 |     OK",
		" Crc8 | 0x00000007 |   Disabled |    Disabled | 0x00000000 |    1 | 0x000000c8 | failed - expected 0x000000c9",
		"Crc32 | 0x1edc6f41 |   By32Bits |     Enabled | 0xffffffff |    6 | 0x5e3440dd |     OK",
	}, strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"))
}

func TestReportSummary(t *testing.T) {
	var buf bytes.Buffer
	var report = NewReportSink(&buf, false)

	report.Summary(840, 0)
	report.Summary(839, 1)

	assert.Equal(t, "test result: ok. 840 passed; 0 failed\ntest result: FAILED. 839 passed; 1 failed\n", buf.String())
}

func TestReportCRLF(t *testing.T) {
	var buf bytes.Buffer
	var report = NewReportSink(&buf, true)

	report.Summary(1, 0)

	assert.Equal(t, "test result: ok. 1 passed; 0 failed\r\n", buf.String())
}

func TestReportColor(t *testing.T) {
	text_color_init(1)
	t.Cleanup(func() { text_color_init(0) })

	// Whether escapes appear depends on the terminal lipgloss detects, but
	// the text itself is always there.
	assert.Contains(t, outcome(1, 1), "OK")
	assert.Contains(t, outcome(1, 2), "failed - expected 0x00000002")
}

type failingWriter struct {
	writes int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("cable pulled")
}

func TestReportWriteError(t *testing.T) {
	var w = new(failingWriter)
	var report = NewReportSink(w, false)

	report.Header()
	report.Summary(0, 0)

	require.Error(t, report.Err())
	assert.Contains(t, report.Err().Error(), "cable pulled")
	assert.Equal(t, 1, w.writes, "lines after the first failure are dropped")
}
