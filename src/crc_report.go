package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Format validation results as a line oriented report.
 *
 * Description:	One header, one row per case, one summary line:
 *
 *	Type  | Polynomial | Input refl | Output refl |   Init val | Test |     Output | Result
 *	---------------------------------------------------------------------------------------
 *	 Crc8 | 0x00000007 |   Disabled |    Disabled | 0x00000000 |    1 | 0x000000c9 |     OK
 *	...
 *	test result: ok. 840 passed; 0 failed
 *
 *		Lines are written as soon as they are formatted so the
 *		report keeps pace with the run.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
)

const REPORT_HEADER = "Type  | Polynomial | Input refl | Output refl |   Init val | Test |     Output | Result"

const REPORT_RULE = "---------------------------------------------------------------------------------------"

type ReportSink struct {
	w          io.Writer
	lineEnding string
	err        error
}

// NewReportSink writes to w.  Serial lines want crlf.
func NewReportSink(w io.Writer, crlf bool) *ReportSink {
	var r = &ReportSink{w: w, lineEnding: "\n"}
	if crlf {
		r.lineEnding = "\r\n"
	}

	return r
}

func (r *ReportSink) line(s string) {
	if r.err != nil {
		return
	}

	var _, err = io.WriteString(r.w, s+r.lineEnding)
	if err != nil {
		r.err = fmt.Errorf("writing report: %w", err)
		logger.Error("Report output failed, further lines are dropped", "err", err)
	}
}

func (r *ReportSink) Header() {
	r.line("")
	r.line(REPORT_HEADER)
	r.line(REPORT_RULE)
}

func enabledDisabled(v bool) string {
	if v {
		return "Enabled"
	}

	return "Disabled"
}

// caseName is the description part of a row, up to and including the
// case index.
func caseName(config CrcConfig, index int) string {
	var p = config.polynomial

	return fmt.Sprintf("%5s | 0x%08x | %10s | %11s | 0x%08x | %4d",
		p, p.Value(), config.reflectInput, enabledDisabled(config.reflectOutput), config.initialValue, index)
}

func outcome(output uint32, expected uint32) string {
	if output == expected {
		return text_color_render(DW_COLOR_OK, "    OK")
	}

	return text_color_render(DW_COLOR_ERROR, fmt.Sprintf("failed - expected 0x%08x", expected))
}

func (r *ReportSink) Row(config CrcConfig, index int, output uint32, expected uint32) {
	r.line(fmt.Sprintf("%s | 0x%08x | %s", caseName(config, index), output, outcome(output, expected)))
}

func summaryLine(passed int, failed int) string {
	var result = "ok"
	if failed != 0 {
		result = "FAILED"
	}

	return fmt.Sprintf("test result: %s. %d passed; %d failed", result, passed, failed)
}

func (r *ReportSink) Summary(passed int, failed int) {
	r.line(summaryLine(passed, failed))
}

// Err is the first write error, if any.
func (r *ReportSink) Err() error {
	return r.err
}
