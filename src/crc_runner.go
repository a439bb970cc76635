package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Run every case of the validation matrix against both the
 *		software reference and the peripheral.
 *
 * Description:	Strictly sequential.  For each case the calculation is
 *		built in the arena, both results are computed, one report
 *		row is written, and the arena is released before the next
 *		case starts.  A mismatch is counted and reported and the
 *		run carries on.
 *
 *---------------------------------------------------------------*/

// CaseResult is everything known about one completed case.
type CaseResult struct {
	Index    int // Position in the step sequence list.
	Config   CrcConfig
	Steps    []Step
	Output   uint32 // From the peripheral.
	Expected uint32 // From the software reference.
}

func (r CaseResult) Passed() bool {
	return r.Output == r.Expected
}

// CaseObserver is told about each case after it has been reported.
type CaseObserver interface {
	CaseDone(result CaseResult)
}

type RunSummary struct {
	Passed int
	Failed int
}

func (s RunSummary) Ok() bool {
	return s.Failed == 0
}

/*-------------------------------------------------------------------
 *
 * Name:	crc_test
 *
 * Purpose:	Run one case.
 *
 * Returns:	Result of the comparison.  The report row has been
 *		written by the time this returns.
 *
 *--------------------------------------------------------------------*/

func crc_test(report *ReportSink, crc CrcPeripheral, arena *Arena, config CrcConfig, index int, steps []Step) CaseResult {
	var mark = arena.Mark()
	defer arena.Release(mark)

	var calculation = NewCrcCalculation(arena, config, steps)

	var expected = calculation.RunSoftware(arena)
	var output = calculation.RunHardware(crc)

	report.Row(config, index, output, expected)

	if output != expected {
		logger.Debug("Mismatch", "case", caseName(config, index), "steps", steps,
			"output", output, "expected", expected)
	}

	return CaseResult{
		Index:    index,
		Config:   config,
		Steps:    steps,
		Output:   output,
		Expected: expected,
	}
}

/*-------------------------------------------------------------------
 *
 * Name:	RunTests
 *
 * Purpose:	Enumerate the matrix and run every case.
 *
 * Inputs:	report		- Receives header, rows and summary.
 *		crc		- Peripheral, owned by us for the whole run.
 *		matrix		- What to run.
 *		arena		- Working memory.  Empty on return.
 *		observers	- Optional, e.g. the CSV results log.
 *
 * Returns:	Pass and fail counts.
 *
 * Description:	Enumeration order is fixed so that reports from two runs
 *		can be compared line by line:  polynomial, then input
 *		reflection, then output reflection (off first), then
 *		initial value, then step sequence.
 *
 *--------------------------------------------------------------------*/

func RunTests(report *ReportSink, crc CrcPeripheral, matrix *TestMatrix, arena *Arena, observers ...CaseObserver) RunSummary {
	var summary RunSummary

	logger.Info("Running validation matrix", "cases", matrix.CaseCount())

	report.Header()

	for _, polynomial := range matrix.Polynomials {
		for _, reflectInput := range bitReflections {
			for _, reflectOutput := range []bool{false, true} {
				for _, initialValue := range matrix.InitialValues {
					for i, steps := range matrix.StepSequences {
						var config = NewCrcConfig(reflectInput, reflectOutput, initialValue, polynomial)

						var result = crc_test(report, crc, arena, config, i, steps)
						if result.Passed() {
							summary.Passed++
						} else {
							summary.Failed++
						}

						for _, o := range observers {
							o.CaseDone(result)
						}
					}
				}
			}
		}
	}

	report.Summary(summary.Passed, summary.Failed)

	if summary.Ok() {
		logger.Info("All cases passed", "passed", summary.Passed)
	} else {
		logger.Warn("Peripheral disagrees with software reference", "passed", summary.Passed, "failed", summary.Failed)
	}

	return summary
}
