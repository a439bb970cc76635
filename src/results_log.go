package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Save case results to a CSV file.
 *
 * Description: The report is meant for reading.  This is the same
 *		information, one row per case, for a spreadsheet or for
 *		comparing runs across boards and days.
 *
 *		There are two alternatives here.
 *
 *		-L logfile		Specify full file path.
 *
 *		-l logdir		Names generated from a strftime
 *					pattern will be created here,
 *					daily by default.
 *
 *		Use one or the other but not both.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

const DEFAULT_LOG_NAME_PATTERN = "%Y-%m-%d.csv"

var results_log_header = []string{
	"utime", "isotime", "polynomial", "poly_value", "input_refl", "output_refl",
	"init", "test", "steps", "output", "expected", "result",
}

type ResultsLog struct {
	generatedNames bool
	path           string // Directory when generatedNames, file otherwise.
	pattern        *strftime.Strftime

	fp        *os.File
	openFname string

	now func() time.Time
}

/*------------------------------------------------------------------
 *
 * Function:	NewResultsLog
 *
 * Purpose:	Initialization at start of application.
 *
 * Inputs:	generatedNames	- True if file names should be generated.
 *				  In this case path is a directory.
 *				  When false, path is the file name.
 *
 *		path		- Log file name or directory.
 *
 *		pattern		- strftime pattern for generated names.
 *				  Empty for the default of one file a day.
 *
 * Returns:	Log, or error if the directory can't be used or the
 *		pattern is bad.  Files are opened on first write.
 *
 *------------------------------------------------------------------*/

func NewResultsLog(generatedNames bool, path string, pattern string) (*ResultsLog, error) {
	if pattern == "" {
		pattern = DEFAULT_LOG_NAME_PATTERN
	}

	var compiled, patternErr = strftime.New(pattern)
	if patternErr != nil {
		return nil, fmt.Errorf("log name pattern %q: %w", pattern, patternErr)
	}

	var l = &ResultsLog{
		generatedNames: generatedNames,
		path:           path,
		pattern:        compiled,
		now:            time.Now,
	}

	if !generatedNames {
		logger.Info("Results log file", "path", path)
		return l, nil
	}

	var stat, statErr = os.Stat(path)

	if statErr == nil {
		if !stat.IsDir() {
			return nil, fmt.Errorf("log location %q is not a directory", path)
		}

		return l, nil
	}

	// Doesn't exist.  Try to create it.
	// Parent directory must exist.  We don't create multiple levels like "mkdir -p"
	var mkdirErr = os.Mkdir(path, 0755) //nolint:gosec
	if mkdirErr != nil {
		return nil, fmt.Errorf("creating log location: %w", mkdirErr)
	}

	logger.Info("Log location has been created", "path", path)

	return l, nil
}

func (l *ResultsLog) fileName(now time.Time) string {
	if l.generatedNames {
		return filepath.Join(l.path, l.pattern.FormatString(now))
	}

	return l.path
}

// open makes sure the right file is open for now, starting a new one when
// the generated name changes.
func (l *ResultsLog) open(now time.Time) error {
	var fname = l.fileName(now)

	if l.fp != nil && fname != l.openFname {
		l.Close() //nolint:errcheck
	}

	if l.fp != nil {
		return nil
	}

	// See if file already exists and not empty.
	// A header is written only if this will be the first line.
	var stat, statErr = os.Stat(fname)
	var alreadyThere = statErr == nil && stat.Size() > 0

	logger.Info("Opening results log", "path", fname)

	var f, openErr = os.OpenFile(fname, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644) //nolint:gosec
	if openErr != nil {
		return fmt.Errorf("opening results log: %w", openErr)
	}

	l.fp = f
	l.openFname = fname

	if !alreadyThere {
		var w = csv.NewWriter(l.fp)
		w.Write(results_log_header) //nolint:errcheck
		w.Flush()

		return w.Error()
	}

	return nil
}

func formatSteps(steps []Step) string {
	var parts = make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}

	return strings.Join(parts, " ")
}

/*------------------------------------------------------------------
 *
 * Function:	ResultsLog.CaseDone
 *
 * Purpose:	Save one case to the log file.
 *
 * Description:	A failure to write is logged but does not stop the run.
 *
 *------------------------------------------------------------------*/

func (l *ResultsLog) CaseDone(r CaseResult) {
	var now = l.now().UTC()

	var openErr = l.open(now)
	if openErr != nil {
		logger.Error("Can't write results log", "err", openErr)
		return
	}

	var result = "OK"
	if !r.Passed() {
		result = "failed"
	}

	var p = r.Config.Polynomial()

	var w = csv.NewWriter(l.fp)
	w.Write([]string{ //nolint:errcheck
		strconv.FormatInt(now.Unix(), 10),
		now.Format("2006-01-02T15:04:05Z"),
		p.String(),
		fmt.Sprintf("0x%08x", p.Value()),
		r.Config.ReflectInput().String(),
		enabledDisabled(r.Config.ReflectOutput()),
		fmt.Sprintf("0x%08x", r.Config.InitialValue()),
		strconv.Itoa(r.Index),
		formatSteps(r.Steps),
		fmt.Sprintf("0x%08x", r.Output),
		fmt.Sprintf("0x%08x", r.Expected),
		result,
	})
	w.Flush()

	var writeErr = w.Error()
	if writeErr != nil {
		logger.Error("CSV write error", "err", writeErr)
	}
}

/*------------------------------------------------------------------
 *
 * Function:	ResultsLog.Close
 *
 * Purpose:	Close any open log file.
 *		Called when exiting or when the generated name changes.
 *
 *------------------------------------------------------------------*/

func (l *ResultsLog) Close() error {
	if l.fp == nil {
		return nil
	}

	logger.Info("Closing results log", "path", l.openFname)

	var err = l.fp.Close()
	l.fp = nil
	l.openFname = ""

	return err
}
