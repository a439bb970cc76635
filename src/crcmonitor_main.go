package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:   	Capture the report of a board running the validation
 *		firmware.
 *
 * Description:	The firmware version of the validation runs on the
 *		microcontroller itself and prints the same report over
 *		its UART.  This reads it from the host side, echoes it,
 *		and turns the summary line into an exit status so it can
 *		be used from scripts and CI.
 *
 * Usage:	crcmonitor -p /dev/ttyUSB0 [-S 115200]
 *
 * Exit status:	0	Summary says ok.
 *		1	Summary says FAILED.
 *		2	Could not read, or the stream ended without a summary.
 *
 *---------------------------------------------------------------*/

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

var summaryPattern = regexp.MustCompile(`^test result: (ok|FAILED)\. (\d+) passed; (\d+) failed$`)

var errNoSummary = errors.New("report ended without a summary line")

func CrcMonitorMain() {
	os.Exit(crcmonitor_run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// parseSummaryLine recognises the last line of a report.
func parseSummaryLine(line string) (RunSummary, bool) {
	var m = summaryPattern.FindStringSubmatch(line)
	if m == nil {
		return RunSummary{}, false
	}

	var passed, _ = strconv.Atoi(m[2])
	var failed, _ = strconv.Atoi(m[3])

	return RunSummary{Passed: passed, Failed: failed}, true
}

/*-------------------------------------------------------------------
 *
 * Name:	monitor_report
 *
 * Purpose:	Follow a report until its summary line.
 *
 * Inputs:	r	- Report source, CRLF or LF line endings.
 *		w	- Each line is copied here as it arrives.
 *
 * Returns:	Summary, or errNoSummary if r ends first.
 *
 * Description:	Anything before the header (boot messages, noise from
 *		the line settling) is passed through unchanged.  Rows that
 *		failed are also logged as warnings so they stand out when
 *		the echo is going to a file.
 *
 *--------------------------------------------------------------------*/

func monitor_report(r io.Reader, w io.Writer) (RunSummary, error) {
	var scanner = bufio.NewScanner(r)

	for scanner.Scan() {
		var line = strings.TrimRight(scanner.Text(), "\r")

		fmt.Fprintln(w, line)

		if strings.Contains(line, "| failed - expected") {
			logger.Warn("Case failed on board", "row", line)
		}

		var summary, ok = parseSummaryLine(line)
		if ok {
			return summary, nil
		}
	}

	var scanErr = scanner.Err()
	if scanErr != nil {
		return RunSummary{}, fmt.Errorf("reading report: %w", scanErr)
	}

	return RunSummary{}, errNoSummary
}

func crcmonitor_run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	var flags = pflag.NewFlagSet("crcmonitor", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var port = flags.StringP("port", "p", "", `Serial port the board's UART is on, e.g. /dev/ttyUSB0.
Use - to read a captured report from stdin.`)
	var speed = flags.IntP("speed", "S", DEFAULT_SERIAL_SPEED, "Serial port speed.")
	var debug = flags.BoolP("debug", "d", false, "Debug logging.")
	var quiet = flags.BoolP("quiet", "q", false, "Only log warnings and errors.")
	var version = flags.BoolP("version", "v", false, "Print version and exit.")
	var help = flags.BoolP("help", "h", false, "Display help text.")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "crcmonitor - capture the CRC validation report from a board.\n")
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "Usage: crcmonitor -p port [options]\n")
		flags.PrintDefaults()
	}

	var parseErr = flags.Parse(args)
	if parseErr != nil {
		fmt.Fprintf(stderr, "crcmonitor: %s\n\n", parseErr)
		flags.Usage()

		return EXIT_ERROR
	}

	if *help {
		flags.Usage()
		return EXIT_OK
	}

	if *version {
		printVersion(stdout, "crcmonitor", false)
		return EXIT_OK
	}

	if *port == "" {
		fmt.Fprintf(stderr, "crcmonitor: a port is required\n\n")
		flags.Usage()

		return EXIT_ERROR
	}

	logging_init(stderr, *debug, *quiet)

	var source = stdin

	if *port != "-" {
		var fd, err = serial_port_open(*port, *speed)
		if err != nil {
			logger.Error("Can't open board port", "err", err)
			return EXIT_ERROR
		}
		defer serial_port_close(fd) //nolint:errcheck

		logger.Info("Waiting for report", "port", *port, "speed", *speed)

		source = fd
	}

	var summary, err = monitor_report(source, stdout)
	if err != nil {
		logger.Error("No result from board", "err", err)
		return EXIT_ERROR
	}

	if !summary.Ok() {
		logger.Warn("Board reports failures", "passed", summary.Passed, "failed", summary.Failed)
		return EXIT_FAILED
	}

	logger.Info("Board reports all cases passed", "passed", summary.Passed)

	return EXIT_OK
}
