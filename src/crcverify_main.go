package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:   	Main program for "crcverify", which checks that a CRC
 *		peripheral gives bit-identical results to the software
 *		reference over the whole configuration matrix.
 *
 * Usage:	crcverify [options]
 *
 *		With no options the built-in matrix is run against the
 *		simulated peripheral and the report goes to stdout.
 *
 *		crcverify -P devmem -b 0x58009000
 *
 *		runs it against a real unit mapped through /dev/mem.
 *
 * Exit status:	0	All cases passed.
 *		1	At least one case failed.
 *		2	Could not run:  bad options, matrix or device.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

const (
	EXIT_OK     = 0
	EXIT_FAILED = 1
	EXIT_ERROR  = 2
)

func CrcVerifyMain() {
	os.Exit(crcverify_run(os.Args[1:], os.Stdout, os.Stderr))
}

type verifyOptions struct {
	matrixFile     string
	peripheral     string
	devmemPath     string
	baseStr        string
	flipBitsStr    string
	reportFile     string
	reportSerial   string
	serialSpeed    int
	reportPty      bool
	logFile        string
	logDir         string
	logPattern     string
	statusGpio     string
	arenaSize      int
	textColor      int
	debug          bool
	quiet          bool
	version        bool
	help           bool
	versionVerbose bool
}

func parseVerifyOptions(args []string, stderr io.Writer) (*verifyOptions, *pflag.FlagSet, error) {
	var o = new(verifyOptions)

	var flags = pflag.NewFlagSet("crcverify", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	flags.StringVarP(&o.matrixFile, "matrix", "m", "", "YAML matrix file.  Default is to search for crcverify.yaml, then use the built-in matrix.")
	flags.StringVarP(&o.peripheral, "peripheral", "P", "sim", `CRC peripheral to test:
sim    = Built-in simulation of the CRC unit.
devmem = Real unit, registers mapped through /dev/mem.`)
	flags.StringVar(&o.devmemPath, "devmem", "/dev/mem", "Memory device for -P devmem.")
	flags.StringVarP(&o.baseStr, "base", "b", fmt.Sprintf("0x%08x", DEFAULT_CRC_BASE), "Physical base address of the CRC unit for -P devmem.")
	flags.StringVar(&o.flipBitsStr, "inject-fault", "0", "Simulation only.  Flip these bits of every result, to see what failures look like.")
	flags.StringVarP(&o.reportFile, "report-file", "o", "", "Write the report to this file instead of stdout.")
	flags.StringVarP(&o.reportSerial, "report-serial", "s", "", "Write the report to this serial port instead of stdout, e.g. /dev/ttyUSB0.")
	flags.IntVarP(&o.serialSpeed, "serial-speed", "S", DEFAULT_SERIAL_SPEED, "Serial port speed.")
	flags.BoolVar(&o.reportPty, "report-pty", false, "Write the report to a new pseudo terminal instead of stdout.")
	flags.StringVarP(&o.logFile, "log-file", "L", "", "CSV file for per-case results.")
	flags.StringVarP(&o.logDir, "log-dir", "l", "", "Directory for CSV results with generated names.")
	flags.StringVar(&o.logPattern, "log-pattern", DEFAULT_LOG_NAME_PATTERN, "strftime pattern for names in --log-dir.")
	flags.StringVarP(&o.statusGpio, "status-gpio", "g", "", "GPIO line set high when all cases pass, e.g. gpiochip0:17.  Prefix the line with - to invert.")
	flags.IntVar(&o.arenaSize, "arena-size", ARENA_SIZE, "Working memory for building test vectors, in bytes.")
	flags.IntVarP(&o.textColor, "text-color", "t", 1, "Text colors.  0=disabled. 1=default.  2=bright.")
	flags.BoolVarP(&o.debug, "debug", "d", false, "Trace register writes and digested data.")
	flags.BoolVarP(&o.quiet, "quiet", "q", false, "Only log warnings and errors.")
	flags.BoolVarP(&o.version, "version", "v", false, "Print version and exit.")
	flags.BoolVar(&o.versionVerbose, "version-verbose", false, "Print version and build information and exit.")
	flags.BoolVarP(&o.help, "help", "h", false, "Display help text.")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "crcverify - check a hardware CRC unit against a software reference.\n")
		fmt.Fprintf(stderr, "\n")
		fmt.Fprintf(stderr, "Usage: crcverify [options]\n")
		flags.PrintDefaults()
	}

	var err = flags.Parse(args)
	if err != nil {
		return nil, flags, err
	}

	if flags.NArg() > 0 {
		return nil, flags, fmt.Errorf("unexpected argument %q", flags.Arg(0))
	}

	if o.logFile != "" && o.logDir != "" {
		return nil, flags, errors.New("use --log-file or --log-dir, not both")
	}

	var destinations = 0
	for _, set := range []bool{o.reportFile != "", o.reportSerial != "", o.reportPty} {
		if set {
			destinations++
		}
	}

	if destinations > 1 {
		return nil, flags, errors.New("choose at most one of --report-file, --report-serial and --report-pty")
	}

	if o.arenaSize <= 0 {
		return nil, flags, fmt.Errorf("arena size %d must be positive", o.arenaSize)
	}

	return o, flags, nil
}

func parseRegisterValue(name string, s string) (uint32, error) {
	var v, err = strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, s, err)
	}

	return uint32(v), nil
}

/*-------------------------------------------------------------------
 *
 * Name:	openPeripheral
 *
 * Purpose:	Set up the register bus the options ask for.
 *
 * Returns:	Peripheral, and a function to release it.
 *
 *--------------------------------------------------------------------*/

func openPeripheral(o *verifyOptions) (CrcPeripheral, func() error, error) {
	var flipBits, flipErr = parseRegisterValue("inject-fault", o.flipBitsStr)
	if flipErr != nil {
		return nil, nil, flipErr
	}

	switch o.peripheral {
	case "sim":
		var sim = NewCrcSimulator()
		sim.FlipResultBits = flipBits

		if flipBits != 0 {
			logger.Warn("Simulated peripheral will give wrong results", "flip", fmt.Sprintf("0x%08x", flipBits))
		}

		return NewCrcPeripheral(sim), func() error { return nil }, nil

	case "devmem":
		if flipBits != 0 {
			return nil, nil, errors.New("--inject-fault only applies to the simulated peripheral")
		}

		var base, baseErr = parseRegisterValue("base", o.baseStr)
		if baseErr != nil {
			return nil, nil, baseErr
		}

		var bus, err = OpenDevmem(o.devmemPath, base)
		if err != nil {
			return nil, nil, err
		}

		return NewCrcPeripheral(bus), bus.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown peripheral %q, must be sim or devmem", o.peripheral)
}

/*-------------------------------------------------------------------
 *
 * Name:	openReport
 *
 * Purpose:	Pick where the report goes.
 *
 * Returns:	Report sink, and a function to close its destination.
 *		Serial and pty destinations get CRLF line endings, as a
 *		terminal on the far end expects.
 *
 *--------------------------------------------------------------------*/

func openReport(o *verifyOptions, stdout io.Writer) (*ReportSink, func() error, error) {
	switch {
	case o.reportFile != "":
		var f, err = os.Create(o.reportFile)
		if err != nil {
			return nil, nil, fmt.Errorf("creating report file: %w", err)
		}

		text_color_init(0)

		return NewReportSink(f, false), f.Close, nil

	case o.reportSerial != "":
		var fd, err = serial_port_open(o.reportSerial, o.serialSpeed)
		if err != nil {
			return nil, nil, err
		}

		text_color_init(0)

		return NewReportSink(fd, true), func() error { return serial_port_close(fd) }, nil

	case o.reportPty:
		var p, err = openReportPty()
		if err != nil {
			return nil, nil, err
		}

		text_color_init(0)

		return NewReportSink(p, true), p.Close, nil
	}

	text_color_init(o.textColor)

	return NewReportSink(stdout, false), func() error { return nil }, nil
}

func crcverify_run(args []string, stdout io.Writer, stderr io.Writer) int {
	var o, flags, parseErr = parseVerifyOptions(args, stderr)

	if errors.Is(parseErr, pflag.ErrHelp) {
		return EXIT_OK
	}

	if parseErr != nil {
		fmt.Fprintf(stderr, "crcverify: %s\n\n", parseErr)
		flags.Usage()

		return EXIT_ERROR
	}

	if o.help {
		flags.Usage()
		return EXIT_OK
	}

	if o.version || o.versionVerbose {
		printVersion(stdout, "crcverify", o.versionVerbose)
		return EXIT_OK
	}

	logging_init(stderr, o.debug, o.quiet)

	var matrix, matrixErr = find_matrix(o.matrixFile, matrix_search_locations)
	if matrixErr != nil {
		logger.Error("Can't load matrix", "err", matrixErr)
		return EXIT_ERROR
	}

	var arenaErr = matrix.CheckArena(o.arenaSize)
	if arenaErr != nil {
		logger.Error("Matrix too big for working memory, raise --arena-size", "err", arenaErr)
		return EXIT_ERROR
	}

	var crc, closePeripheral, periphErr = openPeripheral(o)
	if periphErr != nil {
		logger.Error("Can't open peripheral", "err", periphErr)
		return EXIT_ERROR
	}
	defer closePeripheral() //nolint:errcheck

	var status *StatusLine
	if o.statusGpio != "" {
		var err error

		status, err = OpenStatusLine(o.statusGpio)
		if err != nil {
			logger.Error("Can't open status line", "err", err)
			return EXIT_ERROR
		}
		defer status.Close() //nolint:errcheck
	}

	var observers []CaseObserver

	if o.logFile != "" || o.logDir != "" {
		var resultsLog, err = NewResultsLog(o.logDir != "", o.logFile+o.logDir, o.logPattern)
		if err != nil {
			logger.Error("Can't set up results log", "err", err)
			return EXIT_ERROR
		}
		defer resultsLog.Close() //nolint:errcheck

		observers = append(observers, resultsLog)
	}

	var report, closeReport, reportErr = openReport(o, stdout)
	if reportErr != nil {
		logger.Error("Can't open report destination", "err", reportErr)
		return EXIT_ERROR
	}
	defer closeReport() //nolint:errcheck

	var arena = NewArena(o.arenaSize, HaltOnExhaustion)

	var summary = RunTests(report, crc, matrix, arena, observers...)

	var statusErr = status.Set(summary.Ok())
	if statusErr != nil {
		logger.Error("Can't set status line", "err", statusErr)
	}

	if report.Err() != nil {
		logger.Error("Report incomplete", "err", report.Err())
		return EXIT_ERROR
	}

	if !summary.Ok() {
		return EXIT_FAILED
	}

	return EXIT_OK
}
