package crcverify

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "crcverify",
})

/*-------------------------------------------------------------------
 *
 * Name:	logging_init
 *
 * Purpose:	Set up the package logger from the command line options.
 *
 * Inputs:	w	- Destination, normally stderr.  The report has
 *			  stdout to itself.
 *		debug	- Trace register writes and digested data.
 *		quiet	- Warnings and errors only.
 *
 *--------------------------------------------------------------------*/

func logging_init(w io.Writer, debug bool, quiet bool) {
	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "crcverify",
	})

	switch {
	case debug:
		logger.SetLevel(log.DebugLevel)
	case quiet:
		logger.SetLevel(log.WarnLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

func debugEnabled() bool {
	return logger.GetLevel() <= log.DebugLevel
}
