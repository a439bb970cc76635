package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Drive a GPIO line with the overall result.
 *
 * Description:	For unattended test rigs: an LED or a line into a
 *		production tester.  The line is requested low when the
 *		run starts and set high only if every case passes.
 *
 *		Specified as "chip:line", e.g. "gpiochip0:17".  A line
 *		name with a leading "-" inverts the sense.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/warthog618/go-gpiocdev"
)

// gpiodOutputLine is the part of *gpiocdev.Line we use.
type gpiodOutputLine interface {
	SetValue(value int) error
	Close() error
}

type StatusLine struct {
	line   gpiodOutputLine
	invert bool
}

func parseGpioSpec(spec string) (string, int, bool, error) {
	var chip, lineStr, found = strings.Cut(spec, ":")
	if !found || chip == "" || lineStr == "" {
		return "", 0, false, fmt.Errorf("GPIO %q is not in the form chip:line", spec)
	}

	var invert = strings.HasPrefix(lineStr, "-")
	lineStr = strings.TrimPrefix(lineStr, "-")

	var offset, err = strconv.Atoi(lineStr)
	if err != nil || offset < 0 {
		return "", 0, false, fmt.Errorf("GPIO %q has a bad line number", spec)
	}

	return chip, offset, invert, nil
}

func OpenStatusLine(spec string) (*StatusLine, error) {
	var chip, offset, invert, specErr = parseGpioSpec(spec)
	if specErr != nil {
		return nil, specErr
	}

	var initial = 0
	if invert {
		initial = 1
	}

	var line, err = gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(initial), gpiocdev.WithConsumer("crcverify"))
	if err != nil {
		return nil, fmt.Errorf("requesting %s line %d: %w", chip, offset, err)
	}

	logger.Debug("Status line requested", "chip", chip, "line", offset, "invert", invert)

	return &StatusLine{line: line, invert: invert}, nil
}

// Set drives the line high for ok, before inversion.
func (s *StatusLine) Set(ok bool) error {
	if s == nil || s.line == nil {
		return nil
	}

	var v = 0
	if ok != s.invert {
		v = 1
	}

	return s.line.SetValue(v)
}

func (s *StatusLine) Close() error {
	if s == nil || s.line == nil {
		return nil
	}

	var err = s.line.Close()
	s.line = nil

	return err
}
