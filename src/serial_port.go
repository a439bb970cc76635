package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:   	Interface to serial port, hiding operating system differences.
 *
 *		Used both to send the report out over a UART, as the
 *		board firmware does, and to capture a board's report on
 *		the host.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/pkg/term"
)

const DEFAULT_SERIAL_SPEED = 115200

/*-------------------------------------------------------------------
 *
 * Name:	serial_port_open
 *
 * Purpose:	Open serial port.
 *
 * Inputs:	devicename	- Usually /dev/tty...
 *				  Could be /dev/rfcomm0 for Bluetooth.
 *
 *		baud		- Speed.  9600, 115200 bps, etc.
 *				  If 0, leave it alone.
 *
 * Returns 	Handle for serial port, in raw mode.
 *
 *---------------------------------------------------------------*/

func serial_port_open(devicename string, baud int) (*term.Term, error) {
	var fd, err = term.Open(devicename, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("could not open serial port %s: %w", devicename, err)
	}

	switch baud {
	case 0: /* Leave it alone. */
	case 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200, 230400, 460800, 921600:
		var speedErr = fd.SetSpeed(baud)
		if speedErr != nil {
			fd.Close() //nolint:errcheck
			return nil, fmt.Errorf("setting %s to %d bps: %w", devicename, baud, speedErr)
		}
	default:
		fd.Close() //nolint:errcheck
		return nil, fmt.Errorf("unsupported serial speed %d", baud)
	}

	logger.Debug("Opened serial port", "device", devicename, "speed", baud)

	return fd, nil
}

/*-------------------------------------------------------------------
 *
 * Name:        serial_port_close
 *
 * Purpose:     Close the device.
 *
 *--------------------------------------------------------------------*/

func serial_port_close(fd *term.Term) error {
	if fd == nil {
		return nil
	}

	return fd.Close()
}

/* end serial_port.go */
