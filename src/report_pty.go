package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Offer the report on a pseudo terminal.
 *
 * Description:	Lets a terminal program or a test harness that expects
 *		to talk to a board's UART attach to the host run instead.
 *		The slave side's name is logged so the other program knows
 *		where to look.
 *
 *		Nothing throttles us if no one is reading, so the report
 *		may block once the pty buffer is full.  Attach before
 *		the run or use a file.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/creack/pty"
)

type reportPty struct {
	master *os.File
	slave  *os.File
}

func openReportPty() (*reportPty, error) {
	var ptmx, pts, err = pty.Open()
	if err != nil {
		return nil, fmt.Errorf("could not create pseudo terminal for report: %w", err)
	}

	logger.Info("Report available on pseudo terminal", "path", pts.Name())

	return &reportPty{master: ptmx, slave: pts}, nil
}

func (p *reportPty) Write(b []byte) (int, error) {
	return p.master.Write(b)
}

func (p *reportPty) Name() string {
	return p.slave.Name()
}

func (p *reportPty) Close() error {
	var slaveErr = p.slave.Close()
	var masterErr = p.master.Close()

	if masterErr != nil {
		return masterErr
	}

	return slaveErr
}
