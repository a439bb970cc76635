package main

import (
	crcverify "github.com/doismellburning/crcverify/src"
)

/*-------------------------------------------------------------------
 *
 * Name:        main
 *
 * Purpose:     Capture the validation report printed by a board.
 *
 *--------------------------------------------------------------------*/

func main() {
	crcverify.CrcMonitorMain()
}
