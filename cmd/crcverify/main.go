package main

import (
	crcverify "github.com/doismellburning/crcverify/src"
)

/*-------------------------------------------------------------------
 *
 * Name:        main
 *
 * Purpose:     Check a CRC peripheral against the software reference.
 *
 *--------------------------------------------------------------------*/

func main() {
	crcverify.CrcVerifyMain()
}
