package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Register access to a real CRC unit through /dev/mem.
 *
 * Description:	For a Linux host with the peripheral in its physical
 *		address space (e.g. an STM32MP1, where the Cortex-A side
 *		can reach CRC1).  The page holding the register block is
 *		mapped shared and uncached, and registers are accessed
 *		with single loads and stores of the right width.
 *
 *		The clock to the unit must already be enabled.  That is
 *		board bring-up and is not done here.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Default base address of the CRC unit on STM32F0 parts.
const DEFAULT_CRC_BASE = 0x40023000

type DevmemBus struct {
	mem    []byte
	offset uint32 // Of the register block within mem.
}

/*-------------------------------------------------------------------
 *
 * Name:	OpenDevmem
 *
 * Purpose:	Map the register block of the CRC unit.
 *
 * Inputs:	path	- Usually /dev/mem.
 *		base	- Physical address of the register block.
 *
 * Returns:	Register bus.  Close it to unmap.
 *
 *--------------------------------------------------------------------*/

func OpenDevmem(path string, base uint32) (*DevmemBus, error) {
	var fd, openErr = unix.Open(path, unix.O_RDWR|unix.O_SYNC, 0)
	if openErr != nil {
		return nil, fmt.Errorf("open %s: %w", path, openErr)
	}
	defer unix.Close(fd) //nolint:errcheck

	var pageSize = uint32(unix.Getpagesize()) //nolint:gosec
	var pageBase = base &^ (pageSize - 1)
	var offset = base - pageBase

	var length = int(offset) + CRC_BLOCK_SIZE
	length = (length + int(pageSize) - 1) &^ (int(pageSize) - 1)

	var mem, mmapErr = unix.Mmap(fd, int64(pageBase), length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if mmapErr != nil {
		return nil, fmt.Errorf("mmap %s at 0x%08x: %w", path, pageBase, mmapErr)
	}

	logger.Info("Mapped CRC unit", "device", path, "base", fmt.Sprintf("0x%08x", base))

	return &DevmemBus{mem: mem, offset: offset}, nil
}

func (d *DevmemBus) Close() error {
	if d.mem == nil {
		return nil
	}

	var err = unix.Munmap(d.mem)
	d.mem = nil

	return err
}

func (d *DevmemBus) addr(offset uint32) unsafe.Pointer {
	return unsafe.Pointer(&d.mem[d.offset+offset])
}

func (d *DevmemBus) Read32(offset uint32) uint32 {
	return atomic.LoadUint32((*uint32)(d.addr(offset)))
}

func (d *DevmemBus) Write32(offset uint32, value uint32) {
	atomic.StoreUint32((*uint32)(d.addr(offset)), value)
}

// There are no 8 and 16 bit atomics.  A plain store through the pointer
// still compiles to a single access of that width.
func (d *DevmemBus) Write16(offset uint32, value uint16) {
	*(*uint16)(d.addr(offset)) = value
}

func (d *DevmemBus) Write8(offset uint32, value uint8) {
	*(*uint8)(d.addr(offset)) = value
}
