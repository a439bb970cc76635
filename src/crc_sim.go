package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Bit level model of the CRC unit, for running without
 *		the real peripheral.
 *
 * Description:	Implements RegisterBus with the register layout described
 *		in crc_periph.go.  It is written independently of the
 *		software reference:  it uses the register fields as they
 *		are encoded in CR and reverses bits with math/bits.
 *
 *		Behaviour modelled:
 *
 *		- Writing INIT also loads the CRC register.
 *		- Writing CR with RESET set loads INIT, truncated to the
 *		  polynomial size, into the CRC register.  RESET reads
 *		  back as zero.
 *		- A write to DR is bit reversed according to REV_IN, at no
 *		  more than the width of the write, and then shifted in
 *		  MSB first.
 *		- Reading DR gives the CRC register, reversed at the
 *		  polynomial size when REV_OUT is set.
 *
 *		FlipResultBits is xor'd into every DR read, to fake a
 *		broken peripheral.
 *
 *---------------------------------------------------------------*/

import "math/bits"

type CrcSimulator struct {
	idr  uint32
	cr   uint32
	init uint32
	pol  uint32
	crc  uint32

	FlipResultBits uint32
}

// NewCrcSimulator returns a unit in its documented reset state.
func NewCrcSimulator() *CrcSimulator {
	return &CrcSimulator{
		init: 0xFFFFFFFF,
		pol:  0x04C11DB7,
		crc:  0xFFFFFFFF,
	}
}

func (s *CrcSimulator) polyWidth() uint {
	switch polySize((s.cr & CRC_CR_POLYSIZE_Msk) >> CRC_CR_POLYSIZE_Pos) {
	case POLYSIZE_7:
		return 7
	case POLYSIZE_8:
		return 8
	case POLYSIZE_16:
		return 16
	default:
		return 32
	}
}

func (s *CrcSimulator) polyMask() uint32 {
	var w = s.polyWidth()
	if w == 32 {
		return 0xFFFFFFFF
	}

	return (uint32(1) << w) - 1
}

// reverseIn applies REV_IN to a write of the given width.
func (s *CrcSimulator) reverseIn(v uint32, width uint) uint32 {
	var granularity uint

	switch BitReflection((s.cr & CRC_CR_REV_IN_Msk) >> CRC_CR_REV_IN_Pos) {
	case BitReflectionNone:
		return v
	case BitReflectionByByte:
		granularity = 8
	case BitReflectionByHalfword:
		granularity = 16
	case BitReflectionByWord:
		granularity = 32
	}

	granularity = min(granularity, width)

	var out uint32
	for lane := uint(0); lane < width; lane += granularity {
		var chunk = (v >> lane) & laneMask(granularity)

		switch granularity {
		case 8:
			chunk = uint32(bits.Reverse8(uint8(chunk)))
		case 16:
			chunk = uint32(bits.Reverse16(uint16(chunk)))
		case 32:
			chunk = bits.Reverse32(chunk)
		}

		out |= chunk << lane
	}

	return out
}

func laneMask(width uint) uint32 {
	if width >= 32 {
		return 0xFFFFFFFF
	}

	return (uint32(1) << width) - 1
}

func (s *CrcSimulator) feed(v uint32, width uint) {
	v = s.reverseIn(v, width)

	var w = s.polyWidth()
	var top = uint32(1) << (w - 1)
	var mask = s.polyMask()
	var poly = s.pol & mask

	for i := int(width) - 1; i >= 0; i-- {
		var feedback = ((s.crc & top) != 0) != (((v >> uint(i)) & 1) != 0)
		s.crc = (s.crc << 1) & mask

		if feedback {
			s.crc ^= poly
		}
	}
}

func (s *CrcSimulator) result() uint32 {
	var v = s.crc & s.polyMask()

	if s.cr&CRC_CR_REV_OUT != 0 {
		var w = s.polyWidth()
		v = bits.Reverse32(v) >> (32 - w)
	}

	return v ^ s.FlipResultBits
}

func (s *CrcSimulator) Read32(offset uint32) uint32 {
	switch offset {
	case CRC_DR:
		return s.result()
	case CRC_IDR:
		return s.idr
	case CRC_CR:
		return s.cr
	case CRC_INIT:
		return s.init
	case CRC_POL:
		return s.pol
	}

	return 0
}

func (s *CrcSimulator) Write32(offset uint32, value uint32) {
	switch offset {
	case CRC_DR:
		s.feed(value, 32)
	case CRC_IDR:
		s.idr = value
	case CRC_CR:
		s.cr = value &^ CRC_CR_RESET
		if value&CRC_CR_RESET != 0 {
			s.crc = s.init & s.polyMask()
		}
	case CRC_INIT:
		s.init = value
		s.crc = value
	case CRC_POL:
		s.pol = value
	}
}

func (s *CrcSimulator) Write16(offset uint32, value uint16) {
	if offset == CRC_DR {
		s.feed(uint32(value), 16)
		return
	}

	s.Write32(offset, uint32(value))
}

func (s *CrcSimulator) Write8(offset uint32, value uint8) {
	if offset == CRC_DR {
		s.feed(uint32(value), 8)
		return
	}

	s.Write32(offset, uint32(value))
}
