package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Bit order reversal at byte, halfword and word granularity.
 *
 * Description:	These follow the REV_IN / REV_OUT definitions of the CRC
 *		unit:
 *
 *			By8Bits		- Bits reversed inside each byte.
 *					  Byte order is preserved.
 *			By16Bits	- Bits reversed inside each halfword,
 *					  which also swaps its two bytes.
 *			By32Bits	- All 32 bits reversed.
 *
 *		The lane functions work on a full 32 bit container so that
 *		a 32 bit value under byte reversal has each of its four bytes
 *		reflected in place.
 *
 *---------------------------------------------------------------*/

func reflectBytes(v uint32) uint32 {
	v = ((v >> 1) & 0x55555555) | ((v & 0x55555555) << 1) // odd and even bits
	v = ((v >> 2) & 0x33333333) | ((v & 0x33333333) << 2) // pairs
	v = ((v >> 4) & 0x0F0F0F0F) | ((v & 0x0F0F0F0F) << 4) // nibbles
	return v
}

func reflectHalfwords(v uint32) uint32 {
	v = reflectBytes(v)
	v = ((v >> 8) & 0x00FF00FF) | ((v & 0x00FF00FF) << 8) // bytes
	return v
}

func reflectWords(v uint32) uint32 {
	v = reflectHalfwords(v)
	v = (v >> 16) | (v << 16)
	return v
}

// ReflectByte reverses the bit order of one byte.
func ReflectByte(x uint8) uint8 {
	return uint8(reflectBytes(uint32(x)))
}

// ReflectHalfword reverses the bit order of a 16 bit value.
func ReflectHalfword(x uint16) uint16 {
	return uint16(reflectHalfwords(uint32(x)))
}

// ReflectWord reverses the bit order of a 32 bit value.
func ReflectWord(x uint32) uint32 {
	return reflectWords(x)
}

/*-------------------------------------------------------------------
 *
 * Name:	BitReflection.reflect8 / reflect16 / reflect32
 *
 * Purpose:	Apply the input reflection mode to a value of a given width.
 *
 * Description:	The reflection is applied at the width of the value, never
 *		wider.  An 8 bit value is simply byte-reflected for every
 *		mode other than none.  A 16 bit value under word mode is
 *		reflected as a halfword.  A 32 bit value under byte or
 *		halfword mode is reflected lane by lane.
 *
 *		This is the interpretation that matches the hardware when a
 *		narrow write is made with a wide REV_IN setting.
 *
 *--------------------------------------------------------------------*/

func (r BitReflection) reflect8(v uint8) uint8 {
	switch r {
	case BitReflectionNone:
		return v
	case BitReflectionByByte, BitReflectionByHalfword, BitReflectionByWord:
		return ReflectByte(v)
	}

	panic("invalid BitReflection " + r.String())
}

func (r BitReflection) reflect16(v uint16) uint16 {
	switch r {
	case BitReflectionNone:
		return v
	case BitReflectionByByte:
		return uint16(reflectBytes(uint32(v)))
	case BitReflectionByHalfword, BitReflectionByWord:
		return ReflectHalfword(v)
	}

	panic("invalid BitReflection " + r.String())
}

func (r BitReflection) reflect32(v uint32) uint32 {
	switch r {
	case BitReflectionNone:
		return v
	case BitReflectionByByte:
		return reflectBytes(v)
	case BitReflectionByHalfword:
		return reflectHalfwords(v)
	case BitReflectionByWord:
		return reflectWords(v)
	}

	panic("invalid BitReflection " + r.String())
}
