package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Software reference for the CRC unit.
 *
 * Description:	The reference is a plain MSB first shift register with no
 *		reflection and no final xor.  All reflection is done
 *		outside of it, the same way on every path:
 *
 *			input	- each step is reflected at its own width
 *				  according to the REV_IN mode, then fed
 *				  most significant byte first.
 *
 *			output	- Polynomial.ReflectOutput, if enabled.
 *
 *		The result depends on nothing but the calculation.
 *
 *---------------------------------------------------------------*/

import "encoding/binary"

// crcEngine is a bitwise CRC register for any width from 1 to 32.
type crcEngine struct {
	poly   uint32
	topBit uint32
	mask   uint32
	value  uint32
}

/*-------------------------------------------------------------------
 *
 * Name:	newCrcEngine
 *
 * Inputs:	poly	- Coefficient, without the implicit top term.
 *		width	- Register width in bits.
 *		initial	- Initial value.  Only the low width bits are used,
 *			  as with the INIT register of the hardware.
 *
 *--------------------------------------------------------------------*/

func newCrcEngine(poly uint32, width uint8, initial uint32) *crcEngine {
	var mask = uint32(0xFFFFFFFF)
	if width < 32 {
		mask = (uint32(1) << width) - 1
	}

	return &crcEngine{
		poly:   poly & mask,
		topBit: uint32(1) << (width - 1),
		mask:   mask,
		value:  initial & mask,
	}
}

func (e *crcEngine) digest(data []byte) {
	for _, b := range data {
		for j := 7; j >= 0; j-- {
			var bit = (e.value & e.topBit) != 0
			e.value = (e.value << 1) & e.mask

			if (b>>j)&1 != 0 {
				bit = !bit
			}

			if bit {
				e.value ^= e.poly
			}
		}
	}
}

func (e *crcEngine) get() uint32 {
	return e.value
}

/*-------------------------------------------------------------------
 *
 * Name:	CrcCalculation.RunSoftware
 *
 * Purpose:	Compute the expected result of a calculation.
 *
 * Inputs:	arena	- Working memory for the serialized input.
 *			  Released by the caller along with the calculation.
 *
 * Returns:	32 bit result, as the DR register would read.
 *
 *--------------------------------------------------------------------*/

func (c *CrcCalculation) RunSoftware(arena *Arena) uint32 {
	var poly = c.config.polynomial
	var engine = newCrcEngine(poly.Value(), poly.WidthBits(), c.config.initialValue)

	var reflect = c.config.reflectInput
	var data = arena.Alloc(c.digestLength())[:0]

	for i := range c.StepCount() {
		var step = c.Step(i)

		switch step.width {
		case 8:
			data = append(data, reflect.reflect8(uint8(step.value)))
		case 16:
			data = binary.BigEndian.AppendUint16(data, reflect.reflect16(uint16(step.value)))
		case 32:
			data = binary.BigEndian.AppendUint32(data, reflect.reflect32(step.value))
		}
	}

	if debugEnabled() && len(data) > 0 {
		logger.Debug("software digest\n" + hexDump(data))
	}

	engine.digest(data)

	var result = engine.get()
	if c.config.reflectOutput {
		return poly.ReflectOutput(result)
	}

	return result
}
