package crcverify

/*-------------------------------------------------------------------
 *
 * Name:	CrcCalculation.RunHardware
 *
 * Purpose:	Have the peripheral compute a calculation.
 *
 * Inputs:	crc	- Peripheral.  It is owned exclusively for the
 *			  duration of the call and must not be shared with
 *			  another calculation in progress.
 *
 * Returns:	Content of DR after the last step.  For polynomials
 *		narrower than 32 bits the unused high bits are whatever
 *		the peripheral leaves there.
 *
 * Description:	Unlike the software path, no reflection is done here.
 *		Steps are written raw and REV_IN / REV_OUT do the work.
 *
 *		CR is written last, in one go, so that RESET loads INIT
 *		with the final POLYSIZE before any data arrives.
 *
 *--------------------------------------------------------------------*/

func (c *CrcCalculation) RunHardware(crc CrcPeripheral) uint32 {
	crc.WriteInit(c.config.initialValue)

	crc.Extended().WritePolynomial(c.config.polynomial.Value())

	crc.WriteControl(ControlRegister{
		ReflectInput:  c.config.reflectInput,
		ReflectOutput: c.config.reflectOutput,
		PolySize:      c.config.polynomial.size,
		Reset:         true,
	})

	for i := range c.StepCount() {
		var step = c.Step(i)

		switch step.width {
		case 8:
			crc.WriteData8(uint8(step.value))
		case 16:
			crc.WriteData16(uint16(step.value))
		case 32:
			crc.WriteData32(step.value)
		}
	}

	return crc.ReadData()
}
