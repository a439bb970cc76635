package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Data model for one CRC test vector.
 *
 * Description:	A CrcCalculation is a CrcConfig plus an ordered list of
 *		input Steps.  It is built for one case of the validation
 *		matrix, handed read-only to the software engine and to the
 *		hardware adapter, and discarded after the results have
 *		been compared.
 *
 *		Everything here is valid by construction.  The typed
 *		constructors cannot produce a coefficient or step value
 *		wider than its width class.  The untyped ones (used when
 *		reading a matrix file) return an error instead.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"
)

// polySize is the width class of a polynomial.  The values are the
// POLYSIZE field encoding of the control register.
type polySize uint32

const (
	POLYSIZE_32 polySize = 0b00
	POLYSIZE_16 polySize = 0b01
	POLYSIZE_8  polySize = 0b10
	POLYSIZE_7  polySize = 0b11
)

// Polynomial is a generator polynomial tagged with its width class.
type Polynomial struct {
	size  polySize
	coeff uint32
}

// Crc7 panics if v does not fit in 7 bits.  Use NewPolynomial for
// values that are not known at compile time.
func Crc7(v uint8) Polynomial {
	if v > 0x7F {
		panic(fmt.Sprintf("Crc7 coefficient 0x%02x wider than 7 bits", v))
	}

	return Polynomial{size: POLYSIZE_7, coeff: uint32(v)}
}

func Crc8(v uint8) Polynomial {
	return Polynomial{size: POLYSIZE_8, coeff: uint32(v)}
}

func Crc16(v uint16) Polynomial {
	return Polynomial{size: POLYSIZE_16, coeff: uint32(v)}
}

func Crc32(v uint32) Polynomial {
	return Polynomial{size: POLYSIZE_32, coeff: v}
}

// NewPolynomial builds a polynomial from a width in bits and a coefficient.
func NewPolynomial(width int, value uint64) (Polynomial, error) {
	var size polySize

	switch width {
	case 7:
		size = POLYSIZE_7
	case 8:
		size = POLYSIZE_8
	case 16:
		size = POLYSIZE_16
	case 32:
		size = POLYSIZE_32
	default:
		return Polynomial{}, fmt.Errorf("unsupported polynomial width %d, must be 7, 8, 16 or 32", width)
	}

	if value>>width != 0 {
		return Polynomial{}, fmt.Errorf("polynomial coefficient 0x%x does not fit in %d bits", value, width)
	}

	return Polynomial{size: size, coeff: uint32(value)}, nil
}

func (p Polynomial) WidthBits() uint8 {
	switch p.size {
	case POLYSIZE_7:
		return 7
	case POLYSIZE_8:
		return 8
	case POLYSIZE_16:
		return 16
	case POLYSIZE_32:
		return 32
	}

	panic(fmt.Sprintf("invalid polynomial size %d", p.size))
}

// Value is the coefficient widened to 32 bits.
func (p Polynomial) Value() uint32 {
	return p.coeff
}

// mask covers the bits of the CRC register used by this width class.
func (p Polynomial) mask() uint32 {
	if p.size == POLYSIZE_32 {
		return 0xFFFFFFFF
	}

	return (uint32(1) << p.WidthBits()) - 1
}

/*-------------------------------------------------------------------
 *
 * Name:	Polynomial.ReflectOutput
 *
 * Purpose:	Bit reverse a CRC result the way REV_OUT does.
 *
 * Inputs:	output	- Raw CRC register value.
 *
 * Description:	8, 16 and 32 bit polynomials reflect at their own width.
 *
 *		A 7 bit result is reflected as if it were 8 bits and then
 *		shifted right by one, which puts the reversed value back
 *		into the low 7 bits.  This is NOT an involution.  Anything
 *		in bit 7 is shifted out and lost.
 *
 *--------------------------------------------------------------------*/

func (p Polynomial) ReflectOutput(output uint32) uint32 {
	switch p.size {
	case POLYSIZE_7:
		return reflectBytes(output) >> 1
	case POLYSIZE_8:
		return reflectBytes(output)
	case POLYSIZE_16:
		return reflectHalfwords(output)
	case POLYSIZE_32:
		return reflectWords(output)
	}

	panic(fmt.Sprintf("invalid polynomial size %d", p.size))
}

// String is the label used in the report, e.g. "Crc16".
func (p Polynomial) String() string {
	return fmt.Sprintf("Crc%d", p.WidthBits())
}

// BitReflection is the input reflection mode.  The values are the REV_IN
// field encoding of the control register.
type BitReflection uint32

const (
	BitReflectionNone       BitReflection = 0b00
	BitReflectionByByte     BitReflection = 0b01
	BitReflectionByHalfword BitReflection = 0b10
	BitReflectionByWord     BitReflection = 0b11
)

// Enumeration order of the validation matrix.
var bitReflections = []BitReflection{
	BitReflectionNone,
	BitReflectionByByte,
	BitReflectionByHalfword,
	BitReflectionByWord,
}

func (r BitReflection) String() string {
	switch r {
	case BitReflectionNone:
		return "Disabled"
	case BitReflectionByByte:
		return "By8Bits"
	case BitReflectionByHalfword:
		return "By16Bits"
	case BitReflectionByWord:
		return "By32Bits"
	}

	return fmt.Sprintf("BitReflection(%d)", uint32(r))
}

// CrcConfig is immutable once built.
type CrcConfig struct {
	reflectInput  BitReflection
	reflectOutput bool
	initialValue  uint32
	polynomial    Polynomial
}

func NewCrcConfig(reflectInput BitReflection, reflectOutput bool, initialValue uint32, polynomial Polynomial) CrcConfig {
	return CrcConfig{
		reflectInput:  reflectInput,
		reflectOutput: reflectOutput,
		initialValue:  initialValue,
		polynomial:    polynomial,
	}
}

func (c CrcConfig) ReflectInput() BitReflection { return c.reflectInput }
func (c CrcConfig) ReflectOutput() bool         { return c.reflectOutput }
func (c CrcConfig) InitialValue() uint32        { return c.initialValue }
func (c CrcConfig) Polynomial() Polynomial      { return c.polynomial }

// Step is one chunk of input, 8, 16 or 32 bits wide.
type Step struct {
	width uint8
	value uint32
}

func Data8(v uint8) Step {
	return Step{width: 8, value: uint32(v)}
}

func Data16(v uint16) Step {
	return Step{width: 16, value: uint32(v)}
}

func Data32(v uint32) Step {
	return Step{width: 32, value: v}
}

// NewStep builds a step from a width in bits and a value.
func NewStep(width int, value uint64) (Step, error) {
	switch width {
	case 8, 16, 32:
	default:
		return Step{}, fmt.Errorf("unsupported step width %d, must be 8, 16 or 32", width)
	}

	if value>>width != 0 {
		return Step{}, fmt.Errorf("step value 0x%x does not fit in %d bits", value, width)
	}

	return Step{width: uint8(width), value: uint32(value)}, nil //nolint:gosec
}

func (s Step) Width() uint8  { return s.width }
func (s Step) Value() uint32 { return s.value }

func (s Step) String() string {
	return fmt.Sprintf("Data%d(0x%0*X)", s.width, int(s.width/4), s.value)
}

// Each step is kept in the arena as a width byte followed by the value,
// most significant byte first.
const stepRecordSize = 5

// CrcCalculation is one complete test vector.
type CrcCalculation struct {
	config  CrcConfig
	records []byte
}

/*-------------------------------------------------------------------
 *
 * Name:	NewCrcCalculation
 *
 * Purpose:	Build a test vector in the working memory arena.
 *
 * Inputs:	arena	- Bounded working memory.  Exhaustion halts.
 *		config	- CRC configuration.
 *		steps	- Input chunks, in order.
 *
 * Returns:	Calculation whose step records live in the arena.  It is
 *		only valid until the arena is released past this point.
 *
 *--------------------------------------------------------------------*/

func NewCrcCalculation(arena *Arena, config CrcConfig, steps []Step) *CrcCalculation {
	var records = arena.Alloc(len(steps) * stepRecordSize)

	for i, step := range steps {
		var rec = records[i*stepRecordSize : (i+1)*stepRecordSize]
		rec[0] = step.width
		binary.BigEndian.PutUint32(rec[1:], step.value)
	}

	return &CrcCalculation{config: config, records: records}
}

func (c *CrcCalculation) Config() CrcConfig {
	return c.config
}

func (c *CrcCalculation) StepCount() int {
	return len(c.records) / stepRecordSize
}

func (c *CrcCalculation) Step(i int) Step {
	var rec = c.records[i*stepRecordSize : (i+1)*stepRecordSize]

	return Step{width: rec[0], value: binary.BigEndian.Uint32(rec[1:])}
}

// digestLength is the number of bytes the steps serialize to.
func (c *CrcCalculation) digestLength() int {
	var n = 0
	for i := range c.StepCount() {
		n += int(c.Step(i).width) / 8
	}

	return n
}
