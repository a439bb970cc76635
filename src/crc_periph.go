package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	Register contract of the CRC peripheral.
 *
 * Description:	The layout is that of the STM32 CRC unit with a
 *		programmable polynomial:
 *
 *			0x00	DR	Data.  8, 16 or 32 bit writes feed
 *					the calculation.  32 bit reads
 *					return the current CRC.
 *			0x04	IDR	Independent data, scratch.
 *			0x08	CR	Control.
 *			0x10	INIT	Initial CRC value.
 *			0x14	POL	Polynomial coefficient.
 *
 *		POL is missing from the register descriptions that some
 *		parts ship with, so it is not part of the regular register
 *		interface.  It is reached through ExtendedRegisters, which
 *		exists only to fill that gap.
 *
 *		Only the hardware adapter talks to a CrcPeripheral.  Nothing
 *		else in the package deals with offsets.
 *
 *---------------------------------------------------------------*/

import "fmt"

const (
	CRC_DR   uint32 = 0x00
	CRC_IDR  uint32 = 0x04
	CRC_CR   uint32 = 0x08
	CRC_INIT uint32 = 0x10
	CRC_POL  uint32 = 0x14

	// Size of the register block.
	CRC_BLOCK_SIZE = 0x18
)

// Control register fields.
const (
	CRC_CR_RESET        uint32 = 1 << 0
	CRC_CR_POLYSIZE_Pos        = 3
	CRC_CR_POLYSIZE_Msk uint32 = 0b11 << CRC_CR_POLYSIZE_Pos
	CRC_CR_REV_IN_Pos          = 5
	CRC_CR_REV_IN_Msk   uint32 = 0b11 << CRC_CR_REV_IN_Pos
	CRC_CR_REV_OUT      uint32 = 1 << 7
)

// RegisterBus is raw access to a block of memory mapped registers.
// Offsets are relative to the block base.
type RegisterBus interface {
	Read32(offset uint32) uint32
	Write32(offset uint32, value uint32)
	Write16(offset uint32, value uint16)
	Write8(offset uint32, value uint8)
}

// ExtendedRegisters covers registers that the regular interface doesn't
// describe.  See the file comment.
type ExtendedRegisters interface {
	WritePolynomial(value uint32)
}

// CrcPeripheral is the register interface the hardware adapter drives.
type CrcPeripheral interface {
	WriteInit(value uint32)
	WriteControl(cr ControlRegister)
	WriteData8(value uint8)
	WriteData16(value uint16)
	WriteData32(value uint32)
	ReadData() uint32

	Extended() ExtendedRegisters
}

// ControlRegister is the content of a single CR write.
type ControlRegister struct {
	ReflectInput  BitReflection
	ReflectOutput bool
	PolySize      polySize
	Reset         bool
}

func (cr ControlRegister) bits() uint32 {
	var v = (uint32(cr.PolySize) << CRC_CR_POLYSIZE_Pos) & CRC_CR_POLYSIZE_Msk
	v |= (uint32(cr.ReflectInput) << CRC_CR_REV_IN_Pos) & CRC_CR_REV_IN_Msk

	if cr.ReflectOutput {
		v |= CRC_CR_REV_OUT
	}

	if cr.Reset {
		v |= CRC_CR_RESET
	}

	return v
}

func (cr ControlRegister) String() string {
	return fmt.Sprintf("CR=0x%02x (REV_IN=%s REV_OUT=%t POLYSIZE=%d RESET=%t)",
		cr.bits(), cr.ReflectInput, cr.ReflectOutput, cr.PolySize, cr.Reset)
}

/*-------------------------------------------------------------------
 *
 * Name:	NewCrcPeripheral
 *
 * Purpose:	Put the typed register interface on top of a register bus.
 *
 * Inputs:	bus	- Simulator, /dev/mem mapping, or a test double.
 *
 *--------------------------------------------------------------------*/

func NewCrcPeripheral(bus RegisterBus) *RegisterPeripheral {
	return &RegisterPeripheral{bus: bus}
}

type RegisterPeripheral struct {
	bus RegisterBus
}

func (p *RegisterPeripheral) WriteInit(value uint32) {
	logger.Debug("write INIT", "value", fmt.Sprintf("0x%08x", value))
	p.bus.Write32(CRC_INIT, value)
}

func (p *RegisterPeripheral) WriteControl(cr ControlRegister) {
	logger.Debug("write CR", "cr", cr)
	p.bus.Write32(CRC_CR, cr.bits())
}

func (p *RegisterPeripheral) WriteData8(value uint8) {
	p.bus.Write8(CRC_DR, value)
}

func (p *RegisterPeripheral) WriteData16(value uint16) {
	p.bus.Write16(CRC_DR, value)
}

func (p *RegisterPeripheral) WriteData32(value uint32) {
	p.bus.Write32(CRC_DR, value)
}

func (p *RegisterPeripheral) ReadData() uint32 {
	return p.bus.Read32(CRC_DR)
}

func (p *RegisterPeripheral) Extended() ExtendedRegisters {
	return extendedRegisters{bus: p.bus}
}

type extendedRegisters struct {
	bus RegisterBus
}

// WritePolynomial writes POL by offset, bypassing the register description.
func (x extendedRegisters) WritePolynomial(value uint32) {
	logger.Debug("write POL (extended)", "value", fmt.Sprintf("0x%08x", value))
	x.bus.Write32(CRC_POL, value)
}
