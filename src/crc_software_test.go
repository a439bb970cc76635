package crcverify

import (
	"testing"

	"github.com/sigurn/crc16"
	"github.com/sigurn/crc8"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var checkInput = []byte("123456789")

func bytesToSteps(data []byte) []Step {
	var steps = make([]Step, len(data))
	for i, b := range data {
		steps[i] = Data8(b)
	}

	return steps
}

func runSoftware(config CrcConfig, steps []Step) uint32 {
	var arena = NewArena(ARENA_SIZE, panicOnExhaustion)
	var calculation = NewCrcCalculation(arena, config, steps)

	return calculation.RunSoftware(arena)
}

func TestSoftwareSingleByte(t *testing.T) {
	var config = NewCrcConfig(BitReflectionNone, false, 0x00000000, Crc8(0x07))

	assert.Equal(t, uint32(0xC9), runSoftware(config, []Step{Data8(0x42)}))
}

// Published check values for "123456789".
func TestSoftwareCheckValues(t *testing.T) {
	var tests = []struct {
		name     string
		config   CrcConfig
		expected uint32
	}{
		{"CRC-7/MMC", NewCrcConfig(BitReflectionNone, false, 0, Crc7(0x09)), 0x75},
		{"CRC-8/SMBUS", NewCrcConfig(BitReflectionNone, false, 0, Crc8(0x07)), 0xF4},
		{"CRC-16/UMTS", NewCrcConfig(BitReflectionNone, false, 0, Crc16(0x8005)), 0xFEE8},
		{"CRC-16/ARC", NewCrcConfig(BitReflectionByByte, true, 0, Crc16(0x8005)), 0xBB3D},
		{"CRC-16/XMODEM", NewCrcConfig(BitReflectionNone, false, 0, Crc16(0x1021)), 0x31C3},
		{"CRC-16/IBM-3740", NewCrcConfig(BitReflectionNone, false, 0xFFFF, Crc16(0x1021)), 0x29B1},
		{"CRC-32/MPEG-2", NewCrcConfig(BitReflectionNone, false, 0xFFFFFFFF, Crc32(0x04C11DB7)), 0x0376E6E7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, runSoftware(tt.config, bytesToSteps(checkInput)))
		})
	}
}

func TestSoftwareCrc32Iso(t *testing.T) {
	// Byte reflected in and out plus a final xor, which is outside what
	// the unit does, gives the usual zip CRC.
	var config = NewCrcConfig(BitReflectionByByte, true, 0xFFFFFFFF, Crc32(0x04C11DB7))

	assert.Equal(t, uint32(0xCBF43926), runSoftware(config, bytesToSteps(checkInput))^0xFFFFFFFF)
}

func TestSoftwareMatchesCrc16Library(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var data = rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "data")
		var poly = rapid.Uint16().Draw(t, "poly")
		var init = rapid.Uint16().Draw(t, "init")
		var reflected = rapid.Bool().Draw(t, "reflected")

		var table = crc16.MakeTable(crc16.Params{
			Poly:   poly,
			Init:   init,
			RefIn:  reflected,
			RefOut: reflected,
			Name:   "test",
		})

		var reflect = BitReflectionNone
		if reflected {
			reflect = BitReflectionByByte
		}

		var config = NewCrcConfig(reflect, reflected, uint32(init), Crc16(poly))

		assert.Equal(t, uint32(crc16.Checksum(data, table)), runSoftware(config, bytesToSteps(data)))
	})
}

func TestSoftwareMatchesCrc8Library(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var data = rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "data")
		var poly = rapid.Uint8().Draw(t, "poly")
		var init = rapid.Uint8().Draw(t, "init")

		var table = crc8.MakeTable(crc8.Params{
			Poly: poly,
			Init: init,
			Name: "test",
		})

		var config = NewCrcConfig(BitReflectionNone, false, uint32(init), Crc8(poly))

		assert.Equal(t, uint32(crc8.Checksum(data, table)), runSoftware(config, bytesToSteps(data)))
	})
}

func TestSoftwareCrc8Preset(t *testing.T) {
	var config = NewCrcConfig(BitReflectionNone, false, 0, Crc8(0x07))
	var table = crc8.MakeTable(crc8.CRC8)

	assert.Equal(t, uint32(crc8.Checksum(checkInput, table)), runSoftware(config, bytesToSteps(checkInput)))
}

func TestSoftwareEmptyInput(t *testing.T) {
	// Nothing fed, so the result is the initial value cut to the width.
	var tests = []struct {
		config   CrcConfig
		expected uint32
	}{
		{NewCrcConfig(BitReflectionNone, false, 0xFFFFFFFF, Crc32(0x04C11DB7)), 0xFFFFFFFF},
		{NewCrcConfig(BitReflectionNone, false, 0xFFFFFFFF, Crc7(0x09)), 0x7F},
		{NewCrcConfig(BitReflectionByWord, true, 0xFFFFFFFF, Crc7(0x09)), 0x7F},
		{NewCrcConfig(BitReflectionNone, false, 0x000000FF, Crc16(0x8005)), 0xFF},
		{NewCrcConfig(BitReflectionNone, true, 0x000000FF, Crc16(0x8005)), 0xFF00},
		{NewCrcConfig(BitReflectionNone, false, 0x12345678, Crc8(0x07)), 0x78},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, runSoftware(tt.config, nil), caseName(tt.config, 0))
	}
}

func TestSoftwareIsPure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var config = drawConfig(t)
		var steps = drawSteps(t)

		var arena = NewArena(ARENA_SIZE, panicOnExhaustion)
		var calculation = NewCrcCalculation(arena, config, steps)

		var first = calculation.RunSoftware(arena)
		var second = calculation.RunSoftware(arena)

		assert.Equal(t, first, second)
	})
}

func TestSoftwareResultFitsWidth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var config = drawConfig(t)
		var steps = drawSteps(t)

		var result = runSoftware(config, steps)

		assert.Zero(t, result&^config.Polynomial().mask())
	})
}

// Splitting a word into smaller writes gives the same CRC when the input
// reflection granularity is no wider than the smaller writes.
func TestSoftwareWidthSplitting(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var config = drawConfig(t)
		var w = rapid.Uint32().Draw(t, "w")

		var asWord = runSoftware(config, []Step{Data32(w)})
		var asHalfwords = runSoftware(config, []Step{Data16(uint16(w >> 16)), Data16(uint16(w))})
		var asBytes = runSoftware(config, []Step{Data8(uint8(w >> 24)), Data8(uint8(w >> 16)), Data8(uint8(w >> 8)), Data8(uint8(w))})

		switch config.ReflectInput() {
		case BitReflectionNone, BitReflectionByByte:
			assert.Equal(t, asWord, asHalfwords)
			assert.Equal(t, asWord, asBytes)
		case BitReflectionByHalfword:
			assert.Equal(t, asWord, asHalfwords)
		}
	})
}

func TestSoftwareWidthSplittingWiderReflection(t *testing.T) {
	var steps32 = []Step{Data32(0x423268A4)}
	var steps16 = []Step{Data16(0x4232), Data16(0x68A4)}
	var steps8 = []Step{Data8(0x42), Data8(0x32), Data8(0x68), Data8(0xA4)}

	var words = NewCrcConfig(BitReflectionByWord, false, 0xFFFFFFFF, Crc32(0x04C11DB7))
	assert.Equal(t, uint32(0x27022BF4), runSoftware(words, steps32))
	assert.Equal(t, uint32(0x079BA17E), runSoftware(words, steps16))
	assert.Equal(t, uint32(0xAFE06B2D), runSoftware(words, steps8))

	var halfwords = NewCrcConfig(BitReflectionByHalfword, false, 0xFFFFFFFF, Crc32(0x04C11DB7))
	assert.Equal(t, uint32(0x079BA17E), runSoftware(halfwords, steps32))
	assert.Equal(t, uint32(0xAFE06B2D), runSoftware(halfwords, steps8))
}

func drawPolynomial(t *rapid.T) Polynomial {
	switch rapid.IntRange(0, 3).Draw(t, "size") {
	case 0:
		return Crc7(rapid.Uint8Range(0, 0x7F).Draw(t, "poly7"))
	case 1:
		return Crc8(rapid.Uint8().Draw(t, "poly8"))
	case 2:
		return Crc16(rapid.Uint16().Draw(t, "poly16"))
	}

	return Crc32(rapid.Uint32().Draw(t, "poly32"))
}

func drawConfig(t *rapid.T) CrcConfig {
	return NewCrcConfig(
		rapid.SampledFrom(bitReflections).Draw(t, "reflectInput"),
		rapid.Bool().Draw(t, "reflectOutput"),
		rapid.Uint32().Draw(t, "init"),
		drawPolynomial(t),
	)
}

func drawStep(t *rapid.T, label string) Step {
	switch rapid.SampledFrom([]int{8, 16, 32}).Draw(t, label+"Width") {
	case 8:
		return Data8(rapid.Uint8().Draw(t, label))
	case 16:
		return Data16(rapid.Uint16().Draw(t, label))
	}

	return Data32(rapid.Uint32().Draw(t, label))
}

func drawSteps(t *rapid.T) []Step {
	var n = rapid.IntRange(0, 8).Draw(t, "steps")

	var steps = make([]Step, n)
	for i := range steps {
		steps[i] = drawStep(t, "step")
	}

	return steps
}
