package crcverify

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMatrixYAML = `
polynomials:
  - {width: 7, value: 0x09}
  - {width: 16, value: 0x1021}
initial_values: [0x00000000, 0xFFFFFFFF]
steps:
  - []
  - [{width: 8, value: 0x42}]
  - [{width: 16, value: 0x4232}, {width: 32, value: 0x423268A4}]
`

func TestParseMatrix(t *testing.T) {
	var m, err = ParseMatrix([]byte(testMatrixYAML))
	require.NoError(t, err)

	assert.Equal(t, []Polynomial{Crc7(0x09), Crc16(0x1021)}, m.Polynomials)
	assert.Equal(t, []uint32{0x00000000, 0xFFFFFFFF}, m.InitialValues)
	assert.Equal(t, [][]Step{
		{},
		{Data8(0x42)},
		{Data16(0x4232), Data32(0x423268A4)},
	}, m.StepSequences)

	assert.Equal(t, 2*4*2*2*3, m.CaseCount())
}

func TestParseMatrixErrors(t *testing.T) {
	var tests = []struct {
		name     string
		yaml     string
		expected string
	}{
		{"no polynomials", "initial_values: [0]\nsteps: [[]]\n", "no polynomials"},
		{"no initial values", "polynomials: [{width: 8, value: 7}]\nsteps: [[]]\n", "no initial_values"},
		{"no steps", "polynomials: [{width: 8, value: 7}]\ninitial_values: [0]\n", "no steps"},
		{"bad width", "polynomials: [{width: 8, value: 7}, {width: 12, value: 1}]\ninitial_values: [0]\nsteps: [[]]\n", "polynomials[1]"},
		{"wide coefficient", "polynomials: [{width: 7, value: 0x80}]\ninitial_values: [0]\nsteps: [[]]\n", "polynomials[0]"},
		{"wide initial value", "polynomials: [{width: 8, value: 7}]\ninitial_values: [0x100000000]\nsteps: [[]]\n", "initial_values[0]"},
		{"bad step", "polynomials: [{width: 8, value: 7}]\ninitial_values: [0]\nsteps: [[], [{width: 8, value: 1}, {width: 8, value: 0x100}]]\n", "steps[1][1]"},
		{"not yaml", "polynomials: [", "parsing matrix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var _, err = ParseMatrix([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestLoadMatrixExample(t *testing.T) {
	var m, err = LoadMatrix(filepath.Join("..", "data", "crcverify.example.yaml"))
	require.NoError(t, err)

	assert.Len(t, m.Polynomials, 5)
	assert.Equal(t, Crc8(0x31), m.Polynomials[2])
	assert.Len(t, m.StepSequences, 3)
}

func TestLoadMatrixMissing(t *testing.T) {
	var _, err = LoadMatrix(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindMatrix(t *testing.T) {
	var dir = t.TempDir()
	var found = filepath.Join(dir, "crcverify.yaml")

	require.NoError(t, os.WriteFile(found, []byte(testMatrixYAML), 0600))

	var m, err = find_matrix("", []string{filepath.Join(dir, "missing.yaml"), found})
	require.NoError(t, err)
	assert.Len(t, m.Polynomials, 2)

	m, err = find_matrix("", []string{filepath.Join(dir, "missing.yaml")})
	require.NoError(t, err)
	assert.Equal(t, DefaultMatrix(), m)

	// A named file has to exist, there is no fallback.
	_, err = find_matrix(filepath.Join(dir, "missing.yaml"), []string{found})
	require.Error(t, err)
}

func TestDefaultMatrixContents(t *testing.T) {
	var m = DefaultMatrix()

	assert.Len(t, m.Polynomials, 5)
	assert.Equal(t, []uint32{0x00000000, 0xFFFFFFFF, 0x000000FF}, m.InitialValues)
	require.Len(t, m.StepSequences, 7)
	assert.Empty(t, m.StepSequences[0])
	assert.Equal(t, []Step{Data32(0x423268A4), Data32(0xAD91FE38)}, m.StepSequences[6])
}

func TestArenaNeed(t *testing.T) {
	assert.Equal(t, 0, arenaNeed(nil))
	assert.Equal(t, stepRecordSize+1, arenaNeed([]Step{Data8(0x42)}))
	assert.Equal(t, 3*stepRecordSize+1+2+4, arenaNeed([]Step{Data8(0x42), Data16(0x4232), Data32(0x423268A4)}))
}

func TestCheckArena(t *testing.T) {
	var m = DefaultMatrix()

	// Four single bytes take the most room.
	require.NoError(t, m.CheckArena(ARENA_SIZE))
	require.NoError(t, m.CheckArena(4*(stepRecordSize+1)))

	var err = m.CheckArena(4*(stepRecordSize+1) - 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[3]")
}

// Whatever CheckArena accepts must run without hitting the fault policy.
func TestCheckArenaMatchesUse(t *testing.T) {
	var steps = []Step{Data8(0x42), Data16(0x4232), Data32(0x423268A4)}
	var m = &TestMatrix{
		Polynomials:   []Polynomial{Crc32(0x04C11DB7)},
		InitialValues: []uint32{0},
		StepSequences: [][]Step{steps},
	}

	var need = arenaNeed(steps)
	require.NoError(t, m.CheckArena(need))
	require.Error(t, m.CheckArena(need-1))

	text_color_init(0)

	var arena = NewArena(need, panicOnExhaustion)
	var summary = RunTests(NewReportSink(new(bytes.Buffer), false), NewCrcPeripheral(NewCrcSimulator()), m, arena)

	assert.Equal(t, 8, summary.Passed)
}
