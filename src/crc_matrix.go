package crcverify

/*------------------------------------------------------------------
 *
 * Purpose:	The set of configurations to validate.
 *
 * Description:	The matrix is the cross product of
 *
 *			polynomials x input reflection modes x
 *			output reflection (off, on) x initial values x
 *			step sequences
 *
 *		The reflection dimensions are always complete.  The other
 *		three come from the built-in defaults or from a YAML file:
 *
 *			polynomials:
 *			  - {width: 7, value: 0x09}
 *			  - {width: 32, value: 0x04C11DB7}
 *			initial_values: [0x00000000, 0xFFFFFFFF]
 *			steps:
 *			  - []
 *			  - [{width: 8, value: 0x42}]
 *			  - [{width: 16, value: 0x4232}, {width: 16, value: 0x68A4}]
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type TestMatrix struct {
	Polynomials   []Polynomial
	InitialValues []uint32
	StepSequences [][]Step
}

func DefaultMatrix() *TestMatrix {
	return &TestMatrix{
		Polynomials: []Polynomial{
			Crc7(0x09),
			Crc8(0x07),
			Crc16(0x8005),
			Crc32(0x1EDC6F41),
			Crc32(0x04C11DB7),
		},
		InitialValues: []uint32{
			0x00000000,
			0xFFFFFFFF,
			0x000000FF,
		},
		StepSequences: [][]Step{
			{},
			{Data8(0x42)},
			{Data16(0x4232)},
			{Data8(0x42), Data8(0x32), Data8(0x68), Data8(0xA4)},
			{Data16(0x4232), Data16(0x68A4)},
			{Data32(0x423268A4)},
			{Data32(0x423268A4), Data32(0xAD91FE38)},
		},
	}
}

// CaseCount is the number of cases the matrix enumerates.
func (m *TestMatrix) CaseCount() int {
	return len(m.Polynomials) * len(bitReflections) * 2 * len(m.InitialValues) * len(m.StepSequences)
}

// arenaNeed is the working memory one case with these steps takes: the
// step records plus the serialized input for the software reference.
func arenaNeed(steps []Step) int {
	var n = len(steps) * stepRecordSize
	for _, s := range steps {
		n += int(s.width) / 8
	}

	return n
}

/*-------------------------------------------------------------------
 *
 * Name:	TestMatrix.CheckArena
 *
 * Purpose:	Make sure every case fits in the working memory arena
 *		before anything is run.
 *
 * Returns:	Error naming the first step sequence that doesn't fit.
 *
 * Description:	Running out part way through is fatal, and would look
 *		like a failed run to anything watching the exit status.
 *
 *--------------------------------------------------------------------*/

func (m *TestMatrix) CheckArena(capacity int) error {
	for i, steps := range m.StepSequences {
		var need = arenaNeed(steps)
		if need > capacity {
			return fmt.Errorf("steps[%d]: needs %d bytes of working memory, arena has %d", i, need, capacity)
		}
	}

	return nil
}

type matrixFileValue struct {
	Width int    `yaml:"width"`
	Value uint64 `yaml:"value"`
}

type matrixFile struct {
	Polynomials   []matrixFileValue   `yaml:"polynomials"`
	InitialValues []uint64            `yaml:"initial_values"`
	Steps         [][]matrixFileValue `yaml:"steps"`
}

/*-------------------------------------------------------------------
 *
 * Name:	ParseMatrix
 *
 * Purpose:	Build a matrix from its YAML form.
 *
 * Returns:	Matrix, or an error naming the first offending entry.
 *		All three lists must be present and non-empty, though
 *		individual step sequences may be empty.
 *
 *--------------------------------------------------------------------*/

func ParseMatrix(data []byte) (*TestMatrix, error) {
	var mf matrixFile

	var unmarshalErr = yaml.Unmarshal(data, &mf)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("parsing matrix: %w", unmarshalErr)
	}

	if len(mf.Polynomials) == 0 {
		return nil, errors.New("matrix has no polynomials")
	}

	if len(mf.InitialValues) == 0 {
		return nil, errors.New("matrix has no initial_values")
	}

	if len(mf.Steps) == 0 {
		return nil, errors.New("matrix has no steps")
	}

	var m = new(TestMatrix)

	for i, p := range mf.Polynomials {
		var poly, err = NewPolynomial(p.Width, p.Value)
		if err != nil {
			return nil, fmt.Errorf("polynomials[%d]: %w", i, err)
		}

		m.Polynomials = append(m.Polynomials, poly)
	}

	for i, v := range mf.InitialValues {
		if v > 0xFFFFFFFF {
			return nil, fmt.Errorf("initial_values[%d]: 0x%x does not fit in 32 bits", i, v)
		}

		m.InitialValues = append(m.InitialValues, uint32(v))
	}

	for i, seq := range mf.Steps {
		var steps = make([]Step, 0, len(seq))

		for j, s := range seq {
			var step, err = NewStep(s.Width, s.Value)
			if err != nil {
				return nil, fmt.Errorf("steps[%d][%d]: %w", i, j, err)
			}

			steps = append(steps, step)
		}

		m.StepSequences = append(m.StepSequences, steps)
	}

	return m, nil
}

func LoadMatrix(path string) (*TestMatrix, error) {
	var data, readErr = os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("reading matrix: %w", readErr)
	}

	var m, err = ParseMatrix(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Places to look for a matrix file when none is named on the command line.
var matrix_search_locations = []string{
	"crcverify.yaml",         // Current working directory
	"data/crcverify.yaml",    // Source tree
	"../data/crcverify.yaml", // Source tree, from cmd/
	"/usr/local/share/crcverify/crcverify.yaml",
	"/usr/share/crcverify/crcverify.yaml",
}

/*-------------------------------------------------------------------
 *
 * Name:	find_matrix
 *
 * Purpose:	Pick the matrix to run.
 *
 * Inputs:	path		- From the command line.  Empty to search.
 *		locations	- Search list.
 *
 * Returns:	The named file if given, otherwise the first file found in
 *		the search list, otherwise the built-in matrix.
 *
 *--------------------------------------------------------------------*/

func find_matrix(path string, locations []string) (*TestMatrix, error) {
	if path != "" {
		return LoadMatrix(path)
	}

	for _, location := range locations {
		var _, statErr = os.Stat(location)
		if statErr != nil {
			continue
		}

		logger.Info("Using matrix file", "path", location)

		return LoadMatrix(location)
	}

	logger.Debug("No matrix file found, using built-in matrix")

	return DefaultMatrix(), nil
}
