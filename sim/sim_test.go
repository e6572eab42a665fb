package sim_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Alia5/matrixfw/matrix"
	"github.com/Alia5/matrixfw/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardSamplesDrivenRowOnly(t *testing.T) {
	b := sim.NewBoard(2, 2)
	b.Press(matrix.Coord{Row: 1, Col: 0})

	rows, cols := b.RowPins(), b.ColPins()
	low, err := cols[0].IsLow()
	require.NoError(t, err)
	assert.False(t, low, "no row driven")

	require.NoError(t, rows[0].SetLow())
	low, _ = cols[0].IsLow()
	assert.False(t, low)
	require.NoError(t, rows[0].SetHigh())

	require.NoError(t, rows[1].SetLow())
	low, _ = cols[0].IsLow()
	assert.True(t, low)
	low, _ = cols[1].IsLow()
	assert.False(t, low)
	require.NoError(t, rows[1].SetHigh())

	assert.True(t, b.Closed(matrix.Coord{Row: 1, Col: 0}))
	b.Release(matrix.Coord{Row: 1, Col: 0})
	assert.False(t, b.Closed(matrix.Coord{Row: 1, Col: 0}))
}

const yamlScenario = `
name: chord
steps:
  - {tick: 10, row: 1, col: 1, pressed: false}
  - {tick: 0, row: 1, col: 1, pressed: true, bounce: 3}
`

const tomlScenario = `
name = "chord"

[[steps]]
tick = 10
row = 1
col = 1
pressed = false

[[steps]]
tick = 0
row = 1
col = 1
pressed = true
bounce = 3
`

const jsonScenario = `{"name":"chord","steps":[
  {"tick":10,"row":1,"col":1,"pressed":false},
  {"tick":0,"row":1,"col":1,"pressed":true,"bounce":3}
]}`

func TestDecodeFormats(t *testing.T) {
	want := &sim.Scenario{
		Name: "chord",
		Steps: []sim.Step{
			{Tick: 0, Row: 1, Col: 1, Pressed: true, Bounce: 3},
			{Tick: 10, Row: 1, Col: 1, Pressed: false},
		},
	}
	for format, src := range map[string]string{"yaml": yamlScenario, "toml": tomlScenario, "json": jsonScenario} {
		t.Run(format, func(t *testing.T) {
			sc, err := sim.Decode(strings.NewReader(src), format)
			require.NoError(t, err)
			assert.Equal(t, want, sc)
			assert.Equal(t, 11, sc.Ticks())
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := sim.Decode(strings.NewReader("{}"), "xml")
	assert.ErrorIs(t, err, sim.ErrScenario)
	_, err = sim.Decode(strings.NewReader("steps: [1, 2"), "yaml")
	assert.ErrorIs(t, err, sim.ErrScenario)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlScenario), 0o644))

	sc, err := sim.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "chord", sc.Name)
	assert.Len(t, sc.Steps, 2)

	_, err = sim.Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	sc := &sim.Scenario{Steps: []sim.Step{{Tick: 0, Row: 9, Col: 7}}}
	assert.NoError(t, sc.Validate(10, 8))
	assert.ErrorIs(t, sc.Validate(9, 8), sim.ErrScenario)

	sc = &sim.Scenario{Steps: []sim.Step{{Tick: -1}}}
	assert.ErrorIs(t, sc.Validate(10, 8), sim.ErrScenario)
}

func TestApplyBounce(t *testing.T) {
	sc, err := sim.Decode(strings.NewReader(yamlScenario), "yaml")
	require.NoError(t, err)
	b := sim.NewBoard(2, 2)
	c := matrix.Coord{Row: 1, Col: 1}

	var got []bool
	for tick := 0; tick < sc.Ticks(); tick++ {
		sc.Apply(b, tick)
		got = append(got, b.Closed(c))
	}
	assert.Equal(t, []bool{true, false, true, true, true, true, true, true, true, true, false}, got)
}
