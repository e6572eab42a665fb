package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Alia5/matrixfw/matrix"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

var ErrScenario = errors.New("invalid scenario")

// Step changes one switch at a given tick. With Bounce > 0 the contact
// chatters for that many ticks before settling in the Pressed state.
type Step struct {
	Tick    int  `json:"tick" yaml:"tick" toml:"tick" jsonschema:"minimum=0,description=Tick at which the switch changes"`
	Row     int  `json:"row" yaml:"row" toml:"row" jsonschema:"minimum=0"`
	Col     int  `json:"col" yaml:"col" toml:"col" jsonschema:"minimum=0"`
	Pressed bool `json:"pressed" yaml:"pressed" toml:"pressed" jsonschema:"description=State the contact settles in"`
	Bounce  int  `json:"bounce,omitempty" yaml:"bounce,omitempty" toml:"bounce,omitempty" jsonschema:"minimum=0,description=Ticks of contact chatter before settling"`
}

// Scenario is a scripted sequence of switch changes.
type Scenario struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Steps []Step `json:"steps" yaml:"steps" toml:"steps" jsonschema:"required"`
	// Expect holds boolean expressions checked against the outcome of a
	// replay.
	Expect []string `json:"expect,omitempty" yaml:"expect,omitempty" toml:"expect,omitempty" jsonschema:"description=Boolean expr-lang expressions over the replay outcome"`
}

// Load reads a scenario file; the format follows the file extension
// (.json, .yaml/.yml or .toml).
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, strings.TrimPrefix(filepath.Ext(path), "."))
}

// Decode parses a scenario in the given format.
func Decode(r io.Reader, format string) (*Scenario, error) {
	var sc Scenario
	var err error
	switch strings.ToLower(format) {
	case "json":
		err = json.NewDecoder(r).Decode(&sc)
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(&sc)
	case "toml":
		err = toml.NewDecoder(r).Decode(&sc)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrScenario, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScenario, err)
	}
	sort.SliceStable(sc.Steps, func(i, j int) bool { return sc.Steps[i].Tick < sc.Steps[j].Tick })
	return &sc, nil
}

// Validate checks every step against a rows x cols matrix.
func (sc *Scenario) Validate(rows, cols int) error {
	for i, st := range sc.Steps {
		if st.Tick < 0 || st.Bounce < 0 {
			return fmt.Errorf("%w: step %d has negative tick or bounce", ErrScenario, i)
		}
		if st.Row < 0 || st.Row >= rows || st.Col < 0 || st.Col >= cols {
			return fmt.Errorf("%w: step %d coordinate (%d,%d) outside %dx%d matrix", ErrScenario, i, st.Row, st.Col, rows, cols)
		}
	}
	return nil
}

// Ticks returns the first tick after which the scenario changes nothing.
func (sc *Scenario) Ticks() int {
	n := 0
	for _, st := range sc.Steps {
		n = max(n, st.Tick+st.Bounce+1)
	}
	return n
}

// Apply sets the board to the state the scenario prescribes at tick.
func (sc *Scenario) Apply(b *Board, tick int) {
	for _, st := range sc.Steps {
		i := tick - st.Tick
		if i < 0 || i > st.Bounce {
			continue
		}
		closed := st.Pressed
		if i < st.Bounce && i%2 == 1 {
			closed = !closed
		}
		b.Set(matrix.Coord{Row: st.Row, Col: st.Col}, closed)
	}
}
