package sim

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/invopop/jsonschema"
)

var ErrExpectation = errors.New("expectation failed")

// Outcome is what a replay produced. Field names are the variables
// available to expectations.
type Outcome struct {
	Ticks    uint64   `expr:"ticks"`
	Events   uint64   `expr:"events"`
	Reports  uint64   `expr:"reports"`
	Deferred uint64   `expr:"deferred"`
	Overruns uint64   `expr:"overruns"`
	Host     []string `expr:"host"`
	Last     string   `expr:"last"`
}

// Check evaluates every expectation of the scenario against out. All
// failures are reported together.
func (sc *Scenario) Check(out Outcome) error {
	var errs []error
	for _, e := range sc.Expect {
		program, err := expr.Compile(e, expr.Env(Outcome{}), expr.AsBool())
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrScenario, e, err))
			continue
		}
		res, err := expr.Run(program, out)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrExpectation, e, err))
			continue
		}
		if ok, _ := res.(bool); !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrExpectation, e))
		}
	}
	return errors.Join(errs...)
}

// Schema returns the JSON schema of scenario files.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
	}
	schema := r.Reflect(&Scenario{})
	schema.Title = "matrixfw scenario"
	schema.Description = "Scripted switch changes replayed against the simulated matrix."
	return json.MarshalIndent(schema, "", "  ")
}
