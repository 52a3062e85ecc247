package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/structsim/structsim/internal/structure"
)

// Scenario defines a simulation test scenario: a structure
// configuration, a flow of operations with expected outcomes, and
// assertions on the final state and log.
type Scenario struct {
	// Name uniquely identifies this scenario (also the golden file name).
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Structure is the variant kind: stack, linear-queue,
	// circular-queue, or priority-queue.
	Structure string `yaml:"structure"`

	// Capacity is the buffer capacity (4-16).
	Capacity int `yaml:"capacity"`

	// Mode is the priority ordering (max|min); priority variant only.
	Mode string `yaml:"mode,omitempty"`

	// Seed fixes the random source. Defaults to 1. Only steps that use
	// randomness (fill, valueless insert) are affected.
	Seed int64 `yaml:"seed,omitempty"`

	// Steps is the operation flow.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state and log.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one operation in the flow.
type Step struct {
	// Op is one of: insert, remove, fill, reset, auto, capacity, mode.
	Op string `yaml:"op"`

	// Value is the insert value (omit for a random one) or the new
	// capacity for a capacity step.
	Value *int `yaml:"value,omitempty"`

	// Mode is the new priority mode for a mode step.
	Mode string `yaml:"mode,omitempty"`

	// Expect is the expected outcome: ok (default), overflow, underflow.
	Expect string `yaml:"expect,omitempty"`

	// ExpectValue, when set on a remove step, is the expected removed
	// value.
	ExpectValue *int `yaml:"expect_value,omitempty"`
}

// Step op constants.
const (
	OpInsert   = "insert"
	OpRemove   = "remove"
	OpFill     = "fill"
	OpReset    = "reset"
	OpAuto     = "auto"
	OpCapacity = "capacity"
	OpMode     = "mode"
)

// Outcome constants for Step.Expect.
const (
	ExpectOK        = "ok"
	ExpectOverflow  = "overflow"
	ExpectUnderflow = "underflow"
)

// Assertion validates the final snapshot or log.
type Assertion struct {
	// Type is one of: final_state, log_contains, log_count.
	Type string `yaml:"type"`

	// final_state fields; nil means "don't check".
	Length *int  `yaml:"length,omitempty"`
	Front  *int  `yaml:"front,omitempty"`
	Rear   *int  `yaml:"rear,omitempty"`
	Values []int `yaml:"values,omitempty"` // occupied slot values in index order

	// log_contains / log_count fields. Message is a substring match;
	// Severity, when set, must match exactly.
	Message  string `yaml:"message,omitempty"`
	Severity string `yaml:"severity,omitempty"`
	Count    int    `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalState  = "final_state"
	AssertLogContains = "log_contains"
	AssertLogCount    = "log_count"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected, which catches typos like "assertion:" vs "assertions:".
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

func validateScenario(sc *Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := structure.ParseKind(sc.Structure); err != nil {
		return err
	}
	if sc.Capacity < structure.MinCapacity || sc.Capacity > structure.MaxCapacity {
		return fmt.Errorf("capacity %d out of range [%d,%d]", sc.Capacity, structure.MinCapacity, structure.MaxCapacity)
	}
	if sc.Mode != "" {
		if _, err := structure.ParseMode(sc.Mode); err != nil {
			return err
		}
	}
	if len(sc.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}
	for i, step := range sc.Steps {
		switch step.Op {
		case OpInsert, OpRemove, OpFill, OpReset, OpAuto:
		case OpCapacity:
			if step.Value == nil {
				return fmt.Errorf("step %d: capacity step requires value", i)
			}
		case OpMode:
			if _, err := structure.ParseMode(step.Mode); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
		switch step.Expect {
		case "", ExpectOK, ExpectOverflow, ExpectUnderflow:
		default:
			return fmt.Errorf("step %d: unknown expect %q", i, step.Expect)
		}
	}
	for i, a := range sc.Assertions {
		switch a.Type {
		case AssertFinalState, AssertLogContains, AssertLogCount:
		default:
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
	}
	return nil
}
