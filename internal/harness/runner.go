package harness

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/WatchBeam/clock"

	"github.com/structsim/structsim/internal/engine"
	"github.com/structsim/structsim/internal/structure"
)

// TraceEvent is one collected event: either an executed phase ("step")
// or an appended log entry ("log"). Seq orders them globally.
type TraceEvent struct {
	Type     string `json:"type"` // "step" or "log"
	Seq      int64  `json:"seq"`
	Op       string `json:"op,omitempty"`
	Phase    string `json:"phase,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every phase highlight and log entry, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors lists expectation and assertion failures. Empty when Pass.
	Errors []string `json:"errors,omitempty"`

	// Final is the session snapshot after the last step.
	Final engine.Snapshot `json:"-"`
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario against a deterministic session and checks
// its expectations and assertions. Execution continues past failed
// expectations so the result reports everything at once; an error is
// returned only when the scenario cannot run at all.
func Run(sc *Scenario) (*Result, error) {
	kind, err := structure.ParseKind(sc.Structure)
	if err != nil {
		return nil, err
	}
	mode := structure.ModeMax
	if sc.Mode != "" {
		mode, _ = structure.ParseMode(sc.Mode)
	}
	seed := sc.Seed
	if seed == 0 {
		seed = 1
	}

	session, err := engine.NewSession(kind, sc.Capacity,
		engine.WithMode(mode),
		engine.WithStepDelay(0),
		engine.WithIDGenerator(structure.NewSequenceGenerator()),
		engine.WithClock(clock.NewMockClock()),
		engine.WithRand(rand.New(rand.NewSource(seed))),
		engine.WithSessionID(sc.Name),
	)
	if err != nil {
		return nil, fmt.Errorf("build session: %w", err)
	}

	result := &Result{Pass: true}
	session.Subscribe(func(ev engine.Event) {
		switch e := ev.(type) {
		case engine.StepEvent:
			result.Trace = append(result.Trace, TraceEvent{
				Type:   "step",
				Seq:    e.Seq,
				Op:     e.Op,
				Phase:  string(e.Phase),
				Detail: e.Detail,
			})
		case engine.LogEvent:
			result.Trace = append(result.Trace, TraceEvent{
				Type:     "log",
				Seq:      e.Entry.Seq,
				Severity: string(e.Entry.Severity),
				Message:  e.Entry.Message,
			})
		}
	})

	ctx := context.Background()
	for i, step := range sc.Steps {
		if err := runStep(ctx, session, step, i, result); err != nil {
			return nil, err
		}
	}

	result.Final = session.Snapshot()
	for i, a := range sc.Assertions {
		if err := checkAssertion(result, a); err != nil {
			result.addError("assertion %d (%s): %v", i, a.Type, err)
		}
	}
	return result, nil
}

func runStep(ctx context.Context, session *engine.Session, step Step, idx int, result *Result) error {
	var opErr error
	var removed structure.Element

	switch step.Op {
	case OpInsert:
		_, opErr = session.Insert(step.Value)
	case OpRemove:
		removed, opErr = session.Remove()
	case OpFill:
		_, opErr = session.RandomFill()
	case OpReset:
		opErr = session.Reset()
	case OpAuto:
		if err := engine.NewScheduler(session, 0).Drain(ctx); err != nil {
			return fmt.Errorf("step %d: drain: %w", idx, err)
		}
	case OpCapacity:
		opErr = session.SetCapacity(*step.Value)
	case OpMode:
		m, _ := structure.ParseMode(step.Mode)
		opErr = session.SetPriorityMode(m)
	default:
		return fmt.Errorf("step %d: unknown op %q", idx, step.Op)
	}

	want := step.Expect
	if want == "" {
		want = ExpectOK
	}
	got := classify(opErr)
	if got != want {
		result.addError("step %d (%s): expected %s, got %s", idx, step.Op, want, got)
	}
	if step.ExpectValue != nil && opErr == nil && step.Op == OpRemove {
		if removed.Value != *step.ExpectValue {
			result.addError("step %d (remove): expected value %d, got %d", idx, *step.ExpectValue, removed.Value)
		}
	}
	return nil
}

// classify maps an operation error to an expectation outcome.
func classify(err error) string {
	switch {
	case err == nil:
		return ExpectOK
	case structure.IsOverflow(err):
		return ExpectOverflow
	case structure.IsUnderflow(err):
		return ExpectUnderflow
	default:
		return fmt.Sprintf("error (%v)", err)
	}
}
