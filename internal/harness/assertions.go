package harness

import (
	"fmt"
	"strings"

	"github.com/structsim/structsim/internal/engine"
)

// checkAssertion validates one assertion against the result.
func checkAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertFinalState:
		return assertFinalState(result.Final, a)
	case AssertLogContains:
		return assertLogContains(result.Final.Log, a)
	case AssertLogCount:
		return assertLogCount(result.Final.Log, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertFinalState(snap engine.Snapshot, a Assertion) error {
	if a.Length != nil && snap.Length != *a.Length {
		return fmt.Errorf("length: expected %d, got %d", *a.Length, snap.Length)
	}
	if a.Front != nil && snap.Front != *a.Front {
		return fmt.Errorf("front: expected %d, got %d", *a.Front, snap.Front)
	}
	if a.Rear != nil && snap.Rear != *a.Rear {
		return fmt.Errorf("rear: expected %d, got %d", *a.Rear, snap.Rear)
	}
	if a.Values != nil {
		var got []int
		for _, slot := range snap.Slots {
			if slot.Element != nil {
				got = append(got, slot.Element.Value)
			}
		}
		if len(got) != len(a.Values) {
			return fmt.Errorf("values: expected %v, got %v", a.Values, got)
		}
		for i := range got {
			if got[i] != a.Values[i] {
				return fmt.Errorf("values: expected %v, got %v", a.Values, got)
			}
		}
	}
	return nil
}

func matchEntry(e engine.LogEntry, a Assertion) bool {
	if a.Severity != "" && string(e.Severity) != a.Severity {
		return false
	}
	if a.Message != "" && !strings.Contains(e.Message, a.Message) {
		return false
	}
	return true
}

func assertLogContains(log []engine.LogEntry, a Assertion) error {
	for _, e := range log {
		if matchEntry(e, a) {
			return nil
		}
	}
	return fmt.Errorf("no log entry matches severity=%q message~%q", a.Severity, a.Message)
}

func assertLogCount(log []engine.LogEntry, a Assertion) error {
	count := 0
	for _, e := range log {
		if matchEntry(e, a) {
			count++
		}
	}
	if count != a.Count {
		return fmt.Errorf("expected %d matching entries, got %d", a.Count, count)
	}
	return nil
}
