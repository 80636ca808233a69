package gridastar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStepper_StepsScenarioA(t *testing.T) {
	start, end := Position{0, 0}, Position{2, 2}
	grid := newSearchGrid(t, 3, start, end)

	stepper, err := NewStepper(grid, start, end)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}

	first := stepper.Step()
	if first.Current != start || first.StepIndex != 1 || first.FrontierSize != 2 {
		t.Errorf("unexpected first snapshot: %+v", first)
	}
	if first.Done || first.Outcome != OutcomePending {
		t.Errorf("Expected pending after first step, got %+v", first)
	}

	var expanded []Position
	expanded = append(expanded, first.Current)
	last := first
	for !stepper.Done() {
		last = stepper.Step()
		expanded = append(expanded, last.Current)
	}

	wantOrder := []Position{{0, 0}, {1, 0}, {0, 1}, {2, 0}, {1, 1}, {0, 2}, {2, 1}, {1, 2}, {2, 2}}
	if diff := cmp.Diff(wantOrder, expanded); diff != "" {
		t.Errorf("expansion order mismatch (-want +got):\n%s", diff)
	}
	if last.Outcome != OutcomeFound || !last.Done || last.StepIndex != 9 {
		t.Errorf("unexpected final snapshot: %+v", last)
	}
	if len(last.Path) != 5 {
		t.Errorf("Expected 5 path cells, got %v", last.Path)
	}

	again := stepper.Step()
	if diff := cmp.Diff(last, again); diff != "" {
		t.Errorf("Step after done changed the snapshot (-before +after):\n%s", diff)
	}
}

func TestStepper_NotFoundNeedsExtraStep(t *testing.T) {
	start, end := Position{0, 0}, Position{0, 2}
	grid := newSearchGrid(t, 3, start, end, Position{0, 1}, Position{1, 1}, Position{2, 1})

	stepper, err := NewStepper(grid, start, end)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}
	for i := 0; i < 3; i++ {
		if snap := stepper.Step(); snap.Done {
			t.Fatalf("step %d: done too early: %+v", i+1, snap)
		}
	}
	snap := stepper.Step()
	if !snap.Done || snap.Outcome != OutcomeNotFound {
		t.Errorf("Expected not_found, got %+v", snap)
	}
	if snap.StepIndex != 3 {
		t.Errorf("Expected step index to stay at 3, got %d", snap.StepIndex)
	}
}

func TestStepper_Cancel(t *testing.T) {
	start, end := Position{0, 0}, Position{2, 2}
	grid := newSearchGrid(t, 3, start, end)

	stepper, err := NewStepper(grid, start, end)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}
	stepper.Step()
	stepper.Cancel()

	if !stepper.Done() {
		t.Fatal("Expected stepper to be done after Cancel")
	}
	result := stepper.Result()
	if result.Outcome != OutcomeCancelled || result.ExpandedNodes != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	// cancelling a finished search changes nothing
	stepper.Cancel()
	if stepper.Result().Outcome != OutcomeCancelled {
		t.Errorf("Expected outcome to stay cancelled, got %s", stepper.Result().Outcome)
	}
}

func TestStepper_ResultPathIsACopy(t *testing.T) {
	start, end := Position{0, 0}, Position{0, 1}
	grid := newSearchGrid(t, 2, start, end)

	stepper, _ := NewStepper(grid, start, end)
	for !stepper.Done() {
		stepper.Step()
	}
	result := stepper.Result()
	result.Path[0] = Position{9, 9}
	if stepper.Result().Path[0] != start {
		t.Error("Result path aliases the stepper's state")
	}
}

func TestOutcome_String(t *testing.T) {
	for outcome, want := range map[Outcome]string{
		OutcomePending:   "pending",
		OutcomeFound:     "found",
		OutcomeNotFound:  "not_found",
		OutcomeCancelled: "cancelled",
		Outcome(9):       "Outcome(9)",
	} {
		if got := outcome.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(outcome), got, want)
		}
	}
}

func TestOutcome_UnmarshalText(t *testing.T) {
	var outcome Outcome
	if err := outcome.UnmarshalText([]byte("not_found")); err != nil || outcome != OutcomeNotFound {
		t.Errorf("UnmarshalText(not_found) = %s, %v", outcome, err)
	}
	if err := outcome.UnmarshalText([]byte("lost")); err == nil {
		t.Error("Expected an error for an unknown outcome")
	}
}
