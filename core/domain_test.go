package core

import "testing"

func TestHistogramTotalAndClone(t *testing.T) {
	counts := Histogram{"00": 50, "11": 50}
	if got := counts.Total(); got != 100 {
		t.Fatalf("expected total 100, got %d", got)
	}

	cloned := counts.Clone()
	cloned["01"] = 1
	if _, ok := counts["01"]; ok {
		t.Fatalf("clone mutated the source histogram")
	}
}

func TestHistogramBitstringsSorted(t *testing.T) {
	counts := Histogram{"11": 1, "00": 2, "01": 3}
	bits := counts.Bitstrings()
	want := []string{"00", "01", "11"}
	if len(bits) != len(want) {
		t.Fatalf("expected %d bitstrings, got %d", len(want), len(bits))
	}
	for i := range want {
		if bits[i] != want[i] {
			t.Fatalf("expected bitstring %q at %d, got %q", want[i], i, bits[i])
		}
	}
}

func TestJobStatusTerminal(t *testing.T) {
	terminal := []JobStatus{
		JobStatusCompleted,
		JobStatusFailed,
		JobStatusCanceled,
		JobStatusCancelling,
		JobStatusDeleted,
	}
	for _, status := range terminal {
		if !status.Terminal() {
			t.Fatalf("expected %q to be terminal", status)
		}
	}
	for _, status := range []JobStatus{JobStatusQueued, JobStatusRunning, JobStatus("Pending")} {
		if status.Terminal() {
			t.Fatalf("expected %q to be non-terminal", status)
		}
	}
}

func TestSampleResultRegisterLookup(t *testing.T) {
	result := SampleResult{
		Results: []ExecutionResult{
			{RegisterName: "bell", Counts: Histogram{"00": 50, "11": 50}},
			{RegisterName: "ghz", Counts: Histogram{"000": 100}},
		},
	}

	counts, ok := result.Register("ghz")
	if !ok {
		t.Fatalf("expected register ghz to exist")
	}
	if counts["000"] != 100 {
		t.Fatalf("expected 100 counts for 000, got %d", counts["000"])
	}
	if _, ok := result.Register("missing"); ok {
		t.Fatalf("expected missing register lookup to fail")
	}
	if got := result.TotalShots(); got != 200 {
		t.Fatalf("expected 200 total shots, got %d", got)
	}
}

func TestCircuitProgramValidate(t *testing.T) {
	valid := CircuitProgram{Name: "bell", Shots: 100, Code: []byte("bitcode")}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid program, got %v", err)
	}

	if err := (CircuitProgram{Shots: 100, Code: []byte("x")}).Validate(); err == nil {
		t.Fatalf("expected missing name to fail validation")
	}
	if err := (CircuitProgram{Name: "bell", Code: []byte("x")}).Validate(); err == nil {
		t.Fatalf("expected zero shots to fail validation")
	}
	if err := (CircuitProgram{Name: "bell", Shots: 10}).Validate(); err == nil {
		t.Fatalf("expected empty code to fail validation")
	}
}
