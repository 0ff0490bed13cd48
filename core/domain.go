package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrSubmissionNotFound reports a ledger lookup for a submission id that
// was never journaled.
var ErrSubmissionNotFound = errors.New("core: submission not found")

// CircuitProgram is one compiled kernel submitted as part of a batch: a
// human-readable name, the number of repeated executions requested, and the
// compiled bitcode payload.
type CircuitProgram struct {
	Name  string
	Shots int
	Code  []byte
}

func (p CircuitProgram) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("core: circuit name is required")
	}
	if p.Shots <= 0 {
		return fmt.Errorf("core: circuit %q requires a positive shot count, got %d", p.Name, p.Shots)
	}
	if len(p.Code) == 0 {
		return fmt.Errorf("core: circuit %q has an empty code payload", p.Name)
	}
	return nil
}

// JobHandle is the durable reference to a submitted job. For backends that
// do not expose a distinct identifier field, the handle is the stringified
// submission response body.
type JobHandle string

func (h JobHandle) String() string { return string(h) }

// JobPayload is a fully-built submission request: the endpoint, the headers
// carrying freshly-resolved credentials, and one or more vendor-schema
// documents.
type JobPayload struct {
	URL       string
	Headers   map[string]string
	Documents [][]byte
}

// JobStatus is the vendor-reported lifecycle state of a submitted job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "Queued"
	JobStatusRunning    JobStatus = "Running"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusFailed     JobStatus = "Failed"
	JobStatusCanceled   JobStatus = "Canceled"
	JobStatusCancelling JobStatus = "Cancelling"
	JobStatusDeleted    JobStatus = "Deleted"
)

// Terminal reports whether no further polling is meaningful.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCanceled, JobStatusCancelling, JobStatusDeleted:
		return true
	default:
		return false
	}
}

// JobPoll is the outcome of classifying one polling response.
type JobPoll struct {
	Status JobStatus
	Done   bool
}

// Histogram maps observed bitstrings to occurrence counts across shots.
type Histogram map[string]int

// Total returns the sum of all counts.
func (h Histogram) Total() int {
	total := 0
	for _, count := range h {
		total += count
	}
	return total
}

// Clone returns an independent copy.
func (h Histogram) Clone() Histogram {
	if h == nil {
		return nil
	}
	out := make(Histogram, len(h))
	for bits, count := range h {
		out[bits] = count
	}
	return out
}

// Bitstrings returns the observed bitstrings in lexical order.
func (h Histogram) Bitstrings() []string {
	out := make([]string, 0, len(h))
	for bits := range h {
		out = append(out, bits)
	}
	sort.Strings(out)
	return out
}

// ExecutionResult pairs one circuit's measurement histogram with the
// register name it was recorded under.
type ExecutionResult struct {
	RegisterName string
	Counts       Histogram
}

// SampleResult is the ordered decoding of a completed job: one execution
// result per submitted circuit, in submission order.
type SampleResult struct {
	Results []ExecutionResult
}

// Register returns the histogram recorded under the given register name.
func (r SampleResult) Register(name string) (Histogram, bool) {
	for _, result := range r.Results {
		if result.RegisterName == name {
			return result.Counts, true
		}
	}
	return nil, false
}

// TotalShots sums the counts across every register.
func (r SampleResult) TotalShots() int {
	total := 0
	for _, result := range r.Results {
		total += result.Counts.Total()
	}
	return total
}

// JobSubmission is the ledger-facing record of one accepted submission.
type JobSubmission struct {
	ID        string
	BackendID string
	Target    string
	Name      string
	Shots     []int
	Handle    JobHandle
	CreatedAt time.Time
}
