package command

import (
	"context"
	"fmt"
	"testing"

	gocmd "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/quantabridge/go-qpu/core"
)

type stubExecutionService struct {
	submitFn  func(ctx context.Context, req SubmitJobRequest) (core.JobSubmission, error)
	statusFn  func(ctx context.Context, submissionID string) (core.JobPoll, error)
	resultsFn func(ctx context.Context, submissionID string) (core.SampleResult, error)
}

func (s stubExecutionService) SubmitJob(ctx context.Context, req SubmitJobRequest) (core.JobSubmission, error) {
	if s.submitFn == nil {
		return core.JobSubmission{}, fmt.Errorf("unexpected submit")
	}
	return s.submitFn(ctx, req)
}

func (s stubExecutionService) JobStatus(ctx context.Context, submissionID string) (core.JobPoll, error) {
	if s.statusFn == nil {
		return core.JobPoll{}, fmt.Errorf("unexpected status query")
	}
	return s.statusFn(ctx, submissionID)
}

func (s stubExecutionService) JobResults(ctx context.Context, submissionID string) (core.SampleResult, error) {
	if s.resultsFn == nil {
		return core.SampleResult{}, fmt.Errorf("unexpected results query")
	}
	return s.resultsFn(ctx, submissionID)
}

func validSubmitMessage() SubmitJobMessage {
	return SubmitJobMessage{Request: SubmitJobRequest{
		BackendID: "qudora",
		Programs: []core.CircuitProgram{
			{Name: "bell", Shots: 100, Code: []byte("bitcode")},
		},
	}}
}

func TestSubmitJobCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := core.JobSubmission{ID: "sub-1", BackendID: "qudora", Handle: core.JobHandle(`"job-1"`)}
	called := false

	svc := stubExecutionService{
		submitFn: func(_ context.Context, req SubmitJobRequest) (core.JobSubmission, error) {
			called = true
			if req.BackendID != "qudora" {
				t.Fatalf("expected backend qudora, got %q", req.BackendID)
			}
			return expected, nil
		},
	}

	cmd := NewSubmitJobCommand(svc)
	collector := gocmd.NewResult[core.JobSubmission]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, validSubmitMessage()); err != nil {
		t.Fatalf("execute submit: %v", err)
	}
	if !called {
		t.Fatalf("expected submit service invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.ID != expected.ID || result.Handle != expected.Handle {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestSubmitJobCommand_RejectsInvalidMessages(t *testing.T) {
	cmd := NewSubmitJobCommand(stubExecutionService{})

	cases := map[string]SubmitJobMessage{
		"missing backend": {Request: SubmitJobRequest{
			Programs: []core.CircuitProgram{{Name: "a", Shots: 1, Code: []byte("x")}},
		}},
		"empty batch": {Request: SubmitJobRequest{BackendID: "qudora"}},
		"zero shots": {Request: SubmitJobRequest{
			BackendID: "qudora",
			Programs:  []core.CircuitProgram{{Name: "a", Shots: 0, Code: []byte("x")}},
		}},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			err := cmd.Execute(context.Background(), msg)
			if err == nil {
				t.Fatalf("expected validation failure")
			}
			var rich *goerrors.Error
			if !goerrors.As(err, &rich) {
				t.Fatalf("expected rich error, got %T", err)
			}
			if rich.TextCode != core.BackendErrorBadInput {
				t.Fatalf("expected bad input code, got %q", rich.TextCode)
			}
		})
	}
}

func TestSubmitJobCommand_MissingServiceFails(t *testing.T) {
	var cmd *SubmitJobCommand
	if err := cmd.Execute(context.Background(), validSubmitMessage()); err == nil {
		t.Fatalf("expected nil command to fail")
	}
	if err := NewSubmitJobCommand(nil).Execute(context.Background(), validSubmitMessage()); err == nil {
		t.Fatalf("expected missing service to fail")
	}
}

func TestJobStatusQuery_DelegatesAndStoresResult(t *testing.T) {
	svc := stubExecutionService{
		statusFn: func(_ context.Context, submissionID string) (core.JobPoll, error) {
			if submissionID != "sub-1" {
				t.Fatalf("unexpected submission id %q", submissionID)
			}
			return core.JobPoll{Status: core.JobStatusRunning}, nil
		},
	}

	query := NewJobStatusQuery(svc)
	collector := gocmd.NewResult[core.JobPoll]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := query.Execute(ctx, JobStatusMessage{SubmissionID: "sub-1"}); err != nil {
		t.Fatalf("execute status: %v", err)
	}
	poll, ok := collector.Load()
	if !ok {
		t.Fatalf("expected poll to be stored")
	}
	if poll.Status != core.JobStatusRunning || poll.Done {
		t.Fatalf("unexpected poll: %+v", poll)
	}

	if err := query.Execute(ctx, JobStatusMessage{}); err == nil {
		t.Fatalf("expected empty submission id to fail")
	}
}

func TestJobResultsQuery_DelegatesAndStoresResult(t *testing.T) {
	expected := core.SampleResult{Results: []core.ExecutionResult{
		{RegisterName: "bell", Counts: core.Histogram{"00": 50, "11": 50}},
	}}
	svc := stubExecutionService{
		resultsFn: func(_ context.Context, submissionID string) (core.SampleResult, error) {
			if submissionID != "sub-2" {
				t.Fatalf("unexpected submission id %q", submissionID)
			}
			return expected, nil
		},
	}

	query := NewJobResultsQuery(svc)
	collector := gocmd.NewResult[core.SampleResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := query.Execute(ctx, JobResultsMessage{SubmissionID: "sub-2"}); err != nil {
		t.Fatalf("execute results: %v", err)
	}
	sample, ok := collector.Load()
	if !ok {
		t.Fatalf("expected sample to be stored")
	}
	counts, found := sample.Register("bell")
	if !found || counts["00"] != 50 {
		t.Fatalf("unexpected sample: %#v", sample)
	}
}

func TestServiceErrorsPassThroughUnchanged(t *testing.T) {
	cause := goerrors.New("remote job failed", goerrors.CategoryExternal).
		WithTextCode(core.BackendErrorJobFailed)
	svc := stubExecutionService{
		submitFn: func(context.Context, SubmitJobRequest) (core.JobSubmission, error) {
			return core.JobSubmission{}, cause
		},
	}

	err := NewSubmitJobCommand(svc).Execute(context.Background(), validSubmitMessage())
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if rich.TextCode != core.BackendErrorJobFailed {
		t.Fatalf("expected pass-through text code, got %q", rich.TextCode)
	}
}
