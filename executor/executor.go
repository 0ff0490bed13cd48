package executor

import (
	"context"
	"net/http"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
	"github.com/quantabridge/go-qpu/core"
)

// Executor runs the submit, poll, decode lifecycle for one backend over
// one transport. Ledger and Metrics are optional; a nil Logger falls back
// to a no-op logger.
type Executor struct {
	Backend   core.Backend
	Transport core.TransportAdapter
	Ledger    core.JobLedger
	Metrics   core.MetricsRecorder
	Logger    core.Logger
	NewID     func() string
	Now       func() time.Time
}

func New(backend core.Backend, adapter core.TransportAdapter) *Executor {
	return &Executor{
		Backend:   backend,
		Transport: adapter,
		Logger:    glog.Nop(),
		NewID:     uuid.NewString,
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (e *Executor) validate() error {
	if e == nil {
		return dependencyError("executor: executor is nil")
	}
	if e.Backend == nil {
		return dependencyError("executor: backend is required")
	}
	if e.Transport == nil {
		return dependencyError("executor: transport adapter is required")
	}
	return nil
}

// Submit posts a batch of compiled circuits and journals the accepted
// submission. The returned submission carries the vendor job handle.
func (e *Executor) Submit(ctx context.Context, programs []core.CircuitProgram) (core.JobSubmission, error) {
	if err := e.validate(); err != nil {
		return core.JobSubmission{}, err
	}

	payload, err := e.Backend.CreateJob(ctx, programs)
	if err != nil {
		return core.JobSubmission{}, err
	}

	var handle core.JobHandle
	for _, document := range payload.Documents {
		response, err := e.Transport.Do(ctx, core.TransportRequest{
			Method:  http.MethodPost,
			URL:     payload.URL,
			Headers: payload.Headers,
			Body:    document,
		})
		if err != nil {
			return core.JobSubmission{}, e.mapTransportError(err, "submit")
		}
		handle, err = e.Backend.ExtractJobHandle(response.Body)
		if err != nil {
			return core.JobSubmission{}, err
		}
	}

	submission := core.JobSubmission{
		ID:        e.newID(),
		BackendID: e.Backend.ID(),
		Target:    e.Backend.Target(),
		Handle:    handle,
		CreatedAt: e.now(),
	}
	if len(programs) > 0 {
		submission.Name = programs[0].Name
	}
	for _, program := range programs {
		submission.Shots = append(submission.Shots, program.Shots)
	}

	if e.Ledger != nil {
		recorded, err := e.Ledger.RecordSubmission(ctx, submission)
		if err != nil {
			return core.JobSubmission{}, err
		}
		submission = recorded
	}

	e.logInfo(ctx, "job submitted", map[string]any{
		"submission_id": submission.ID,
		"backend_id":    submission.BackendID,
		"target":        submission.Target,
		"job_handle":    submission.Handle.String(),
		"circuits":      len(programs),
		"headers":       core.RedactHeaders(payload.Headers),
	})
	e.count(ctx, "qpu.submit.total", submission.BackendID)

	return submission, nil
}

// Poll performs a single status request and classifies the response. The
// raw response body is returned alongside, so a terminal poll can be
// decoded without a second round trip.
func (e *Executor) Poll(ctx context.Context, handle core.JobHandle) (core.JobPoll, []byte, error) {
	if err := e.validate(); err != nil {
		return core.JobPoll{}, nil, err
	}

	request, err := e.Backend.JobStatusRequest(handle)
	if err != nil {
		return core.JobPoll{}, nil, err
	}
	response, err := e.Transport.Do(ctx, request)
	if err != nil {
		return core.JobPoll{}, nil, e.mapTransportError(err, "poll")
	}
	poll, err := e.Backend.ClassifyStatus(response.Body)
	if err != nil {
		return core.JobPoll{}, response.Body, err
	}
	return poll, response.Body, nil
}

// Run executes the full lifecycle for a batch and returns the decoded
// per-circuit histograms. Polling stops when the context is done.
func (e *Executor) Run(ctx context.Context, programs []core.CircuitProgram) (core.SampleResult, error) {
	if err := e.validate(); err != nil {
		return core.SampleResult{}, err
	}

	startedAt := e.now()
	submission, err := e.Submit(ctx, programs)
	if err != nil {
		return core.SampleResult{}, err
	}

	body, err := e.awaitTerminal(ctx, submission)
	if err != nil {
		e.recordTerminal(ctx, submission, statusFromTerminalError(err), err)
		return core.SampleResult{}, err
	}

	sample, err := e.Backend.DecodeResults(body, programs)
	if err != nil {
		e.recordTerminal(ctx, submission, core.JobStatusFailed, err)
		return core.SampleResult{}, err
	}

	e.recordTerminal(ctx, submission, core.JobStatusCompleted, nil)
	e.logInfo(ctx, "job completed", map[string]any{
		"submission_id": submission.ID,
		"backend_id":    submission.BackendID,
		"job_handle":    submission.Handle.String(),
		"registers":     len(sample.Results),
		"duration_ms":   e.now().Sub(startedAt).Milliseconds(),
	})
	e.observe(ctx, "qpu.run.duration_ms", e.now().Sub(startedAt), submission.BackendID)

	return sample, nil
}

// awaitTerminal polls until the job reports a terminal status and returns
// the body of the terminal poll.
func (e *Executor) awaitTerminal(ctx context.Context, submission core.JobSubmission) ([]byte, error) {
	for {
		poll, body, err := e.Poll(ctx, submission.Handle)
		if err != nil {
			return nil, err
		}
		e.count(ctx, "qpu.poll.total", submission.BackendID)
		if poll.Done {
			return body, nil
		}

		e.logDebug(ctx, "job pending", map[string]any{
			"submission_id": submission.ID,
			"job_handle":    submission.Handle.String(),
			"status":        string(poll.Status),
		})

		timer := time.NewTimer(e.Backend.NextPollInterval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (e *Executor) recordTerminal(ctx context.Context, submission core.JobSubmission, status core.JobStatus, cause error) {
	message := ""
	if cause != nil {
		message = cause.Error()
		e.logError(ctx, "job terminated", map[string]any{
			"submission_id": submission.ID,
			"job_handle":    submission.Handle.String(),
			"status":        string(status),
			"error":         message,
		})
	}
	if e.Ledger == nil {
		return
	}
	if err := e.Ledger.RecordTerminal(ctx, submission.ID, status, message); err != nil {
		e.logError(ctx, "terminal status not journaled", map[string]any{
			"submission_id": submission.ID,
			"error":         err.Error(),
		})
	}
}

func (e *Executor) mapTransportError(err error, stage string) error {
	mapped := core.DefaultErrorMapper(err)
	if mapped == nil {
		return nil
	}
	if mapped.Metadata == nil {
		mapped.Metadata = map[string]any{}
	}
	mapped.Metadata["stage"] = stage
	return mapped
}

// statusFromTerminalError maps a terminal classify error back to the
// vendor status that produced it, defaulting to Failed.
func statusFromTerminalError(err error) core.JobStatus {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == core.BackendErrorJobCancelled {
		return core.JobStatusCanceled
	}
	return core.JobStatusFailed
}

func (e *Executor) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

func (e *Executor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}
