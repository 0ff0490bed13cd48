package executor

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
	"github.com/quantabridge/go-qpu/command"
	"github.com/quantabridge/go-qpu/core"
)

// Service routes command-surface requests to per-backend executors. It
// remembers the circuit batch for each live submission, since decoding a
// result histogram needs the batch's names and shot counts.
type Service struct {
	Registry  *core.BackendRegistry
	Transport core.TransportAdapter
	Ledger    core.JobLedger
	Metrics   core.MetricsRecorder
	Logger    core.Logger
	NewID     func() string
	Now       func() time.Time

	mu      sync.Mutex
	batches map[string][]core.CircuitProgram
}

func NewService(registry *core.BackendRegistry, adapter core.TransportAdapter) *Service {
	return &Service{
		Registry:  registry,
		Transport: adapter,
		Logger:    glog.Nop(),
		NewID:     uuid.NewString,
		Now: func() time.Time {
			return time.Now().UTC()
		},
		batches: map[string][]core.CircuitProgram{},
	}
}

func (s *Service) executorFor(backendID string) (*Executor, error) {
	if s == nil {
		return nil, dependencyError("executor: service is nil")
	}
	if s.Registry == nil {
		return nil, dependencyError("executor: backend registry is required")
	}
	backend, ok := s.Registry.Get(backendID)
	if !ok {
		return nil, goerrors.New(
			fmt.Sprintf("executor: backend %q is not registered", backendID),
			goerrors.CategoryNotFound,
		).WithCode(http.StatusNotFound).WithTextCode(core.BackendErrorNotFound)
	}
	return &Executor{
		Backend:   backend,
		Transport: s.Transport,
		Ledger:    s.Ledger,
		Metrics:   s.Metrics,
		Logger:    s.Logger,
		NewID:     s.NewID,
		Now:       s.Now,
	}, nil
}

// SubmitJob implements command.ExecutionService.
func (s *Service) SubmitJob(ctx context.Context, req command.SubmitJobRequest) (core.JobSubmission, error) {
	exec, err := s.executorFor(req.BackendID)
	if err != nil {
		return core.JobSubmission{}, err
	}
	submission, err := exec.Submit(ctx, req.Programs)
	if err != nil {
		return core.JobSubmission{}, err
	}

	s.mu.Lock()
	if s.batches == nil {
		s.batches = map[string][]core.CircuitProgram{}
	}
	s.batches[submission.ID] = append([]core.CircuitProgram(nil), req.Programs...)
	s.mu.Unlock()

	return submission, nil
}

// JobStatus implements command.ExecutionService with a single remote poll.
func (s *Service) JobStatus(ctx context.Context, submissionID string) (core.JobPoll, error) {
	submission, exec, err := s.resolveSubmission(ctx, submissionID)
	if err != nil {
		return core.JobPoll{}, err
	}
	poll, _, err := exec.Poll(ctx, submission.Handle)
	return poll, err
}

// JobResults implements command.ExecutionService. The submission must have
// been made through this service instance; the remote response alone does
// not identify the circuits. The batch stays on record for the lifetime of
// the service, so a completed submission can be read again.
func (s *Service) JobResults(ctx context.Context, submissionID string) (core.SampleResult, error) {
	submission, exec, err := s.resolveSubmission(ctx, submissionID)
	if err != nil {
		return core.SampleResult{}, err
	}

	s.mu.Lock()
	programs, ok := s.batches[submission.ID]
	s.mu.Unlock()
	if !ok {
		return core.SampleResult{}, fmt.Errorf(
			"executor: no circuit batch on record for submission %q", submissionID,
		)
	}

	poll, body, err := exec.Poll(ctx, submission.Handle)
	if err != nil {
		return core.SampleResult{}, err
	}
	if !poll.Done {
		return core.SampleResult{}, fmt.Errorf(
			"executor: submission %q is still %s", submissionID, poll.Status,
		)
	}

	return exec.Backend.DecodeResults(body, programs)
}

func (s *Service) resolveSubmission(ctx context.Context, submissionID string) (core.JobSubmission, *Executor, error) {
	if s == nil {
		return core.JobSubmission{}, nil, dependencyError("executor: service is nil")
	}
	if s.Ledger == nil {
		return core.JobSubmission{}, nil, dependencyError("executor: job ledger is required")
	}
	if strings.TrimSpace(submissionID) == "" {
		return core.JobSubmission{}, nil, fmt.Errorf("executor: submission id is required")
	}
	submission, err := s.Ledger.GetSubmission(ctx, submissionID)
	if err != nil {
		return core.JobSubmission{}, nil, err
	}
	exec, err := s.executorFor(submission.BackendID)
	if err != nil {
		return core.JobSubmission{}, nil, err
	}
	return submission, exec, nil
}

var _ command.ExecutionService = (*Service)(nil)
