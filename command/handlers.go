package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/quantabridge/go-qpu/core"
)

// ExecutionService is the surface the job commands delegate to. The
// executor package provides the production implementation.
type ExecutionService interface {
	SubmitJob(ctx context.Context, req SubmitJobRequest) (core.JobSubmission, error)
	JobStatus(ctx context.Context, submissionID string) (core.JobPoll, error)
	JobResults(ctx context.Context, submissionID string) (core.SampleResult, error)
}

type SubmitJobCommand struct {
	service ExecutionService
}

func NewSubmitJobCommand(service ExecutionService) *SubmitJobCommand {
	return &SubmitJobCommand{service: service}
}

func (c *SubmitJobCommand) Execute(ctx context.Context, msg SubmitJobMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: execution service is required")
	}
	if err := msg.Validate(); err != nil {
		return commandWrapValidation(err, "command: submit job message is invalid")
	}
	out, err := c.service.SubmitJob(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type JobStatusQuery struct {
	service ExecutionService
}

func NewJobStatusQuery(service ExecutionService) *JobStatusQuery {
	return &JobStatusQuery{service: service}
}

func (q *JobStatusQuery) Execute(ctx context.Context, msg JobStatusMessage) error {
	if q == nil || q.service == nil {
		return commandDependencyError("command: execution service is required")
	}
	if err := msg.Validate(); err != nil {
		return commandWrapValidation(err, "command: job status message is invalid")
	}
	out, err := q.service.JobStatus(ctx, msg.SubmissionID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type JobResultsQuery struct {
	service ExecutionService
}

func NewJobResultsQuery(service ExecutionService) *JobResultsQuery {
	return &JobResultsQuery{service: service}
}

func (q *JobResultsQuery) Execute(ctx context.Context, msg JobResultsMessage) error {
	if q == nil || q.service == nil {
		return commandDependencyError("command: execution service is required")
	}
	if err := msg.Validate(); err != nil {
		return commandWrapValidation(err, "command: job results message is invalid")
	}
	out, err := q.service.JobResults(ctx, msg.SubmissionID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
