package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// Backend maps the fixed remote-execution contract onto one vendor's
// job-submission API. Implementations are immutable after construction;
// concurrent reuse of a single instance across simultaneous submissions is
// not supported and must be serialized by the caller.
type Backend interface {
	// ID is the registry name of this backend, matching its target config.
	ID() string

	// Target returns the machine identifier submissions are routed to.
	Target() string

	// CreateJob builds the submission payload for a batch of compiled
	// programs. Credentials are re-resolved on every call so headers carry
	// the freshest tokens. The input batch is never mutated.
	CreateJob(ctx context.Context, programs []CircuitProgram) (JobPayload, error)

	// ExtractJobHandle derives the durable job handle from the raw
	// submission response body.
	ExtractJobHandle(postResponse []byte) (JobHandle, error)

	// JobStatusRequest builds the polling request for a job handle,
	// including freshly-resolved auth headers.
	JobStatusRequest(handle JobHandle) (TransportRequest, error)

	// ClassifyStatus inspects one polling response body and reports whether
	// the job reached terminal success. Terminal failure or cancellation is
	// returned as an error alongside the observed status.
	ClassifyStatus(body []byte) (JobPoll, error)

	// NextPollInterval recommends how long the caller should wait before
	// the next poll. The backend itself never sleeps.
	NextPollInterval() time.Duration

	// DecodeResults turns a terminal-success response body into the generic
	// sample result, one histogram per submitted circuit in order.
	DecodeResults(body []byte, programs []CircuitProgram) (SampleResult, error)
}

type TransportRequest struct {
	Method      string
	URL         string
	Headers     map[string]string
	Query       map[string]string
	Body        []byte
	Metadata    map[string]any
	Timeout     time.Duration
	Idempotency string
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

// TransportAdapter performs a single request/response exchange. Retry and
// backoff policy live with the adapter or its caller, never in backends.
type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// JobLedger journals accepted submissions and their terminal outcomes.
type JobLedger interface {
	RecordSubmission(ctx context.Context, submission JobSubmission) (JobSubmission, error)
	RecordTerminal(ctx context.Context, id string, status JobStatus, message string) error
	GetSubmission(ctx context.Context, id string) (JobSubmission, error)
}

// MetricsRecorder receives operation counters and timings.
type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveDuration(ctx context.Context, name string, value time.Duration, tags map[string]string)
}

type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveDuration(context.Context, string, time.Duration, map[string]string) {
}

var _ MetricsRecorder = NopMetricsRecorder{}
