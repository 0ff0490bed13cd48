package qudora

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/quantabridge/go-qpu/core"
	"github.com/quantabridge/go-qpu/credentials"
)

const pollInterval = time.Second

// Backend implements core.Backend against the Qudora jobs API. All fields
// are frozen at construction; credential resolution happens on every
// header build so rotated tokens are picked up without re-initialization.
type Backend struct {
	cfg      Config
	resolver *credentials.Resolver
}

// New builds a backend from an explicit config.
func New(cfg Config) (*Backend, error) {
	normalized, err := cfg.normalized()
	if err != nil {
		return nil, badInputError(err.Error())
	}
	return &Backend{
		cfg:      normalized,
		resolver: credentials.NewResolver(CredentialsEnvVar, DefaultCredentialsFile),
	}, nil
}

// NewFromSettings builds a backend from the stringly-typed settings map
// used by library-level configuration.
func NewFromSettings(settings map[string]string) (*Backend, error) {
	cfg, err := FromSettings(settings)
	if err != nil {
		return nil, badInputError(err.Error())
	}
	return New(cfg)
}

func (b *Backend) ID() string {
	return BackendID
}

func (b *Backend) Target() string {
	if b == nil {
		return ""
	}
	return b.cfg.Machine
}

// Config returns the frozen backend configuration.
func (b *Backend) Config() Config {
	if b == nil {
		return Config{}
	}
	return b.cfg
}

// CreateJob builds one submission document aggregating the whole batch:
// shots and input_data are parallel arrays in circuit order.
func (b *Backend) CreateJob(_ context.Context, programs []core.CircuitProgram) (core.JobPayload, error) {
	if b == nil {
		return core.JobPayload{}, badInputError("qudora: backend is not configured")
	}
	if len(programs) == 0 {
		return core.JobPayload{}, badInputError("qudora: at least one circuit is required")
	}
	for _, program := range programs {
		if err := program.Validate(); err != nil {
			return core.JobPayload{}, badInputError(err.Error())
		}
	}

	doc := submissionDocument{
		Name:            "CUDA-Q " + programs[0].Name,
		Language:        languageTag,
		Shots:           make([]int, 0, len(programs)),
		Target:          b.cfg.Machine,
		InputData:       make([]string, 0, len(programs)),
		BackendSettings: explicitNull,
	}
	for _, program := range programs {
		doc.Shots = append(doc.Shots, program.Shots)
		doc.InputData = append(doc.InputData, base64.StdEncoding.EncodeToString(program.Code))
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return core.JobPayload{}, decodeWrapError(err, "qudora: encode submission document", nil)
	}

	headers, err := b.Headers()
	if err != nil {
		return core.JobPayload{}, err
	}

	return core.JobPayload{
		URL:       b.cfg.BaseURL,
		Headers:   headers,
		Documents: [][]byte{body},
	}, nil
}

// Headers re-resolves credentials and builds the auth headers for this
// submission. Two consecutive calls against an unchanged source yield
// identical headers.
func (b *Backend) Headers() (map[string]string, error) {
	if b == nil {
		return nil, badInputError("qudora: backend is not configured")
	}
	resolution, err := b.resolver.Resolve(b.cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"Authorization": "Bearer " + resolution.Credentials.APIKey,
		"Content-Type":  "application/json",
		"Connection":    "keep-alive",
		"Accept":        "*/*",
	}, nil
}

// ExtractJobHandle stringifies the entire submission response body: the
// vendor returns no distinct identifier field, so the compacted body is
// the durable job handle.
func (b *Backend) ExtractJobHandle(postResponse []byte) (core.JobHandle, error) {
	trimmed := bytes.TrimSpace(postResponse)
	if len(trimmed) == 0 {
		return "", decodeError("qudora: submission response body is empty", nil)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return "", decodeWrapError(err, "qudora: submission response is not valid JSON", nil)
	}
	return core.JobHandle(compact.String()), nil
}

// JobStatusPath derives the polling URL for a job handle.
func (b *Backend) JobStatusPath(handle core.JobHandle) string {
	if b == nil {
		return ""
	}
	return b.cfg.BaseURL + "?job_id=" + handle.String() + "&include_results=True"
}

func (b *Backend) JobStatusRequest(handle core.JobHandle) (core.TransportRequest, error) {
	if b == nil {
		return core.TransportRequest{}, badInputError("qudora: backend is not configured")
	}
	if handle.String() == "" {
		return core.TransportRequest{}, badInputError("qudora: job handle is required")
	}
	headers, err := b.Headers()
	if err != nil {
		return core.TransportRequest{}, err
	}
	return core.TransportRequest{
		Method:  http.MethodGet,
		URL:     b.JobStatusPath(handle),
		Headers: headers,
	}, nil
}

// ClassifyStatus inspects the first record of the polling response.
func (b *Backend) ClassifyStatus(body []byte) (core.JobPoll, error) {
	records, err := parseStatusRecords(body)
	if err != nil {
		return core.JobPoll{}, err
	}

	status := core.JobStatus(records[0].Status)
	switch status {
	case core.JobStatusFailed:
		return core.JobPoll{Status: status}, remoteJobError(
			"qudora: job failed to execute; see Qudora Cloud for more details",
			status,
			core.BackendErrorJobFailed,
		)
	case core.JobStatusCanceled, core.JobStatusDeleted, core.JobStatusCancelling:
		return core.JobPoll{Status: status}, remoteJobError(
			fmt.Sprintf("qudora: job was cancelled (status %s)", status),
			status,
			core.BackendErrorJobCancelled,
		)
	case core.JobStatusCompleted:
		return core.JobPoll{Status: status, Done: true}, nil
	default:
		return core.JobPoll{Status: status}, nil
	}
}

// NextPollInterval is a fixed cadence; the vendor API has no backoff hints.
func (b *Backend) NextPollInterval() time.Duration {
	return pollInterval
}

// DecodeResults maps a terminal-success response onto one histogram per
// submitted circuit, in submission order, under per-circuit register
// names. Counts must reconcile with the requested shots.
func (b *Backend) DecodeResults(body []byte, programs []core.CircuitProgram) (core.SampleResult, error) {
	records, err := parseStatusRecords(body)
	if err != nil {
		return core.SampleResult{}, err
	}
	resultList := records[0].Result
	if len(resultList) != len(programs) {
		return core.SampleResult{}, decodeError(
			fmt.Sprintf("qudora: expected %d result entries, got %d", len(programs), len(resultList)),
			map[string]any{"expected": len(programs), "got": len(resultList)},
		)
	}

	sample := core.SampleResult{Results: make([]core.ExecutionResult, 0, len(resultList))}
	for i, encoded := range resultList {
		var counts map[string]int
		if err := json.Unmarshal([]byte(encoded), &counts); err != nil {
			return core.SampleResult{}, decodeWrapError(
				err,
				fmt.Sprintf("qudora: parse result histogram for circuit %d", i),
				map[string]any{"circuit": i},
			)
		}

		histogram := make(core.Histogram, len(counts))
		total := 0
		for bits, count := range counts {
			if count < 0 {
				return core.SampleResult{}, decodeError(
					fmt.Sprintf("qudora: negative count %d for bitstring %q in circuit %d", count, bits, i),
					map[string]any{"circuit": i, "bitstring": bits},
				)
			}
			histogram[bits] = count
			total += count
		}
		if total != programs[i].Shots {
			return core.SampleResult{}, decodeError(
				fmt.Sprintf("qudora: circuit %d counts sum to %d, expected %d shots", i, total, programs[i].Shots),
				map[string]any{"circuit": i, "counted": total, "requested": programs[i].Shots},
			)
		}
		sample.Results = append(sample.Results, core.ExecutionResult{
			RegisterName: programs[i].Name,
			Counts:       histogram,
		})
	}
	return sample, nil
}

func parseStatusRecords(body []byte) ([]statusRecord, error) {
	var records []statusRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, decodeWrapError(err, "qudora: parse polling response", nil)
	}
	if len(records) == 0 {
		return nil, decodeError("qudora: polling response carries no job records", nil)
	}
	return records, nil
}

var _ core.Backend = (*Backend)(nil)
