// Package qpu adapts compiled quantum circuit batches to hosted QPU job
// APIs: credential resolution, payload construction, status polling and
// result-histogram decoding behind one backend contract.
package qpu

import "github.com/quantabridge/go-qpu/core"

type Config = core.Config

type Backend = core.Backend
type BackendRegistry = core.BackendRegistry
type TransportAdapter = core.TransportAdapter
type JobLedger = core.JobLedger
type MetricsRecorder = core.MetricsRecorder

type CircuitProgram = core.CircuitProgram
type JobHandle = core.JobHandle
type JobPayload = core.JobPayload
type JobStatus = core.JobStatus
type JobPoll = core.JobPoll
type JobSubmission = core.JobSubmission
type Histogram = core.Histogram
type ExecutionResult = core.ExecutionResult
type SampleResult = core.SampleResult

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewBackendRegistry() *BackendRegistry {
	return core.NewBackendRegistry()
}
