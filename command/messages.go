package command

import (
	"fmt"
	"strings"

	"github.com/quantabridge/go-qpu/core"
)

const (
	TypeSubmitJob  = "qpu.command.job.submit"
	TypeJobStatus  = "qpu.query.job.status"
	TypeJobResults = "qpu.query.job.results"
)

// SubmitJobRequest carries a compiled circuit batch bound for one backend.
type SubmitJobRequest struct {
	BackendID string
	Programs  []core.CircuitProgram
}

type SubmitJobMessage struct {
	Request SubmitJobRequest
}

func (SubmitJobMessage) Type() string { return TypeSubmitJob }

func (m SubmitJobMessage) Validate() error {
	if strings.TrimSpace(m.Request.BackendID) == "" {
		return fmt.Errorf("command: backend id is required")
	}
	if len(m.Request.Programs) == 0 {
		return fmt.Errorf("command: at least one circuit is required")
	}
	for i, program := range m.Request.Programs {
		if err := program.Validate(); err != nil {
			return fmt.Errorf("command: circuit %d: %w", i, err)
		}
	}
	return nil
}

type JobStatusMessage struct {
	SubmissionID string
}

func (JobStatusMessage) Type() string { return TypeJobStatus }

func (m JobStatusMessage) Validate() error {
	if strings.TrimSpace(m.SubmissionID) == "" {
		return fmt.Errorf("command: submission id is required")
	}
	return nil
}

type JobResultsMessage struct {
	SubmissionID string
}

func (JobResultsMessage) Type() string { return TypeJobResults }

func (m JobResultsMessage) Validate() error {
	if strings.TrimSpace(m.SubmissionID) == "" {
		return fmt.Errorf("command: submission id is required")
	}
	return nil
}
