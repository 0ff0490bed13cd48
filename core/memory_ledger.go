package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryJobLedger is an in-process JobLedger, suitable for tests and for
// callers that do not wire persistence.
type MemoryJobLedger struct {
	mu          sync.Mutex
	submissions map[string]JobSubmission
	terminals   map[string]terminalRecord
}

type terminalRecord struct {
	Status  JobStatus
	Message string
}

func NewMemoryJobLedger() *MemoryJobLedger {
	return &MemoryJobLedger{
		submissions: map[string]JobSubmission{},
		terminals:   map[string]terminalRecord{},
	}
}

func (l *MemoryJobLedger) RecordSubmission(_ context.Context, submission JobSubmission) (JobSubmission, error) {
	if l == nil {
		return JobSubmission{}, fmt.Errorf("core: memory job ledger is nil")
	}
	if strings.TrimSpace(submission.BackendID) == "" {
		return JobSubmission{}, fmt.Errorf("core: submission backend id is required")
	}
	if strings.TrimSpace(submission.ID) == "" {
		submission.ID = uuid.NewString()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	submission.Shots = append([]int(nil), submission.Shots...)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.submissions[submission.ID]; exists {
		return JobSubmission{}, fmt.Errorf("core: submission already recorded: %s", submission.ID)
	}
	l.submissions[submission.ID] = submission
	return submission, nil
}

func (l *MemoryJobLedger) RecordTerminal(_ context.Context, id string, status JobStatus, message string) error {
	if l == nil {
		return fmt.Errorf("core: memory job ledger is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("core: submission id is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.submissions[id]; !exists {
		return fmt.Errorf("core: submission not recorded: %s", id)
	}
	l.terminals[id] = terminalRecord{Status: status, Message: strings.TrimSpace(message)}
	return nil
}

func (l *MemoryJobLedger) GetSubmission(_ context.Context, id string) (JobSubmission, error) {
	if l == nil {
		return JobSubmission{}, fmt.Errorf("core: memory job ledger is nil")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	submission, ok := l.submissions[strings.TrimSpace(id)]
	if !ok {
		return JobSubmission{}, fmt.Errorf("%w: id %q", ErrSubmissionNotFound, id)
	}
	submission.Shots = append([]int(nil), submission.Shots...)
	return submission, nil
}

// TerminalStatus reports the journaled terminal state for a submission.
func (l *MemoryJobLedger) TerminalStatus(id string) (JobStatus, string, bool) {
	if l == nil {
		return "", "", false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	record, ok := l.terminals[strings.TrimSpace(id)]
	return record.Status, record.Message, ok
}

var _ JobLedger = (*MemoryJobLedger)(nil)
