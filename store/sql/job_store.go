package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/quantabridge/go-qpu/core"
	"github.com/uptrace/bun"
)

// JobStore journals job submissions and their terminal outcomes in the
// qpu_jobs table.
type JobStore struct {
	db   *bun.DB
	repo repository.Repository[*jobRecord]
}

func NewJobStore(db *bun.DB) (*JobStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*jobRecord](db, jobHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid job repository wiring: %w", err)
		}
	}
	return &JobStore{
		db:   db,
		repo: repo,
	}, nil
}

// Create journals an accepted submission with a queued status.
func (s *JobStore) Create(ctx context.Context, submission core.JobSubmission) (core.JobSubmission, error) {
	if s == nil || s.db == nil {
		return core.JobSubmission{}, fmt.Errorf("sqlstore: job store is not configured")
	}
	submission.BackendID = strings.TrimSpace(submission.BackendID)
	if submission.BackendID == "" {
		return core.JobSubmission{}, fmt.Errorf("sqlstore: submission backend id is required")
	}
	if strings.TrimSpace(submission.ID) == "" {
		submission.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = now
	}

	record := newJobRecord(submission, core.JobStatusQueued, now)
	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return core.JobSubmission{}, err
	}
	return record.toEntry().Submission, nil
}

// MarkTerminal records the lifecycle outcome for a journaled submission.
func (s *JobStore) MarkTerminal(ctx context.Context, id string, status core.JobStatus, message string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: job store is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("sqlstore: submission id is required")
	}

	result, err := s.db.NewUpdate().
		Model((*jobRecord)(nil)).
		Set("status = ?", string(status)).
		Set("error = ?", strings.TrimSpace(message)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %q", core.ErrSubmissionNotFound, id)
	}
	return nil
}

// Get returns the full ledger entry for a submission id.
func (s *JobStore) Get(ctx context.Context, id string) (JobEntry, error) {
	if s == nil || s.db == nil {
		return JobEntry{}, fmt.Errorf("sqlstore: job store is not configured")
	}
	record := &jobRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", strings.TrimSpace(id)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return JobEntry{}, fmt.Errorf("%w: id %q", core.ErrSubmissionNotFound, id)
		}
		return JobEntry{}, err
	}
	return record.toEntry(), nil
}

// RecordSubmission implements core.JobLedger.
func (s *JobStore) RecordSubmission(ctx context.Context, submission core.JobSubmission) (core.JobSubmission, error) {
	return s.Create(ctx, submission)
}

// RecordTerminal implements core.JobLedger.
func (s *JobStore) RecordTerminal(ctx context.Context, id string, status core.JobStatus, message string) error {
	return s.MarkTerminal(ctx, id, status, message)
}

// GetSubmission implements core.JobLedger.
func (s *JobStore) GetSubmission(ctx context.Context, id string) (core.JobSubmission, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return core.JobSubmission{}, err
	}
	return entry.Submission, nil
}
