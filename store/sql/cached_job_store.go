package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/quantabridge/go-qpu/core"
)

const jobCacheKeyPrefix = "go-qpu::job::v1"

// JobReader is the read surface the cached store accelerates.
type JobReader interface {
	Get(ctx context.Context, id string) (JobEntry, error)
}

// JobLedgerStore is the store surface the cache wraps.
type JobLedgerStore interface {
	JobReader
	Create(ctx context.Context, submission core.JobSubmission) (core.JobSubmission, error)
	MarkTerminal(ctx context.Context, id string, status core.JobStatus, message string) error
}

// CachedJobStore serves ledger reads through a cache and invalidates on
// terminal writes, so repeated status queries for the same submission do
// not hit the database.
type CachedJobStore struct {
	base  JobLedgerStore
	cache repositorycache.CacheService
}

func NewCachedJobStore(base JobLedgerStore, cacheService repositorycache.CacheService) (*CachedJobStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base job store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: job cache service is required")
	}
	return &CachedJobStore{base: base, cache: cacheService}, nil
}

// JobCacheKey returns the deterministic cache key contract for ledger
// reads: go-qpu::job::v1::<submission_id> with the id URL-path escaped.
func JobCacheKey(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("sqlstore: submission id is required")
	}
	return jobCacheKeyPrefix + "::" + url.PathEscape(id), nil
}

func (s *CachedJobStore) Create(ctx context.Context, submission core.JobSubmission) (core.JobSubmission, error) {
	if s == nil || s.base == nil {
		return core.JobSubmission{}, fmt.Errorf("sqlstore: cached job store is not configured")
	}
	return s.base.Create(ctx, submission)
}

func (s *CachedJobStore) MarkTerminal(ctx context.Context, id string, status core.JobStatus, message string) error {
	if s == nil || s.base == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached job store is not configured")
	}
	if err := s.base.MarkTerminal(ctx, id, status, message); err != nil {
		return err
	}
	cacheKey, err := JobCacheKey(id)
	if err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		return fmt.Errorf("sqlstore: invalidate job cache entry: %w", err)
	}
	return nil
}

func (s *CachedJobStore) Get(ctx context.Context, id string) (JobEntry, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return JobEntry{}, fmt.Errorf("sqlstore: cached job store is not configured")
	}
	cacheKey, err := JobCacheKey(id)
	if err != nil {
		return JobEntry{}, err
	}
	return repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (JobEntry, error) {
		return s.base.Get(ctx, id)
	})
}

// RecordSubmission implements core.JobLedger.
func (s *CachedJobStore) RecordSubmission(ctx context.Context, submission core.JobSubmission) (core.JobSubmission, error) {
	return s.Create(ctx, submission)
}

// RecordTerminal implements core.JobLedger.
func (s *CachedJobStore) RecordTerminal(ctx context.Context, id string, status core.JobStatus, message string) error {
	return s.MarkTerminal(ctx, id, status, message)
}

// GetSubmission implements core.JobLedger.
func (s *CachedJobStore) GetSubmission(ctx context.Context, id string) (core.JobSubmission, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return core.JobSubmission{}, err
	}
	return entry.Submission, nil
}
