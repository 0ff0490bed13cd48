package sqlstore

import (
	"strings"
	"time"

	"github.com/quantabridge/go-qpu/core"
	"github.com/uptrace/bun"
)

type jobRecord struct {
	bun.BaseModel `bun:"table:qpu_jobs,alias:qj"`

	ID        string    `bun:"id,pk"`
	BackendID string    `bun:"backend_id,notnull"`
	Target    string    `bun:"target,notnull"`
	Name      string    `bun:"name"`
	Shots     []int     `bun:"shots,type:jsonb,notnull"`
	Handle    string    `bun:"handle"`
	Status    string    `bun:"status,notnull"`
	Error     string    `bun:"error"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// JobEntry is a ledger row: the accepted submission plus its lifecycle
// outcome once one is recorded.
type JobEntry struct {
	Submission core.JobSubmission
	Status     core.JobStatus
	Message    string
	UpdatedAt  time.Time
}

func newJobRecord(submission core.JobSubmission, status core.JobStatus, now time.Time) *jobRecord {
	return &jobRecord{
		ID:        strings.TrimSpace(submission.ID),
		BackendID: strings.TrimSpace(submission.BackendID),
		Target:    strings.TrimSpace(submission.Target),
		Name:      submission.Name,
		Shots:     append([]int(nil), submission.Shots...),
		Handle:    submission.Handle.String(),
		Status:    string(status),
		CreatedAt: submission.CreatedAt,
		UpdatedAt: now,
	}
}

func (r *jobRecord) toEntry() JobEntry {
	if r == nil {
		return JobEntry{}
	}
	return JobEntry{
		Submission: core.JobSubmission{
			ID:        r.ID,
			BackendID: r.BackendID,
			Target:    r.Target,
			Name:      r.Name,
			Shots:     append([]int(nil), r.Shots...),
			Handle:    core.JobHandle(r.Handle),
			CreatedAt: r.CreatedAt,
		},
		Status:    core.JobStatus(r.Status),
		Message:   r.Error,
		UpdatedAt: r.UpdatedAt,
	}
}
