package sqlstore

import "github.com/quantabridge/go-qpu/core"

var (
	_ core.JobLedger = (*JobStore)(nil)
	_ core.JobLedger = (*CachedJobStore)(nil)
	_ JobLedgerStore = (*JobStore)(nil)
	_ JobLedgerStore = (*CachedJobStore)(nil)
)
