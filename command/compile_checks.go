package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[SubmitJobMessage]  = (*SubmitJobCommand)(nil)
	_ gocmd.Commander[JobStatusMessage]  = (*JobStatusQuery)(nil)
	_ gocmd.Commander[JobResultsMessage] = (*JobResultsQuery)(nil)
)
