// Package executor drives a compiled circuit batch through a remote
// backend: build the submission, post it, poll until terminal, decode the
// histograms. It keeps no policy of its own beyond the backend's poll
// interval; retry and timeout decisions belong to the caller's context.
package executor
