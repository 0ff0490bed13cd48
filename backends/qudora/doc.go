// Package qudora adapts the remote-execution backend contract to the
// Qudora job-submission REST API: it builds submission documents for
// compiled QIR bitcode, polls job status, and decodes the vendor's
// JSON-encoded count histograms into generic sample results.
package qudora
