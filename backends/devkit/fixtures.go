package devkit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quantabridge/go-qpu/core"
)

// AcceptedJobResponse builds the submission response a job endpoint returns
// when it accepts a batch: a JSON string carrying the server-side job id.
func AcceptedJobResponse(jobID string) core.TransportResponse {
	body, _ := json.Marshal(strings.TrimSpace(jobID))
	return core.TransportResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

// StatusResponse builds a poll response carrying only a status, the shape
// returned while a job is still in flight.
func StatusResponse(status core.JobStatus) core.TransportResponse {
	return core.TransportResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(fmt.Sprintf(`[{"status":%q,"result":[]}]`, status)),
	}
}

// CompletedResponse builds a terminal poll response with one encoded
// histogram per submitted circuit, in submission order.
func CompletedResponse(histograms ...core.Histogram) core.TransportResponse {
	results := make([]string, 0, len(histograms))
	for _, histogram := range histograms {
		encoded, _ := json.Marshal(histogram)
		results = append(results, string(encoded))
	}
	record := map[string]any{
		"status": string(core.JobStatusCompleted),
		"result": results,
	}
	body, _ := json.Marshal([]any{record})
	return core.TransportResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

// ErrorResponse builds a non-2xx transport response with a plain text body.
func ErrorResponse(statusCode int, message string) core.TransportResponse {
	return core.TransportResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "text/plain"},
		Body:       []byte(message),
	}
}
