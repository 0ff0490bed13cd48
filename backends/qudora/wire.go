package qudora

import "encoding/json"

// languageTag identifies the compiled-code format submitted in input_data.
const languageTag = "QIR_BITCODE"

// submissionDocument is the vendor job-submission schema. One document
// carries the whole batch: shots and input_data are parallel arrays, one
// entry per circuit.
type submissionDocument struct {
	Name     string   `json:"name"`
	Language string   `json:"language"`
	Shots    []int    `json:"shots"`
	Target   string   `json:"target"`
	// InputData holds base64-encoded QIR bitcode, one payload per circuit.
	InputData []string `json:"input_data"`
	// BackendSettings is reserved for future vendor options; the API
	// requires an explicit null today.
	BackendSettings json.RawMessage `json:"backend_settings"`
}

// statusRecord is one entry of the polling response array. Result is only
// present once the job reaches terminal success; each entry is itself a
// JSON-encoded bitstring-to-count object.
type statusRecord struct {
	Status string   `json:"status"`
	Result []string `json:"result"`
}

var explicitNull = json.RawMessage("null")
