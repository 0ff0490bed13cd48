// Package transport implements the reusable request/response clients QPU
// backends submit and poll jobs through. Retry and backoff policy belongs
// here or above; backends only ever build requests and interpret bodies.
package transport
