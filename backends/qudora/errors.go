package qudora

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/quantabridge/go-qpu/core"
)

func badInputError(message string) error {
	return core.EnsureErrorEnvelope(
		goerrors.New(message, goerrors.CategoryBadInput).
			WithTextCode(core.BackendErrorBadInput),
	)
}

func remoteJobError(message string, status core.JobStatus, textCode string) error {
	return core.EnsureErrorEnvelope(
		goerrors.New(message, goerrors.CategoryExternal).
			WithTextCode(textCode).
			WithMetadata(map[string]any{"status": string(status)}),
	)
}

func decodeError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryOperation).
		WithTextCode(core.BackendErrorDecodeFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return core.EnsureErrorEnvelope(err)
}

func decodeWrapError(source error, message string, metadata map[string]any) error {
	err := goerrors.Wrap(source, goerrors.CategoryOperation, message).
		WithTextCode(core.BackendErrorDecodeFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return core.EnsureErrorEnvelope(err)
}
