package credentials

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/quantabridge/go-qpu/core"
)

func credentialError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryAuth).
		WithTextCode(core.BackendErrorCredentialsInvalid)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return core.EnsureErrorEnvelope(err)
}

func parseError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryValidation).
		WithTextCode(core.BackendErrorConfigInvalid)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return core.EnsureErrorEnvelope(err)
}

func wrapReadError(source error, message string, metadata map[string]any) error {
	err := goerrors.Wrap(source, goerrors.CategoryBadInput, message).
		WithTextCode(core.BackendErrorConfigInvalid)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return core.EnsureErrorEnvelope(err)
}
