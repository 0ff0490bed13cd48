package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes discriminate configuration errors, remote job errors,
// decode errors, and transport errors.
const (
	BackendErrorBadInput           = "QPU_BAD_INPUT"
	BackendErrorConfigInvalid      = "QPU_CONFIG_INVALID"
	BackendErrorCredentialsInvalid = "QPU_CREDENTIALS_INVALID"
	BackendErrorNotFound           = "QPU_BACKEND_NOT_FOUND"
	BackendErrorJobFailed          = "QPU_JOB_FAILED"
	BackendErrorJobCancelled       = "QPU_JOB_CANCELLED"
	BackendErrorDecodeFailed       = "QPU_RESULT_DECODE_FAILED"
	BackendErrorTransportFailed    = "QPU_TRANSPORT_FAILED"
	BackendErrorInternal           = "QPU_INTERNAL_ERROR"
)

type ErrorMapper func(err error) *goerrors.Error

func DefaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return EnsureErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "backend") && strings.Contains(msg, "not registered"):
		return newBackendError(err.Error(), goerrors.CategoryNotFound, BackendErrorNotFound)
	case strings.Contains(msg, "credential"), strings.Contains(msg, "api key"):
		return newBackendError(err.Error(), goerrors.CategoryAuth, BackendErrorCredentialsInvalid)
	case strings.Contains(msg, "cancel"):
		return newBackendError(err.Error(), goerrors.CategoryExternal, BackendErrorJobCancelled)
	case strings.Contains(msg, "decode"), strings.Contains(msg, "parse"):
		return newBackendError(err.Error(), goerrors.CategoryOperation, BackendErrorDecodeFailed)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "mismatch"):
		return newBackendError(err.Error(), goerrors.CategoryBadInput, BackendErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return EnsureErrorEnvelope(mapped)
}

func newBackendError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return EnsureErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

// EnsureErrorEnvelope fills the code and text-code fields callers rely on
// for retry-vs-abort decisions.
func EnsureErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = backendHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultBackendTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultBackendTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return BackendErrorBadInput
	case goerrors.CategoryNotFound:
		return BackendErrorNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return BackendErrorCredentialsInvalid
	case goerrors.CategoryExternal:
		return BackendErrorTransportFailed
	case goerrors.CategoryOperation:
		return BackendErrorDecodeFailed
	default:
		return BackendErrorInternal
	}
}

func backendHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
