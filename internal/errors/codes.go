package errors

// Code represents an error code
type Code string

// Error codes. The first block mirrors the common RPC-style codes; the
// second block covers the damage pipeline taxonomy. Validation failures map
// to CodeInvalidArgument; everything that crosses a subsystem boundary gets
// its own code so callers can decide whether to retry.
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"

	// CodeConfiguration covers missing or invalid registered definition ids
	// and failed document validation. Never retryable.
	CodeConfiguration Code = "CONFIGURATION"

	// CodeIntegration covers failed or timed-out bridge calls. Retryable up
	// to the configured attempt limit.
	CodeIntegration Code = "INTEGRATION"

	// CodeResourceApplication covers a rejected final resource delta, e.g.
	// the target despawned mid-flight. Surfaced, not retried.
	CodeResourceApplication Code = "RESOURCE_APPLICATION"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Retryable reports whether an operation that failed with this code may be
// attempted again without caller intervention.
func (c Code) Retryable() bool {
	switch c {
	case CodeIntegration, CodeUnavailable, CodeDeadlineExceeded:
		return true
	default:
		return false
	}
}
