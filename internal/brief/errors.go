package brief

import "fmt"

// ValidationError rejects caller input with a human-readable reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ServiceError wraps provider-level failures: network errors, non-2xx
// statuses, timeouts. Distinct from parse and shape errors so callers can
// tell "provider unreachable" from "provider replied with garbage".
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string { return fmt.Sprintf("llm service error: %v", e.Err) }
func (e *ServiceError) Unwrap() error { return e.Err }

// MalformedResponseError means the provider's reply was not valid JSON.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON: %v", e.Err)
}
func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ResponseShapeError means the provider returned valid JSON that violates
// the brief contract. Detail names the specific violation.
type ResponseShapeError struct {
	Detail string
}

func (e *ResponseShapeError) Error() string { return e.Detail }
