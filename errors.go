package aegis

import "errors"

var (
	// ErrAccessDenied is returned by Enforce when a requirement is not
	// satisfied by any rule.
	ErrAccessDenied = errors.New("aegis: access denied")

	// ErrUnauthenticated is returned by Enforce when requirements are
	// declared but no principal is present.
	ErrUnauthenticated = errors.New("aegis: unauthenticated")

	// ErrUnknownAction is returned when a requirement declares an action
	// outside the closed Action set.
	ErrUnknownAction = errors.New("aegis: unknown action")

	// ErrUnknownSubject is returned when a requirement declares a subject
	// outside the closed Subject set.
	ErrUnknownSubject = errors.New("aegis: unknown subject")

	// ErrUnknownReferenceRoot is returned when a dynamic reference does not
	// start with a permitted root (user, params, query, body).
	ErrUnknownReferenceRoot = errors.New("aegis: unknown dynamic reference root")

	// ErrOperationNotRegistered is returned when an operation has no entry
	// in the requirement registry.
	ErrOperationNotRegistered = errors.New("aegis: operation not registered")

	// ErrDuplicateOperation is returned when an operation is registered
	// twice.
	ErrDuplicateOperation = errors.New("aegis: operation already registered")
)
