package berth

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidFactory indicates a factory function is invalid or nil
	CodeInvalidFactory = "INVALID_FACTORY"

	// CodeDuplicateRegistration indicates a service name is already registered
	CodeDuplicateRegistration = "DUPLICATE_REGISTRATION"

	// CodeUnknownService indicates no descriptor exists for a service name
	CodeUnknownService = "UNKNOWN_SERVICE"

	// CodeInvalidSession indicates an empty or missing session identifier
	CodeInvalidSession = "INVALID_SESSION"

	// CodeNotDisposable indicates a session-scoped instance lacks a Dispose method
	CodeNotDisposable = "NOT_DISPOSABLE"

	// CodeDecoratorContract indicates a decorator layer broke the service contract
	CodeDecoratorContract = "DECORATOR_CONTRACT_VIOLATION"

	// CodeScopeRequired indicates a scoped service was resolved outside a scope
	CodeScopeRequired = "SCOPE_REQUIRED"

	// CodeScopeEnded indicates operation on an ended scope
	CodeScopeEnded = "SCOPE_ENDED"

	// CodeContainerClosed indicates operation on a closed container
	CodeContainerClosed = "CONTAINER_CLOSED"

	// CodeTypeMismatch indicates a type mismatch during service resolution
	CodeTypeMismatch = "TYPE_MISMATCH"

	// CodeServiceError indicates an error occurred during service operation
	CodeServiceError = "SERVICE_ERROR"
)

// =============================================================================
// ERROR TYPE
// =============================================================================

// Error is a coded container error. Errors carrying the same code compare as
// equivalent under errors.Is, so callers can match on the sentinel values
// below without caring which service or session produced the error.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}

	return false
}

func newError(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidFactory is returned when a nil factory is provided.
var ErrInvalidFactory = newError(CodeInvalidFactory, "factory cannot be nil", nil)

// ErrUnknownServiceSentinel matches any unknown-service error.
var ErrUnknownServiceSentinel = newError(CodeUnknownService, "unknown service", nil)

// ErrInvalidSession is returned when resolving a session-scoped service
// without a session identifier.
var ErrInvalidSession = newError(CodeInvalidSession, "session identifier is empty", nil)

// ErrNotDisposableSentinel matches any not-disposable error.
var ErrNotDisposableSentinel = newError(CodeNotDisposable, "instance is not disposable", nil)

// ErrDecoratorContractSentinel matches any decorator contract violation.
var ErrDecoratorContractSentinel = newError(CodeDecoratorContract, "decorator contract violation", nil)

// ErrDuplicateRegistrationSentinel matches any duplicate registration error.
var ErrDuplicateRegistrationSentinel = newError(CodeDuplicateRegistration, "service already registered", nil)

// ErrScopeEnded is returned when operations are attempted on an ended scope.
var ErrScopeEnded = newError(CodeScopeEnded, "scope has ended", nil)

// ErrContainerClosed is returned when resolving from a closed container.
var ErrContainerClosed = newError(CodeContainerClosed, "container is closed", nil)

// ErrTypeMismatchSentinel matches any type mismatch error.
var ErrTypeMismatchSentinel = newError(CodeTypeMismatch, "type mismatch", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrUnknownService creates an error for an unregistered service name.
func ErrUnknownService(name string) *Error {
	return newError(CodeUnknownService, fmt.Sprintf("service %q not registered", name), nil)
}

// ErrDuplicateRegistration creates an error for a name that already has a
// registration.
func ErrDuplicateRegistration(name string) *Error {
	return newError(CodeDuplicateRegistration, fmt.Sprintf("service %q already registered", name), nil)
}

// ErrNotDisposable creates an error for a session-scoped instance that does
// not implement Disposable.
func ErrNotDisposable(name string, instance any) *Error {
	return newError(
		CodeNotDisposable,
		fmt.Sprintf("session-scoped service %q produced %T, which has no Dispose method", name, instance),
		nil,
	)
}

// ErrDecoratorContract creates an error for a decorator whose input does not
// satisfy the service contract.
func ErrDecoratorContract(decorator string, got any) *Error {
	return newError(
		CodeDecoratorContract,
		fmt.Sprintf("decorator %q received %T, which does not satisfy the service contract", decorator, got),
		nil,
	)
}

// ErrScopeRequired creates an error for a scoped service resolved directly
// from the container.
func ErrScopeRequired(name string) *Error {
	return newError(CodeScopeRequired, fmt.Sprintf("scoped service %q must be resolved from a scope", name), nil)
}

// ErrTypeMismatch creates an error for a resolution whose result has an
// unexpected type.
func ErrTypeMismatch(name string, actual any) *Error {
	return newError(CodeTypeMismatch, fmt.Sprintf("service %q type mismatch: got %T", name, actual), nil)
}

// NewServiceError wraps a failure from a service operation.
func NewServiceError(name, operation string, cause error) *Error {
	return newError(CodeServiceError, fmt.Sprintf("service %q error during %s", name, operation), cause)
}
