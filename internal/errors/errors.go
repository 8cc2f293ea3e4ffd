// Package errors carries a machine-readable Kind alongside each error so
// callers can branch on the failure category while users still see a plain
// message. Wrapped causes stay reachable through errors.Is/As.
package errors

import "errors"

// Kind is a machine-readable error category.
type Kind string

const (
	// Configuration indicates an invalid or unsupported setting, rejected
	// before any connection attempt (unknown backend kind, bad port).
	Configuration Kind = "configuration"
	// Connection indicates the backend could not be reached or a session
	// could not be established.
	Connection Kind = "connection"
	// ConstraintViolation indicates a referential-integrity or uniqueness
	// failure reported by the backend.
	ConstraintViolation Kind = "constraint_violation"
	// SyntaxDefect indicates the statement was rejected as malformed.
	SyntaxDefect Kind = "syntax_defect"
	// Operational indicates a backend-side runtime failure (timeout,
	// connectivity loss mid-statement).
	Operational Kind = "operational"
	// NotFound indicates a requested record or identifier was unresolved.
	NotFound Kind = "not_found"
	// Unknown is the fallback for unclassified failures.
	Unknown Kind = "unknown"
)

// E is an error tagged with a Kind. Err, when set, is the underlying cause.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	msg := string(e.Kind) + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind carried by err, or Unknown when err carries none.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
