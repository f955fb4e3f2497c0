package service

import (
	"errors"
	"fmt"
	"strings"

	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/store"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrTerminalState      = errors.New("project is approved and can no longer change")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrQuotaExceeded      = errors.New("quota exceeded")
	ErrValidation         = errors.New("validation failed")
	ErrUnavailable        = errors.New("service unavailable")
)

var domainErrors = []error{
	ErrNotFound,
	ErrForbidden,
	ErrInvalidTransition,
	ErrTerminalState,
	ErrPreconditionFailed,
	ErrQuotaExceeded,
	ErrValidation,
	ErrUnavailable,
}

type QuotaResource string

const (
	QuotaResourceCreatives QuotaResource = "creatives"
	QuotaResourceBrands    QuotaResource = "brands"
)

// QuotaError reports how much room an organization had left when a request
// needed more. It matches ErrQuotaExceeded.
type QuotaError struct {
	Resource  QuotaResource
	Available int64
	Requested int64
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %d available, %d requested", e.Resource, e.Available, e.Requested)
}

func (e *QuotaError) Unwrap() error {
	return ErrQuotaExceeded
}

// TransitionError carries the rejected edge. It matches one of
// ErrInvalidTransition, ErrTerminalState or ErrPreconditionFailed.
type TransitionError struct {
	From   model.ProjectStatus
	To     model.ProjectStatus
	Reason string
	kind   error
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", e.kind, e.From, e.To)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *TransitionError) Unwrap() error {
	return e.kind
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every malformed field of a request. It matches
// ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalidField(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// classify maps whatever escaped a transaction onto the service taxonomy.
// Domain errors pass through; anything else is a store fault.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
