// Package errors defines the coded domain errors shared across services.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// DomainError carries a stable code that callers match on, plus optional
// per-field details.
type DomainError struct {
	Code    string
	Message string
	Fields  map[string]string
}

func (e *DomainError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

// Is matches any DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodePersistence   = "PERSISTENCE_FAILED"
	CodeNotFound      = "NOT_FOUND"
)

var (
	ErrInvalidInput = &DomainError{
		Code:    CodeInvalidInput,
		Message: "invalid input",
	}
	ErrConfiguration = &DomainError{
		Code:    CodeConfiguration,
		Message: "invalid rate configuration",
	}
	ErrPersistence = &DomainError{
		Code:    CodePersistence,
		Message: "failed to store calculation",
	}
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "not found",
	}
)

// InvalidInput builds an INVALID_INPUT error from field messages.
func InvalidInput(fields map[string]string) *DomainError {
	return &DomainError{Code: CodeInvalidInput, Message: ErrInvalidInput.Message, Fields: fields}
}

// Configuration builds a CONFIGURATION_ERROR naming the offending entry.
func Configuration(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    CodeConfiguration,
		Message: fmt.Sprintf("%s: %s", ErrConfiguration.Message, fmt.Sprintf(format, args...)),
	}
}
