package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCategory represents the category of error
type ErrorCategory string

const (
	// ErrorCategoryBusinessRule represents a rule violation raised by a persistence or rule call
	ErrorCategoryBusinessRule ErrorCategory = "BUSINESS_RULE"
	// ErrorCategoryRequiredTask represents a required task that was skipped
	ErrorCategoryRequiredTask ErrorCategory = "REQUIRED_TASK"
	// ErrorCategoryConflict represents an optimistic concurrency conflict on save
	ErrorCategoryConflict ErrorCategory = "CONFLICT"
	// ErrorCategoryNotFound represents a missing object
	ErrorCategoryNotFound ErrorCategory = "NOT_FOUND"
	// ErrorCategoryValidation represents invalid input or workflow definitions
	ErrorCategoryValidation ErrorCategory = "VALIDATION"
	// ErrorCategoryConfiguration represents configuration errors
	ErrorCategoryConfiguration ErrorCategory = "CONFIGURATION"
	// ErrorCategoryPrint represents document printing errors
	ErrorCategoryPrint ErrorCategory = "PRINT"
)

// WorkflowError represents a structured error with context and troubleshooting information
type WorkflowError struct {
	Category        ErrorCategory
	Code            string
	Message         string
	Operation       string
	Context         map[string]interface{}
	Troubleshooting []string
	OriginalError   error
}

// Error implements the error interface
func (e *WorkflowError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s-%s: %s", e.Category, e.Code, e.Message))

	if e.Operation != "" {
		sb.WriteString(fmt.Sprintf("\nOperation: %s", e.Operation))
	}

	if len(e.Context) > 0 {
		sb.WriteString("\nContext:")
		for _, key := range sortedKeys(e.Context) {
			sb.WriteString(fmt.Sprintf("\n  %s: %v", key, e.Context[key]))
		}
	}

	if len(e.Troubleshooting) > 0 {
		sb.WriteString("\nTroubleshooting:")
		for i, step := range e.Troubleshooting {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	if e.OriginalError != nil {
		sb.WriteString(fmt.Sprintf("\nUnderlying error: %v", e.OriginalError))
	}

	return sb.String()
}

// Unwrap returns the original error for error chain compatibility
func (e *WorkflowError) Unwrap() error {
	return e.OriginalError
}

// Is matches another WorkflowError with the same category and code, so
// sentinel values can be used with errors.Is.
func (e *WorkflowError) Is(target error) bool {
	t, ok := target.(*WorkflowError)
	if !ok {
		return false
	}
	return e.Category == t.Category && (t.Code == "" || e.Code == t.Code)
}

// NewWorkflowError creates a new workflow error with the specified parameters
func NewWorkflowError(category ErrorCategory, code, message, operation string) *WorkflowError {
	return &WorkflowError{
		Category:        category,
		Code:            code,
		Message:         message,
		Operation:       operation,
		Context:         make(map[string]interface{}),
		Troubleshooting: []string{},
	}
}

// WithContext adds context information to the error
func (e *WorkflowError) WithContext(key string, value interface{}) *WorkflowError {
	e.Context[key] = value
	return e
}

// WithTroubleshooting adds troubleshooting steps to the error
func (e *WorkflowError) WithTroubleshooting(steps ...string) *WorkflowError {
	e.Troubleshooting = append(e.Troubleshooting, steps...)
	return e
}

// WithOriginalError adds the original error to the workflow error
func (e *WorkflowError) WithOriginalError(err error) *WorkflowError {
	e.OriginalError = err
	return e
}

// AsWorkflowError extracts a WorkflowError from an error chain
func AsWorkflowError(err error) (*WorkflowError, bool) {
	var wfErr *WorkflowError
	if stderrors.As(err, &wfErr) {
		return wfErr, true
	}
	return nil, false
}

// IsCategory reports whether any WorkflowError in the chain has the category
func IsCategory(err error, category ErrorCategory) bool {
	wfErr, ok := AsWorkflowError(err)
	return ok && wfErr.Category == category
}

// IsConflict reports whether err is an optimistic concurrency conflict
func IsConflict(err error) bool {
	return IsCategory(err, ErrorCategoryConflict)
}

// IsNotFound reports whether err is a missing object error
func IsNotFound(err error) bool {
	return IsCategory(err, ErrorCategoryNotFound)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Common error constructors

// NewBusinessRuleError creates a new business rule error
func NewBusinessRuleError(code, message, operation string) *WorkflowError {
	return NewWorkflowError(ErrorCategoryBusinessRule, code, message, operation)
}

// NewValidationError creates a new validation error
func NewValidationError(code, message, operation string) *WorkflowError {
	return NewWorkflowError(ErrorCategoryValidation, code, message, operation)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(code, message, operation string) *WorkflowError {
	return NewWorkflowError(ErrorCategoryConfiguration, code, message, operation)
}
