package errors

import (
	"fmt"
)

// Common error codes
const (
	// Task error codes
	CodeTaskFailed          = "001"
	CodeRequiredTaskSkipped = "002"
	CodeTaskNotStarted      = "003"

	// Persistence error codes
	CodeObjectNotFound = "001"
	CodeStaleObject    = "002"
	CodeSaveFailed     = "003"

	// Validation error codes
	CodeValidationInput    = "001"
	CodeValidationWorkflow = "002"
	CodeValidationContext  = "003"

	// Configuration error codes
	CodeConfigLoad = "001"

	// Print error codes
	CodePrintFailed = "001"
)

// Sentinels for errors.Is checks
var (
	ErrNotFound             = &WorkflowError{Category: ErrorCategoryNotFound}
	ErrConflict             = &WorkflowError{Category: ErrorCategoryConflict}
	ErrRequiredTaskSkipped  = &WorkflowError{Category: ErrorCategoryRequiredTask, Code: CodeRequiredTaskSkipped}
	ErrMissingContextObject = &WorkflowError{Category: ErrorCategoryValidation, Code: CodeValidationContext}
)

// NewRequiredTaskSkippedError creates the error raised when a required task is skipped
func NewRequiredTaskSkippedError(workflow, task string) *WorkflowError {
	return NewWorkflowError(ErrorCategoryRequiredTask, CodeRequiredTaskSkipped,
		fmt.Sprintf("Task '%s' is required and cannot be skipped", task),
		fmt.Sprintf("Workflow '%s'", workflow)).
		WithContext("workflow", workflow).
		WithContext("task", task).
		WithTroubleshooting(
			"Complete the step instead of skipping it",
			"Cancel the workflow if the step cannot be completed",
		)
}

// NewTaskFailedError wraps an error returned by a task
func NewTaskFailedError(workflow, task string, originalErr error) *WorkflowError {
	return NewWorkflowError(ErrorCategoryBusinessRule, CodeTaskFailed,
		fmt.Sprintf("Task '%s' failed", task),
		fmt.Sprintf("Workflow '%s'", workflow)).
		WithContext("workflow", workflow).
		WithContext("task", task).
		WithOriginalError(originalErr)
}

// NewObjectNotFoundError creates an error for an object that does not exist
func NewObjectNotFoundError(ref fmt.Stringer) *WorkflowError {
	return NewWorkflowError(ErrorCategoryNotFound, CodeObjectNotFound,
		fmt.Sprintf("Object '%s' not found", ref),
		"Object lookup").
		WithContext("reference", ref.String()).
		WithTroubleshooting(
			"The object may have been deleted by another user",
			"Refresh the screen and try again",
		)
}

// NewStaleObjectError creates an error for a save that lost an optimistic concurrency race
func NewStaleObjectError(ref fmt.Stringer, expected, actual int64) *WorkflowError {
	return NewWorkflowError(ErrorCategoryConflict, CodeStaleObject,
		fmt.Sprintf("Object '%s' was changed by another user", ref),
		"Object save").
		WithContext("reference", ref.String()).
		WithContext("version", expected).
		WithContext("current_version", actual).
		WithTroubleshooting(
			"Reload the object and reapply your changes",
		)
}

// NewSaveFailedError wraps a persistence failure
func NewSaveFailedError(ref fmt.Stringer, originalErr error) *WorkflowError {
	return NewBusinessRuleError(CodeSaveFailed,
		fmt.Sprintf("Failed to save '%s'", ref),
		"Object save").
		WithContext("reference", ref.String()).
		WithOriginalError(originalErr)
}

// NewMissingContextObjectError creates an error for a task whose context lacks an object
func NewMissingContextObjectError(task, slot string) *WorkflowError {
	return NewValidationError(CodeValidationContext,
		fmt.Sprintf("No %s in context", slot),
		fmt.Sprintf("Task '%s'", task)).
		WithContext("task", task).
		WithContext("slot", slot).
		WithTroubleshooting(
			fmt.Sprintf("Select a %s before starting the workflow", slot),
		)
}

// NewInvalidWorkflowError creates an error for a workflow that cannot be built
func NewInvalidWorkflowError(workflow, reason string) *WorkflowError {
	return NewValidationError(CodeValidationWorkflow,
		fmt.Sprintf("Invalid workflow '%s': %s", workflow, reason),
		"Workflow build").
		WithContext("workflow", workflow)
}

// NewPrintFailedError wraps a printer failure
func NewPrintFailedError(document string, originalErr error) *WorkflowError {
	return NewWorkflowError(ErrorCategoryPrint, CodePrintFailed,
		fmt.Sprintf("Failed to print '%s'", document),
		"Document print").
		WithContext("document", document).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Check the printer is online",
			"Skip printing and reprint the document later",
		)
}

// GetErrorSeverity returns the severity level of an error
func GetErrorSeverity(err error) string {
	if wfErr, ok := AsWorkflowError(err); ok {
		switch wfErr.Category {
		case ErrorCategoryValidation, ErrorCategoryConfiguration, ErrorCategoryRequiredTask:
			return "WARNING"
		case ErrorCategoryConflict, ErrorCategoryNotFound, ErrorCategoryPrint:
			return "ERROR"
		case ErrorCategoryBusinessRule:
			return "CRITICAL"
		default:
			return "ERROR"
		}
	}
	return "ERROR"
}
