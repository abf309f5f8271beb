package errors

import (
	"fmt"
	"strings"
)

// DisplayError formats an error for user-friendly display
func DisplayError(err error) string {
	if wfErr, ok := AsWorkflowError(err); ok {
		return wfErr.Error()
	}

	return fmt.Sprintf("Error: %v", err)
}

// DisplayErrorSummary provides a brief summary of the error for logs
func DisplayErrorSummary(err error) string {
	if wfErr, ok := AsWorkflowError(err); ok {
		return fmt.Sprintf("%s-%s: %s", wfErr.Category, wfErr.Code, wfErr.Message)
	}

	errStr := err.Error()
	if len(errStr) > 100 {
		return errStr[:97] + "..."
	}
	return errStr
}

// Lines breaks an error into a title and body lines for dialog display
func Lines(err error) (string, []string) {
	wfErr, ok := AsWorkflowError(err)
	if !ok {
		return "Error", []string{err.Error()}
	}

	var lines []string
	lines = append(lines, wfErr.Message)
	if wfErr.OriginalError != nil {
		lines = append(lines, fmt.Sprintf("Cause: %v", wfErr.OriginalError))
	}
	for _, step := range wfErr.Troubleshooting {
		lines = append(lines, "• "+step)
	}
	return fmt.Sprintf("Error [%s-%s]", wfErr.Category, wfErr.Code), lines
}

// FormatForCLI formats an error for command-line display with proper spacing
func FormatForCLI(err error) string {
	wfErr, ok := AsWorkflowError(err)
	if !ok {
		return fmt.Sprintf("\nError: %v\n", err)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\nError [%s-%s]\n", wfErr.Category, wfErr.Code))
	sb.WriteString(fmt.Sprintf("  %s\n", wfErr.Message))

	if wfErr.Operation != "" {
		sb.WriteString(fmt.Sprintf("\nFailed Operation: %s\n", wfErr.Operation))
	}

	if len(wfErr.Context) > 0 {
		sb.WriteString("\nDetails:\n")
		for _, key := range sortedKeys(wfErr.Context) {
			sb.WriteString(fmt.Sprintf("  %s: %v\n", key, wfErr.Context[key]))
		}
	}

	if len(wfErr.Troubleshooting) > 0 {
		sb.WriteString("\nHow to resolve:\n")
		for i, step := range wfErr.Troubleshooting {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}

	if wfErr.OriginalError != nil {
		sb.WriteString(fmt.Sprintf("\nTechnical details: %v\n", wfErr.OriginalError))
	}

	return sb.String()
}

// IsUserError determines if an error is due to user input/configuration
func IsUserError(err error) bool {
	return IsCategory(err, ErrorCategoryValidation) ||
		IsCategory(err, ErrorCategoryConfiguration) ||
		IsCategory(err, ErrorCategoryRequiredTask)
}

// GetErrorCode extracts the error code for reporting
func GetErrorCode(err error) string {
	if wfErr, ok := AsWorkflowError(err); ok {
		return fmt.Sprintf("%s-%s", wfErr.Category, wfErr.Code)
	}
	return "UNKNOWN"
}
