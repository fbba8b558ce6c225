package errors

import "fmt"

// Error codes
const (
	CodeAnalyzer   = "ANALYZER_ERROR"
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeService    = "SERVICE_ERROR"
	CodeQuota      = "QUOTA_EXCEEDED"
)

type AnalyzerError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AnalyzerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AnalyzerError) Unwrap() error {
	return e.Cause
}

func NewAnalyzerError(message, code string, statusCode int, context map[string]any) *AnalyzerError {
	return &AnalyzerError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AnalyzerError) WithCause(cause error) *AnalyzerError {
	e.Cause = cause
	return e
}

type APIError struct {
	*AnalyzerError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		AnalyzerError: &AnalyzerError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

type ValidationError struct {
	*AnalyzerError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AnalyzerError: &AnalyzerError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type CacheError struct {
	*AnalyzerError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AnalyzerError: &AnalyzerError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*AnalyzerError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AnalyzerError: &AnalyzerError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// QuotaError signals that the daily data API quota budget is exhausted.
type QuotaError struct {
	*APIError
	Used   int
	Budget int
}

func NewQuotaError(message string, used, budget int) *QuotaError {
	return &QuotaError{
		APIError: &APIError{
			AnalyzerError: &AnalyzerError{
				Message:    message,
				Code:       CodeQuota,
				StatusCode: 429,
				Context: map[string]any{
					"used":   used,
					"budget": budget,
				},
			},
		},
		Used:   used,
		Budget: budget,
	}
}
