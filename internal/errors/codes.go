package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken       ErrorCode = "AUTH_001"
	AuthInvalidTokenFormat ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
)

// Schema error codes (SCHEMA_*) for source rows that cannot be normalized
const (
	SchemaMissingField    ErrorCode = "SCHEMA_001"
	SchemaUnparseableDate ErrorCode = "SCHEMA_002"
	SchemaInvalidMeasure  ErrorCode = "SCHEMA_003"
)

// Selection error codes (SELECTION_*)
const (
	SelectionEmpty   ErrorCode = "SELECTION_001"
	SelectionInvalid ErrorCode = "SELECTION_002"
)

// Dataset error codes (DATASET_*)
const (
	DatasetNotLoaded    ErrorCode = "DATASET_001"
	DatasetReloadFailed ErrorCode = "DATASET_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthMissingToken:       "Authorization token is required",
	AuthInvalidTokenFormat: "Invalid authorization token format",
	AuthExpiredToken:       "Authorization token has expired",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",

	// Schema errors
	SchemaMissingField:    "Source row is missing a required field",
	SchemaUnparseableDate: "Source row has a missing or unparseable document date",
	SchemaInvalidMeasure:  "Source row has an invalid measure value",

	// Selection errors
	SelectionEmpty:   "Region selection must contain at least one region",
	SelectionInvalid: "Region selection payload is invalid",

	// Dataset errors
	DatasetNotLoaded:    "Sales dataset has not been loaded",
	DatasetReloadFailed: "Sales dataset reload failed; the previous dataset is still being served",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
