package apperrors

// Error codes grouped by domain
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidRole      ErrorCode = "INVALID_ROLE"

	// Resources
	CodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	CodeCaseNotFound ErrorCode = "CASE_NOT_FOUND"

	// Business rules
	CodeAccountTaken    ErrorCode = "ACCOUNT_ALREADY_EXISTS"
	CodeUserNotVerified ErrorCode = "USER_NOT_VERIFIED"

	// System
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
	CodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)
