package response

// Коды ошибок в поле error.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeValidation       = "validation_error"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodePasswordRequired = "password_required"
	CodeConflict         = "conflict"
	CodeNotFound         = "not_found"
	CodeInternal         = "internal_error"
)

func InvalidRequest(details string) ErrorResponse {
	if details == "" {
		details = "Invalid request format"
	}
	return Error(CodeInvalidRequest, details)
}

func Internal() ErrorResponse {
	return Error(CodeInternal, "Internal server error")
}
