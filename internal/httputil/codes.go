package httputil

// Machine-readable error codes returned alongside human-readable messages so
// clients can branch without string-matching.
const (
	CodeInvalidRequestBody    = "invalid_request_body"
	CodeInternalError         = "internal_error"
	CodeNotFound              = "not_found"
	CodeTooManyRequests       = "too_many_requests"
	CodeCooldownActive        = "cooldown_active"
	CodeNameRequired          = "name_required"
	CodeEmailRequired         = "email_required"
	CodePasswordRequired      = "password_required"
	CodePasswordTooShort      = "password_too_short"
	CodeInvalidEmailFormat    = "invalid_email_format"
	CodeEmailAlreadyExists    = "email_already_exists"
	CodeInvalidCredentials    = "invalid_credentials"
	CodeInvalidSecurityAnswer = "invalid_security_answer"
	CodeMissingAuth           = "missing_auth"
	CodeInvalidAuthHeader     = "invalid_auth_header"
	CodeInvalidToken          = "invalid_token"
	CodeTokenExpired          = "token_expired"
	CodeInvalidTokenUserID    = "invalid_token_user_id"
	CodeMissingFields         = "missing_fields"
	CodeInvalidID             = "invalid_id"
)
