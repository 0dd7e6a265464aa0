package goSSO

import "fmt"

// Error is a coded authority error. Code is stable and machine-readable
// (1001–1006 mirror the pre-existing deployment's license/login codes; the
// rest follow HTTP status semantics); Message is safe to show to clients.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	// ErrMissingParameter is returned for empty required inputs.
	ErrMissingParameter = &Error{Code: 400, Message: "missing required parameter"}
	// ErrInvalidLicense is returned when the consumer key/secret pair does not match.
	ErrInvalidLicense = &Error{Code: 1001, Message: "invalid oauth_consumer_key or secret"}
	// ErrAccountTokenInvalid is returned when the account token is absent or expired.
	ErrAccountTokenInvalid = &Error{Code: 1002, Message: "invalid or expired account token"}
	// ErrLoginUserNotFound is returned by the login flow for an unknown username.
	ErrLoginUserNotFound = &Error{Code: 1003, Message: "user not found"}
	// ErrAccountInactive is returned when the user record is disabled.
	ErrAccountInactive = &Error{Code: 1004, Message: "account is disabled"}
	// ErrInvalidPassword is returned when password verification fails.
	ErrInvalidPassword = &Error{Code: 1005, Message: "invalid password"}
	// ErrSSOCookieInvalid is returned by keep-alive when the SSO cookie is absent or expired.
	ErrSSOCookieInvalid = &Error{Code: 1006, Message: "invalid sso cookie"}
	// ErrSessionInvalid is returned when the SSO session is absent or expired.
	ErrSessionInvalid = &Error{Code: 401, Message: "invalid or expired session"}
	// ErrTokenMismatch is returned when the session's embedded account token
	// does not match the one supplied.
	ErrTokenMismatch = &Error{Code: 401, Message: "token mismatch"}
	// ErrSessionCorrupted is returned when a stored session value cannot be
	// parsed. This indicates a bug or tampering, not expiry, and is logged loudly.
	ErrSessionCorrupted = &Error{Code: 500, Message: "corrupted session data"}
	// ErrInvalidCredentials is the enumeration-safe failure for direct user
	// authentication: unknown user and wrong password are indistinguishable.
	ErrInvalidCredentials = &Error{Code: 401, Message: "invalid user id or password"}
	// ErrTokenInvalid is returned when a user credential token is unknown.
	ErrTokenInvalid = &Error{Code: 401, Message: "invalid or expired token"}
	// ErrTokenExpired is returned when the durable token record has passed its expiry.
	ErrTokenExpired = &Error{Code: 401, Message: "token expired"}
	// ErrTokenOwnerMismatch is returned when a token belongs to a different user.
	ErrTokenOwnerMismatch = &Error{Code: 403, Message: "unauthorized"}
	// ErrUserNotFound is returned by direct info lookups for an unknown user.
	ErrUserNotFound = &Error{Code: 404, Message: "user not found"}
	// ErrRateLimited is returned when the login budget for a subject is spent.
	ErrRateLimited = &Error{Code: 429, Message: "too many requests"}
	// ErrInternal covers cache and durable-store infrastructure failures. The
	// underlying cause stays in the wrapped error chain for logs and never
	// reaches clients.
	ErrInternal = &Error{Code: 500, Message: "internal server error"}
)

// wrapInternal keeps the infrastructure cause in the chain while clients see
// only ErrInternal's code and message.
func wrapInternal(err error) error {
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
