package errors

var (
	// Auth
	ErrInvalidCredentials     = Unauthorized("invalid email or password")
	ErrAccountExists          = AlreadyExists("an account with this email already exists")
	ErrNotAuthenticated       = Unauthorized("no active session")
	ErrReauthenticationFailed = Unauthorized("current password is incorrect")
	ErrInvalidEmail           = InvalidArg("email address is malformed")
	ErrPasswordTooShort       = InvalidArg("password must be at least 6 characters")

	// Documents
	ErrDocumentNotFound = NotFound("document not found")
	ErrListingNotFound  = NotFound("listing not found")
	ErrChatNotFound     = NotFound("chat not found")

	// Store capabilities
	ErrSubscribeUnsupported = FailedPrecondition("store does not support live subscriptions")
)

func ErrAdapter(cause error) error {
	return Wrap(CodeInternal, "backend call failed", cause)
}
