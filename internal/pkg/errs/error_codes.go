/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system failures both inside
the server and on the wire to dashboard clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1005

	// ErrRateLimitExceeded indicates the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1006
)

// 2xxx: Messaging Errors
const (
	// ErrMessageContentTooLong indicates a message body over the length limit.
	ErrMessageContentTooLong = 2001

	// ErrMessageTypeInvalid indicates an unknown message type tag.
	ErrMessageTypeInvalid = 2002

	// ErrRecipientNotFound indicates the recipient id resolved to no directory entry.
	ErrRecipientNotFound = 2003

	// ErrMessagePersistFailed indicates the message store rejected the write.
	ErrMessagePersistFailed = 2004

	// ErrFileSizeTooLarge indicates an attachment above the size cap.
	ErrFileSizeTooLarge = 2101

	// ErrFileTypeInvalid indicates an attachment with a disallowed type.
	ErrFileTypeInvalid = 2102
)

// 3xxx: Identity and Session Errors
const (
	// ErrNotAuthenticated indicates an action attempted before a successful
	// authenticate on the same connection.
	ErrNotAuthenticated = 3001

	// ErrAuthenticationFailed indicates an identity claim that did not resolve
	// to a directory entry.
	ErrAuthenticationFailed = 3002

	// ErrInvalidCredentials indicates a login with a wrong email or password.
	ErrInvalidCredentials = 3003

	// ErrUserNotFound indicates a missing directory entry.
	ErrUserNotFound = 3004

	// ErrUnauthorized indicates a request without a valid bearer token.
	ErrUnauthorized = 3005

	// ErrTokenInvalid indicates a token that failed signature or expiry checks.
	ErrTokenInvalid = 3006
)

// 4xxx: Assignment and Allocation Errors
const (
	// ErrAllocationForbidden indicates a supervisor allocation attempted by a non-admin.
	ErrAllocationForbidden = 4001

	// ErrAllocationPartyNotFound indicates the client or supervisor id of an
	// allocation resolved to no directory entry.
	ErrAllocationPartyNotFound = 4002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates the object storage backend rejected a request.
	ErrFileStorageFailed = 5001
)
