package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// Entries without an explicit Status default to HTTP 200 with a business code,
// matching how dashboard clients consume the envelope.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large."},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Messaging Errors
	ErrMessageContentTooLong: {Code: ErrMessageContentTooLong, Message: "Message is too long."},
	ErrMessageTypeInvalid:    {Code: ErrMessageTypeInvalid, Message: "Unsupported message type."},
	ErrRecipientNotFound:     {Code: ErrRecipientNotFound, Message: "Recipient not found."},
	ErrMessagePersistFailed:  {Code: ErrMessagePersistFailed, Message: "Message could not be saved. Please resend."},
	ErrFileSizeTooLarge:      {Code: ErrFileSizeTooLarge, Message: "File is too large."},
	ErrFileTypeInvalid:       {Code: ErrFileTypeInvalid, Message: "File type is not allowed."},

	// 3xxx: Identity and Session Errors
	ErrNotAuthenticated:     {Code: ErrNotAuthenticated, Message: "Not authenticated. Send authenticate first."},
	ErrAuthenticationFailed: {Code: ErrAuthenticationFailed, Message: "User not found"},
	ErrInvalidCredentials:   {Code: ErrInvalidCredentials, Message: "Incorrect email or password."},
	ErrUserNotFound:         {Code: ErrUserNotFound, Message: "Account not found."},
	ErrUnauthorized:         {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrTokenInvalid:         {Code: ErrTokenInvalid, Message: "Session expired. Please sign in again.", Status: http.StatusUnauthorized},

	// 4xxx: Assignment and Allocation Errors
	ErrAllocationForbidden:     {Code: ErrAllocationForbidden, Message: "Only admins can allocate supervisors."},
	ErrAllocationPartyNotFound: {Code: ErrAllocationPartyNotFound, Message: "Client or supervisor not found."},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again."},
}
