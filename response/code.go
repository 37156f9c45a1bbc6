package response

type ErrorCode int

const (
	OK ErrorCode = 0

	// Malformed or ambiguous input (bad binding, zero or multiple
	// commentable keys, unknown sort column).
	InvalidRequest ErrorCode = 40001

	TokenExpired ErrorCode = 40101
	InvalidToken ErrorCode = 40103

	InsufficientPermissions ErrorCode = 40301

	// A referenced entity does not exist. Per-entity codes let clients
	// report which reference dangled.
	InvalidObject  ErrorCode = 40401
	InvalidComment ErrorCode = 40402
	InvalidUser    ErrorCode = 40403
	InvalidTime    ErrorCode = 40404
	InvalidCompany ErrorCode = 40405
	InvalidProject ErrorCode = 40406

	// Attribute-level validation failed; the error list travels in data.
	ValidationFailed ErrorCode = 42201

	// Indicates laziness of the developer
	// Frontend will directly print the message without any translation
	NotSpecified ErrorCode = 99999
)
