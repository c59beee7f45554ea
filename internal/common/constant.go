package common

// Outbound HTTP headers.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	BearerPrefix        = "Bearer "
)

// Keys of the persisted session in the local metadata table.
const (
	SessionUserKey  = "user"
	SessionTokenKey = "token"
)
