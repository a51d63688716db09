package common

// AuthHeaderName is the HTTP header used to carry the session token on
// authenticated requests. The backend expects the raw token, without a
// "Bearer" prefix.
const AuthHeaderName = "Authorization"

// RequestIDHeaderName carries a client-generated id for request correlation.
const RequestIDHeaderName = "X-Request-Id"
