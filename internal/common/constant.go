package common

// AuthHeaderName is the HTTP header that carries the bearer session token.
const AuthHeaderName = "Authorization"

// BearerPrefix is the expected scheme prefix of the auth header value.
const BearerPrefix = "Bearer"
