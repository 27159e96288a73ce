package contextkeys

// Custom type to avoid collisions with other packages
type contextKey string

// SessionContextKey - the *session.Session of the current request (gin context)
const SessionContextKey = contextKey("session")

// TokenContextKey - the bearer token attached to outgoing API calls (request context)
const TokenContextKey = contextKey("api_token")

// FlashContextKey - flash messages read for the current request (gin context)
const FlashContextKey = contextKey("flash")
