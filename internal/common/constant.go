package common

import "time"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "sessionId"

// SessionCookiePath scopes the session cookie to the whole site.
const SessionCookiePath = "/"

// SessionCookieMaxAge is the default lifetime of an issued session.
const SessionCookieMaxAge = 7 * 24 * time.Hour

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6
