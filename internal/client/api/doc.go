// Package api is the client's only transport to the CloudDrive backend.
//
// A Client wraps one *http.Client and a base URL (e.g. https://host/api).
// Requests that need a session read the bearer token from an injected
// TokenSource on every call, so a Client built without one is anonymous: it
// can register, log in, resolve share tokens and download through a token,
// and nothing else.
//
// # Errors
//
// Backend rejections come back as *Error carrying the HTTP status and the
// backend's message. *Error matches common.ErrUnauthorized (401, 403) and
// common.ErrNotFound (404) under errors.Is. Transport failures wrap
// common.ErrUnavailable. MessageOr extracts the text to show a user.
//
// Nothing is retried and no timeout is added beyond the http.Client's own.
package api
