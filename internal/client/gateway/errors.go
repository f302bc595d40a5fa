package gateway

import "errors"

var (
	// ErrUnavailable marks transport-level failures: the server could not
	// be reached or did not answer in time. Never destroys a session.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks a 401/403 from the API. The gateway reports
	// it; deciding whether to drop the session is the controller's call.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadResponse marks a response body that could not be decoded.
	ErrBadResponse = errors.New("malformed response")
)
