package repository

import "errors"

var (
	// ErrAuth indicates the API rejected the key or its permissions.
	ErrAuth = errors.New("invalid api key or insufficient permissions")
	// ErrPrivateOrNotFound indicates the friend list is private or the user
	// does not exist. Only the friend list endpoint reports this.
	ErrPrivateOrNotFound = errors.New("friend list is private or user not found")
	// ErrRateLimited indicates the API throttled the request.
	ErrRateLimited = errors.New("rate limited by steam api")
	// ErrUnexpectedResponse indicates a status code or body shape outside the
	// documented contract.
	ErrUnexpectedResponse = errors.New("unexpected api response")
	// ErrNetwork indicates a transport-level failure, including timeouts.
	ErrNetwork = errors.New("network error")
)
