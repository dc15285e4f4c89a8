package domain

// ValidationStatus classifies the result of validating one SteamID.
type ValidationStatus string

const (
	ValidationValid         ValidationStatus = "valid"
	ValidationInvalidFormat ValidationStatus = "invalid_format"
	ValidationNotFound      ValidationStatus = "not_found"
	ValidationAuthError     ValidationStatus = "auth_error"
	ValidationRateLimited   ValidationStatus = "rate_limited"
	ValidationNetworkError  ValidationStatus = "network_error"
	ValidationUnexpected    ValidationStatus = "unexpected_response"
)

// ValidationOutcome is the immutable classified result of validating one SteamID.
type ValidationOutcome struct {
	Status ValidationStatus
	Reason string
}

// Valid reports whether the identifier exists and is well formed.
func (o ValidationOutcome) Valid() bool { return o.Status == ValidationValid }

// Invalid reports whether the outcome reflects a bad identifier rather than a
// transient or environmental failure.
func (o ValidationOutcome) Invalid() bool {
	return o.Status == ValidationInvalidFormat || o.Status == ValidationNotFound
}
