package domain

import "fmt"

// SteamIDLength is the number of digits in a 64-bit SteamID rendered as text.
const SteamIDLength = 17

// SteamID is a 64-bit Steam account identifier in its decimal string form.
// Format validity is a property of the string itself; whether the account
// exists is a separate, time-varying fact learned only via a lookup.
type SteamID string

func (id SteamID) String() string { return string(id) }

// CheckFormat reports why the identifier is not shaped like a SteamID, or nil
// if it is. It performs no I/O. Callers are expected to trim whitespace first.
func (id SteamID) CheckFormat() error {
	if id == "" {
		return fmt.Errorf("empty steam id")
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return fmt.Errorf("steam id must be numeric")
		}
	}
	if len(id) != SteamIDLength {
		return fmt.Errorf("steam id must be %d digits (got %d)", SteamIDLength, len(id))
	}
	return nil
}

// PlayerSummary is the subset of the player summary payload the tool inspects.
type PlayerSummary struct {
	SteamID     SteamID
	PersonaName string
	ProfileURL  string
}
