package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/arklim/steam-friend-adder/internal/core/domain"
	"github.com/arklim/steam-friend-adder/internal/repository"
)

const knownSteamID = "76561197960287930"

func TestIdentityValidatorRejectsBadFormatWithoutLookup(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		reason string
	}{
		{"empty", "", "empty steam id"},
		{"whitespace only", "   ", "empty steam id"},
		{"non numeric", "notanumber", "steam id must be numeric"},
		{"mixed digits", "7656119796028793x", "steam id must be numeric"},
		{"too short", "12345", "steam id must be 17 digits (got 5)"},
		{"too long", "765611979602879301", "steam id must be 17 digits (got 18)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &steamClientStub{}
			validator := NewIdentityValidator(client, zap.NewNop())

			outcome := validator.Validate(context.Background(), tc.input)

			if outcome.Status != domain.ValidationInvalidFormat {
				t.Fatalf("expected invalid_format, got %s", outcome.Status)
			}
			if outcome.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, outcome.Reason)
			}
			if client.summaryCalls != 0 {
				t.Fatalf("expected no lookup for bad format, got %d calls", client.summaryCalls)
			}
		})
	}
}

func TestIdentityValidatorValid(t *testing.T) {
	client := &steamClientStub{
		playersByID: map[domain.SteamID][]domain.PlayerSummary{
			knownSteamID: foundPlayer(knownSteamID),
		},
	}
	validator := NewIdentityValidator(client, zap.NewNop())

	outcome := validator.Validate(context.Background(), knownSteamID)

	if !outcome.Valid() {
		t.Fatalf("expected valid outcome, got %s (%s)", outcome.Status, outcome.Reason)
	}
	if client.summaryCalls != 1 {
		t.Fatalf("expected exactly one lookup, got %d", client.summaryCalls)
	}
}

func TestIdentityValidatorTrimsBeforeLookup(t *testing.T) {
	client := &steamClientStub{
		playersByID: map[domain.SteamID][]domain.PlayerSummary{
			knownSteamID: foundPlayer(knownSteamID),
		},
	}
	validator := NewIdentityValidator(client, zap.NewNop())

	outcome := validator.Validate(context.Background(), "  "+knownSteamID+"\t")

	if !outcome.Valid() {
		t.Fatalf("expected valid outcome for padded id, got %s (%s)", outcome.Status, outcome.Reason)
	}
}

func TestIdentityValidatorNotFound(t *testing.T) {
	client := &steamClientStub{playersByID: map[domain.SteamID][]domain.PlayerSummary{}}
	validator := NewIdentityValidator(client, zap.NewNop())

	outcome := validator.Validate(context.Background(), knownSteamID)

	if outcome.Status != domain.ValidationNotFound {
		t.Fatalf("expected not_found, got %s", outcome.Status)
	}
	if !outcome.Invalid() {
		t.Fatalf("expected not_found to classify as invalid")
	}
}

func TestIdentityValidatorClassifiesLookupErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.ValidationStatus
	}{
		{"auth", repository.ErrAuth, domain.ValidationAuthError},
		{"rate limited", repository.ErrRateLimited, domain.ValidationRateLimited},
		{"unexpected status", fmt.Errorf("%w: status code 500", repository.ErrUnexpectedResponse), domain.ValidationUnexpected},
		{"malformed body", fmt.Errorf("%w: malformed response body", repository.ErrUnexpectedResponse), domain.ValidationUnexpected},
		{"timeout", fmt.Errorf("%w: request timeout", repository.ErrNetwork), domain.ValidationNetworkError},
		{"transport", fmt.Errorf("%w: connection refused", repository.ErrNetwork), domain.ValidationNetworkError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &steamClientStub{playersErr: tc.err}
			validator := NewIdentityValidator(client, zap.NewNop())

			outcome := validator.Validate(context.Background(), knownSteamID)

			if outcome.Status != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, outcome.Status)
			}
			if !strings.Contains(outcome.Reason, tc.err.Error()) {
				t.Fatalf("expected reason to carry %q, got %q", tc.err.Error(), outcome.Reason)
			}
		})
	}
}
