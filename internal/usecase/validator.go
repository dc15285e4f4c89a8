package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/arklim/steam-friend-adder/internal/core/domain"
	"github.com/arklim/steam-friend-adder/internal/core/port"
	"github.com/arklim/steam-friend-adder/internal/repository"
)

// IdentityValidator classifies SteamIDs by format and existence.
type IdentityValidator struct {
	client port.SteamClient
	logger *zap.Logger
}

// NewIdentityValidator constructs a validator over the given client.
func NewIdentityValidator(client port.SteamClient, logger *zap.Logger) *IdentityValidator {
	return &IdentityValidator{client: client, logger: logger}
}

// Validate checks format first, without any I/O, then confirms existence
// through the player summaries lookup. A single failed attempt is reported
// as-is; retry policy, if any, belongs to the caller.
func (v *IdentityValidator) Validate(ctx context.Context, raw string) domain.ValidationOutcome {
	id := domain.SteamID(strings.TrimSpace(raw))
	if err := id.CheckFormat(); err != nil {
		return domain.ValidationOutcome{Status: domain.ValidationInvalidFormat, Reason: err.Error()}
	}

	players, err := v.client.GetPlayerSummaries(ctx, id)
	if err != nil {
		return classifyLookupError(err)
	}
	if len(players) == 0 {
		return domain.ValidationOutcome{Status: domain.ValidationNotFound, Reason: "steam id not found"}
	}

	return domain.ValidationOutcome{Status: domain.ValidationValid, Reason: "valid"}
}

func classifyLookupError(err error) domain.ValidationOutcome {
	switch {
	case errors.Is(err, repository.ErrAuth):
		return domain.ValidationOutcome{Status: domain.ValidationAuthError, Reason: err.Error()}
	case errors.Is(err, repository.ErrRateLimited):
		return domain.ValidationOutcome{Status: domain.ValidationRateLimited, Reason: err.Error()}
	case errors.Is(err, repository.ErrUnexpectedResponse):
		return domain.ValidationOutcome{Status: domain.ValidationUnexpected, Reason: err.Error()}
	default:
		return domain.ValidationOutcome{Status: domain.ValidationNetworkError, Reason: err.Error()}
	}
}
