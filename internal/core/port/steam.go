package port

import (
	"context"

	"github.com/arklim/steam-friend-adder/internal/core/domain"
)

// SteamClient exposes the two Steam Web API lookups the tool depends on.
type SteamClient interface {
	// GetPlayerSummaries resolves a single SteamID to its player summaries.
	// An empty slice with a nil error means the id does not exist.
	GetPlayerSummaries(ctx context.Context, id domain.SteamID) ([]domain.PlayerSummary, error)
	// GetFriendList returns the SteamIDs the owner considers friends, in the
	// order the API reports them.
	GetFriendList(ctx context.Context, owner domain.SteamID) ([]domain.SteamID, error)
}

// FriendRequestSender performs the friend-request action for one target. The
// public Web API has no endpoint for this; real implementations need an
// authenticated community session.
type FriendRequestSender interface {
	SendFriendRequest(ctx context.Context, target domain.SteamID) error
}
