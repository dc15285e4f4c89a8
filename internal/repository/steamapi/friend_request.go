package steamapi

import (
	"context"

	"go.uber.org/zap"

	"github.com/arklim/steam-friend-adder/internal/core/domain"
	"github.com/arklim/steam-friend-adder/internal/core/port"
)

// StubFriendRequestSender logs the request it would send instead of sending
// it. The public Steam Web API has no friend-request endpoint; a real sender
// needs an authenticated community session (a POST to
// steamcommunity.com/actions/AddFriendAjax with a session cookie) and can be
// swapped in behind the same port.
type StubFriendRequestSender struct {
	logger *zap.Logger
}

// NewStubFriendRequestSender constructs the logged no-op sender.
func NewStubFriendRequestSender(logger *zap.Logger) *StubFriendRequestSender {
	return &StubFriendRequestSender{logger: logger}
}

// SendFriendRequest records the intent and reports success.
func (s *StubFriendRequestSender) SendFriendRequest(_ context.Context, target domain.SteamID) error {
	s.logger.Info("would send friend request", zap.String("steam_id", target.String()))
	return nil
}

var _ port.FriendRequestSender = (*StubFriendRequestSender)(nil)
