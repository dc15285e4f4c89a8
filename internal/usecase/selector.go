package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/arklim/steam-friend-adder/internal/core/domain"
	"github.com/arklim/steam-friend-adder/internal/core/port"
)

// CandidateSelector computes which of a target's friends the operator has not
// added yet.
type CandidateSelector struct {
	client port.SteamClient
	logger *zap.Logger
}

// NewCandidateSelector constructs a selector over the given client.
func NewCandidateSelector(client port.SteamClient, logger *zap.Logger) *CandidateSelector {
	return &CandidateSelector{client: client, logger: logger}
}

// Select fetches both friend lists fresh and returns the target's friends
// that are neither the operator nor already in the operator's list,
// preserving the target list's order. The two lists can drift between the
// fetches; that is accepted rather than corrected. An empty result is a
// valid outcome meaning no new candidates.
func (s *CandidateSelector) Select(ctx context.Context, selfID, targetID domain.SteamID) ([]domain.SteamID, error) {
	s.logger.Info("retrieving your friend list")
	own, err := s.client.GetFriendList(ctx, selfID)
	if err != nil {
		return nil, fmt.Errorf("failed to get your friend list: %w", err)
	}
	s.logger.Info("retrieved your friend list", zap.Int("friends", len(own)))

	s.logger.Info("retrieving target user's friend list", zap.String("steam_id", targetID.String()))
	theirs, err := s.client.GetFriendList(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get target's friend list: %w", err)
	}
	s.logger.Info("retrieved target user's friend list", zap.Int("friends", len(theirs)))

	ownSet := make(map[domain.SteamID]struct{}, len(own))
	for _, id := range own {
		ownSet[id] = struct{}{}
	}

	candidates := make([]domain.SteamID, 0, len(theirs))
	for _, id := range theirs {
		if id == selfID {
			continue
		}
		if _, already := ownSet[id]; already {
			continue
		}
		candidates = append(candidates, id)
	}

	s.logger.Info("selected potential friends", zap.Int("count", len(candidates)))

	return candidates, nil
}
