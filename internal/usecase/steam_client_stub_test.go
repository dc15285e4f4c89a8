package usecase

import (
	"context"
	"errors"

	"github.com/arklim/steam-friend-adder/internal/core/domain"
)

// steamClientStub fakes both Steam lookups and counts every call so tests can
// assert that no network traffic happened.
type steamClientStub struct {
	playersByID map[domain.SteamID][]domain.PlayerSummary
	playersErr  error

	friendsByOwner map[domain.SteamID][]domain.SteamID
	friendsErr     map[domain.SteamID]error

	summaryCalls int
	friendCalls  int
}

func (s *steamClientStub) GetPlayerSummaries(_ context.Context, id domain.SteamID) ([]domain.PlayerSummary, error) {
	s.summaryCalls++
	if s.playersErr != nil {
		return nil, s.playersErr
	}
	return s.playersByID[id], nil
}

func (s *steamClientStub) GetFriendList(_ context.Context, owner domain.SteamID) ([]domain.SteamID, error) {
	s.friendCalls++
	if err := s.friendsErr[owner]; err != nil {
		return nil, err
	}
	friends, ok := s.friendsByOwner[owner]
	if !ok {
		return nil, errors.New("unexpected call: GetFriendList for " + owner.String())
	}
	return friends, nil
}

func foundPlayer(id domain.SteamID) []domain.PlayerSummary {
	return []domain.PlayerSummary{{SteamID: id, PersonaName: "player"}}
}
