package steamapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/steam-friend-adder/internal/core/domain"
	"github.com/arklim/steam-friend-adder/internal/repository"
)

const testSteamID domain.SteamID = "76561197960287930"

type admitterStub struct {
	calls int
	err   error
}

func (a *admitterStub) Admit(context.Context) error {
	a.calls++
	return a.err
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *admitterStub) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	admitter := &admitterStub{}
	client := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, admitter, zap.NewNop())

	return client, admitter
}

func TestGetPlayerSummariesParsesPlayers(t *testing.T) {
	client, admitter := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+playerSummariesPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected key query param, got %q", got)
		}
		if got := r.URL.Query().Get("steamids"); got != testSteamID.String() {
			t.Errorf("expected steamids %s, got %q", testSteamID, got)
		}
		fmt.Fprintf(w, `{"response":{"players":[{"steamid":%q,"personaname":"gaben","profileurl":"https://steamcommunity.com/id/gaben"}]}}`, testSteamID)
	})

	players, err := client.GetPlayerSummaries(context.Background(), testSteamID)
	if err != nil {
		t.Fatalf("GetPlayerSummaries returned error: %v", err)
	}

	if len(players) != 1 {
		t.Fatalf("expected one player, got %d", len(players))
	}
	if players[0].SteamID != testSteamID || players[0].PersonaName != "gaben" {
		t.Fatalf("unexpected player %+v", players[0])
	}
	if admitter.calls != 1 {
		t.Fatalf("expected one admission, got %d", admitter.calls)
	}
}

func TestGetPlayerSummariesEmptyPlayersMeansNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"response":{"players":[]}}`)
	})

	players, err := client.GetPlayerSummaries(context.Background(), testSteamID)
	if err != nil {
		t.Fatalf("GetPlayerSummaries returned error: %v", err)
	}
	if len(players) != 0 {
		t.Fatalf("expected no players, got %d", len(players))
	}
}

func TestGetPlayerSummariesStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusForbidden, repository.ErrAuth},
		{http.StatusTooManyRequests, repository.ErrRateLimited},
		{http.StatusInternalServerError, repository.ErrUnexpectedResponse},
		{http.StatusNotFound, repository.ErrUnexpectedResponse},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			})

			_, err := client.GetPlayerSummaries(context.Background(), testSteamID)
			if !errors.Is(err, tc.want) {
				t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
			}
		})
	}
}

func TestGetPlayerSummariesMalformedBody(t *testing.T) {
	bodies := []string{
		`not json at all`,
		`{"unexpected":true}`,
		`{"response":{}}`,
	}

	for _, body := range bodies {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, body)
		})

		_, err := client.GetPlayerSummaries(context.Background(), testSteamID)
		if !errors.Is(err, repository.ErrUnexpectedResponse) {
			t.Fatalf("body %q: expected ErrUnexpectedResponse, got %v", body, err)
		}
	}
}

func TestGetFriendListParsesFriends(t *testing.T) {
	client, admitter := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+friendListPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("relationship"); got != "friend" {
			t.Errorf("expected relationship=friend, got %q", got)
		}
		if got := r.URL.Query().Get("steamid"); got != testSteamID.String() {
			t.Errorf("expected steamid %s, got %q", testSteamID, got)
		}
		fmt.Fprint(w, `{"friendslist":{"friends":[
			{"steamid":"76561197960000010","relationship":"friend"},
			{"steamid":"76561197960000011","relationship":"friend"}
		]}}`)
	})

	friends, err := client.GetFriendList(context.Background(), testSteamID)
	if err != nil {
		t.Fatalf("GetFriendList returned error: %v", err)
	}

	want := []domain.SteamID{"76561197960000010", "76561197960000011"}
	if len(friends) != len(want) {
		t.Fatalf("expected %d friends, got %d", len(want), len(friends))
	}
	for i := range want {
		if friends[i] != want[i] {
			t.Fatalf("expected friend %d to be %s, got %s", i, want[i], friends[i])
		}
	}
	if admitter.calls != 1 {
		t.Fatalf("expected one admission, got %d", admitter.calls)
	}
}

// The two endpoints genuinely disagree: the friend list reports bad keys as
// 401 and uses 403 for private or missing profiles, while player summaries
// report bad keys as 403.
func TestGetFriendListStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, repository.ErrAuth},
		{http.StatusForbidden, repository.ErrPrivateOrNotFound},
		{http.StatusTooManyRequests, repository.ErrRateLimited},
		{http.StatusBadGateway, repository.ErrUnexpectedResponse},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			})

			_, err := client.GetFriendList(context.Background(), testSteamID)
			if !errors.Is(err, tc.want) {
				t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
			}
		})
	}
}

func TestGetFriendListMissingListIsUnexpected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := client.GetFriendList(context.Background(), testSteamID)
	if !errors.Is(err, repository.ErrUnexpectedResponse) {
		t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
	}
}

func TestClientTimeoutIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 20 * time.Millisecond,
	}, &admitterStub{}, zap.NewNop())

	_, err := client.GetPlayerSummaries(context.Background(), testSteamID)
	if !errors.Is(err, repository.ErrNetwork) {
		t.Fatalf("expected ErrNetwork on timeout, got %v", err)
	}
}

func TestClientAdmitFailureSkipsRequest(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		requests++
	}))
	t.Cleanup(server.Close)

	admitErr := errors.New("admission denied")
	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"}, &admitterStub{err: admitErr}, zap.NewNop())

	if _, err := client.GetPlayerSummaries(context.Background(), testSteamID); !errors.Is(err, admitErr) {
		t.Fatalf("expected admit error to propagate, got %v", err)
	}
	if _, err := client.GetFriendList(context.Background(), testSteamID); !errors.Is(err, admitErr) {
		t.Fatalf("expected admit error to propagate, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("expected no requests after denied admission, got %d", requests)
	}
}
