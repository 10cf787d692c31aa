package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-diagnostics/internal/fantasy"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

func newSleeperServer(t *testing.T, directoryHits *int32) *httptest.Server {
	t.Helper()

	routes := map[string]string{
		"/league/L1": `{"league_id": "L1", "name": "Sleeper Sharks", "season": "2024", "status": "in_season",
			"total_rosters": 2, "draft_id": "D1", "settings": {"draft_rounds": 15}, "scoring_settings": {"rec": 0.5}}`,
		"/league/L1/users": `[
			{"user_id": "u1", "display_name": "carol", "metadata": {"team_name": "Carol's Crushers"}},
			{"user_id": "u2", "display_name": "dave", "metadata": {}}
		]`,
		"/league/L1/rosters": `[
			{"roster_id": 1, "owner_id": "u1", "players": ["4034", "KC"]},
			{"roster_id": 2, "owner_id": "u2", "players": ["6794", "9999"]}
		]`,
		"/players/nfl": `{
			"4034": {"full_name": "Christian McCaffrey", "position": "RB", "team": "SF"},
			"6794": {"full_name": "Justin Jefferson", "position": "WR", "team": "MIN"},
			"KC": {"first_name": "Kansas City", "last_name": "Chiefs", "position": "DEF", "team": "KC"}
		}`,
		"/draft/D1/picks": `[
			{"round": 1, "pick_no": 1, "roster_id": 2, "player_id": "6794", "is_keeper": null, "metadata": {"first_name": "Justin", "last_name": "Jefferson"}},
			{"round": 1, "pick_no": 2, "roster_id": 1, "player_id": "4034", "is_keeper": true, "metadata": {"first_name": "Christian", "last_name": "McCaffrey"}},
			{"round": 2, "pick_no": 3, "roster_id": 1, "player_id": "KC", "metadata": {"first_name": "Kansas City", "last_name": "Chiefs"}}
		]`,
		"/league/L2": `{"league_id": "L2", "name": "Sleeper Sharks", "season": "2025", "status": "pre_draft",
			"total_rosters": 2, "draft_id": "D2", "previous_league_id": "L1"}`,
		"/league/L3": `{"league_id": "L3", "name": "Startup", "season": "2025", "status": "pre_draft",
			"total_rosters": 2, "draft_id": "D2"}`,
		"/draft/D2/picks": `[]`,
		"/league/MISSING": `null`,
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/players/nfl" {
			atomic.AddInt32(directoryHits, 1)
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func newTestSleeper(url, leagueID string, cache fantasy.CacheProvider) *SleeperClient {
	opts := fastOptions
	opts.BaseURL = url
	return NewSleeperClient(leagueID, opts, cache, nil, logger.Discard())
}

func TestSleeperGetLeague(t *testing.T) {
	var hits int32
	server := newSleeperServer(t, &hits)
	defer server.Close()

	league, err := newTestSleeper(server.URL, "L1", nil).GetLeague(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Sleeper Sharks", league.Name)
	assert.Equal(t, fantasy.PlatformSleeper, league.Platform)
	assert.Equal(t, 2024, league.Season)
	assert.Equal(t, 2, league.Size)
	assert.Equal(t, 15, league.DraftRounds)
	assert.Equal(t, "half_ppr", league.ScoringType)
}

func TestSleeperRostersResolveNames(t *testing.T) {
	var directoryHits int32
	server := newSleeperServer(t, &directoryHits)
	defer server.Close()

	client := newTestSleeper(server.URL, "L1", newMemoryCache())
	ctx := context.Background()

	rosters, err := client.GetRosters(ctx)
	require.NoError(t, err)
	require.Len(t, rosters, 2)

	assert.Equal(t, "Carol's Crushers", rosters[0].TeamName)
	assert.Equal(t, "Christian McCaffrey", rosters[0].Players[0].Name)
	assert.Equal(t, "Kansas City Chiefs", rosters[0].Players[1].Name)
	assert.Equal(t, "DST", rosters[0].Players[1].Position)

	assert.Equal(t, "dave", rosters[1].TeamName)
	assert.Equal(t, "Justin Jefferson", rosters[1].Players[0].Name)
	assert.Equal(t, "9999", rosters[1].Players[1].ExternalID)
	assert.Empty(t, rosters[1].Players[1].Name)

	// the player directory is fetched once
	_, err = client.GetRosters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&directoryHits))
}

func TestSleeperMembers(t *testing.T) {
	var hits int32
	server := newSleeperServer(t, &hits)
	defer server.Close()

	members, err := newTestSleeper(server.URL, "L1", nil).GetMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, fantasy.MemberData{ExternalID: "u2", DisplayName: "dave", TeamID: "2"}, members[1])
}

func TestSleeperDraftPicks(t *testing.T) {
	var hits int32
	server := newSleeperServer(t, &hits)
	defer server.Close()

	picks, err := newTestSleeper(server.URL, "L1", nil).GetDraftPicks(context.Background())
	require.NoError(t, err)
	require.Len(t, picks, 3)

	assert.Equal(t, "Justin Jefferson", picks[0].PlayerName)
	assert.False(t, picks[0].IsKeeper)
	assert.True(t, picks[1].IsKeeper)
	assert.Equal(t, 2, picks[1].Pick)
	assert.Equal(t, 2, picks[2].Round)
	assert.Equal(t, 1, picks[2].Pick)
	assert.Equal(t, 3, picks[2].OverallPick)
}

func TestSleeperDraftPicksFallBackToPreviousSeason(t *testing.T) {
	var hits int32
	server := newSleeperServer(t, &hits)
	defer server.Close()

	picks, err := newTestSleeper(server.URL, "L2", nil).GetDraftPicks(context.Background())
	require.NoError(t, err)
	require.Len(t, picks, 3)
	assert.Equal(t, "4034", picks[1].PlayerID)
	assert.Equal(t, 1, picks[1].Round)

	// a startup league has no earlier draft to fall back to
	picks, err = newTestSleeper(server.URL, "L3", nil).GetDraftPicks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, picks)
}

func TestSleeperUnknownLeague(t *testing.T) {
	var hits int32
	server := newSleeperServer(t, &hits)
	defer server.Close()

	_, err := newTestSleeper(server.URL, "MISSING", nil).GetLeague(context.Background())
	assert.ErrorIs(t, err, fantasy.ErrLeagueNotFound)

	_, err = newTestSleeper(server.URL, "", nil).GetLeague(context.Background())
	assert.Error(t, err)
}

func TestSleeperScoringType(t *testing.T) {
	assert.Equal(t, "ppr", sleeperScoringType(map[string]float64{"rec": 1}))
	assert.Equal(t, "standard", sleeperScoringType(map[string]float64{"pass_td": 4}))
	assert.Equal(t, "custom", sleeperScoringType(map[string]float64{"rec": 0.25}))
	assert.Equal(t, "", sleeperScoringType(nil))
}
