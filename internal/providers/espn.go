package providers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/draft-diagnostics/internal/fantasy"
)

const espnBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

// ESPNConfig identifies one ESPN league. S2 and SWID are only needed for
// private leagues.
type ESPNConfig struct {
	LeagueID string
	Season   int
	S2       string
	SWID     string
}

// ESPNClient implements fantasy.LeagueProvider for ESPN fantasy football
type ESPNClient struct {
	config  ESPNConfig
	baseURL string
	client  *jsonClient
	cache   fantasy.CacheProvider
	logger  *logrus.Logger
}

// NewESPNClient creates a new ESPN league client
func NewESPNClient(cfg ESPNConfig, opts ClientOptions, cache fantasy.CacheProvider, breaker Executor, logger *logrus.Logger) *ESPNClient {
	opts = opts.withDefaults(espnBaseURL)
	if cache == nil {
		cache = fantasy.NoCache{}
	}

	client := newJSONClient(string(fantasy.PlatformESPN), opts, breaker, logger)
	if cfg.S2 != "" && cfg.SWID != "" {
		client.cookies = []*http.Cookie{
			{Name: "espn_s2", Value: cfg.S2},
			{Name: "SWID", Value: cfg.SWID},
		}
	}

	return &ESPNClient{
		config:  cfg,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  client,
		cache:   cache,
		logger:  logger,
	}
}

// ESPN API response structures
type espnLeagueResponse struct {
	ID       int64 `json:"id"`
	SeasonID int   `json:"seasonId"`
	Settings struct {
		Name            string `json:"name"`
		Size            int    `json:"size"`
		ScoringSettings struct {
			ScoringType string `json:"scoringType"`
		} `json:"scoringSettings"`
	} `json:"settings"`
	Status struct {
		IsActive bool `json:"isActive"`
	} `json:"status"`
	Members     []espnMember `json:"members"`
	Teams       []espnTeam   `json:"teams"`
	DraftDetail struct {
		Drafted bool            `json:"drafted"`
		Picks   []espnDraftPick `json:"picks"`
	} `json:"draftDetail"`
}

type espnMember struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type espnTeam struct {
	ID           int      `json:"id"`
	Abbrev       string   `json:"abbrev"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Nickname     string   `json:"nickname"`
	Owners       []string `json:"owners"`
	PrimaryOwner string   `json:"primaryOwner"`
	Roster       struct {
		Entries []struct {
			PlayerID        int64 `json:"playerId"`
			PlayerPoolEntry struct {
				Player espnPlayer `json:"player"`
			} `json:"playerPoolEntry"`
		} `json:"entries"`
	} `json:"roster"`
}

type espnPlayer struct {
	ID                int64  `json:"id"`
	FullName          string `json:"fullName"`
	DefaultPositionID int    `json:"defaultPositionId"`
	ProTeamID         int    `json:"proTeamId"`
}

type espnDraftPick struct {
	OverallPickNumber int   `json:"overallPickNumber"`
	RoundID           int   `json:"roundId"`
	RoundPickNumber   int   `json:"roundPickNumber"`
	TeamID            int   `json:"teamId"`
	PlayerID          int64 `json:"playerId"`
	Keeper            bool  `json:"keeper"`
}

var espnPositions = map[int]string{
	1: "QB", 2: "RB", 3: "WR", 4: "TE", 5: "K", 16: "DST",
}

var espnProTeams = map[int]string{
	1: "ATL", 2: "BUF", 3: "CHI", 4: "CIN", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
	9: "GB", 10: "TEN", 11: "IND", 12: "KC", 13: "LV", 14: "LAR", 15: "MIA", 16: "MIN",
	17: "NE", 18: "NO", 19: "NYG", 20: "NYJ", 21: "PHI", 22: "ARI", 23: "PIT", 24: "LAC",
	25: "SF", 26: "SEA", 27: "TB", 28: "WAS", 29: "CAR", 30: "JAC", 33: "BAL", 34: "HOU",
}

func (c *ESPNClient) Platform() fantasy.Platform {
	return fantasy.PlatformESPN
}

// GetLeague fetches league metadata
func (c *ESPNClient) GetLeague(ctx context.Context) (*fantasy.LeagueData, error) {
	resp, err := c.league(ctx)
	if err != nil {
		return nil, err
	}

	status := "pre_draft"
	if resp.DraftDetail.Drafted {
		status = "drafted"
	}
	if !resp.Status.IsActive {
		status = "inactive"
	}

	rounds := 0
	for _, pick := range resp.DraftDetail.Picks {
		if pick.RoundID > rounds {
			rounds = pick.RoundID
		}
	}

	season := resp.SeasonID
	if season == 0 {
		season = c.config.Season
	}

	return &fantasy.LeagueData{
		ExternalID:  c.config.LeagueID,
		Platform:    fantasy.PlatformESPN,
		Name:        resp.Settings.Name,
		Season:      season,
		Size:        resp.Settings.Size,
		DraftRounds: rounds,
		ScoringType: resp.Settings.ScoringSettings.ScoringType,
		Status:      status,
		LastUpdated: time.Now(),
	}, nil
}

// GetMembers returns the league's managers
func (c *ESPNClient) GetMembers(ctx context.Context) ([]fantasy.MemberData, error) {
	resp, err := c.league(ctx)
	if err != nil {
		return nil, err
	}

	teamByOwner := make(map[string]string)
	for _, team := range resp.Teams {
		for _, owner := range team.Owners {
			teamByOwner[owner] = strconv.Itoa(team.ID)
		}
	}

	members := make([]fantasy.MemberData, 0, len(resp.Members))
	for _, m := range resp.Members {
		name := m.DisplayName
		if name == "" {
			name = strings.TrimSpace(m.FirstName + " " + m.LastName)
		}
		members = append(members, fantasy.MemberData{
			ExternalID:  m.ID,
			DisplayName: name,
			TeamID:      teamByOwner[m.ID],
		})
	}
	return members, nil
}

// GetRosters returns every team and its current players
func (c *ESPNClient) GetRosters(ctx context.Context) ([]fantasy.RosterData, error) {
	resp, err := c.league(ctx)
	if err != nil {
		return nil, err
	}

	memberNames := make(map[string]string, len(resp.Members))
	for _, m := range resp.Members {
		memberNames[m.ID] = m.DisplayName
	}

	rosters := make([]fantasy.RosterData, 0, len(resp.Teams))
	for _, team := range resp.Teams {
		owner := team.PrimaryOwner
		if owner == "" && len(team.Owners) > 0 {
			owner = team.Owners[0]
		}

		roster := fantasy.RosterData{
			TeamID:    strconv.Itoa(team.ID),
			TeamName:  espnTeamName(team),
			OwnerID:   owner,
			OwnerName: memberNames[owner],
			Players:   make([]fantasy.RosterPlayer, 0, len(team.Roster.Entries)),
		}
		for _, entry := range team.Roster.Entries {
			p := entry.PlayerPoolEntry.Player
			id := p.ID
			if id == 0 {
				id = entry.PlayerID
			}
			roster.Players = append(roster.Players, fantasy.RosterPlayer{
				ExternalID: strconv.FormatInt(id, 10),
				Name:       p.FullName,
				Position:   espnPositions[p.DefaultPositionID],
				ProTeam:    espnProTeams[p.ProTeamID],
			})
		}
		rosters = append(rosters, roster)
	}
	return rosters, nil
}

// GetDraftPicks returns the picks of the league's draft for the season
func (c *ESPNClient) GetDraftPicks(ctx context.Context) ([]fantasy.DraftPickData, error) {
	resp, err := c.league(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string)
	for _, team := range resp.Teams {
		for _, entry := range team.Roster.Entries {
			p := entry.PlayerPoolEntry.Player
			names[p.ID] = p.FullName
		}
	}

	picks := make([]fantasy.DraftPickData, 0, len(resp.DraftDetail.Picks))
	for _, pick := range resp.DraftDetail.Picks {
		picks = append(picks, fantasy.DraftPickData{
			Round:       pick.RoundID,
			Pick:        pick.RoundPickNumber,
			OverallPick: pick.OverallPickNumber,
			TeamID:      strconv.Itoa(pick.TeamID),
			PlayerID:    strconv.FormatInt(pick.PlayerID, 10),
			PlayerName:  names[pick.PlayerID],
			IsKeeper:    pick.Keeper,
		})
	}
	return picks, nil
}

// league fetches the combined league payload once and caches it
func (c *ESPNClient) league(ctx context.Context) (*espnLeagueResponse, error) {
	if c.config.LeagueID == "" {
		return nil, fmt.Errorf("espn league id is required")
	}

	cacheKey := fmt.Sprintf("espn:league:%s:%d", c.config.LeagueID, c.config.Season)

	var cached espnLeagueResponse
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return &cached, nil
	}

	url := fmt.Sprintf("%s/seasons/%d/segments/0/leagues/%s?view=mTeam&view=mRoster&view=mSettings&view=mDraftDetail",
		c.baseURL, c.config.Season, c.config.LeagueID)

	var resp espnLeagueResponse
	if err := c.client.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch ESPN league %s: %w", c.config.LeagueID, err)
	}

	// Cache for 15 minutes
	if err := c.cache.SetSimple(cacheKey, resp, 15*time.Minute); err != nil {
		c.logger.WithError(err).Warn("Failed to cache ESPN league")
	}

	return &resp, nil
}

func espnTeamName(team espnTeam) string {
	if team.Name != "" {
		return team.Name
	}
	name := strings.TrimSpace(team.Location + " " + team.Nickname)
	if name == "" {
		return team.Abbrev
	}
	return name
}
