package providers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/draft-diagnostics/internal/fantasy"
)

const sleeperBaseURL = "https://api.sleeper.app/v1"

// SleeperClient implements fantasy.LeagueProvider for Sleeper. Sleeper
// leagues are public; the league ID is all it needs.
type SleeperClient struct {
	leagueID string
	baseURL  string
	client   *jsonClient
	cache    fantasy.CacheProvider
	logger   *logrus.Logger
}

// NewSleeperClient creates a new Sleeper league client
func NewSleeperClient(leagueID string, opts ClientOptions, cache fantasy.CacheProvider, breaker Executor, logger *logrus.Logger) *SleeperClient {
	opts = opts.withDefaults(sleeperBaseURL)
	if cache == nil {
		cache = fantasy.NoCache{}
	}

	return &SleeperClient{
		leagueID: leagueID,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		client:   newJSONClient(string(fantasy.PlatformSleeper), opts, breaker, logger),
		cache:    cache,
		logger:   logger,
	}
}

// Sleeper API response structures
type sleeperLeague struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Status       string `json:"status"`
	TotalRosters int    `json:"total_rosters"`
	DraftID      string `json:"draft_id"`
	Settings     struct {
		DraftRounds int `json:"draft_rounds"`
	} `json:"settings"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`

	// set when the league was renewed from last season's league
	PreviousLeagueID string `json:"previous_league_id"`
}

type sleeperUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Metadata    struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

type sleeperRoster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
}

type sleeperPick struct {
	Round    int    `json:"round"`
	PickNo   int    `json:"pick_no"`
	RosterID int    `json:"roster_id"`
	PlayerID string `json:"player_id"`
	IsKeeper *bool  `json:"is_keeper"`
	Metadata struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"metadata"`
}

// sleeperPlayer is one entry of the /players/nfl directory
type sleeperPlayer struct {
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
}

func (p sleeperPlayer) name() string {
	if p.FullName != "" {
		return p.FullName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p sleeperPlayer) position() string {
	if p.Position == "DEF" {
		return "DST"
	}
	return p.Position
}

func (c *SleeperClient) Platform() fantasy.Platform {
	return fantasy.PlatformSleeper
}

// GetLeague fetches league metadata
func (c *SleeperClient) GetLeague(ctx context.Context) (*fantasy.LeagueData, error) {
	league, err := c.league(ctx)
	if err != nil {
		return nil, err
	}

	season, _ := strconv.Atoi(league.Season)

	return &fantasy.LeagueData{
		ExternalID:  league.LeagueID,
		Platform:    fantasy.PlatformSleeper,
		Name:        league.Name,
		Season:      season,
		Size:        league.TotalRosters,
		DraftRounds: league.Settings.DraftRounds,
		ScoringType: sleeperScoringType(league.ScoringSettings),
		Status:      league.Status,
		LastUpdated: time.Now(),
	}, nil
}

// GetMembers returns the league's users
func (c *SleeperClient) GetMembers(ctx context.Context) ([]fantasy.MemberData, error) {
	users, err := c.users(ctx)
	if err != nil {
		return nil, err
	}
	rosters, err := c.rosters(ctx)
	if err != nil {
		return nil, err
	}

	rosterByOwner := make(map[string]string, len(rosters))
	for _, r := range rosters {
		rosterByOwner[r.OwnerID] = strconv.Itoa(r.RosterID)
	}

	members := make([]fantasy.MemberData, 0, len(users))
	for _, u := range users {
		members = append(members, fantasy.MemberData{
			ExternalID:  u.UserID,
			DisplayName: u.DisplayName,
			TeamID:      rosterByOwner[u.UserID],
		})
	}
	return members, nil
}

// GetRosters returns every roster with player IDs resolved through the
// cached player directory.
func (c *SleeperClient) GetRosters(ctx context.Context) ([]fantasy.RosterData, error) {
	rosters, err := c.rosters(ctx)
	if err != nil {
		return nil, err
	}
	users, err := c.users(ctx)
	if err != nil {
		return nil, err
	}
	directory, err := c.players(ctx)
	if err != nil {
		return nil, err
	}

	usersByID := make(map[string]sleeperUser, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}

	out := make([]fantasy.RosterData, 0, len(rosters))
	for _, r := range rosters {
		owner := usersByID[r.OwnerID]
		teamName := owner.Metadata.TeamName
		if teamName == "" {
			teamName = owner.DisplayName
		}
		if teamName == "" {
			teamName = fmt.Sprintf("Team %d", r.RosterID)
		}

		roster := fantasy.RosterData{
			TeamID:    strconv.Itoa(r.RosterID),
			TeamName:  teamName,
			OwnerID:   r.OwnerID,
			OwnerName: owner.DisplayName,
			Players:   make([]fantasy.RosterPlayer, 0, len(r.Players)),
		}
		for _, id := range r.Players {
			p, ok := directory[id]
			if !ok {
				c.logger.WithField("player_id", id).Debug("Player missing from Sleeper directory")
			}
			roster.Players = append(roster.Players, fantasy.RosterPlayer{
				ExternalID: id,
				Name:       p.name(),
				Position:   p.position(),
				ProTeam:    p.Team,
			})
		}
		out = append(out, roster)
	}
	return out, nil
}

// GetDraftPicks returns the picks of the league's current draft. Until that
// draft has a pick, a renewed league falls back to last season's draft so
// keepers are priced by where they were actually taken.
func (c *SleeperClient) GetDraftPicks(ctx context.Context) ([]fantasy.DraftPickData, error) {
	league, err := c.league(ctx)
	if err != nil {
		return nil, err
	}

	picks, err := c.draftPicks(ctx, league.DraftID, league.TotalRosters)
	if err != nil {
		return nil, err
	}
	if len(picks) > 0 || league.PreviousLeagueID == "" {
		return picks, nil
	}

	previous, err := c.fetchLeague(ctx, league.PreviousLeagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch previous Sleeper league: %w", err)
	}
	c.logger.WithFields(logrus.Fields{
		"league_id":          league.LeagueID,
		"previous_league_id": previous.LeagueID,
		"draft_id":           previous.DraftID,
	}).Info("Current draft has no picks, using previous season's draft")

	return c.draftPicks(ctx, previous.DraftID, previous.TotalRosters)
}

func (c *SleeperClient) draftPicks(ctx context.Context, draftID string, size int) ([]fantasy.DraftPickData, error) {
	if draftID == "" {
		return nil, nil
	}

	var picks []sleeperPick
	url := fmt.Sprintf("%s/draft/%s/picks", c.baseURL, draftID)
	if err := c.client.getJSON(ctx, url, &picks); err != nil {
		return nil, fmt.Errorf("failed to fetch Sleeper draft picks: %w", err)
	}

	out := make([]fantasy.DraftPickData, 0, len(picks))
	for _, p := range picks {
		pickInRound := p.PickNo
		if size > 0 {
			pickInRound = (p.PickNo-1)%size + 1
		}
		out = append(out, fantasy.DraftPickData{
			Round:       p.Round,
			Pick:        pickInRound,
			OverallPick: p.PickNo,
			TeamID:      strconv.Itoa(p.RosterID),
			PlayerID:    p.PlayerID,
			PlayerName:  strings.TrimSpace(p.Metadata.FirstName + " " + p.Metadata.LastName),
			IsKeeper:    p.IsKeeper != nil && *p.IsKeeper,
		})
	}
	return out, nil
}

func (c *SleeperClient) league(ctx context.Context) (*sleeperLeague, error) {
	if c.leagueID == "" {
		return nil, fmt.Errorf("sleeper league id is required")
	}
	return c.fetchLeague(ctx, c.leagueID)
}

func (c *SleeperClient) fetchLeague(ctx context.Context, leagueID string) (*sleeperLeague, error) {
	cacheKey := fmt.Sprintf("sleeper:league:%s", leagueID)
	var cached sleeperLeague
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return &cached, nil
	}

	// Sleeper answers unknown leagues with 200 and a null body
	var league *sleeperLeague
	url := fmt.Sprintf("%s/league/%s", c.baseURL, leagueID)
	if err := c.client.getJSON(ctx, url, &league); err != nil {
		return nil, fmt.Errorf("failed to fetch Sleeper league %s: %w", leagueID, err)
	}
	if league == nil || league.LeagueID == "" {
		return nil, fmt.Errorf("failed to fetch Sleeper league %s: %w", leagueID, fantasy.ErrLeagueNotFound)
	}

	if err := c.cache.SetSimple(cacheKey, league, 15*time.Minute); err != nil {
		c.logger.WithError(err).Warn("Failed to cache Sleeper league")
	}
	return league, nil
}

func (c *SleeperClient) users(ctx context.Context) ([]sleeperUser, error) {
	var users []sleeperUser
	url := fmt.Sprintf("%s/league/%s/users", c.baseURL, c.leagueID)
	if err := c.client.getJSON(ctx, url, &users); err != nil {
		return nil, fmt.Errorf("failed to fetch Sleeper users: %w", err)
	}
	return users, nil
}

func (c *SleeperClient) rosters(ctx context.Context) ([]sleeperRoster, error) {
	var rosters []sleeperRoster
	url := fmt.Sprintf("%s/league/%s/rosters", c.baseURL, c.leagueID)
	if err := c.client.getJSON(ctx, url, &rosters); err != nil {
		return nil, fmt.Errorf("failed to fetch Sleeper rosters: %w", err)
	}
	return rosters, nil
}

// players loads the NFL player directory. It is several megabytes and
// changes daily, so it is cached for a day.
func (c *SleeperClient) players(ctx context.Context) (map[string]sleeperPlayer, error) {
	const cacheKey = "sleeper:players:nfl"

	var directory map[string]sleeperPlayer
	if err := c.cache.GetSimple(cacheKey, &directory); err == nil {
		return directory, nil
	}

	url := fmt.Sprintf("%s/players/nfl", c.baseURL)
	if err := c.client.getJSON(ctx, url, &directory); err != nil {
		return nil, fmt.Errorf("failed to fetch Sleeper player directory: %w", err)
	}

	if err := c.cache.SetSimple(cacheKey, directory, 24*time.Hour); err != nil {
		c.logger.WithError(err).Warn("Failed to cache Sleeper player directory")
	}
	return directory, nil
}

func sleeperScoringType(settings map[string]float64) string {
	switch settings["rec"] {
	case 1:
		return "ppr"
	case 0.5:
		return "half_ppr"
	case 0:
		if len(settings) == 0 {
			return ""
		}
		return "standard"
	default:
		return "custom"
	}
}
