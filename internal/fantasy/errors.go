package fantasy

import "errors"

var (
	// ErrCacheMiss is returned by caches that hold no value for a key
	ErrCacheMiss = errors.New("key not found")

	// ErrLeagueNotFound means the platform has no league with the given ID
	ErrLeagueNotFound = errors.New("league not found")

	// ErrPrivateLeague means the league exists but needs credentials
	ErrPrivateLeague = errors.New("league is private; espn_s2 and SWID cookies are required")
)
