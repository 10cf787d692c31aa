package smoke

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-diagnostics/internal/adp"
	"github.com/jstittsworth/draft-diagnostics/internal/api"
	"github.com/jstittsworth/draft-diagnostics/internal/matching"
	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/internal/providers"
	"github.com/jstittsworth/draft-diagnostics/internal/services"
	"github.com/jstittsworth/draft-diagnostics/pkg/config"
	"github.com/jstittsworth/draft-diagnostics/pkg/database/dbtest"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t, models.All()...)
	seed, err := adp.Seed()
	require.NoError(t, err)
	repo := adp.NewRepository(db)
	require.NoError(t, repo.Upsert(context.Background(), seed))

	cfg := &config.Config{
		JWTSecret:          "secret",
		LeagueSize:         12,
		NameMatchThreshold: matching.DefaultThreshold,
		AIRateLimit:        30,
		AICacheExpiration:  60,
	}
	log := logger.Discard()
	cache := services.NewCacheService(nil)
	breaker := services.NewCircuitBreakerService(5, time.Minute, log)

	router := api.NewRouter(api.Dependencies{
		DB:        db,
		Cache:     cache,
		Breaker:   breaker,
		Importer:  services.NewLeagueImportService(db, repo, matching.New(0), services.KeeperSettings{DefaultLeagueSize: 12}, cache, log),
		Providers: providers.NewFactory(cfg, cache, breaker, log),
		Config:    cfg,
		Logger:    log,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestDefaultChecksPassAgainstServer(t *testing.T) {
	srv := newAPIServer(t)

	report := NewRunner(srv.URL+"/", time.Second, logger.Discard()).Run(context.Background(), DefaultChecks)

	require.Len(t, report.Results, len(DefaultChecks))
	for _, res := range report.Results {
		assert.True(t, res.Passed(), res.String())
	}
	assert.True(t, report.OK())
	assert.Empty(t, report.Failed())
}

func TestRunContinuesPastFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"INTERNAL_ERROR"}}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checks := []Check{
		{Name: "broken", Method: http.MethodGet, Path: "/broken", Expect: http.StatusOK},
		{Name: "fine", Method: http.MethodGet, Path: "/fine", Expect: http.StatusOK},
	}
	report := NewRunner(srv.URL, time.Second, logger.Discard()).Run(context.Background(), checks)

	require.Len(t, report.Results, 2)
	assert.False(t, report.OK())
	require.Len(t, report.Failed(), 1)
	assert.Equal(t, "broken", report.Failed()[0].Check.Name)
	assert.Equal(t, http.StatusInternalServerError, report.Results[0].Status)
	assert.True(t, strings.HasPrefix(report.Results[0].String(), "FAIL"))
	assert.Contains(t, report.Results[0].String(), "INTERNAL_ERROR")
	assert.True(t, report.Results[1].Passed())
	assert.True(t, strings.HasPrefix(report.Results[1].String(), "ok"))
}

func TestBodySnippetIsTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(strings.Repeat("x", 500)))
	}))
	defer srv.Close()

	report := NewRunner(srv.URL, time.Second, logger.Discard()).Run(context.Background(), []Check{
		{Name: "verbose", Method: http.MethodGet, Path: "/verbose", Expect: http.StatusOK},
	})

	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, strings.Repeat("x", maxBodySnippet)+"...", res.Body)
	assert.Contains(t, res.String(), "status 400, want 200")
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	report := NewRunner(url, time.Second, logger.Discard()).Run(context.Background(), DefaultChecks[:1])

	require.Len(t, report.Results, 1)
	assert.Error(t, report.Results[0].Err)
	assert.Zero(t, report.Results[0].Status)
	assert.False(t, report.OK())
}
