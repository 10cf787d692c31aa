package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-diagnostics/internal/models"
	"github.com/jstittsworth/draft-diagnostics/pkg/database/dbtest"
	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

type mockInspector struct {
	mock.Mock
}

func (m *mockInspector) TableExists(ctx context.Context, table string) (bool, error) {
	args := m.Called(ctx, table)
	return args.Bool(0), args.Error(1)
}

func (m *mockInspector) RowCount(ctx context.Context, table string) (int64, error) {
	args := m.Called(ctx, table)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInspector) Rows(ctx context.Context, table string, filter map[string]interface{}, limit int) ([]map[string]interface{}, error) {
	args := m.Called(ctx, table, filter, limit)
	rows, _ := args.Get(0).([]map[string]interface{})
	return rows, args.Error(1)
}

func TestRunAgainstDatabase(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t, &models.Player{}, &models.League{})

	require.NoError(t, db.Create(&[]models.Player{
		{Rank: 1, Name: "Ja'Marr Chase", Position: "WR"},
		{Rank: 2, Name: "Bijan Robinson", Position: "RB"},
		{Rank: 3, Name: "Saquon Barkley", Position: "RB"},
	}).Error)

	report := New(db, logger.Discard()).Run(ctx, []string{"players", "leagues", "ai_queries"})
	require.Len(t, report.Results, 3)

	assert.True(t, report.Results[0].Exists)
	assert.Equal(t, int64(3), report.Results[0].RowCount)
	assert.True(t, report.Results[1].Exists)
	assert.Equal(t, int64(0), report.Results[1].RowCount)
	assert.False(t, report.Results[2].Exists)

	assert.Equal(t, []string{"ai_queries"}, report.Missing())
	assert.Empty(t, report.Failed())
	assert.False(t, report.Healthy())
	assert.Contains(t, report.Results[2].String(), "MISSING")
	assert.Contains(t, report.Results[0].String(), "3 rows")
}

func TestRunContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	inspector := new(mockInspector)

	inspector.On("TableExists", ctx, "players").Return(false, errors.New("connection reset"))
	inspector.On("TableExists", ctx, "leagues").Return(true, nil)
	inspector.On("RowCount", ctx, "leagues").Return(int64(0), errors.New("permission denied"))
	inspector.On("TableExists", ctx, "roster_entries").Return(true, nil)
	inspector.On("RowCount", ctx, "roster_entries").Return(int64(42), nil)

	report := New(inspector, logger.Discard()).Run(ctx, []string{"players", "leagues", "roster_entries"})
	require.Len(t, report.Results, 3)

	assert.ErrorContains(t, report.Results[0].Err, "connection reset")
	assert.ErrorContains(t, report.Results[1].Err, "permission denied")
	assert.Equal(t, int64(42), report.Results[2].RowCount)
	assert.Equal(t, []string{"players", "leagues"}, report.Failed())
	assert.Contains(t, report.Results[0].String(), "ERROR")

	// each check is attempted exactly once
	inspector.AssertNumberOfCalls(t, "TableExists", 3)
	inspector.AssertNumberOfCalls(t, "RowCount", 2)
	inspector.AssertExpectations(t)
}

func TestRunReportsClosedDatabaseAsFailed(t *testing.T) {
	db := dbtest.New(t, &models.Player{})
	require.NoError(t, db.Close())

	report := New(db, logger.Discard()).Run(context.Background(), []string{"players"})
	require.Len(t, report.Results, 1)

	assert.Error(t, report.Results[0].Err)
	assert.Empty(t, report.Missing())
	assert.Equal(t, []string{"players"}, report.Failed())
	assert.Contains(t, report.Results[0].String(), "ERROR")
}

func TestRunRejectsUnsafeNames(t *testing.T) {
	db := dbtest.New(t, &models.Player{})

	report := New(db, logger.Discard()).Run(context.Background(), []string{"players; DROP TABLE players"})
	require.Len(t, report.Results, 1)
	assert.Error(t, report.Results[0].Err)

	exists, err := db.TableExists(context.Background(), "players")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestHealthyReport(t *testing.T) {
	report := Report{Results: []TableResult{
		{Table: "players", Exists: true, RowCount: 96},
	}}
	assert.True(t, report.Healthy())
	assert.Empty(t, report.Missing())
}

func TestSample(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t, &models.Player{})
	require.NoError(t, db.Create(&[]models.Player{
		{Rank: 1, Name: "Ja'Marr Chase", Position: "WR"},
		{Rank: 2, Name: "Bijan Robinson", Position: "RB"},
		{Rank: 3, Name: "Saquon Barkley", Position: "RB"},
		{Rank: 4, Name: "Justin Jefferson", Position: "WR"},
	}).Error)

	p := New(db, logger.Discard())

	rows, err := p.Sample(ctx, "players", map[string]interface{}{"position": "RB"}, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "RB", rows[0]["position"])

	_, err = p.Sample(ctx, "players", map[string]interface{}{"1=1 OR position": "RB"}, 1)
	assert.Error(t, err)

	inspector := new(mockInspector)
	inspector.On("Rows", ctx, "players", map[string]interface{}(nil), 5).Return(nil, errors.New("timeout"))
	_, err = New(inspector, logger.Discard()).Sample(ctx, "players", nil, 5)
	assert.ErrorContains(t, err, "timeout")
}
