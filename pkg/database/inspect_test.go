package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-diagnostics/pkg/database"
	"github.com/jstittsworth/draft-diagnostics/pkg/database/dbtest"
)

type widget struct {
	ID    uint
	Kind  string
	Count int
}

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db := dbtest.New(t, &widget{})
	require.NoError(t, db.Create(&[]widget{
		{Kind: "gear", Count: 1},
		{Kind: "gear", Count: 2},
		{Kind: "bolt", Count: 3},
	}).Error)
	return db
}

func TestTableExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	exists, err := db.TableExists(ctx, "widgets")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = db.TableExists(ctx, "gadgets")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = db.TableExists(ctx, "widgets; DROP TABLE widgets")
	assert.ErrorIs(t, err, database.ErrInvalidTableName)
}

func TestTableExistsReturnsConnectionErrors(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Close())

	exists, err := db.TableExists(context.Background(), "widgets")
	assert.False(t, exists)
	assert.Error(t, err)
	assert.False(t, database.IsUndefinedTable(err))
}

func TestRowCount(t *testing.T) {
	db := newTestDB(t)

	count, err := db.RowCount(context.Background(), "widgets")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, err = db.RowCount(context.Background(), "gadgets")
	assert.Error(t, err)
}

func TestRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rows, err := db.Rows(ctx, "widgets", map[string]interface{}{"kind": "gear"}, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "gear", row["kind"])
	}

	rows, err = db.Rows(ctx, "widgets", nil, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = db.Rows(ctx, "widgets", map[string]interface{}{"kind = 'x' OR 1": 1}, 1)
	assert.ErrorIs(t, err, database.ErrInvalidTableName)
}

func TestIsUndefinedTable(t *testing.T) {
	missing := &pq.Error{Code: "42P01", Message: `relation "players" does not exist`}

	assert.True(t, database.IsUndefinedTable(missing))
	assert.True(t, database.IsUndefinedTable(fmt.Errorf("count failed: %w", missing)))
	assert.False(t, database.IsUndefinedTable(&pq.Error{Code: "23505"}))
	assert.False(t, database.IsUndefinedTable(errors.New("boom")))
	assert.False(t, database.IsUndefinedTable(nil))

	assert.True(t, database.IsUndefinedTable(errors.New("no such table: players")))
}
