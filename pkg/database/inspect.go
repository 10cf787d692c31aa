package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ErrInvalidTableName is returned for identifiers that are not plain table names
var ErrInvalidTableName = errors.New("invalid table name")

func checkTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	return nil
}

// TableExists reports whether table is present in the connected schema. Only
// a missing relation yields false with a nil error; connection and permission
// failures are returned.
func (db *DB) TableExists(ctx context.Context, table string) (bool, error) {
	if err := checkTableName(table); err != nil {
		return false, err
	}

	err := db.WithContext(ctx).Exec(fmt.Sprintf("SELECT 1 FROM %s LIMIT 0", table)).Error
	switch {
	case err == nil:
		return true, nil
	case IsUndefinedTable(err):
		return false, nil
	default:
		return false, err
	}
}

// RowCount returns the number of rows in table
func (db *DB) RowCount(ctx context.Context, table string) (int64, error) {
	if err := checkTableName(table); err != nil {
		return 0, err
	}

	var count int64
	if err := db.WithContext(ctx).Table(table).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

// Rows returns up to limit rows of table matching the equality filter.
func (db *DB) Rows(ctx context.Context, table string, filter map[string]interface{}, limit int) ([]map[string]interface{}, error) {
	if err := checkTableName(table); err != nil {
		return nil, err
	}
	for column := range filter {
		if err := checkTableName(column); err != nil {
			return nil, fmt.Errorf("invalid filter column: %w", err)
		}
	}

	query := db.WithContext(ctx).Table(table)
	if len(filter) > 0 {
		query = query.Where(filter)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []map[string]interface{}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	return rows, nil
}
