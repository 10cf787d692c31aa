// Package probe checks which tables exist in the database and how many rows
// each one holds.
package probe

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

// Inspector is the slice of the database the probe needs
type Inspector interface {
	TableExists(ctx context.Context, table string) (bool, error)
	RowCount(ctx context.Context, table string) (int64, error)
	Rows(ctx context.Context, table string, filter map[string]interface{}, limit int) ([]map[string]interface{}, error)
}

// TableResult is the outcome for one table. Err is set when the check
// itself failed, as opposed to the table being absent.
type TableResult struct {
	Table    string `json:"table"`
	Exists   bool   `json:"exists"`
	RowCount int64  `json:"row_count"`
	Err      error  `json:"-"`
}

func (r TableResult) String() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%-24s ERROR   %v", r.Table, r.Err)
	case !r.Exists:
		return fmt.Sprintf("%-24s MISSING", r.Table)
	default:
		return fmt.Sprintf("%-24s OK      %d rows", r.Table, r.RowCount)
	}
}

// Report collects the results of one probe run
type Report struct {
	Results []TableResult `json:"results"`
}

// Missing lists tables that do not exist
func (r Report) Missing() []string {
	var out []string
	for _, res := range r.Results {
		if res.Err == nil && !res.Exists {
			out = append(out, res.Table)
		}
	}
	return out
}

// Failed lists tables whose check errored
func (r Report) Failed() []string {
	var out []string
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res.Table)
		}
	}
	return out
}

// Healthy is true when every table exists and was counted.
func (r Report) Healthy() bool {
	return len(r.Missing()) == 0 && len(r.Failed()) == 0
}

type Prober struct {
	inspector Inspector
	logger    *logrus.Logger
}

func New(inspector Inspector, logger *logrus.Logger) *Prober {
	return &Prober{inspector: inspector, logger: logger}
}

// Run checks every table in order. A failure on one table is logged and
// recorded, then the next table is checked. DB errors are not retried.
func (p *Prober) Run(ctx context.Context, tables []string) Report {
	report := Report{Results: make([]TableResult, 0, len(tables))}

	for _, table := range tables {
		log := logger.WithTable(p.logger, table)
		result := TableResult{Table: table}

		exists, err := p.inspector.TableExists(ctx, table)
		if err != nil {
			result.Err = fmt.Errorf("failed to check table %s: %w", table, err)
			log.WithError(err).Error("Table existence check failed")
			report.Results = append(report.Results, result)
			continue
		}
		result.Exists = exists

		if !exists {
			log.Warn("Table does not exist")
			report.Results = append(report.Results, result)
			continue
		}

		count, err := p.inspector.RowCount(ctx, table)
		if err != nil {
			result.Err = err
			log.WithError(err).Error("Row count failed")
			report.Results = append(report.Results, result)
			continue
		}
		result.RowCount = count

		log.WithField("row_count", count).Debug("Table checked")
		report.Results = append(report.Results, result)
	}

	return report
}

// Sample returns up to limit rows of table matching filter.
func (p *Prober) Sample(ctx context.Context, table string, filter map[string]interface{}, limit int) ([]map[string]interface{}, error) {
	rows, err := p.inspector.Rows(ctx, table, filter, limit)
	if err != nil {
		logger.WithTable(p.logger, table).WithError(err).Error("Sample query failed")
		return nil, fmt.Errorf("failed to sample %s: %w", table, err)
	}
	return rows, nil
}
