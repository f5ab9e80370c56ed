package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/beanhouse-cafe/api/internal/enum"
	"github.com/beanhouse-cafe/api/internal/store"
)

// ErrInvalidRange is returned for an unknown export range.
var ErrInvalidRange = errors.New("range must be all, daily, weekly, or monthly")

const exportTimeFormat = "2006-01-02 15:04:05"

// ExportStore defines the persistence methods the export service needs.
// Satisfied by store.Store; narrow interface for testability.
type ExportStore interface {
	ListFinishedOrders(ctx context.Context) ([]store.Order, error)
	ListMenu(ctx context.Context) ([]store.MenuItem, error)
}

// ExportService builds the finished-orders CSV extract for accounting.
type ExportService struct {
	store ExportStore
	now   func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(st ExportStore) *ExportService {
	return &ExportService{store: st, now: time.Now}
}

// BuildReport returns the CSV rows (header, one row per finished order in
// range, trailing summary) for the given range. If either fetch fails the
// whole report is aborted; no partial output is produced.
//
// Rows with a missing or zero price are enriched with the current menu price
// by exact name match. That backfill is best effort: historical price changes
// are not reconstructed, and an unmatched name exports at 0.
func (s *ExportService) BuildReport(ctx context.Context, rng string) ([][]string, error) {
	cutoff, bounded, err := rangeCutoff(rng, s.now())
	if err != nil {
		return nil, err
	}

	orders, err := s.store.ListFinishedOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch finished orders: %w", err)
	}
	menu, err := s.store.ListMenu(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch menu for enrichment: %w", err)
	}

	prices := make(map[string]float64, len(menu))
	for _, item := range menu {
		prices[item.Name] = item.Price
	}

	rows := [][]string{{
		"Name", "Qty", "Unit Price", "Total Price", "Status",
		"Table", "Notes", "Ordered At", "Finished At",
	}}

	totalQty := 0
	revenue := decimal.Zero
	for _, o := range orders {
		if bounded && o.CreatedAt.Before(cutoff) {
			continue
		}

		qty := o.Qty
		if qty < 0 {
			qty = 0
		}
		price := o.Price
		if price <= 0 {
			price = prices[o.Name]
		}
		if price < 0 {
			price = 0
		}

		unit := decimal.NewFromFloat(price)
		total := unit.Mul(decimal.NewFromInt(int64(qty)))
		totalQty += qty
		revenue = revenue.Add(total)

		table := o.Table
		if table == "" {
			table = enum.TableWalkIn
		}

		rows = append(rows, []string{
			o.Name,
			strconv.Itoa(qty),
			unit.StringFixed(2),
			total.StringFixed(2),
			o.Status,
			table,
			o.Notes,
			o.CreatedAt.Format(exportTimeFormat),
			o.UpdatedAt.Format(exportTimeFormat),
		})
	}

	rows = append(rows, []string{
		"TOTAL", strconv.Itoa(totalQty), "", revenue.StringFixed(2), "", "", "", "", "",
	})
	return rows, nil
}

// WriteCSV serializes the rows with standard quoting.
func (s *ExportService) WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// rangeCutoff computes the inclusive lower bound [now − window, now].
// The second return is false for the unbounded "all" range.
func rangeCutoff(rng string, now time.Time) (time.Time, bool, error) {
	switch rng {
	case "", enum.ExportRangeAll:
		return time.Time{}, false, nil
	case enum.ExportRangeDaily:
		return now.Add(-24 * time.Hour), true, nil
	case enum.ExportRangeWeekly:
		return now.Add(-7 * 24 * time.Hour), true, nil
	case enum.ExportRangeMonthly:
		return now.Add(-30 * 24 * time.Hour), true, nil
	default:
		return time.Time{}, false, ErrInvalidRange
	}
}
