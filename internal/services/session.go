package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"garage/internal/core"
	applog "garage/internal/log"
	"garage/internal/records"
	ports "garage/internal/sheets"
)

// TableSession owns one in-memory table and the store it came from. Edits
// stay in memory until Save.
type TableSession struct {
	store  ports.TableStore
	table  *records.Store
	policy records.RecencyPolicy
	saved  uint64
}

// ViewRow is one displayed row with its position, identity and recency tag.
type ViewRow struct {
	Index   int
	ID      records.RowID
	Cells   records.Row
	Recency records.RecencyTag
}

// OpenSession loads the table from store. On failure no session is returned.
func OpenSession(ctx context.Context, store ports.TableStore, policy records.RecencyPolicy) (*TableSession, error) {
	s := &TableSession{store: store, table: records.NewStore(), policy: policy}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Table exposes the in-memory store for searching and editing.
func (s *TableSession) Table() *records.Store { return s.table }

func (s *TableSession) Policy() records.RecencyPolicy { return s.policy }

// Dirty reports whether the table changed since it was loaded or saved.
func (s *TableSession) Dirty() bool { return s.table.Version() != s.saved }

// Reload replaces the table with the store's current content. If reading
// fails the current table is kept.
func (s *TableSession) Reload(ctx context.Context) error {
	headers, rows, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load table: %w", core.ErrPersistence, err)
	}
	if err := s.table.Load(headers, rows); err != nil {
		return fmt.Errorf("load table: %w", err)
	}
	s.saved = s.table.Version()
	slog.InfoContext(ctx, "Table loaded", applog.NewFields().WithComponent(applog.ComponentSession).WithTable(len(headers), len(rows)).ToSlice()...)
	return nil
}

// Save writes the whole table back. The in-memory table is untouched whether
// or not the write succeeds.
func (s *TableSession) Save(ctx context.Context) error {
	headers, rows := s.table.Snapshot()
	if err := s.store.Save(ctx, headers, rows); err != nil {
		fields := applog.NewFields().WithComponent(applog.ComponentSession).WithOperation(applog.OpSave).
			WithTable(len(headers), len(rows)).WithError(err)
		slog.ErrorContext(ctx, "Table save failed", fields.ToSlice()...)
		return fmt.Errorf("%w: save table: %w", core.ErrPersistence, err)
	}
	s.saved = s.table.Version()
	slog.InfoContext(ctx, "Table saved", applog.NewFields().WithComponent(applog.ComponentSession).
		WithOperation(applog.OpSave).WithTable(len(headers), len(rows)).ToSlice()...)
	return nil
}

// View returns the rows matching term with their recency tags relative to
// now, and the totals for the same filter.
func (s *TableSession) View(term string, now time.Time) ([]ViewRow, records.Summary) {
	idx := s.table.Search(term)
	out := make([]ViewRow, 0, len(idx))
	for _, i := range idx {
		cells, _ := s.table.Row(i)
		id, _ := s.table.ID(i)
		tag, _ := s.table.Recency(i, s.policy, now)
		out = append(out, ViewRow{Index: i, ID: id, Cells: cells, Recency: tag})
	}
	return out, s.table.Summary(term)
}
