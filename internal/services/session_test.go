package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/core"
	"garage/internal/records"
	"garage/internal/sheets/memory"
)

// flakyStore wraps a memory table and fails on demand.
type flakyStore struct {
	*memory.Table
	failLoad bool
	failSave bool
}

func (f *flakyStore) Load(ctx context.Context) ([]string, []records.Row, error) {
	if f.failLoad {
		return nil, nil, errors.New("disk unplugged")
	}
	return f.Table.Load(ctx)
}

func (f *flakyStore) Save(ctx context.Context, headers []string, rows []records.Row) error {
	if f.failSave {
		return errors.New("quota exceeded")
	}
	return f.Table.Save(ctx, headers, rows)
}

func scenarioTable() *memory.Table {
	return memory.NewTable(
		[]string{"Service Date", "Type", "Cost"},
		[]records.Row{
			records.TextRow("2024-01-10", "Oil Change", "$45.00"),
			records.TextRow("2023-01-10", "Tire Rotation", "30"),
		},
	)
}

func TestSessionView(t *testing.T) {
	s, err := OpenSession(context.Background(), scenarioTable(), records.DefaultRecency)
	require.NoError(t, err)

	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rows, sum := s.View("", now)
	require.Len(t, rows, 2)
	assert.Equal(t, records.New, rows[0].Recency)
	assert.Equal(t, records.Old, rows[1].Recency)
	assert.Equal(t, "$75.00", sum.Total.String())

	rows, sum = s.View("tire", now)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, "$30.00", sum.Filtered.String())
	assert.Equal(t, "$75.00", sum.Total.String())
}

func TestSessionSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	tbl := scenarioTable()
	s, err := OpenSession(ctx, tbl, records.DefaultRecency)
	require.NoError(t, err)
	assert.False(t, s.Dirty())

	require.NoError(t, s.Save(ctx))
	headers, rows, err := tbl.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Service Date", "Type", "Cost"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2024-01-10", "Oil Change", "$45.00"}, rows[0].Strings())
	assert.Equal(t, []string{"2023-01-10", "Tire Rotation", "30"}, rows[1].Strings())
}

func TestSessionDirtyTracking(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSession(ctx, scenarioTable(), records.DefaultRecency)
	require.NoError(t, err)

	_, _, err = s.Table().Insert(records.TextRow("2024-02-01", "Brake Service", "120"))
	require.NoError(t, err)
	assert.True(t, s.Dirty())

	require.NoError(t, s.Save(ctx))
	assert.False(t, s.Dirty())
}

func TestSessionSaveFailureKeepsTable(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Table: scenarioTable()}
	s, err := OpenSession(ctx, store, records.DefaultRecency)
	require.NoError(t, err)

	require.NoError(t, s.Table().Delete(0))
	store.failSave = true

	err = s.Save(ctx)
	assert.ErrorIs(t, err, core.ErrPersistence)
	assert.True(t, s.Dirty())
	assert.Equal(t, 1, s.Table().Len())

	store.failSave = false
	require.NoError(t, s.Save(ctx))
	_, rows, _ := store.Table.Load(ctx)
	assert.Len(t, rows, 1)
}

func TestSessionSaveLogsSessionFields(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.Background()
	store := &flakyStore{Table: scenarioTable()}
	s, err := OpenSession(ctx, store, records.DefaultRecency)
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, s.Save(ctx))
	store.failSave = true
	require.Error(t, s.Save(ctx))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "session", entry["component"])
		assert.Equal(t, "save", entry["operation"])
		assert.EqualValues(t, 2, entry["rows"])
	}
	assert.Contains(t, lines[1], "quota exceeded")
}

func TestOpenSessionLoadFailure(t *testing.T) {
	store := &flakyStore{Table: scenarioTable(), failLoad: true}
	s, err := OpenSession(context.Background(), store, records.DefaultRecency)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, core.ErrPersistence)
}

func TestOpenSessionSchemaMismatch(t *testing.T) {
	tbl := memory.NewTable([]string{"A"}, []records.Row{records.TextRow("x", "overflow")})
	_, err := OpenSession(context.Background(), tbl, records.DefaultRecency)
	assert.ErrorIs(t, err, core.ErrSchemaMismatch)
}

func TestSessionReloadFailureKeepsTable(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Table: scenarioTable()}
	s, err := OpenSession(ctx, store, records.DefaultRecency)
	require.NoError(t, err)

	store.failLoad = true
	assert.Error(t, s.Reload(ctx))
	assert.Equal(t, 2, s.Table().Len())

	store.failLoad = false
	require.NoError(t, store.Table.Save(ctx, []string{"Date", "Price"}, []records.Row{records.TextRow("2024-01-01", "9")}))
	require.NoError(t, s.Reload(ctx))
	assert.Equal(t, 1, s.Table().Len())
	assert.Equal(t, 1, s.Table().Classification().CostColumn)
}
