package records

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/core"
)

func loadedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	err := s.Load(
		[]string{"Service Date", "Type", "Cost"},
		[]Row{
			TextRow("2024-01-10", "Oil Change", "$45.00"),
			TextRow("2023-01-10", "Tire Rotation", "30"),
			TextRow("2023-06-02", "oil filter", ""),
		},
	)
	require.NoError(t, err)
	return s
}

func TestStoreLoad(t *testing.T) {
	s := loadedStore(t)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"Service Date", "Type", "Cost"}, s.Headers())
	assert.Equal(t, 0, s.Classification().DateColumn)
	assert.Equal(t, 2, s.Classification().CostColumn)

	row, err := s.Row(2)
	require.NoError(t, err)
	assert.True(t, row[2].IsEmpty())
}

func TestStoreLoadPadsShortRows(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load([]string{"A", "B", "C"}, []Row{TextRow("x"), {Text("y"), Empty(), Empty(), Empty()}}))

	r0, _ := s.Row(0)
	r1, _ := s.Row(1)
	assert.Len(t, r0, 3)
	assert.Len(t, r1, 3)
	assert.Equal(t, "x", r0[0].String())
}

func TestStoreLoadRejectsOverlongRows(t *testing.T) {
	s := loadedStore(t)
	before := s.Version()

	err := s.Load([]string{"A"}, []Row{TextRow("a", "b")})
	assert.ErrorIs(t, err, core.ErrSchemaMismatch)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, before, s.Version())
	assert.Equal(t, "Service Date", s.Headers()[0])
}

func TestStoreSearch(t *testing.T) {
	s := loadedStore(t)

	assert.Equal(t, []int{0, 1, 2}, s.Search(""))
	assert.Equal(t, []int{0, 2}, s.Search("OIL"))
	assert.Equal(t, []int{1}, s.Search("rot"))
	assert.Equal(t, []int{0, 2}, s.Search("oIl"))
	assert.Empty(t, s.Search("brake"))

	rows := s.Rows("tire")
	require.Len(t, rows, 1)
	assert.Equal(t, "Tire Rotation", rows[0][1].String())
}

func TestStoreSearchMatchesDisplayForm(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load([]string{"Date", "Mileage"}, []Row{
		{DateCell(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)), Number(45000)},
	}))
	assert.Equal(t, []int{0}, s.Search("2024-03"))
	assert.Equal(t, []int{0}, s.Search("450"))
}

func TestStoreInsert(t *testing.T) {
	s := loadedStore(t)

	i, id, err := s.Insert(TextRow("2024-02-01", "Brake Service", "120"))
	require.NoError(t, err)
	assert.Equal(t, 3, i)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, 4, s.Len())

	got, err := s.IndexOf(id)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestStoreInsertWidthMismatch(t *testing.T) {
	s := loadedStore(t)
	v := s.Version()

	_, _, err := s.Insert(TextRow("2024-02-01", "Brake Service"))
	assert.ErrorIs(t, err, core.ErrSchemaMismatch)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, v, s.Version())
}

func TestStoreUpdate(t *testing.T) {
	s := loadedStore(t)
	id, err := s.ID(1)
	require.NoError(t, err)

	require.NoError(t, s.Update(1, TextRow("2023-01-11", "Tire Rotation", "35")))
	row, _ := s.Row(1)
	assert.Equal(t, []string{"2023-01-11", "Tire Rotation", "35"}, row.Strings())

	same, _ := s.ID(1)
	assert.Equal(t, id, same)

	assert.ErrorIs(t, s.Update(1, TextRow("x")), core.ErrSchemaMismatch)
	assert.ErrorIs(t, s.Update(7, TextRow("a", "b", "c")), core.ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	s := loadedStore(t)

	require.NoError(t, s.Delete(0))
	assert.Equal(t, 2, s.Len())
	row, _ := s.Row(0)
	assert.Equal(t, "Tire Rotation", row[1].String())

	assert.ErrorIs(t, s.Delete(-1), core.ErrNotFound)
	assert.ErrorIs(t, s.Delete(2), core.ErrNotFound)
	assert.Equal(t, 2, s.Len())
}

func TestStoreByID(t *testing.T) {
	s := loadedStore(t)
	id, _ := s.ID(2)

	require.NoError(t, s.Delete(0))
	require.NoError(t, s.UpdateByID(id, TextRow("2023-06-02", "Oil Filter", "12")))
	row, _ := s.Row(1)
	assert.Equal(t, "Oil Filter", row[1].String())

	require.NoError(t, s.DeleteByID(id))
	assert.Equal(t, 1, s.Len())
	assert.ErrorIs(t, s.DeleteByID(id), core.ErrNotFound)
	assert.ErrorIs(t, s.UpdateByID(uuid.New(), TextRow("a", "b", "c")), core.ErrNotFound)
}

func TestStoreFindFirstResolvesDuplicates(t *testing.T) {
	s := NewStore()
	dup := TextRow("2024-01-10", "Oil Change", "45")
	require.NoError(t, s.Load([]string{"Date", "Type", "Cost"}, []Row{
		TextRow("2024-01-01", "Wash", ""),
		dup,
		dup,
	}))

	i, err := s.FindFirst(dup)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = s.FindFirst(TextRow("nope", "", ""))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStoreRowsAreCopies(t *testing.T) {
	s := loadedStore(t)
	row, _ := s.Row(0)
	row[1] = Text("changed")

	again, _ := s.Row(0)
	assert.Equal(t, "Oil Change", again[1].String())

	_, rows := s.Snapshot()
	rows[0][0] = Empty()
	again, _ = s.Row(0)
	assert.Equal(t, "2024-01-10", again[0].String())
}

func TestStoreVersion(t *testing.T) {
	s := loadedStore(t)
	v := s.Version()

	_, _, err := s.Insert(TextRow("a", "b", "c"))
	require.NoError(t, err)
	assert.Greater(t, s.Version(), v)

	v = s.Version()
	s.Search("a")
	s.Rows("")
	s.Snapshot()
	assert.Equal(t, v, s.Version())
}

func TestStoreRecency(t *testing.T) {
	s := loadedStore(t)
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tag, err := s.Recency(0, DefaultRecency, now)
	require.NoError(t, err)
	assert.Equal(t, New, tag)

	tag, err = s.Recency(1, DefaultRecency, now)
	require.NoError(t, err)
	assert.Equal(t, Old, tag)

	_, err = s.Recency(9, DefaultRecency, now)
	assert.ErrorIs(t, err, core.ErrNotFound)

	nodate := NewStore()
	require.NoError(t, nodate.Load([]string{"Part"}, []Row{TextRow("2024-01-10")}))
	tag, err = nodate.Recency(0, DefaultRecency, now)
	require.NoError(t, err)
	assert.Equal(t, Unclassifiable, tag)
}
