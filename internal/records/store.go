package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"garage/internal/core"
)

// RowID is a session-local identifier assigned to every row on load or
// insert. It is never persisted.
type RowID = uuid.UUID

type entry struct {
	id    RowID
	cells Row
}

// Store is the in-memory table of one session: a fixed header row plus an
// ordered sequence of rows. Insertion order is the only ordering; nothing is
// ever sorted. Store is not safe for concurrent use.
type Store struct {
	headers []string
	rows    []entry
	cls     Classification
	version uint64
}

func NewStore() *Store {
	return &Store{cls: ClassifyColumns(nil)}
}

// Load replaces the table and reclassifies its columns. Short rows are padded
// with empty cells and trailing empty cells beyond the header width are
// dropped; a row with data beyond the header width is rejected with
// core.ErrSchemaMismatch and leaves the current table untouched.
func (s *Store) Load(headers []string, rows []Row) error {
	width := len(headers)
	loaded := make([]entry, 0, len(rows))
	for i, r := range rows {
		cells, err := fit(r, width)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		loaded = append(loaded, entry{id: uuid.New(), cells: cells})
	}
	s.headers = append([]string(nil), headers...)
	s.rows = loaded
	s.cls = ClassifyColumns(s.headers)
	s.version++
	return nil
}

func fit(r Row, width int) (Row, error) {
	if len(r) > width {
		for _, c := range r[width:] {
			if !c.IsEmpty() {
				return nil, fmt.Errorf("%w: %d cells for %d columns", core.ErrSchemaMismatch, len(r), width)
			}
		}
		return r[:width:width].Clone(), nil
	}
	out := make(Row, width)
	copy(out, r)
	return out, nil
}

// Headers returns a copy of the header row.
func (s *Store) Headers() []string {
	return append([]string(nil), s.headers...)
}

// Classification returns the roles computed at the last Load.
func (s *Store) Classification() Classification {
	return s.cls
}

func (s *Store) Len() int { return len(s.rows) }

// Version changes on every mutation; callers use it to detect unsaved edits.
func (s *Store) Version() uint64 { return s.version }

// Search returns the indices of rows with at least one cell whose display
// form contains term, ignoring case. The empty term matches every row.
// Indices are ascending.
func (s *Store) Search(term string) []int {
	lower := strings.ToLower(term)
	out := make([]int, 0, len(s.rows))
	for i, e := range s.rows {
		if lower == "" || rowMatches(e.cells, lower) {
			out = append(out, i)
		}
	}
	return out
}

func rowMatches(r Row, lowerTerm string) bool {
	for _, c := range r {
		if c.containsFold(lowerTerm) {
			return true
		}
	}
	return false
}

// Rows returns copies of the rows matching term, in insertion order.
func (s *Store) Rows(term string) []Row {
	idx := s.Search(term)
	out := make([]Row, len(idx))
	for i, j := range idx {
		out[i] = s.rows[j].cells.Clone()
	}
	return out
}

// Row returns a copy of the row at index.
func (s *Store) Row(index int) (Row, error) {
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	return s.rows[index].cells.Clone(), nil
}

// ID returns the identifier of the row at index.
func (s *Store) ID(index int) (RowID, error) {
	if err := s.checkIndex(index); err != nil {
		return RowID{}, err
	}
	return s.rows[index].id, nil
}

// IndexOf resolves a row identifier to its current position.
func (s *Store) IndexOf(id RowID) (int, error) {
	for i, e := range s.rows {
		if e.id == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: row %s", core.ErrNotFound, id)
}

// FindFirst returns the index of the first row equal to row. Duplicate rows
// resolve to the earliest one.
func (s *Store) FindFirst(row Row) (int, error) {
	for i, e := range s.rows {
		if e.cells.Equal(row) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: no row with values %v", core.ErrNotFound, row.Strings())
}

// Insert appends row and returns its index and identifier.
func (s *Store) Insert(row Row) (int, RowID, error) {
	if err := s.checkWidth(row); err != nil {
		return -1, RowID{}, err
	}
	id := uuid.New()
	s.rows = append(s.rows, entry{id: id, cells: row.Clone()})
	s.version++
	return len(s.rows) - 1, id, nil
}

// Update replaces the row at index, keeping its identifier.
func (s *Store) Update(index int, row Row) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if err := s.checkWidth(row); err != nil {
		return err
	}
	s.rows[index].cells = row.Clone()
	s.version++
	return nil
}

// Delete removes the row at index; later rows shift down by one.
func (s *Store) Delete(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.rows = append(s.rows[:index], s.rows[index+1:]...)
	s.version++
	return nil
}

func (s *Store) UpdateByID(id RowID, row Row) error {
	i, err := s.IndexOf(id)
	if err != nil {
		return err
	}
	return s.Update(i, row)
}

func (s *Store) DeleteByID(id RowID) error {
	i, err := s.IndexOf(id)
	if err != nil {
		return err
	}
	return s.Delete(i)
}

// Snapshot returns deep copies of the headers and all rows for persistence.
func (s *Store) Snapshot() ([]string, []Row) {
	rows := make([]Row, len(s.rows))
	for i, e := range s.rows {
		rows[i] = e.cells.Clone()
	}
	return s.Headers(), rows
}

// Recency tags the row at index by its date column. Rows of a table without
// a date column are Unclassifiable.
func (s *Store) Recency(index int, policy RecencyPolicy, now time.Time) (RecencyTag, error) {
	if err := s.checkIndex(index); err != nil {
		return Unclassifiable, err
	}
	if !s.cls.HasDate() {
		return Unclassifiable, nil
	}
	return policy.Classify(s.rows[index].cells[s.cls.DateColumn], now), nil
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.rows) {
		return fmt.Errorf("%w: row %d of %d", core.ErrNotFound, index, len(s.rows))
	}
	return nil
}

func (s *Store) checkWidth(row Row) error {
	if len(row) != len(s.headers) {
		return fmt.Errorf("%w: %d cells for %d columns", core.ErrSchemaMismatch, len(row), len(s.headers))
	}
	return nil
}
