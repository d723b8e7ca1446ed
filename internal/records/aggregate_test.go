package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/core"
)

func TestTotalCost(t *testing.T) {
	rows := []Row{
		TextRow("$45.00"),
		TextRow("30"),
		TextRow("N/A"),
		{Empty()},
		{Number(12.5)},
		TextRow("$1,234.56"),
	}
	assert.Equal(t, core.Money{Cents: 132206}, TotalCost(rows, 0))
}

func TestTotalCostWithoutCostColumn(t *testing.T) {
	rows := []Row{TextRow("45")}
	assert.Equal(t, core.Money{}, TotalCost(rows, -1))
	assert.Equal(t, core.Money{}, TotalCost(rows, 4))
	assert.Equal(t, core.Money{}, TotalCost(nil, 0))
}

func TestSummaryFilteredNeverExceedsTotal(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load([]string{"Date", "Item", "Price"}, []Row{
		TextRow("2024-01-01", "oil", "40"),
		TextRow("2024-01-02", "tires", "400"),
		TextRow("2024-01-03", "oil filter", "15.50"),
	}))

	for _, term := range []string{"", "oil", "tires", "zzz"} {
		sum := s.Summary(term)
		assert.True(t, sum.HasCost)
		assert.LessOrEqual(t, sum.Filtered.Cents, sum.Total.Cents, term)
		assert.LessOrEqual(t, sum.ShownRows, sum.TotalRows, term)
	}

	sum := s.Summary("oil")
	assert.Equal(t, int64(45550), sum.Total.Cents)
	assert.Equal(t, int64(5550), sum.Filtered.Cents)
	assert.Equal(t, 2, sum.ShownRows)
	assert.Equal(t, 3, sum.TotalRows)
}

func TestSummaryIgnoresOversizedAmounts(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load([]string{"Item", "Cost"}, []Row{
		TextRow("a", "90000000000000000"),
		TextRow("b", "90000000000000000"),
		TextRow("c", "$1,000,000,000,000"),
		TextRow("d", "$1,000,000,000,000"),
	}))

	for _, term := range []string{"", "a", "c"} {
		sum := s.Summary(term)
		assert.GreaterOrEqual(t, sum.Total.Cents, int64(0), term)
		assert.LessOrEqual(t, sum.Filtered.Cents, sum.Total.Cents, term)
	}
	assert.Equal(t, int64(200000000000000), s.Summary("").Total.Cents)
	assert.Equal(t, core.Money{}, s.Summary("a").Filtered)
}

func TestSummaryNoCostColumn(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load([]string{"Part"}, []Row{TextRow("45")}))
	sum := s.Summary("")
	assert.False(t, sum.HasCost)
	assert.Equal(t, core.Money{}, sum.Total)
}

// Load a small log, tag it against a fixed day and total its costs.
func TestEndToEndScenario(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Load(
		[]string{"Service Date", "Type", "Cost"},
		[]Row{
			TextRow("2024-01-10", "Oil Change", "$45.00"),
			TextRow("2023-01-10", "Tire Rotation", "30"),
		},
	))
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	cls := s.Classification()
	assert.Equal(t, []ColumnRole{RoleDate, RoleDefault, RoleCost}, cls.Roles())

	first, err := s.Recency(0, DefaultRecency, now)
	require.NoError(t, err)
	second, err := s.Recency(1, DefaultRecency, now)
	require.NoError(t, err)
	assert.Equal(t, New, first)
	assert.Equal(t, Old, second)

	sum := s.Summary("")
	assert.Equal(t, "$75.00", sum.Total.String())
	assert.Equal(t, sum.Total, sum.Filtered)
}
