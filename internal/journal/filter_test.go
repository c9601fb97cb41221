package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trade-journal-go/internal/report"
)

func row(name string, mods ...func(*Row)) Row {
	r := Row{Name: name, Side: SideBuy, CreationDate: date(2024, time.January, 1)}
	for _, mod := range mods {
		mod(&r)
	}
	return r
}

func withDate(d time.Time) func(*Row) {
	return func(r *Row) { r.Date = &d }
}

func withPrice(p float64) func(*Row) {
	return func(r *Row) { r.Price = &p }
}

func withSetup(id uint) func(*Row) {
	return func(r *Row) { r.SetupID = id }
}

func TestFilter_Search(t *testing.T) {
	rows := []Row{row("Reliance"), row("TCS"), row("reliance industries")}

	got := Filter{Search: "RELI"}.Apply(rows)

	assert.Len(t, got, 2)
	assert.Equal(t, "Reliance", got[0].Name)
	assert.Equal(t, "reliance industries", got[1].Name)
}

func TestFilter_Membership(t *testing.T) {
	rows := []Row{
		row("a", withSetup(1)),
		row("b", withSetup(2)),
		row("c", withSetup(3)),
	}

	got := Filter{SetupIDs: []uint{1, 3}}.Apply(rows)

	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	rows := []Row{
		row("january", withDate(date(2024, time.January, 1))),
		row("june", withDate(date(2024, time.June, 30))),
		row("july", withDate(date(2024, time.July, 1))),
	}
	start := date(2024, time.January, 1)
	end := date(2024, time.June, 30)

	got := Filter{Start: &start, End: &end}.Apply(rows)

	assert.Len(t, got, 2)
	for _, r := range got {
		assert.NotEqual(t, "july", r.Name)
	}
}

func TestFilter_PlaceholderRowsUseCreationDate(t *testing.T) {
	placeholder := row("no transactions")
	placeholder.Side = SideNone // CreationDate is Jan 1

	start := date(2024, time.February, 1)
	got := Filter{Start: &start}.Apply([]Row{placeholder})
	assert.Empty(t, got)

	start = date(2024, time.January, 1)
	got = Filter{Start: &start}.Apply([]Row{placeholder})
	assert.Len(t, got, 1)
}

func TestFilter_ZeroValueKeepsEverything(t *testing.T) {
	rows := []Row{row("a"), row("b", withSetup(5))}

	got := Filter{}.Apply(rows)

	assert.Equal(t, rows, got)
}

func TestSortRows_ByName(t *testing.T) {
	rows := []Row{row("banana"), row("Apple"), row("cherry")}

	SortRows(rows, "name", "asc")

	assert.Equal(t, "Apple", rows[0].Name)
	assert.Equal(t, "banana", rows[1].Name)
	assert.Equal(t, "cherry", rows[2].Name)

	SortRows(rows, "name", "desc")
	assert.Equal(t, "cherry", rows[0].Name)
}

func TestSortRows_NilPlacement(t *testing.T) {
	rows := []Row{
		row("priced", withPrice(50)),
		row("placeholder"), // nil price
		row("cheap", withPrice(10)),
	}

	// Ascending: rows without a value stay on top.
	SortRows(rows, "price", "asc")
	assert.Equal(t, "placeholder", rows[0].Name)
	assert.Equal(t, "cheap", rows[1].Name)
	assert.Equal(t, "priced", rows[2].Name)

	// Descending: they sink to the bottom.
	SortRows(rows, "price", "desc")
	assert.Equal(t, "priced", rows[0].Name)
	assert.Equal(t, "cheap", rows[1].Name)
	assert.Equal(t, "placeholder", rows[2].Name)
}

func TestSortRows_NumericStrings(t *testing.T) {
	rows := []Row{row("9"), row("10"), row("2")}

	SortRows(rows, "name", "asc")

	assert.Equal(t, "2", rows[0].Name)
	assert.Equal(t, "9", rows[1].Name)
	assert.Equal(t, "10", rows[2].Name)
}

func TestSortRows_UnknownDirectionLeavesOrder(t *testing.T) {
	rows := []Row{row("b"), row("a")}

	SortRows(rows, "name", "sideways")

	assert.Equal(t, "b", rows[0].Name)
	assert.Equal(t, "a", rows[1].Name)
}

func TestSortClosedRows(t *testing.T) {
	rows := []report.ClosedTradeRow{
		{Name: "small", Profit: "100.00"},
		{Name: "big", Profit: "900.00"},
		{Name: "mid", Profit: "500.00"},
	}

	SortClosedRows(rows, "profit", "desc")
	assert.Equal(t, "big", rows[0].Name)
	assert.Equal(t, "mid", rows[1].Name)
	assert.Equal(t, "small", rows[2].Name)

	SortClosedRows(rows, "profit", "asc")
	assert.Equal(t, "small", rows[0].Name)
}

func TestPaginate(t *testing.T) {
	rows := []Row{row("a"), row("b"), row("c"), row("d"), row("e")}

	page, total := Paginate(rows, 2, 2)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Name)
	assert.Equal(t, "d", page[1].Name)

	// Last, short page.
	page, total = Paginate(rows, 3, 2)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 1)
	assert.Equal(t, "e", page[0].Name)

	// Past the end.
	page, total = Paginate(rows, 4, 2)
	assert.Equal(t, 5, total)
	assert.Empty(t, page)

	// No limit disables paging.
	page, total = Paginate(rows, 1, 0)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 5)
}
