package journal

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Transaction side labels on flattened rows.
const (
	SideBuy  = "Buy"
	SideSell = "Sell"
	SideNone = "No Transactions"
)

// Row is one flattened trade-transaction line as shown in the trade list.
// Price, Quantity, Brokerage and Date are nil on placeholder rows.
type Row struct {
	TradeID      uint       `json:"trade_id"`
	Name         string     `json:"name"`
	Side         string     `json:"side"`
	CreationDate time.Time  `json:"creation_date"`
	Date         *time.Time `json:"date,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	Quantity     *float64   `json:"quantity,omitempty"`
	Brokerage    *float64   `json:"brokerage,omitempty"`
	SetupID      uint       `json:"setup_id"`
	TypeID       uint       `json:"type_id"`
	MarketID     uint       `json:"market_id"`
	AccountID    uint       `json:"account_id"`
	SetupName    string     `json:"setup_name"`
	TypeName     string     `json:"type_name"`
	MarketName   string     `json:"market_name"`
	AccountName  string     `json:"account_name"`
	RiskPercent  float64    `json:"risk_percent"`
}

// filterDate is the date a row is filtered on: its own transaction date,
// or the trade's creation date for placeholder rows.
func (r Row) filterDate() time.Time {
	if r.Date != nil {
		return *r.Date
	}
	return r.CreationDate
}

// Filter describes the trade-list filters. Zero values mean "no filter".
type Filter struct {
	Search     string
	SetupIDs   []uint
	TypeIDs    []uint
	MarketIDs  []uint
	AccountIDs []uint
	Start      *time.Time
	End        *time.Time
}

// Apply runs the filters in order: name search, membership filters, then
// the inclusive date range.
func (f Filter) Apply(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	search := strings.ToLower(f.Search)

	setups := idSet(f.SetupIDs)
	types := idSet(f.TypeIDs)
	markets := idSet(f.MarketIDs)
	accounts := idSet(f.AccountIDs)

	for _, row := range rows {
		if search != "" && !strings.Contains(strings.ToLower(row.Name), search) {
			continue
		}
		if setups != nil && !setups[row.SetupID] {
			continue
		}
		if types != nil && !types[row.TypeID] {
			continue
		}
		if markets != nil && !markets[row.MarketID] {
			continue
		}
		if accounts != nil && !accounts[row.AccountID] {
			continue
		}
		date := row.filterDate()
		if f.Start != nil && date.Before(*f.Start) {
			continue
		}
		if f.End != nil && date.After(endOfDay(*f.End)) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func idSet(ids []uint) map[uint]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// SortRows sorts rows in place by the named column. Direction is "asc" or
// "desc"; anything else leaves the order untouched.
func SortRows(rows []Row, column, direction string) {
	asc := direction == "asc"
	if !asc && direction != "desc" {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		x := sortValue(rows[i], column)
		y := sortValue(rows[j], column)
		cmp := compareValues(x, y)
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
}

// sortValue extracts the sortable value for a column; nil means the row
// has no value there.
func sortValue(r Row, column string) any {
	switch column {
	case "name":
		return r.Name
	case "side":
		return r.Side
	case "setup_name":
		return r.SetupName
	case "type_name":
		return r.TypeName
	case "market_name":
		return r.MarketName
	case "account_name":
		return r.AccountName
	case "risk_percent":
		return r.RiskPercent
	case "price":
		if r.Price == nil {
			return nil
		}
		return *r.Price
	case "quantity":
		if r.Quantity == nil {
			return nil
		}
		return *r.Quantity
	case "brokerage":
		if r.Brokerage == nil {
			return nil
		}
		return *r.Brokerage
	case "date":
		if r.Date == nil {
			return nil
		}
		return *r.Date
	case "creation_date":
		return r.CreationDate
	default:
		return nil
	}
}

// compareValues orders two column values. Nil compares below everything,
// so the caller's direction flip places missing values first ascending and
// last descending. Strings that parse as numbers compare numerically;
// other strings compare lowercased.
func compareValues(x, y any) int {
	if x == nil && y == nil {
		return 0
	}
	if x == nil {
		return -1
	}
	if y == nil {
		return 1
	}

	switch xv := x.(type) {
	case float64:
		yv, ok := y.(float64)
		if !ok {
			return 0
		}
		switch {
		case xv < yv:
			return -1
		case xv > yv:
			return 1
		}
		return 0
	case time.Time:
		yv, ok := y.(time.Time)
		if !ok {
			return 0
		}
		switch {
		case xv.Before(yv):
			return -1
		case xv.After(yv):
			return 1
		}
		return 0
	case string:
		yv, ok := y.(string)
		if !ok {
			return 0
		}
		xf, xErr := strconv.ParseFloat(xv, 64)
		yf, yErr := strconv.ParseFloat(yv, 64)
		if xErr == nil && yErr == nil {
			return compareValues(xf, yf)
		}
		return strings.Compare(strings.ToLower(xv), strings.ToLower(yv))
	}
	return 0
}

// Paginate slices rows for one page and returns the pre-slice total.
// Page numbers start at 1; a non-positive limit disables paging.
func Paginate(rows []Row, page, limit int) ([]Row, int) {
	total := len(rows)
	if limit <= 0 {
		return rows, total
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= total {
		return []Row{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return rows[start:end], total
}
