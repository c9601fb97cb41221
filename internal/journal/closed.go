package journal

import (
	"context"
	"sort"
	"strings"

	"trade-journal-go/internal/report"
)

// ClosedRows returns the closed-trades listing: one computed row per
// closed trade, joined with reference names and filtered like the trade
// list, except the date range applies to the last sell date.
func (s *Service) ClosedRows(ctx context.Context, userID uint, f Filter) ([]report.ClosedTradeRow, error) {
	trades, err := s.ClosedTrades(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	names, err := s.loadReferenceNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(f.Search)
	setups := idSet(f.SetupIDs)
	types := idSet(f.TypeIDs)
	markets := idSet(f.MarketIDs)
	accounts := idSet(f.AccountIDs)

	var rows []report.ClosedTradeRow
	for i := range trades {
		row, err := report.ClosedRow(&trades[i])
		if err != nil {
			// Closed trades always carry a buy; skip anything that
			// slipped through.
			continue
		}
		row.SetupName = names.setups[row.SetupID]
		row.TypeName = names.types[row.TypeID]
		row.MarketName = names.markets[row.MarketID]
		row.AccountName = names.accounts[row.AccountID]

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
		if f.Start != nil && row.LastSellDate.Before(*f.Start) {
			continue
		}
		if f.End != nil && row.LastSellDate.After(endOfDay(*f.End)) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SortClosedRows sorts closed-trade rows in place by the named column,
// with the same null and direction rules as the trade list.
func SortClosedRows(rows []report.ClosedTradeRow, column, direction string) {
	asc := direction == "asc"
	if !asc && direction != "desc" {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		x := closedSortValue(rows[i], column)
		y := closedSortValue(rows[j], column)
		cmp := compareValues(x, y)
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
}

func closedSortValue(r report.ClosedTradeRow, column string) any {
	switch column {
	case "name":
		return r.Name
	case "setup_name":
		return r.SetupName
	case "type_name":
		return r.TypeName
	case "market_name":
		return r.MarketName
	case "account_name":
		return r.AccountName
	case "total_bought":
		return r.TotalBought
	case "total_sold":
		return r.TotalSold
	case "profit":
		return r.Profit
	case "gross_r":
		return r.GrossR
	case "net_r":
		return r.NetR
	case "holding_days":
		return float64(r.HoldingDays)
	case "first_buy_date":
		return r.FirstBuyDate
	case "last_sell_date":
		return r.LastSellDate
	default:
		return nil
	}
}

// PaginateClosedRows slices closed rows for one page and returns the
// pre-slice total.
func PaginateClosedRows(rows []report.ClosedTradeRow, page, limit int) ([]report.ClosedTradeRow, int) {
	total := len(rows)
	if limit <= 0 {
		return rows, total
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= total {
		return []report.ClosedTradeRow{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return rows[start:end], total
}
