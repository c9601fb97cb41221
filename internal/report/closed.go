package report

import (
	"time"

	"trade-journal-go/internal/models"
)

// ClosedTradeRow is the flat per-trade line of the closed-trades listing.
type ClosedTradeRow struct {
	TradeID      uint      `json:"trade_id"`
	Name         string    `json:"name"`
	SetupID      uint      `json:"setup_id"`
	TypeID       uint      `json:"type_id"`
	MarketID     uint      `json:"market_id"`
	AccountID    uint      `json:"account_id"`
	SetupName    string    `json:"setup_name"`
	TypeName     string    `json:"type_name"`
	MarketName   string    `json:"market_name"`
	AccountName  string    `json:"account_name"`
	TotalBought  string    `json:"total_bought"`
	TotalSold    string    `json:"total_sold"`
	Profit       string    `json:"profit"`
	GrossR       string    `json:"gross_r"`
	NetR         string    `json:"net_r"`
	Win          bool      `json:"win"`
	HoldingDays  int       `json:"holding_days"`
	FirstBuyDate time.Time `json:"first_buy_date"`
	LastSellDate time.Time `json:"last_sell_date"`
}

// ClosedRow computes the money figures of one closed trade. Reference
// names are left for the caller to fill in.
func ClosedRow(t *models.Trade) (ClosedTradeRow, error) {
	m, err := Summarize(t)
	if err != nil {
		return ClosedTradeRow{}, err
	}

	return ClosedTradeRow{
		TradeID:      t.ID,
		Name:         t.Name,
		SetupID:      t.SetupID,
		TypeID:       t.TypeID,
		MarketID:     t.MarketID,
		AccountID:    t.AccountID,
		TotalBought:  m.TotalBought.StringFixed(2),
		TotalSold:    m.TotalSold.StringFixed(2),
		Profit:       m.Profit.StringFixed(2),
		GrossR:       m.GrossR.StringFixed(2),
		NetR:         m.NetR.StringFixed(2),
		Win:          m.Win,
		HoldingDays:  wholeDays(m.HoldingDays),
		FirstBuyDate: m.FirstBuyDate,
		LastSellDate: m.LastSellDate,
	}, nil
}

func wholeDays(days float64) int {
	return int(days)
}
