package report

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

// commissionRate is the flat commission charged on both the bought and the
// sold notional when computing net profit.
var commissionRate = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// ErrNoBuyTransactions is returned when a trade has no entry to measure
// from.
var ErrNoBuyTransactions = errors.New("trade has no buy transactions")

// TradeMetrics are the per-trade figures the aggregation accumulates.
type TradeMetrics struct {
	TotalBought decimal.Decimal
	TotalSold   decimal.Decimal
	Profit      decimal.Decimal
	NetProfit   decimal.Decimal
	RiskAmount  decimal.Decimal
	GrossR      decimal.Decimal
	NetR        decimal.Decimal

	// Win is true only for strictly positive profit; a flat trade
	// counts as a loss.
	Win bool

	HoldingDays  float64
	FirstBuyDate time.Time
	LastSellDate time.Time
}

// Summarize computes the money figures for one closed trade. Risk is
// anchored on the first buy: quantity x price x riskPercent/100. All
// ratios are zero when their denominator is zero.
func Summarize(t *models.Trade) (*TradeMetrics, error) {
	firstBuy := t.FirstBuy()
	if firstBuy == nil {
		return nil, ErrNoBuyTransactions
	}

	var totalBought, totalSold decimal.Decimal
	for _, b := range t.BuyTransactions {
		totalBought = totalBought.Add(notional(b.Quantity, b.Price))
	}
	for _, sl := range t.SellTransactions {
		totalSold = totalSold.Add(notional(sl.Quantity, sl.Price))
	}

	profit := totalSold.Sub(totalBought)
	netProfit := profit.
		Sub(totalBought.Mul(commissionRate)).
		Sub(totalSold.Mul(commissionRate))

	riskAmount := notional(firstBuy.Quantity, firstBuy.Price).
		Mul(decimal.NewFromFloat(t.RiskPercent)).
		Div(hundred)

	m := &TradeMetrics{
		TotalBought:  totalBought,
		TotalSold:    totalSold,
		Profit:       profit,
		NetProfit:    netProfit,
		RiskAmount:   riskAmount,
		GrossR:       safeDiv(profit, riskAmount),
		NetR:         safeDiv(netProfit, riskAmount),
		Win:          profit.IsPositive(),
		FirstBuyDate: firstBuy.Date,
	}

	if lastSell := t.LastSell(); lastSell != nil {
		m.LastSellDate = lastSell.Date
		m.HoldingDays = lastSell.Date.Sub(firstBuy.Date).Hours() / 24
	}

	return m, nil
}

func notional(quantity, price float64) decimal.Decimal {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(price))
}

// safeDiv divides n by d, defining anything over zero as zero.
func safeDiv(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return n.Div(d)
}
