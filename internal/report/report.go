// Package report turns closed trades into per-period performance
// statistics: R-multiples, win rates, averages and holding times bucketed
// by calendar month, quarter or year.
package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

// Row is one report line for a single period. Money and ratio values are
// formatted with two decimals, win percentage with one; day averages are
// rounded to whole days.
type Row struct {
	Period        string `json:"period"`
	GrossR        string `json:"gross_r"`
	NetR          string `json:"net_r"`
	TotalTrades   int    `json:"total_trades"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	WinPercentage string `json:"win_percentage"`
	WinAverage    string `json:"win_average"`
	LossAverage   string `json:"loss_average"`
	SimpleRR      string `json:"simple_rr"`
	AWLR          string `json:"awlr"`
	MaxWin        string `json:"max_win"`
	MaxLoss       string `json:"max_loss"`
	MaxR          string `json:"max_r"`
	MinR          string `json:"min_r"`
	AvgWinDays    int    `json:"avg_win_days"`
	AvgLossDays   int    `json:"avg_loss_days"`
}

// bucket accumulates one period's figures.
type bucket struct {
	period Period

	totalTrades int
	wins        int
	losses      int

	grossR    decimal.Decimal
	netR      decimal.Decimal
	winTotal  decimal.Decimal // sum of win profits
	lossTotal decimal.Decimal // sum of loss magnitudes
	maxWin    decimal.Decimal // largest single win profit
	maxLoss   decimal.Decimal // most negative single loss
	maxR      decimal.Decimal // best per-trade gross R
	minR      decimal.Decimal // worst per-trade gross R

	winDays  float64
	lossDays float64
}

// Generate aggregates closed trades into one row per period, ordered
// chronologically. Trades without buy transactions are skipped; the
// caller is expected to pass closed trades only.
func Generate(trades []models.Trade, g Granularity) ([]Row, error) {
	buckets := make(map[Period]*bucket)

	for i := range trades {
		t := &trades[i]
		m, err := Summarize(t)
		if err != nil {
			if err == ErrNoBuyTransactions {
				continue
			}
			return nil, fmt.Errorf("failed to summarize trade %d: %w", t.ID, err)
		}

		period := PeriodOf(m.FirstBuyDate, g)
		b, ok := buckets[period]
		if !ok {
			b = &bucket{period: period}
			buckets[period] = b
		}
		b.add(m)
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].period.Start().Before(ordered[j].period.Start())
	})

	rows := make([]Row, 0, len(ordered))
	for _, b := range ordered {
		rows = append(rows, b.row())
	}
	return rows, nil
}

func (b *bucket) add(m *TradeMetrics) {
	first := b.totalTrades == 0
	b.totalTrades++
	b.grossR = b.grossR.Add(m.GrossR)
	b.netR = b.netR.Add(m.NetR)

	if first || m.GrossR.GreaterThan(b.maxR) {
		b.maxR = m.GrossR
	}
	if first || m.GrossR.LessThan(b.minR) {
		b.minR = m.GrossR
	}

	if m.Win {
		b.wins++
		b.winTotal = b.winTotal.Add(m.Profit)
		if m.Profit.GreaterThan(b.maxWin) {
			b.maxWin = m.Profit
		}
		b.winDays += m.HoldingDays
	} else {
		b.losses++
		b.lossTotal = b.lossTotal.Add(m.Profit.Abs())
		if m.Profit.LessThan(b.maxLoss) {
			b.maxLoss = m.Profit
		}
		b.lossDays += m.HoldingDays
	}
}

// row derives the display figures. Every ratio is zero when its
// denominator is zero.
func (b *bucket) row() Row {
	winAvg := decimal.Zero
	if b.wins > 0 {
		winAvg = b.winTotal.Div(decimal.NewFromInt(int64(b.wins)))
	}
	lossAvg := decimal.Zero
	if b.losses > 0 {
		lossAvg = b.lossTotal.Div(decimal.NewFromInt(int64(b.losses)))
	}

	total := decimal.NewFromInt(int64(b.totalTrades))
	wins := decimal.NewFromInt(int64(b.wins))
	winPct := safeDiv(wins, total).Mul(hundred)

	simpleRR := safeDiv(winAvg, lossAvg.Abs())

	winRate := safeDiv(wins, total)
	lossRate := decimal.NewFromInt(1).Sub(winRate)
	awlr := safeDiv(winRate.Mul(winAvg), lossRate.Mul(lossAvg.Abs()))

	return Row{
		Period:        b.period.Label(),
		GrossR:        b.grossR.StringFixed(2),
		NetR:          b.netR.StringFixed(2),
		TotalTrades:   b.totalTrades,
		Wins:          b.wins,
		Losses:        b.losses,
		WinPercentage: winPct.StringFixed(1),
		WinAverage:    winAvg.StringFixed(2),
		LossAverage:   lossAvg.StringFixed(2),
		SimpleRR:      simpleRR.StringFixed(2),
		AWLR:          awlr.StringFixed(2),
		MaxWin:        b.maxWin.StringFixed(2),
		MaxLoss:       b.maxLoss.StringFixed(2),
		MaxR:          b.maxR.StringFixed(2),
		MinR:          b.minR.StringFixed(2),
		AvgWinDays:    avgDays(b.winDays, b.wins),
		AvgLossDays:   avgDays(b.lossDays, b.losses),
	}
}

func avgDays(days float64, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(days / float64(count)))
}
