package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trade-journal-go/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// closedTrade builds a trade with one buy and one sell of equal quantity.
func closedTrade(riskPercent, qty, buyPrice, sellPrice float64, buyDate, sellDate time.Time) models.Trade {
	return models.Trade{
		RiskPercent: riskPercent,
		BuyTransactions: []models.BuyTransaction{
			{Quantity: qty, Price: buyPrice, Date: buyDate},
		},
		SellTransactions: []models.SellTransaction{
			{Quantity: qty, Price: sellPrice, Date: sellDate},
		},
	}
}

func TestSummarize(t *testing.T) {
	t.Run("WinningTrade", func(t *testing.T) {
		// Arrange
		trade := closedTrade(2, 10, 100, 120, date(2024, time.January, 1), date(2024, time.January, 11))

		// Act
		m, err := Summarize(&trade)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "1000", m.TotalBought.String())
		assert.Equal(t, "1200", m.TotalSold.String())
		assert.Equal(t, "200", m.Profit.String())
		assert.Equal(t, "20", m.RiskAmount.String())
		assert.Equal(t, "10.00", m.GrossR.StringFixed(2))
		// netProfit = 200 - 1000*0.01 - 1200*0.01 = 178
		assert.Equal(t, "178", m.NetProfit.String())
		assert.Equal(t, "8.90", m.NetR.StringFixed(2))
		assert.True(t, m.Win)
		assert.Equal(t, 10.0, m.HoldingDays)
	})

	t.Run("ZeroProfitIsLoss", func(t *testing.T) {
		trade := closedTrade(2, 10, 100, 100, date(2024, time.January, 1), date(2024, time.January, 2))

		m, err := Summarize(&trade)

		assert.NoError(t, err)
		assert.True(t, m.Profit.IsZero())
		assert.False(t, m.Win)
	})

	t.Run("ZeroRiskYieldsZeroR", func(t *testing.T) {
		trade := closedTrade(0, 10, 100, 120, date(2024, time.January, 1), date(2024, time.January, 2))

		m, err := Summarize(&trade)

		assert.NoError(t, err)
		assert.True(t, m.GrossR.IsZero())
		assert.True(t, m.NetR.IsZero())
	})

	t.Run("NoBuyTransactions", func(t *testing.T) {
		trade := models.Trade{}

		_, err := Summarize(&trade)

		assert.ErrorIs(t, err, ErrNoBuyTransactions)
	})

	t.Run("HoldingDaysUseLastSell", func(t *testing.T) {
		trade := models.Trade{
			RiskPercent: 2,
			BuyTransactions: []models.BuyTransaction{
				{Quantity: 10, Price: 100, Date: date(2024, time.January, 1)},
			},
			SellTransactions: []models.SellTransaction{
				{Quantity: 5, Price: 110, Date: date(2024, time.January, 5)},
				{Quantity: 5, Price: 120, Date: date(2024, time.January, 21)},
			},
		}

		m, err := Summarize(&trade)

		assert.NoError(t, err)
		assert.Equal(t, 20.0, m.HoldingDays)
	})
}

func TestGenerate_MonthlyBucketing(t *testing.T) {
	// Two trades with first buys in the same month land in one bucket.
	trades := []models.Trade{
		closedTrade(2, 10, 100, 120, date(2024, time.March, 5), date(2024, time.March, 10)),
		closedTrade(2, 10, 100, 90, date(2024, time.March, 20), date(2024, time.March, 25)),
	}

	rows, err := Generate(trades, Monthly)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "March 2024", rows[0].Period)
	assert.Equal(t, 2, rows[0].TotalTrades)
	assert.Equal(t, 1, rows[0].Wins)
	assert.Equal(t, 1, rows[0].Losses)
}

func TestGenerate_ChronologicalOrder(t *testing.T) {
	// Insertion order is March first; output must start with January.
	trades := []models.Trade{
		closedTrade(2, 10, 100, 120, date(2024, time.March, 5), date(2024, time.March, 10)),
		closedTrade(2, 10, 100, 120, date(2024, time.January, 5), date(2024, time.January, 10)),
		closedTrade(2, 10, 100, 120, date(2023, time.December, 5), date(2023, time.December, 10)),
	}

	rows, err := Generate(trades, Monthly)

	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "December 2023", rows[0].Period)
	assert.Equal(t, "January 2024", rows[1].Period)
	assert.Equal(t, "March 2024", rows[2].Period)
}

func TestGenerate_WinPercentage(t *testing.T) {
	trades := []models.Trade{
		closedTrade(2, 10, 100, 120, date(2024, time.May, 1), date(2024, time.May, 2)),
		closedTrade(2, 10, 100, 130, date(2024, time.May, 3), date(2024, time.May, 4)),
		closedTrade(2, 10, 100, 110, date(2024, time.May, 5), date(2024, time.May, 6)),
		closedTrade(2, 10, 100, 90, date(2024, time.May, 7), date(2024, time.May, 8)),
	}

	rows, err := Generate(trades, Monthly)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "75.0", rows[0].WinPercentage)
}

func TestGenerate_DerivedStatistics(t *testing.T) {
	// One win of 200 over 5 days, one loss of 100 over 3 days.
	trades := []models.Trade{
		closedTrade(2, 10, 100, 120, date(2024, time.June, 1), date(2024, time.June, 6)),
		closedTrade(2, 10, 100, 90, date(2024, time.June, 10), date(2024, time.June, 13)),
	}

	rows, err := Generate(trades, Monthly)

	assert.NoError(t, err)
	row := rows[0]
	assert.Equal(t, "200.00", row.WinAverage)
	assert.Equal(t, "100.00", row.LossAverage)
	assert.Equal(t, "2.00", row.SimpleRR)
	// AWLR = (0.5*200)/(0.5*100) = 2
	assert.Equal(t, "2.00", row.AWLR)
	assert.Equal(t, "200.00", row.MaxWin)
	assert.Equal(t, "-100.00", row.MaxLoss)
	// gross R per trade: +10 and -5
	assert.Equal(t, "10.00", row.MaxR)
	assert.Equal(t, "-5.00", row.MinR)
	assert.Equal(t, "5.00", row.GrossR)
	assert.Equal(t, 5, row.AvgWinDays)
	assert.Equal(t, 3, row.AvgLossDays)
}

func TestGenerate_NoLossesGuardsRatios(t *testing.T) {
	trades := []models.Trade{
		closedTrade(2, 10, 100, 120, date(2024, time.July, 1), date(2024, time.July, 2)),
	}

	rows, err := Generate(trades, Monthly)

	assert.NoError(t, err)
	row := rows[0]
	assert.Equal(t, "100.0", row.WinPercentage)
	assert.Equal(t, "0.00", row.LossAverage)
	assert.Equal(t, "0.00", row.SimpleRR)
	assert.Equal(t, "0.00", row.AWLR)
	assert.Equal(t, 0, row.AvgLossDays)
}

func TestGenerate_QuarterlyAndYearly(t *testing.T) {
	trades := []models.Trade{
		closedTrade(2, 10, 100, 120, date(2024, time.February, 1), date(2024, time.February, 2)),
		closedTrade(2, 10, 100, 120, date(2024, time.March, 1), date(2024, time.March, 2)),
		closedTrade(2, 10, 100, 120, date(2024, time.November, 1), date(2024, time.November, 2)),
	}

	quarterly, err := Generate(trades, Quarterly)
	assert.NoError(t, err)
	assert.Len(t, quarterly, 2)
	assert.Equal(t, "Q1 2024", quarterly[0].Period)
	assert.Equal(t, 2, quarterly[0].TotalTrades)
	assert.Equal(t, "Q4 2024", quarterly[1].Period)

	yearly, err := Generate(trades, Yearly)
	assert.NoError(t, err)
	assert.Len(t, yearly, 1)
	assert.Equal(t, "2024", yearly[0].Period)
	assert.Equal(t, 3, yearly[0].TotalTrades)
}

func TestGenerate_SkipsTradesWithoutBuys(t *testing.T) {
	trades := []models.Trade{
		{RiskPercent: 2},
		closedTrade(2, 10, 100, 120, date(2024, time.August, 1), date(2024, time.August, 2)),
	}

	rows, err := Generate(trades, Monthly)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].TotalTrades)
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("monthly")
	assert.NoError(t, err)
	assert.Equal(t, Monthly, g)

	_, err = ParseGranularity("weekly")
	assert.Error(t, err)
}

func TestClosedRow(t *testing.T) {
	trade := closedTrade(2, 10, 100, 120, date(2024, time.January, 1), date(2024, time.January, 11))
	trade.ID = 7
	trade.Name = "RELIANCE"

	row, err := ClosedRow(&trade)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), row.TradeID)
	assert.Equal(t, "RELIANCE", row.Name)
	assert.Equal(t, "200.00", row.Profit)
	assert.Equal(t, "10.00", row.GrossR)
	assert.Equal(t, "8.90", row.NetR)
	assert.True(t, row.Win)
	assert.Equal(t, 10, row.HoldingDays)
}
