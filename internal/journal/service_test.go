package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trade-journal-go/internal/database"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/store"
)

// setupTest creates a service over a fresh in-memory database.
func setupTest(t *testing.T) (*Service, *store.Store) {
	// Use a new, non-shared in-memory database for each test to ensure isolation.
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	st := store.New(db)
	return NewService(zap.NewNop(), st), st
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedTrade(t *testing.T, st *store.Store, userID uint, name string, boughtQty, soldQty float64) *models.Trade {
	ctx := context.Background()
	trade, err := st.CreateTrade(ctx, &models.Trade{
		UserID:       userID,
		Name:         name,
		CreationDate: date(2024, time.January, 1),
		RiskPercent:  2,
	})
	require.NoError(t, err)

	if boughtQty > 0 {
		_, err = st.CreateBuyTransaction(ctx, &models.BuyTransaction{
			TradeID:  trade.ID,
			UserID:   userID,
			Quantity: boughtQty,
			Price:    100,
			Date:     date(2024, time.January, 2),
		})
		require.NoError(t, err)
	}
	if soldQty > 0 {
		_, err = st.CreateSellTransaction(ctx, &models.SellTransaction{
			TradeID:  trade.ID,
			UserID:   userID,
			Quantity: soldQty,
			Price:    120,
			Date:     date(2024, time.January, 10),
		})
		require.NoError(t, err)
	}
	return trade
}

func TestClosedTrades_Classification(t *testing.T) {
	// Arrange
	svc, st := setupTest(t)
	seedTrade(t, st, 1, "fully sold", 10, 10)
	seedTrade(t, st, 1, "partially sold", 10, 4)
	seedTrade(t, st, 1, "never bought", 0, 0)

	// Act
	closed, err := svc.ClosedTrades(context.Background(), 1, nil, nil)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, closed, 1)
	assert.Equal(t, "fully sold", closed[0].Name)
}

func TestClosedTrades_DateBounds(t *testing.T) {
	svc, st := setupTest(t)
	seedTrade(t, st, 1, "january entry", 10, 10) // first buy on Jan 2

	start := date(2024, time.February, 1)
	closed, err := svc.ClosedTrades(context.Background(), 1, &start, nil)
	assert.NoError(t, err)
	assert.Empty(t, closed)

	end := date(2024, time.January, 2) // inclusive bound
	closed, err = svc.ClosedTrades(context.Background(), 1, nil, &end)
	assert.NoError(t, err)
	assert.Len(t, closed, 1)
}

func TestOpenTrades(t *testing.T) {
	svc, st := setupTest(t)
	seedTrade(t, st, 1, "open", 10, 4)
	seedTrade(t, st, 1, "closed", 10, 10)

	open, err := svc.OpenTrades(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, open, 1)
	assert.Equal(t, "open", open[0].Name)
	assert.Equal(t, 6.0, open[0].Remaining)
}

func TestAddSellTransaction_RejectsOverRemaining(t *testing.T) {
	svc, st := setupTest(t)
	trade := seedTrade(t, st, 1, "position", 10, 4)

	_, err := svc.AddSellTransaction(context.Background(), 1, trade.ID, &models.SellTransaction{
		Quantity: 7, // only 6 remaining
		Price:    120,
		Date:     date(2024, time.January, 12),
	})

	assert.ErrorIs(t, err, ErrQuantityExceedsRemaining)

	// No sell row was written.
	sells, err := st.GetSellTransactions(context.Background(), 1, trade.ID)
	assert.NoError(t, err)
	assert.Len(t, sells, 1)
}

func TestAddSellTransaction_AllowsExactRemaining(t *testing.T) {
	svc, st := setupTest(t)
	trade := seedTrade(t, st, 1, "position", 10, 4)

	sell, err := svc.AddSellTransaction(context.Background(), 1, trade.ID, &models.SellTransaction{
		Quantity: 6,
		Price:    120,
		Date:     date(2024, time.January, 12),
	})

	assert.NoError(t, err)
	assert.Equal(t, trade.ID, sell.TradeID)

	closed, err := svc.ClosedTrades(context.Background(), 1, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, closed, 1)
}

func TestUpdateSellTransaction_RejectsOverRemaining(t *testing.T) {
	svc, st := setupTest(t)
	trade := seedTrade(t, st, 1, "position", 10, 4)

	sells, err := st.GetSellTransactions(context.Background(), 1, trade.ID)
	require.NoError(t, err)
	require.Len(t, sells, 1)

	// Raising the sell past bought quantity would take remaining negative.
	edited := sells[0]
	edited.Quantity = 11
	_, err = svc.UpdateSellTransaction(context.Background(), 1, &edited)
	assert.ErrorIs(t, err, ErrQuantityExceedsRemaining)

	// The stored row is untouched.
	sells, err = st.GetSellTransactions(context.Background(), 1, trade.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, sells[0].Quantity)

	// Raising it to exactly the bought quantity is fine and closes the trade.
	edited.Quantity = 10
	_, err = svc.UpdateSellTransaction(context.Background(), 1, &edited)
	assert.NoError(t, err)

	closed, err := svc.ClosedTrades(context.Background(), 1, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, closed, 1)
}

func TestUpdateBuyTransaction_RejectsBelowSold(t *testing.T) {
	svc, st := setupTest(t)
	trade := seedTrade(t, st, 1, "position", 10, 4)

	buys, err := st.GetBuyTransactions(context.Background(), 1, trade.ID)
	require.NoError(t, err)
	require.Len(t, buys, 1)

	// Shrinking the buy below the 4 already sold would oversell the trade.
	edited := buys[0]
	edited.Quantity = 3
	_, err = svc.UpdateBuyTransaction(context.Background(), 1, &edited)
	assert.ErrorIs(t, err, ErrQuantityExceedsRemaining)

	// Shrinking to exactly the sold quantity is allowed.
	edited.Quantity = 4
	updated, err := svc.UpdateBuyTransaction(context.Background(), 1, &edited)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, updated.Quantity)
}

func TestUpdateSellTransaction_UnknownID(t *testing.T) {
	svc, _ := setupTest(t)

	_, err := svc.UpdateSellTransaction(context.Background(), 1, &models.SellTransaction{Quantity: 1})

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddSellTransaction_UnknownTrade(t *testing.T) {
	svc, _ := setupTest(t)

	_, err := svc.AddSellTransaction(context.Background(), 1, 999, &models.SellTransaction{Quantity: 1})

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTradeRows_FlattensTransactions(t *testing.T) {
	svc, st := setupTest(t)
	ctx := context.Background()

	setup, err := st.CreateSetup(ctx, 1, "Breakout")
	require.NoError(t, err)
	trade, err := st.CreateTrade(ctx, &models.Trade{
		UserID:       1,
		Name:         "TCS",
		SetupID:      setup.ID,
		CreationDate: date(2024, time.March, 1),
	})
	require.NoError(t, err)
	_, err = st.CreateBuyTransaction(ctx, &models.BuyTransaction{
		TradeID: trade.ID, UserID: 1, Quantity: 10, Price: 100, Date: date(2024, time.March, 2),
	})
	require.NoError(t, err)
	_, err = st.CreateSellTransaction(ctx, &models.SellTransaction{
		TradeID: trade.ID, UserID: 1, Quantity: 10, Price: 110, Date: date(2024, time.March, 9),
	})
	require.NoError(t, err)

	// A second trade without transactions yields a placeholder row.
	_, err = st.CreateTrade(ctx, &models.Trade{UserID: 1, Name: "INFY", CreationDate: date(2024, time.March, 5)})
	require.NoError(t, err)

	rows, err := svc.TradeRows(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	var sides []string
	for _, row := range rows {
		sides = append(sides, row.Side)
	}
	assert.ElementsMatch(t, []string{SideBuy, SideSell, SideNone}, sides)

	for _, row := range rows {
		if row.Name == "TCS" {
			assert.Equal(t, "Breakout", row.SetupName)
		}
		if row.Side == SideNone {
			assert.Equal(t, "INFY", row.Name)
			assert.Nil(t, row.Date)
			assert.Nil(t, row.Price)
		}
	}
}

func TestTradeRows_ScopedToUser(t *testing.T) {
	svc, st := setupTest(t)
	seedTrade(t, st, 1, "mine", 10, 0)
	seedTrade(t, st, 2, "theirs", 10, 0)

	rows, err := svc.TradeRows(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "mine", rows[0].Name)
}

func TestClosedRows_FilterAndNames(t *testing.T) {
	svc, st := setupTest(t)
	ctx := context.Background()

	setup, err := st.CreateSetup(ctx, 1, "Pullback")
	require.NoError(t, err)

	trade, err := st.CreateTrade(ctx, &models.Trade{
		UserID: 1, Name: "HDFC", SetupID: setup.ID, RiskPercent: 2,
		CreationDate: date(2024, time.April, 1),
	})
	require.NoError(t, err)
	_, err = st.CreateBuyTransaction(ctx, &models.BuyTransaction{
		TradeID: trade.ID, UserID: 1, Quantity: 10, Price: 100, Date: date(2024, time.April, 2),
	})
	require.NoError(t, err)
	_, err = st.CreateSellTransaction(ctx, &models.SellTransaction{
		TradeID: trade.ID, UserID: 1, Quantity: 10, Price: 120, Date: date(2024, time.April, 20),
	})
	require.NoError(t, err)

	rows, err := svc.ClosedRows(ctx, 1, Filter{})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Pullback", rows[0].SetupName)
	assert.Equal(t, "200.00", rows[0].Profit)

	// Date range on last sell date excludes the trade.
	end := date(2024, time.April, 10)
	rows, err = svc.ClosedRows(ctx, 1, Filter{End: &end})
	assert.NoError(t, err)
	assert.Empty(t, rows)

	// Setup filter with a non-matching id excludes it too.
	rows, err = svc.ClosedRows(ctx, 1, Filter{SetupIDs: []uint{setup.ID + 1}})
	assert.NoError(t, err)
	assert.Empty(t, rows)
}
