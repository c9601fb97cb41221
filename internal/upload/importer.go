package upload

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"trade-journal-go/internal/models"
	"trade-journal-go/internal/store"
)

// RowError records one failed data row. The batch keeps going past it.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Summary is the result of one import run.
type Summary struct {
	ValidRows               int        `json:"valid_rows"`
	SkippedRows             int        `json:"skipped_rows"`
	TradesCreated           int        `json:"trades_created"`
	BuyTransactionsCreated  int        `json:"buy_transactions_created"`
	SellTransactionsCreated int        `json:"sell_transactions_created"`
	MarketsCreated          int        `json:"markets_created"`
	SetupsCreated           int        `json:"setups_created"`
	TypesCreated            int        `json:"types_created"`
	AccountsCreated         int        `json:"accounts_created"`
	Errors                  []RowError `json:"errors"`
}

// Importer resolves reference entities and creates trade rows for parsed
// spreadsheet data.
type Importer struct {
	logger *zap.Logger
	store  *store.Store
}

// NewImporter creates an Importer.
func NewImporter(logger *zap.Logger, st *store.Store) *Importer {
	return &Importer{logger: logger, store: st}
}

// caches hold the reference entities seen during one run. They are seeded
// once and appended to on creation, so a name created by an earlier row
// resolves for later rows without another query.
type caches struct {
	markets  []models.Market
	setups   []models.Setup
	types    []models.TradeType
	accounts []models.Account
}

// Run imports all rows for one user. Rows with a blank name are skipped
// silently; rows missing other required fields are skipped with a log
// line; any other row-level failure lands in the summary's error list
// without aborting the batch.
func (imp *Importer) Run(ctx context.Context, userID uint, rows []RawRow) (*Summary, error) {
	cache, err := imp.seedCaches(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, row := range rows {
		if row.Get("name") == "" {
			summary.SkippedRows++
			continue
		}
		if row.Get("market") == "" || row.Get("setup") == "" || row.Get("type") == "" || row.Get("kite") == "" {
			imp.logger.Info("Skipping row with missing required fields",
				zap.Int("row", row.Line),
				zap.String("name", row.Get("name")))
			summary.SkippedRows++
			continue
		}

		summary.ValidRows++
		if err := imp.importRow(ctx, userID, row, cache, summary); err != nil {
			imp.logger.Warn("Failed to import row",
				zap.Int("row", row.Line),
				zap.String("name", row.Get("name")),
				zap.Error(err))
			summary.Errors = append(summary.Errors, RowError{Row: row.Line, Reason: err.Error()})
		}
	}

	imp.logger.Info("Upload completed",
		zap.Int("valid_rows", summary.ValidRows),
		zap.Int("skipped_rows", summary.SkippedRows),
		zap.Int("trades_created", summary.TradesCreated),
		zap.Int("errors", len(summary.Errors)))
	return summary, nil
}

func (imp *Importer) seedCaches(ctx context.Context, userID uint) (*caches, error) {
	markets, err := imp.store.ListMarkets(ctx, userID)
	if err != nil {
		return nil, err
	}
	setups, err := imp.store.ListSetups(ctx, userID)
	if err != nil {
		return nil, err
	}
	types, err := imp.store.ListTradeTypes(ctx, userID)
	if err != nil {
		return nil, err
	}
	accounts, err := imp.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &caches{markets: markets, setups: setups, types: types, accounts: accounts}, nil
}

func (imp *Importer) importRow(ctx context.Context, userID uint, row RawRow, cache *caches, summary *Summary) error {
	market, err := imp.findOrCreateMarket(ctx, userID, row.Get("market"), cache, summary)
	if err != nil {
		return err
	}
	setup, err := imp.findOrCreateSetup(ctx, userID, row.Get("setup"), cache, summary)
	if err != nil {
		return err
	}
	tradeType, err := imp.findOrCreateType(ctx, userID, row.Get("type"), setup.ID, cache, summary)
	if err != nil {
		return err
	}
	account, err := imp.findOrCreateAccount(ctx, userID, row.Get("kite"), cache, summary)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	buyDate, ok := parseDate(row.Get("buy_date"))
	if !ok {
		buyDate = now
	}
	sellDate, ok := parseDate(row.Get("sell_date"))
	if !ok {
		sellDate = now
	}

	trade := models.Trade{
		UserID:       userID,
		Name:         row.Get("name"),
		CreationDate: now,
		AccountID:    account.ID,
		SetupID:      setup.ID,
		TypeID:       tradeType.ID,
		MarketID:     market.ID,
		RiskPercent:  parsePercent(row.Get("risk%")),
		GroupRank:    parseFloat(row.Get("group_rank")),
		ProScore:     parseFloat(row.Get("pro_score")),
		OneWeekRS:    parseFloat(row.Get("1w_rs")),
		OneMonthRS:   parseFloat(row.Get("1m_rs")),
	}

	closed := strings.EqualFold(row.Get("position"), "closed")

	// The trade and its transactions land together or not at all, so a
	// failed row cannot leave an orphaned trade behind.
	err = imp.store.InTx(ctx, func(tx *store.Store) error {
		if _, err := tx.CreateTrade(ctx, &trade); err != nil {
			return err
		}

		buy := models.BuyTransaction{
			TradeID:         trade.ID,
			UserID:          userID,
			Price:           parseFloat(row.Get("buy_price")),
			Date:            buyDate,
			Quantity:        parseFloat(row.Get("quantity")),
			InitialStop:     parseFloat(row.Get("initial_stop")),
			StopLossPercent: parsePercent(row.Get("stop_loss_%")),
			Brokerage:       parseFloat(row.Get("buy_brok")),
		}
		if _, err := tx.CreateBuyTransaction(ctx, &buy); err != nil {
			return err
		}

		if closed {
			sell := models.SellTransaction{
				TradeID:   trade.ID,
				UserID:    userID,
				Price:     parseFloat(row.Get("sell_price")),
				Date:      sellDate,
				Quantity:  parseFloat(row.Get("quantity")),
				Brokerage: parseFloat(row.Get("sell_brok")),
			}
			if _, err := tx.CreateSellTransaction(ctx, &sell); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	summary.TradesCreated++
	summary.BuyTransactionsCreated++
	if closed {
		summary.SellTransactionsCreated++
	}
	return nil
}

func (imp *Importer) findOrCreateMarket(ctx context.Context, userID uint, name string, cache *caches, summary *Summary) (*models.Market, error) {
	for i := range cache.markets {
		if strings.EqualFold(cache.markets[i].Name, name) {
			return &cache.markets[i], nil
		}
	}
	market, err := imp.store.CreateMarket(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	cache.markets = append(cache.markets, *market)
	summary.MarketsCreated++
	imp.logger.Info("Created new market", zap.String("name", name))
	return market, nil
}

func (imp *Importer) findOrCreateSetup(ctx context.Context, userID uint, name string, cache *caches, summary *Summary) (*models.Setup, error) {
	for i := range cache.setups {
		if strings.EqualFold(cache.setups[i].Name, name) {
			return &cache.setups[i], nil
		}
	}
	setup, err := imp.store.CreateSetup(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	cache.setups = append(cache.setups, *setup)
	summary.SetupsCreated++
	imp.logger.Info("Created new setup", zap.String("name", name))
	return setup, nil
}

func (imp *Importer) findOrCreateType(ctx context.Context, userID uint, name string, setupID uint, cache *caches, summary *Summary) (*models.TradeType, error) {
	for i := range cache.types {
		if strings.EqualFold(cache.types[i].Name, name) {
			return &cache.types[i], nil
		}
	}
	tradeType, err := imp.store.CreateTradeType(ctx, userID, name, setupID)
	if err != nil {
		return nil, err
	}
	cache.types = append(cache.types, *tradeType)
	summary.TypesCreated++
	imp.logger.Info("Created new trade type", zap.String("name", name))
	return tradeType, nil
}

func (imp *Importer) findOrCreateAccount(ctx context.Context, userID uint, name string, cache *caches, summary *Summary) (*models.Account, error) {
	for i := range cache.accounts {
		if strings.EqualFold(cache.accounts[i].Name, name) {
			return &cache.accounts[i], nil
		}
	}
	account, err := imp.store.CreateAccount(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	cache.accounts = append(cache.accounts, *account)
	summary.AccountsCreated++
	imp.logger.Info("Created new account", zap.String("name", name))
	return account, nil
}
