package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"trade-journal-go/internal/models"
	"trade-journal-go/internal/store"
)

// ErrQuantityExceedsRemaining is returned when a sell transaction would
// take a trade's open quantity below zero.
var ErrQuantityExceedsRemaining = errors.New("sell quantity exceeds remaining quantity")

// Service implements the journal operations on top of the store.
type Service struct {
	logger *zap.Logger
	store  *store.Store
}

// NewService creates a journal service.
func NewService(logger *zap.Logger, st *store.Store) *Service {
	return &Service{logger: logger, store: st}
}

// OpenTrade is a trade that still holds quantity, annotated with the
// amount remaining.
type OpenTrade struct {
	models.Trade
	Remaining float64 `json:"remaining_quantity"`
}

// OpenTrades returns the user's trades whose remaining quantity is
// positive.
func (s *Service) OpenTrades(ctx context.Context, userID uint) ([]OpenTrade, error) {
	trades, err := s.store.GetTradesWithTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	var open []OpenTrade
	for i := range trades {
		remaining := trades[i].RemainingQuantity()
		if remaining > 0 {
			open = append(open, OpenTrade{Trade: trades[i], Remaining: remaining})
		}
	}
	return open, nil
}

// ClosedTrades returns the user's closed trades, optionally bounded by the
// first buy date (inclusive on both ends).
func (s *Service) ClosedTrades(ctx context.Context, userID uint, start, end *time.Time) ([]models.Trade, error) {
	trades, err := s.store.GetTradesWithTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	var closed []models.Trade
	for i := range trades {
		t := &trades[i]
		if !t.Closed() {
			continue
		}
		buyDate := t.FirstBuy().Date
		if start != nil && buyDate.Before(*start) {
			continue
		}
		if end != nil && buyDate.After(endOfDay(*end)) {
			continue
		}
		closed = append(closed, *t)
	}
	return closed, nil
}

// AddBuyTransaction records a new entry into a trade.
func (s *Service) AddBuyTransaction(ctx context.Context, userID, tradeID uint, buy *models.BuyTransaction) (*models.BuyTransaction, error) {
	if _, err := s.store.GetTrade(ctx, userID, tradeID); err != nil {
		return nil, err
	}
	buy.TradeID = tradeID
	buy.UserID = userID
	return s.store.CreateBuyTransaction(ctx, buy)
}

// AddSellTransaction records a new exit from a trade after checking that
// the sold quantity does not exceed what the trade still holds.
func (s *Service) AddSellTransaction(ctx context.Context, userID, tradeID uint, sell *models.SellTransaction) (*models.SellTransaction, error) {
	trade, err := s.store.GetTrade(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	remaining := trade.RemainingQuantity()
	if sell.Quantity > remaining {
		s.logger.Warn("Rejecting sell transaction over remaining quantity",
			zap.Uint("trade_id", tradeID),
			zap.Float64("quantity", sell.Quantity),
			zap.Float64("remaining", remaining))
		return nil, fmt.Errorf("%w: requested %.2f, remaining %.2f",
			ErrQuantityExceedsRemaining, sell.Quantity, remaining)
	}

	sell.TradeID = tradeID
	sell.UserID = userID
	return s.store.CreateSellTransaction(ctx, sell)
}

// UpdateBuyTransaction edits a recorded buy after checking that the new
// quantity keeps the trade's remaining quantity non-negative. Shrinking a
// buy below what has already been sold is refused.
func (s *Service) UpdateBuyTransaction(ctx context.Context, userID uint, buy *models.BuyTransaction) (*models.BuyTransaction, error) {
	current, err := s.store.GetBuyTransaction(ctx, userID, buy.ID)
	if err != nil {
		return nil, err
	}
	trade, err := s.store.GetTrade(ctx, userID, current.TradeID)
	if err != nil {
		return nil, err
	}

	// Remaining with the edited row's old quantity swapped for the new one.
	remaining := trade.RemainingQuantity() - current.Quantity + buy.Quantity
	if remaining < 0 {
		s.logger.Warn("Rejecting buy edit that would oversell the trade",
			zap.Uint("trade_id", current.TradeID),
			zap.Float64("quantity", buy.Quantity),
			zap.Float64("sold", trade.SoldQuantity()))
		return nil, fmt.Errorf("%w: edited quantity %.2f leaves %.2f sold uncovered",
			ErrQuantityExceedsRemaining, buy.Quantity, trade.SoldQuantity())
	}

	return s.store.UpdateBuyTransaction(ctx, userID, buy)
}

// UpdateSellTransaction edits a recorded sell under the same
// remaining-quantity rule as creating one, with the edited row's old
// quantity excluded from the check.
func (s *Service) UpdateSellTransaction(ctx context.Context, userID uint, sell *models.SellTransaction) (*models.SellTransaction, error) {
	current, err := s.store.GetSellTransaction(ctx, userID, sell.ID)
	if err != nil {
		return nil, err
	}
	trade, err := s.store.GetTrade(ctx, userID, current.TradeID)
	if err != nil {
		return nil, err
	}

	remaining := trade.RemainingQuantity() + current.Quantity
	if sell.Quantity > remaining {
		s.logger.Warn("Rejecting sell edit over remaining quantity",
			zap.Uint("trade_id", current.TradeID),
			zap.Float64("quantity", sell.Quantity),
			zap.Float64("remaining", remaining))
		return nil, fmt.Errorf("%w: requested %.2f, remaining %.2f",
			ErrQuantityExceedsRemaining, sell.Quantity, remaining)
	}

	return s.store.UpdateSellTransaction(ctx, userID, sell)
}

// referenceNames caches the id -> name maps used to label trade rows.
type referenceNames struct {
	setups   map[uint]string
	types    map[uint]string
	markets  map[uint]string
	accounts map[uint]string
}

func (s *Service) loadReferenceNames(ctx context.Context, userID uint) (*referenceNames, error) {
	setups, err := s.store.ListSetups(ctx, userID)
	if err != nil {
		return nil, err
	}
	types, err := s.store.ListTradeTypes(ctx, userID)
	if err != nil {
		return nil, err
	}
	markets, err := s.store.ListMarkets(ctx, userID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := &referenceNames{
		setups:   make(map[uint]string, len(setups)),
		types:    make(map[uint]string, len(types)),
		markets:  make(map[uint]string, len(markets)),
		accounts: make(map[uint]string, len(accounts)),
	}
	for _, v := range setups {
		names.setups[v.ID] = v.Name
	}
	for _, v := range types {
		names.types[v.ID] = v.Name
	}
	for _, v := range markets {
		names.markets[v.ID] = v.Name
	}
	for _, v := range accounts {
		names.accounts[v.ID] = v.Name
	}
	return names, nil
}

// TradeRows flattens every trade into one row per transaction, joined with
// reference-data names. A trade without transactions yields a single
// placeholder row.
func (s *Service) TradeRows(ctx context.Context, userID uint) ([]Row, error) {
	trades, err := s.store.GetTradesWithTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	names, err := s.loadReferenceNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i := range trades {
		rows = append(rows, flattenTrade(&trades[i], names)...)
	}
	return rows, nil
}

func flattenTrade(t *models.Trade, names *referenceNames) []Row {
	base := Row{
		TradeID:      t.ID,
		Name:         t.Name,
		CreationDate: t.CreationDate,
		SetupID:      t.SetupID,
		TypeID:       t.TypeID,
		MarketID:     t.MarketID,
		AccountID:    t.AccountID,
		SetupName:    names.setups[t.SetupID],
		TypeName:     names.types[t.TypeID],
		MarketName:   names.markets[t.MarketID],
		AccountName:  names.accounts[t.AccountID],
		RiskPercent:  t.RiskPercent,
	}

	var rows []Row
	for i := range t.BuyTransactions {
		b := &t.BuyTransactions[i]
		row := base
		row.Side = SideBuy
		row.Date = timePtr(b.Date)
		row.Price = floatPtr(b.Price)
		row.Quantity = floatPtr(b.Quantity)
		row.Brokerage = floatPtr(b.Brokerage)
		rows = append(rows, row)
	}
	for i := range t.SellTransactions {
		sl := &t.SellTransactions[i]
		row := base
		row.Side = SideSell
		row.Date = timePtr(sl.Date)
		row.Price = floatPtr(sl.Price)
		row.Quantity = floatPtr(sl.Quantity)
		row.Brokerage = floatPtr(sl.Brokerage)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		placeholder := base
		placeholder.Side = SideNone
		rows = append(rows, placeholder)
	}
	return rows
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func timePtr(t time.Time) *time.Time { return &t }
func floatPtr(f float64) *float64    { return &f }
