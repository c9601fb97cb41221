package store

import (
	"context"
	"fmt"

	"trade-journal-go/internal/models"
)

// GetTrades returns the user's trades without transaction preloading.
func (s *Store) GetTrades(ctx context.Context, userID uint) ([]models.Trade, error) {
	var trades []models.Trade
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

// GetTradesWithTransactions returns the user's trades with their buy and
// sell transactions preloaded.
func (s *Store) GetTradesWithTransactions(ctx context.Context, userID uint) ([]models.Trade, error) {
	var trades []models.Trade
	err := s.db.WithContext(ctx).
		Preload("BuyTransactions").
		Preload("SellTransactions").
		Where("user_id = ?", userID).
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trades with transactions: %w", err)
	}
	return trades, nil
}

// GetTrade returns one trade with transactions preloaded.
func (s *Store) GetTrade(ctx context.Context, userID, id uint) (*models.Trade, error) {
	var trade models.Trade
	err := s.db.WithContext(ctx).
		Preload("BuyTransactions").
		Preload("SellTransactions").
		Where("user_id = ?", userID).
		First(&trade, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &trade, nil
}

// CreateTrade persists a new trade and returns the stored row.
func (s *Store) CreateTrade(ctx context.Context, trade *models.Trade) (*models.Trade, error) {
	if err := s.db.WithContext(ctx).Create(trade).Error; err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}
	return trade, nil
}

// UpdateTrade saves changed fields of an existing trade.
func (s *Store) UpdateTrade(ctx context.Context, userID uint, trade *models.Trade) (*models.Trade, error) {
	var existing models.Trade
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing, trade.ID).Error; err != nil {
		return nil, translateErr(err)
	}

	existing.Name = trade.Name
	existing.CreationDate = trade.CreationDate
	existing.AccountID = trade.AccountID
	existing.SetupID = trade.SetupID
	existing.TypeID = trade.TypeID
	existing.MarketID = trade.MarketID
	existing.RiskPercent = trade.RiskPercent
	existing.GroupRank = trade.GroupRank
	existing.ProScore = trade.ProScore
	existing.OneWeekRS = trade.OneWeekRS
	existing.OneMonthRS = trade.OneMonthRS

	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update trade: %w", err)
	}
	return &existing, nil
}

// DeleteTrade removes a trade and its transactions.
func (s *Store) DeleteTrade(ctx context.Context, userID, id uint) error {
	return s.InTx(ctx, func(tx *Store) error {
		var trade models.Trade
		if err := tx.db.WithContext(ctx).Where("user_id = ?", userID).First(&trade, id).Error; err != nil {
			return translateErr(err)
		}
		if err := tx.db.WithContext(ctx).Where("trade_id = ?", id).Delete(&models.BuyTransaction{}).Error; err != nil {
			return fmt.Errorf("failed to delete buy transactions: %w", err)
		}
		if err := tx.db.WithContext(ctx).Where("trade_id = ?", id).Delete(&models.SellTransaction{}).Error; err != nil {
			return fmt.Errorf("failed to delete sell transactions: %w", err)
		}
		if err := tx.db.WithContext(ctx).Delete(&trade).Error; err != nil {
			return fmt.Errorf("failed to delete trade: %w", err)
		}
		return nil
	})
}
