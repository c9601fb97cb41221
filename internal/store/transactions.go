package store

import (
	"context"
	"fmt"

	"trade-journal-go/internal/models"
)

// GetBuyTransactions returns the buy transactions of one trade.
func (s *Store) GetBuyTransactions(ctx context.Context, userID, tradeID uint) ([]models.BuyTransaction, error) {
	var buys []models.BuyTransaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND trade_id = ?", userID, tradeID).
		Find(&buys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list buy transactions: %w", err)
	}
	return buys, nil
}

// GetSellTransactions returns the sell transactions of one trade.
func (s *Store) GetSellTransactions(ctx context.Context, userID, tradeID uint) ([]models.SellTransaction, error) {
	var sells []models.SellTransaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND trade_id = ?", userID, tradeID).
		Find(&sells).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sell transactions: %w", err)
	}
	return sells, nil
}

// GetBuyTransaction returns one buy transaction by id.
func (s *Store) GetBuyTransaction(ctx context.Context, userID, id uint) (*models.BuyTransaction, error) {
	var buy models.BuyTransaction
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&buy, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &buy, nil
}

// GetSellTransaction returns one sell transaction by id.
func (s *Store) GetSellTransaction(ctx context.Context, userID, id uint) (*models.SellTransaction, error) {
	var sell models.SellTransaction
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&sell, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &sell, nil
}

// CreateBuyTransaction persists a new buy transaction.
func (s *Store) CreateBuyTransaction(ctx context.Context, buy *models.BuyTransaction) (*models.BuyTransaction, error) {
	if err := s.db.WithContext(ctx).Create(buy).Error; err != nil {
		return nil, fmt.Errorf("failed to create buy transaction: %w", err)
	}
	return buy, nil
}

// UpdateBuyTransaction saves changed fields of a buy transaction.
func (s *Store) UpdateBuyTransaction(ctx context.Context, userID uint, buy *models.BuyTransaction) (*models.BuyTransaction, error) {
	var existing models.BuyTransaction
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing, buy.ID).Error; err != nil {
		return nil, translateErr(err)
	}

	existing.Price = buy.Price
	existing.Date = buy.Date
	existing.Quantity = buy.Quantity
	existing.InitialStop = buy.InitialStop
	existing.StopLossPercent = buy.StopLossPercent
	existing.Brokerage = buy.Brokerage

	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update buy transaction: %w", err)
	}
	return &existing, nil
}

// CreateSellTransaction persists a new sell transaction.
func (s *Store) CreateSellTransaction(ctx context.Context, sell *models.SellTransaction) (*models.SellTransaction, error) {
	if err := s.db.WithContext(ctx).Create(sell).Error; err != nil {
		return nil, fmt.Errorf("failed to create sell transaction: %w", err)
	}
	return sell, nil
}

// UpdateSellTransaction saves changed fields of a sell transaction.
func (s *Store) UpdateSellTransaction(ctx context.Context, userID uint, sell *models.SellTransaction) (*models.SellTransaction, error) {
	var existing models.SellTransaction
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing, sell.ID).Error; err != nil {
		return nil, translateErr(err)
	}

	existing.Price = sell.Price
	existing.Date = sell.Date
	existing.Quantity = sell.Quantity
	existing.Brokerage = sell.Brokerage

	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update sell transaction: %w", err)
	}
	return &existing, nil
}
