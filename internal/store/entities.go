package store

import (
	"context"
	"fmt"

	"trade-journal-go/internal/models"
)

// Markets

func (s *Store) ListMarkets(ctx context.Context, userID uint) ([]models.Market, error) {
	var markets []models.Market
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&markets).Error; err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}
	return markets, nil
}

func (s *Store) CreateMarket(ctx context.Context, userID uint, name string) (*models.Market, error) {
	market := models.Market{UserID: userID, Name: name}
	if err := s.db.WithContext(ctx).Create(&market).Error; err != nil {
		return nil, fmt.Errorf("failed to create market: %w", err)
	}
	return &market, nil
}

func (s *Store) UpdateMarket(ctx context.Context, userID, id uint, name string) (*models.Market, error) {
	var market models.Market
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&market, id).Error; err != nil {
		return nil, translateErr(err)
	}
	market.Name = name
	if err := s.db.WithContext(ctx).Save(&market).Error; err != nil {
		return nil, fmt.Errorf("failed to update market: %w", err)
	}
	return &market, nil
}

// DeleteMarket refuses to delete a market that any trade still references.
// The count and the delete run in one transaction so a concurrent insert
// cannot slip between them.
func (s *Store) DeleteMarket(ctx context.Context, userID, id uint) error {
	return s.InTx(ctx, func(tx *Store) error {
		count, err := tx.CountTradesByMarket(ctx, userID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrEntityInUse
		}
		return tx.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Market{}, id).Error
	})
}

func (s *Store) CountTradesByMarket(ctx context.Context, userID, marketID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Trade{}).
		Where("user_id = ? AND market_id = ?", userID, marketID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count trades for market: %w", err)
	}
	return count, nil
}

// Setups

func (s *Store) ListSetups(ctx context.Context, userID uint) ([]models.Setup, error) {
	var setups []models.Setup
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&setups).Error; err != nil {
		return nil, fmt.Errorf("failed to list setups: %w", err)
	}
	return setups, nil
}

func (s *Store) CreateSetup(ctx context.Context, userID uint, name string) (*models.Setup, error) {
	setup := models.Setup{UserID: userID, Name: name}
	if err := s.db.WithContext(ctx).Create(&setup).Error; err != nil {
		return nil, fmt.Errorf("failed to create setup: %w", err)
	}
	return &setup, nil
}

func (s *Store) UpdateSetup(ctx context.Context, userID, id uint, name string) (*models.Setup, error) {
	var setup models.Setup
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&setup, id).Error; err != nil {
		return nil, translateErr(err)
	}
	setup.Name = name
	if err := s.db.WithContext(ctx).Save(&setup).Error; err != nil {
		return nil, fmt.Errorf("failed to update setup: %w", err)
	}
	return &setup, nil
}

func (s *Store) DeleteSetup(ctx context.Context, userID, id uint) error {
	return s.InTx(ctx, func(tx *Store) error {
		count, err := tx.CountTradesBySetup(ctx, userID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrEntityInUse
		}
		return tx.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Setup{}, id).Error
	})
}

func (s *Store) CountTradesBySetup(ctx context.Context, userID, setupID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Trade{}).
		Where("user_id = ? AND setup_id = ?", userID, setupID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count trades for setup: %w", err)
	}
	return count, nil
}

// Trade types

func (s *Store) ListTradeTypes(ctx context.Context, userID uint) ([]models.TradeType, error) {
	var types []models.TradeType
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list trade types: %w", err)
	}
	return types, nil
}

func (s *Store) CreateTradeType(ctx context.Context, userID uint, name string, setupID uint) (*models.TradeType, error) {
	tradeType := models.TradeType{UserID: userID, Name: name, SetupID: setupID}
	if err := s.db.WithContext(ctx).Create(&tradeType).Error; err != nil {
		return nil, fmt.Errorf("failed to create trade type: %w", err)
	}
	return &tradeType, nil
}

func (s *Store) UpdateTradeType(ctx context.Context, userID, id uint, name string, setupID uint) (*models.TradeType, error) {
	var tradeType models.TradeType
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&tradeType, id).Error; err != nil {
		return nil, translateErr(err)
	}
	tradeType.Name = name
	tradeType.SetupID = setupID
	if err := s.db.WithContext(ctx).Save(&tradeType).Error; err != nil {
		return nil, fmt.Errorf("failed to update trade type: %w", err)
	}
	return &tradeType, nil
}

func (s *Store) DeleteTradeType(ctx context.Context, userID, id uint) error {
	return s.InTx(ctx, func(tx *Store) error {
		count, err := tx.CountTradesByType(ctx, userID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrEntityInUse
		}
		return tx.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.TradeType{}, id).Error
	})
}

func (s *Store) CountTradesByType(ctx context.Context, userID, typeID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Trade{}).
		Where("user_id = ? AND type_id = ?", userID, typeID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count trades for trade type: %w", err)
	}
	return count, nil
}

// Accounts

func (s *Store) ListAccounts(ctx context.Context, userID uint) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *Store) CreateAccount(ctx context.Context, userID uint, name string) (*models.Account, error) {
	account := models.Account{UserID: userID, Name: name}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

func (s *Store) UpdateAccount(ctx context.Context, userID, id uint, name string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&account, id).Error; err != nil {
		return nil, translateErr(err)
	}
	account.Name = name
	if err := s.db.WithContext(ctx).Save(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return &account, nil
}

func (s *Store) DeleteAccount(ctx context.Context, userID, id uint) error {
	return s.InTx(ctx, func(tx *Store) error {
		count, err := tx.CountTradesByAccount(ctx, userID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrEntityInUse
		}
		return tx.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Account{}, id).Error
	})
}

func (s *Store) CountTradesByAccount(ctx context.Context, userID, accountID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Trade{}).
		Where("user_id = ? AND account_id = ?", userID, accountID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count trades for account: %w", err)
	}
	return count, nil
}
