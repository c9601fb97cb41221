package models

import "gorm.io/gorm"

// Market is a reference entity grouping trades by exchange or segment.
type Market struct {
	gorm.Model
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Name   string `gorm:"not null" json:"market_name"`
}

// Setup is a reference entity naming the pattern a trade was taken on.
type Setup struct {
	gorm.Model
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Name   string `gorm:"not null" json:"setup_name"`
}

// TradeType is a reference entity refining a Setup.
type TradeType struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Name    string `gorm:"not null" json:"type_name"`
	SetupID uint   `gorm:"index" json:"setup_id"`
}

// TableName keeps the shorter table name for trade types.
func (TradeType) TableName() string {
	return "trade_types"
}

// Account is a reference entity for the brokerage account a trade ran in.
type Account struct {
	gorm.Model
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Name   string `gorm:"not null" json:"account_name"`
}
