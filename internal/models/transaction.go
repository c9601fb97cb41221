package models

import (
	"time"

	"gorm.io/gorm"
)

// BuyTransaction is a single entry into a trade.
type BuyTransaction struct {
	gorm.Model
	TradeID         uint      `gorm:"index;not null" json:"trade_id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	Price           float64   `json:"buy_price"`
	Date            time.Time `json:"buy_date"`
	Quantity        float64   `json:"quantity"`
	InitialStop     float64   `json:"initial_stop"`
	StopLossPercent float64   `json:"stop_loss_percent"`
	Brokerage       float64   `json:"buy_brokerage"`
}

// SellTransaction is a single exit from a trade.
type SellTransaction struct {
	gorm.Model
	TradeID   uint      `gorm:"index;not null" json:"trade_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Price     float64   `json:"sell_price"`
	Date      time.Time `json:"sell_date"`
	Quantity  float64   `json:"quantity"`
	Brokerage float64   `json:"sell_brokerage"`
}
