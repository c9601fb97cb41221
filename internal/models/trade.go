package models

import (
	"time"

	"gorm.io/gorm"
)

// Trade is one journaled position. It accumulates buy and sell
// transactions over its lifetime; once total sold quantity equals total
// bought quantity the trade counts as closed.
type Trade struct {
	gorm.Model
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Name         string    `gorm:"not null" json:"name"`
	CreationDate time.Time `json:"creation_date"`
	AccountID    uint      `gorm:"index" json:"account_id"`
	SetupID      uint      `gorm:"index" json:"setup_id"`
	TypeID       uint      `gorm:"index" json:"type_id"`
	MarketID     uint      `gorm:"index" json:"market_id"`
	RiskPercent  float64   `json:"risk_percent"`
	GroupRank    float64   `json:"group_rank"`
	ProScore     float64   `json:"pro_score"`
	OneWeekRS    float64   `json:"one_week_rs"`
	OneMonthRS   float64   `json:"one_month_rs"`

	BuyTransactions  []BuyTransaction  `gorm:"constraint:OnDelete:CASCADE" json:"buy_transactions"`
	SellTransactions []SellTransaction `gorm:"constraint:OnDelete:CASCADE" json:"sell_transactions"`
}

// BoughtQuantity sums the quantity across all buy transactions.
func (t *Trade) BoughtQuantity() float64 {
	var sum float64
	for _, b := range t.BuyTransactions {
		sum += b.Quantity
	}
	return sum
}

// SoldQuantity sums the quantity across all sell transactions.
func (t *Trade) SoldQuantity() float64 {
	var sum float64
	for _, s := range t.SellTransactions {
		sum += s.Quantity
	}
	return sum
}

// RemainingQuantity is the open quantity still held.
func (t *Trade) RemainingQuantity() float64 {
	return t.BoughtQuantity() - t.SoldQuantity()
}

// Closed reports whether the position has been fully exited. A trade with
// no buy transactions is not closed; it has no entry to exit from.
func (t *Trade) Closed() bool {
	return len(t.BuyTransactions) > 0 && t.BoughtQuantity() == t.SoldQuantity()
}

// FirstBuy returns the earliest-dated buy transaction, or nil.
func (t *Trade) FirstBuy() *BuyTransaction {
	var first *BuyTransaction
	for i := range t.BuyTransactions {
		b := &t.BuyTransactions[i]
		if first == nil || b.Date.Before(first.Date) {
			first = b
		}
	}
	return first
}

// LastSell returns the latest-dated sell transaction, or nil.
func (t *Trade) LastSell() *SellTransaction {
	var last *SellTransaction
	for i := range t.SellTransactions {
		s := &t.SellTransactions[i]
		if last == nil || s.Date.After(last.Date) {
			last = s
		}
	}
	return last
}
