package models

import (
	"time"
)

// ExchangeRate 汇率模型：1 单位外币 = Rate 单位基准货币。
// 基准货币本身不存汇率行，换算时视为 1.0。
// (currency_code, date) 唯一，同一天重复录入按更新处理。
type ExchangeRate struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CurrencyCode string    `json:"currency_code" gorm:"size:3;not null;uniqueIndex:idx_currency_date"`
	Date         time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_currency_date"`
	Rate         float64   `json:"rate" gorm:"type:decimal(10,4);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ExchangeRate) TableName() string {
	return "exchange_rates"
}
