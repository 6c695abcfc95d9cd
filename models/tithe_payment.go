package models

import (
	"time"

	"gorm.io/gorm"
)

// TithePayment 奉献缴纳记录模型。与收入记录一样，创建后不可修改。
type TithePayment struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(15,2);not null"`
	PaymentDate time.Time      `json:"payment_date" gorm:"type:date;not null"`
	Notes       string         `json:"notes" gorm:"size:255"`
	Currency    string         `json:"currency" gorm:"size:3;default:USD;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

func (TithePayment) TableName() string {
	return "tithe_payments"
}
