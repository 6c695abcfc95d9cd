package models

import (
	"time"

	"gorm.io/gorm"
)

// 收入来源常量
const (
	SourceSalary     = "工资"
	SourceBusiness   = "经营收入"
	SourceSideHustle = "副业"
	SourceGift       = "馈赠"
	SourceInvestment = "投资"
	SourceOther      = "其他"
)

// 周期频率常量
const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// Income 收入记录模型。记录一经创建不可修改，不提供更新/删除接口。
type Income struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(15,2);not null"`
	Source      string         `json:"source" gorm:"size:50;not null"` // 收入来源
	Description string         `json:"description" gorm:"size:255"`
	IncomeDate  time.Time      `json:"income_date" gorm:"type:date;not null"`
	Currency    string         `json:"currency" gorm:"size:3;default:USD;not null"`
	IsRecurring bool           `json:"is_recurring" gorm:"default:false"`
	Frequency   string         `json:"frequency,omitempty" gorm:"size:10"` // weekly/monthly/yearly
	NextDueDate *time.Time     `json:"next_due_date,omitempty" gorm:"type:date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
}

func (Income) TableName() string {
	return "incomes"
}

// GetIncomeSources 获取所有收入来源
func GetIncomeSources() []string {
	return []string{
		SourceSalary,
		SourceBusiness,
		SourceSideHustle,
		SourceGift,
		SourceInvestment,
		SourceOther,
	}
}

// IsValidSource 判断收入来源是否合法
func IsValidSource(source string) bool {
	for _, s := range GetIncomeSources() {
		if s == source {
			return true
		}
	}
	return false
}

// FrequencyDays 各频率对应的天数；未知频率返回 0
func FrequencyDays(frequency string) int {
	switch frequency {
	case FrequencyWeekly:
		return 7
	case FrequencyMonthly:
		return 30
	case FrequencyYearly:
		return 365
	default:
		return 0
	}
}
