package service

import (
	"sort"
	"time"

	"tithe/database"
	"tithe/models"
)

// TitheRate 应缴比例：收入的 10%
const TitheRate = 0.10

// TitheStatus 某用户的奉献状态汇总，金额均为基准货币
type TitheStatus struct {
	TotalIncome      float64 `json:"total_income" example:"5000.00"`      // 收入总和
	TotalTitheDue    float64 `json:"total_tithe_due" example:"500.00"`    // 应缴总额（收入的 10%）
	TotalTithePaid   float64 `json:"total_tithe_paid" example:"300.00"`   // 已缴总额
	RemainingBalance float64 `json:"remaining_balance" example:"200.00"`  // 待缴余额 = 应缴 - 已缴
}

// SourceSummary 按收入来源汇总，金额为基准货币
type SourceSummary struct {
	Source string  `json:"source" example:"工资"`
	Total  float64 `json:"total" example:"5000.00"`
	Count  int64   `json:"count" example:"3"`
}

type ledgerRow struct {
	Amount   float64
	Currency string
	Date     time.Time
}

// GetTitheStatus 计算某用户的奉献状态。
// 每条记录按记录日期的汇率折算到基准货币后再汇总；
// 任何一条记录缺汇率都会使整个计算失败（ErrRateNotFound 上抛）。
// 没有任何记录时各项均为 0。
func GetTitheStatus(userID uint) (*TitheStatus, error) {
	cache := rateCache{}

	var incomes []ledgerRow
	if err := database.DB.Model(&models.Income{}).
		Select("amount, currency, income_date AS date").
		Where("user_id = ?", userID).
		Scan(&incomes).Error; err != nil {
		return nil, err
	}

	var totalIncome float64
	for _, row := range incomes {
		converted, err := cache.convert(row.Amount, row.Currency, row.Date)
		if err != nil {
			return nil, err
		}
		totalIncome += converted
	}

	var payments []ledgerRow
	if err := database.DB.Model(&models.TithePayment{}).
		Select("amount, currency, payment_date AS date").
		Where("user_id = ?", userID).
		Scan(&payments).Error; err != nil {
		return nil, err
	}

	var totalPaid float64
	for _, row := range payments {
		converted, err := cache.convert(row.Amount, row.Currency, row.Date)
		if err != nil {
			return nil, err
		}
		totalPaid += converted
	}

	due := totalIncome * TitheRate
	return &TitheStatus{
		TotalIncome:      totalIncome,
		TotalTitheDue:    due,
		TotalTithePaid:   totalPaid,
		RemainingBalance: due - totalPaid,
	}, nil
}

type sourceRow struct {
	Amount   float64
	Currency string
	Date     time.Time
	Source   string
}

// GetIncomeSummaryBySource 按来源统计某用户的收入，降序返回。
// 每条记录先折算到基准货币再累加，混合货币下结果才有意义；
// 缺汇率同样整体失败。
func GetIncomeSummaryBySource(userID uint) ([]SourceSummary, error) {
	var rows []sourceRow
	if err := database.DB.Model(&models.Income{}).
		Select("amount, currency, income_date AS date, source").
		Where("user_id = ?", userID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	cache := rateCache{}
	totals := make(map[string]*SourceSummary)
	for _, row := range rows {
		converted, err := cache.convert(row.Amount, row.Currency, row.Date)
		if err != nil {
			return nil, err
		}
		s, ok := totals[row.Source]
		if !ok {
			s = &SourceSummary{Source: row.Source}
			totals[row.Source] = s
		}
		s.Total += converted
		s.Count++
	}

	summaries := make([]SourceSummary, 0, len(totals))
	for _, s := range totals {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Total != summaries[j].Total {
			return summaries[i].Total > summaries[j].Total
		}
		return summaries[i].Source < summaries[j].Source
	})
	return summaries, nil
}
