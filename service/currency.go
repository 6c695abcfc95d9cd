package service

import (
	"errors"
	"fmt"
	"time"

	"tithe/config"
	"tithe/database"
	"tithe/models"

	"gorm.io/gorm"
)

// ErrRateNotFound 指定货币在指定日期没有汇率记录。
// 换算必须失败并上抛，绝不能默默按 1:1 处理。
var ErrRateNotFound = errors.New("汇率不存在")

// BaseCurrency 当前基准货币代码
func BaseCurrency() string {
	if config.GlobalConfig != nil && config.GlobalConfig.Currency.Base != "" {
		return config.GlobalConfig.Currency.Base
	}
	return models.BaseCurrency
}

// GetRate 查询某货币在某日对基准货币的汇率。
// 基准货币恒为 1.0；其余货币只认 (currency_code, date) 精确匹配，
// 不做就近日期回退，也不做插值。
func GetRate(currencyCode string, date time.Time) (float64, error) {
	if currencyCode == BaseCurrency() {
		return 1.0, nil
	}

	var rate models.ExchangeRate
	err := database.DB.
		Where("currency_code = ? AND date = ?", currencyCode, date.Format("2006-01-02")).
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: %s %s", ErrRateNotFound, currencyCode, date.Format("2006-01-02"))
		}
		return 0, err
	}
	return rate.Rate, nil
}

// ConvertToBase 将金额折算为基准货币。基准货币原样返回；
// 缺少汇率时返回 ErrRateNotFound，由调用方中止当前操作。
func ConvertToBase(amount float64, currencyCode string, date time.Time) (float64, error) {
	if currencyCode == BaseCurrency() {
		return amount, nil
	}
	rate, err := GetRate(currencyCode, date)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}

// rateCache 同一次汇总内按 (货币, 日期) 缓存汇率，避免重复查询
type rateCache map[string]float64

func (rc rateCache) convert(amount float64, currencyCode string, date time.Time) (float64, error) {
	if currencyCode == BaseCurrency() {
		return amount, nil
	}
	key := currencyCode + "|" + date.Format("2006-01-02")
	if rate, ok := rc[key]; ok {
		return amount * rate, nil
	}
	rate, err := GetRate(currencyCode, date)
	if err != nil {
		return 0, err
	}
	rc[key] = rate
	return amount * rate, nil
}
