package models

// BaseCurrency 基准货币，所有金额汇总前统一折算到该货币
const BaseCurrency = "USD"

// SupportedCurrency 支持的货币（静态参考数据，后台维护）
type SupportedCurrency struct {
	Code   string `json:"code" gorm:"primaryKey;size:3"`
	Name   string `json:"name" gorm:"size:50;not null"`
	Symbol string `json:"symbol" gorm:"size:5;not null"`
}

func (SupportedCurrency) TableName() string {
	return "supported_currencies"
}

// DefaultCurrencies 默认货币列表（仅当表为空时写入）
func DefaultCurrencies() []SupportedCurrency {
	return []SupportedCurrency{
		{Code: "USD", Name: "美元", Symbol: "$"},
		{Code: "EUR", Name: "欧元", Symbol: "€"},
		{Code: "GBP", Name: "英镑", Symbol: "£"},
		{Code: "CNY", Name: "人民币", Symbol: "¥"},
	}
}
