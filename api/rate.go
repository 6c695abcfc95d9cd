package api

import (
	"errors"
	"time"

	"tithe/database"
	"tithe/models"
	"tithe/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RateHandler 汇率处理器
type RateHandler struct{}

func NewRateHandler() *RateHandler {
	return &RateHandler{}
}

type UpsertRateRequest struct {
	CurrencyCode string  `json:"currency_code" binding:"required,len=3" example:"EUR"`
	Date         string  `json:"date" binding:"required" example:"2024-01-15"`
	Rate         float64 `json:"rate" binding:"required,gt=0" example:"1.0950"`
}

type RateListRequest struct {
	CurrencyCode string `form:"currency_code" example:"EUR"`
	StartDate    string `form:"start_date" example:"2024-01-01"`
	EndDate      string `form:"end_date" example:"2024-12-31"`
}

// Upsert 录入汇率
// @Summary 录入汇率
// @Description 录入某货币某日对基准货币的汇率。(货币, 日期) 唯一，重复录入视为更正，覆盖原值。基准货币不接受录入。
// @Tags 汇率
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertRateRequest true "汇率信息"
// @Success 200 {object} Response{data=models.ExchangeRate} "录入成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/exchange-rates [post]
func (h *RateHandler) Upsert(c *gin.Context) {
	var req UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if req.CurrencyCode == service.BaseCurrency() {
		BadRequest(c, "基准货币无需录入汇率")
		return
	}

	var supported models.SupportedCurrency
	if err := database.DB.Where("code = ?", req.CurrencyCode).First(&supported).Error; err != nil {
		BadRequest(c, "不支持的货币: "+req.CurrencyCode)
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	// (货币, 日期) 唯一：已存在则更新汇率
	var rate models.ExchangeRate
	err = database.DB.
		Where("currency_code = ? AND date = ?", req.CurrencyCode, date.Format("2006-01-02")).
		First(&rate).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			InternalError(c, SafeErrorMessage(err, "查询汇率失败"))
			return
		}
		rate = models.ExchangeRate{
			CurrencyCode: req.CurrencyCode,
			Date:         date,
			Rate:         req.Rate,
		}
		if err := database.DB.Create(&rate).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "录入汇率失败"))
			return
		}
		SuccessWithMessage(c, "录入成功", rate)
		return
	}

	if err := database.DB.Model(&rate).Update("rate", req.Rate).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新汇率失败"))
		return
	}
	rate.Rate = req.Rate
	SuccessWithMessage(c, "更新成功", rate)
}

// List 获取汇率列表
// @Summary 获取汇率列表
// @Description 查询汇率记录，支持按货币与日期范围筛选，按日期倒序
// @Tags 汇率
// @Produce json
// @Security BearerAuth
// @Param currency_code query string false "货币代码筛选"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=[]models.ExchangeRate} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/exchange-rates [get]
func (h *RateHandler) List(c *gin.Context) {
	var req RateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	query := database.DB.Model(&models.ExchangeRate{})
	if req.CurrencyCode != "" {
		query = query.Where("currency_code = ?", req.CurrencyCode)
	}
	if req.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local); err == nil {
			query = query.Where("date >= ?", t)
		}
	}
	if req.EndDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local); err == nil {
			query = query.Where("date <= ?", t)
		}
	}

	var list []models.ExchangeRate
	if err := query.Order("date DESC, currency_code ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// GetCurrencies 获取支持的货币列表
// @Summary 获取支持的货币列表
// @Description 返回支持的货币参考数据（无需登录）
// @Tags 汇率
// @Produce json
// @Success 200 {object} Response{data=[]models.SupportedCurrency} "获取成功"
// @Router /api/v1/currencies [get]
func (h *RateHandler) GetCurrencies(c *gin.Context) {
	var list []models.SupportedCurrency
	if err := database.DB.Order("code ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}
