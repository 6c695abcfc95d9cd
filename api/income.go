package api

import (
	"errors"
	"strconv"
	"time"

	"tithe/database"
	"tithe/middleware"
	"tithe/models"
	"tithe/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// IncomeHandler 收入处理器
type IncomeHandler struct{}

func NewIncomeHandler() *IncomeHandler {
	return &IncomeHandler{}
}

type CreateIncomeRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"5000.00"`
	Source      string  `json:"source" binding:"required" example:"工资"`
	Description string  `json:"description" example:"一月工资"`
	Currency    string  `json:"currency" binding:"omitempty,len=3" example:"USD"`
	IncomeDate  string  `json:"income_date" example:"2024-01-15"` // 省略则为今天
	IsRecurring bool    `json:"is_recurring" example:"false"`
	Frequency   string  `json:"frequency" binding:"omitempty,oneof=weekly monthly yearly" example:"monthly"`
}

type IncomeListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	Source    string `form:"source" example:"工资"`
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
}

// errUnsupportedCurrency 货币不在支持列表中
var errUnsupportedCurrency = errors.New("不支持的货币")

// checkCurrency 校验货币代码：空串落到基准货币，其余货币必须在支持列表中。
// 查不到记录返回 errUnsupportedCurrency，其他错误原样上抛。
func checkCurrency(currency string) (string, error) {
	if currency == "" {
		return service.BaseCurrency(), nil
	}
	var supported models.SupportedCurrency
	if err := database.DB.Where("code = ?", currency).First(&supported).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errUnsupportedCurrency
		}
		return "", err
	}
	return currency, nil
}

// Create 记录收入
// @Summary 记录收入
// @Description 创建一条收入记录。金额必须大于 0；周期性收入按频率在创建时算好下次应入日期，之后不再重算。记录创建后不可修改。
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "收入信息"
// @Success 200 {object} Response{data=models.Income} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if !models.IsValidSource(req.Source) {
		BadRequest(c, "无效的收入来源")
		return
	}

	currency, err := checkCurrency(req.Currency)
	if err != nil {
		if errors.Is(err, errUnsupportedCurrency) {
			BadRequest(c, "不支持的货币: "+req.Currency)
			return
		}
		InternalError(c, SafeErrorMessage(err, "查询货币失败"))
		return
	}

	incomeDate := time.Now()
	if req.IncomeDate != "" {
		t, err := time.ParseInLocation("2006-01-02", req.IncomeDate, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		incomeDate = t
	}

	in := models.Income{
		UserID:      userID,
		Amount:      req.Amount,
		Source:      req.Source,
		Description: req.Description,
		IncomeDate:  incomeDate,
		Currency:    currency,
		IsRecurring: req.IsRecurring,
	}

	// 周期性收入：下次应入日期只在创建时计算一次
	if req.IsRecurring {
		days := models.FrequencyDays(req.Frequency)
		if days == 0 {
			BadRequest(c, "周期性收入必须指定频率: weekly/monthly/yearly")
			return
		}
		in.Frequency = req.Frequency
		nextDue := incomeDate.AddDate(0, 0, days)
		in.NextDueDate = &nextDue
	}

	if err := database.DB.Create(&in).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建收入失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", in)
}

// List 获取收入列表
// @Summary 获取收入列表
// @Description 获取当前用户的收入列表，支持分页与筛选
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param source query string false "收入来源筛选"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Income}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req IncomeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Income{}).Where("user_id = ?", userID)
	if req.Source != "" {
		query = query.Where("source = ?", req.Source)
	}
	if req.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local); err == nil {
			query = query.Where("income_date >= ?", t)
		}
	}
	if req.EndDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local); err == nil {
			query = query.Where("income_date <= ?", t)
		}
	}

	var total int64
	query.Count(&total)
	var list []models.Income
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("income_date DESC").Offset(offset).Limit(req.PageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: req.Page, PageSize: req.PageSize, List: list})
}

// Recent 获取最近收入
// @Summary 获取最近收入
// @Description 按日期倒序返回当前用户最近的 N 条收入记录
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param limit query int false "条数" default(10)
// @Success 200 {object} Response{data=[]models.Income} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes/recent [get]
func (h *IncomeHandler) Recent(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	limit := 10
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}

	var list []models.Income
	if err := database.DB.Where("user_id = ?", userID).
		Order("income_date DESC").Limit(limit).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Recurring 获取周期性收入
// @Summary 获取周期性收入
// @Description 按下次应入日期升序返回当前用户的全部周期性收入
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Income} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/incomes/recurring [get]
func (h *IncomeHandler) Recurring(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var list []models.Income
	if err := database.DB.Where("user_id = ? AND is_recurring = ?", userID, true).
		Order("next_due_date ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// GetIncomeSources 获取收入来源列表
// @Summary 获取收入来源列表
// @Description 返回可选的收入来源（静态列表，无需登录）
// @Tags 收入
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/v1/income-sources [get]
func (h *IncomeHandler) GetIncomeSources(c *gin.Context) {
	Success(c, models.GetIncomeSources())
}
