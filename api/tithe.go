package api

import (
	"errors"
	"time"

	"tithe/database"
	"tithe/middleware"
	"tithe/models"

	"github.com/gin-gonic/gin"
)

// TitheHandler 奉献缴纳处理器
type TitheHandler struct{}

func NewTitheHandler() *TitheHandler {
	return &TitheHandler{}
}

type CreateTithePaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"500.00"`
	Notes       string  `json:"notes" example:"一月奉献"`
	Currency    string  `json:"currency" binding:"omitempty,len=3" example:"USD"`
	PaymentDate string  `json:"payment_date" example:"2024-01-20"` // 省略则为今天
}

type TithePaymentListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"10"`
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
}

// Create 记录奉献缴纳
// @Summary 记录奉献缴纳
// @Description 创建一条奉献缴纳记录。金额必须大于 0，记录创建后不可修改。
// @Tags 奉献
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTithePaymentRequest true "缴纳信息"
// @Success 200 {object} Response{data=models.TithePayment} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/tithes [post]
func (h *TitheHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req CreateTithePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
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

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		t, err := time.ParseInLocation("2006-01-02", req.PaymentDate, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		paymentDate = t
	}

	payment := models.TithePayment{
		UserID:      userID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
		Currency:    currency,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建缴纳记录失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", payment)
}

// List 获取奉献缴纳列表
// @Summary 获取奉献缴纳列表
// @Description 获取当前用户的奉献缴纳记录，支持分页与日期筛选
// @Tags 奉献
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.TithePayment}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/tithes [get]
func (h *TitheHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req TithePaymentListRequest
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

	query := database.DB.Model(&models.TithePayment{}).Where("user_id = ?", userID)
	if req.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local); err == nil {
			query = query.Where("payment_date >= ?", t)
		}
	}
	if req.EndDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local); err == nil {
			query = query.Where("payment_date <= ?", t)
		}
	}

	var total int64
	query.Count(&total)
	var list []models.TithePayment
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("payment_date DESC").Offset(offset).Limit(req.PageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: req.Page, PageSize: req.PageSize, List: list})
}
