package api

import (
	"errors"

	"tithe/middleware"
	"tithe/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 看板处理器
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// GetTitheStatus 获取奉献状态
// @Summary 获取奉献状态
// @Description 统计当前用户的收入总额（基准货币）、应缴（10%）、已缴与待缴余额。任何记录缺汇率都会报错而不是按 1:1 估算。
// @Tags 看板
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.TitheStatus} "获取成功"
// @Failure 400 {object} Response "存在缺失的汇率"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/dashboard/status [get]
func (h *DashboardHandler) GetTitheStatus(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	status, err := service.GetTitheStatus(userID)
	if err != nil {
		if errors.Is(err, service.ErrRateNotFound) {
			BadRequest(c, "汇率缺失，无法完成统计: "+err.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	Success(c, status)
}

// GetIncomeSummary 获取收入来源分布
// @Summary 获取收入来源分布
// @Description 按来源统计当前用户的收入，各笔先折算到基准货币再累加，按金额降序
// @Tags 看板
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.SourceSummary} "获取成功"
// @Failure 400 {object} Response "存在缺失的汇率"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/dashboard/income-summary [get]
func (h *DashboardHandler) GetIncomeSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	summaries, err := service.GetIncomeSummaryBySource(userID)
	if err != nil {
		if errors.Is(err, service.ErrRateNotFound) {
			BadRequest(c, "汇率缺失，无法完成统计: "+err.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "统计失败"))
		return
	}
	Success(c, summaries)
}
