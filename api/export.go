package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"tithe/database"
	"tithe/middleware"
	"tithe/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// parseExportRange 解析导出时间范围参数
func parseExportRange(c *gin.Context) (time.Time, time.Time, bool) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")

	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供开始日期和结束日期")
		return time.Time{}, time.Time{}, false
	}

	start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
	if err != nil {
		BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
		return time.Time{}, time.Time{}, false
	}

	end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func queryExportIncomes(userID uint, start, end time.Time) ([]models.Income, error) {
	var incomes []models.Income
	err := database.DB.
		Where("user_id = ? AND income_date >= ? AND income_date <= ?", userID, start, end).
		Order("income_date DESC").
		Find(&incomes).Error
	return incomes, err
}

// ExportCSV 导出收入记录为 CSV
// @Summary 导出收入记录
// @Description 根据日期范围导出当前用户的收入记录为 CSV 文件
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, ok := parseExportRange(c)
	if !ok {
		return
	}

	incomes, err := queryExportIncomes(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	// 生成 CSV
	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	// 写入表头
	headers := []string{"ID", "金额", "货币", "来源", "描述", "日期", "周期", "下次应入", "创建时间"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 写入数据
	for _, in := range incomes {
		nextDue := ""
		if in.NextDueDate != nil {
			nextDue = in.NextDueDate.Format("2006-01-02")
		}
		row := []string{
			fmt.Sprintf("%d", in.ID),
			fmt.Sprintf("%.2f", in.Amount),
			in.Currency,
			in.Source,
			in.Description,
			in.IncomeDate.Format("2006-01-02"),
			in.Frequency,
			nextDue,
			in.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 设置响应头
	filename := fmt.Sprintf("incomes_%s_%s.csv", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON 导出收入记录为 JSON
// @Summary 导出收入记录为 JSON
// @Description 根据日期范围导出当前用户的收入记录为 JSON 格式
// @Tags 导出
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=[]models.Income} "导出成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, ok := parseExportRange(c)
	if !ok {
		return
	}

	incomes, err := queryExportIncomes(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	Success(c, incomes)
}

// ExportExcel 导出收入记录为 Excel
// @Summary 导出收入记录为 Excel
// @Description 根据日期范围导出当前用户的收入记录为 Excel 文件
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, ok := parseExportRange(c)
	if !ok {
		return
	}

	incomes, err := queryExportIncomes(userID, start, end)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return
	}

	// 创建 Excel 文件
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "收入记录"
	f.SetSheetName("Sheet1", sheetName)

	// 设置表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"6B46C1"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 30)
	f.SetColWidth(sheetName, "F", "F", 14)
	f.SetColWidth(sheetName, "G", "G", 12)
	f.SetColWidth(sheetName, "H", "H", 14)

	// 写入表头
	headers := []string{"ID", "金额", "货币", "来源", "描述", "日期", "周期", "下次应入"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	var totalAmount float64
	for i, in := range incomes {
		row := i + 2
		nextDue := ""
		if in.NextDueDate != nil {
			nextDue = in.NextDueDate.Format("2006-01-02")
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), in.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), in.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), in.Currency)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), in.Source)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), in.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), in.IncomeDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), in.Frequency)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), nextDue)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), dataStyle)
		totalAmount += in.Amount
	}

	// 合计行（原币金额直接相加，仅供参考）
	sumRow := len(incomes) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", sumRow), "合计")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", sumRow), totalAmount)

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}

	filename := fmt.Sprintf("incomes_%s_%s.xlsx", start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
