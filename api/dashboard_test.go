package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_GetTitheStatus(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	// 收入：1000 美元，无需查汇率
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "currency", "date"}).
			AddRow(1000.0, "USD", d))

	// 已缴：50 美元
	mock.ExpectQuery("SELECT .* FROM `tithe_payments`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "currency", "date"}).
			AddRow(50.0, "USD", d))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard/status", NewDashboardHandler().GetTitheStatus)

	req := httptest.NewRequest("GET", "/dashboard/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.InDelta(t, 1000.0, data["total_income"], 1e-9)
	assert.InDelta(t, 100.0, data["total_tithe_due"], 1e-9)
	assert.InDelta(t, 50.0, data["total_tithe_paid"], 1e-9)
	assert.InDelta(t, 50.0, data["remaining_balance"], 1e-9)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardHandler_GetTitheStatus_MixedCurrency(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	// 收入：1000 美元 + 100 欧元（汇率 1.1）
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "currency", "date"}).
			AddRow(1000.0, "USD", d).
			AddRow(100.0, "EUR", d))

	mock.ExpectQuery("SELECT .* FROM `exchange_rates`").
		WithArgs("EUR", "2024-01-15").
		WillReturnRows(sqlmock.NewRows([]string{"id", "currency_code", "date", "rate", "created_at", "updated_at"}).
			AddRow(1, "EUR", d, 1.1, time.Now(), time.Now()))

	mock.ExpectQuery("SELECT .* FROM `tithe_payments`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "currency", "date"}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard/status", NewDashboardHandler().GetTitheStatus)

	req := httptest.NewRequest("GET", "/dashboard/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	// 1000 + 100*1.1 = 1110，应缴 111
	assert.InDelta(t, 1110.0, data["total_income"], 1e-9)
	assert.InDelta(t, 111.0, data["total_tithe_due"], 1e-9)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardHandler_GetTitheStatus_MissingRate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	d := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "currency", "date"}).
			AddRow(100.0, "EUR", d))

	// 当日无欧元汇率：统计必须失败，而不是按 1:1 估算
	mock.ExpectQuery("SELECT .* FROM `exchange_rates`").
		WithArgs("EUR", "2024-01-10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "currency_code", "date", "rate", "created_at", "updated_at"}))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard/status", NewDashboardHandler().GetTitheStatus)

	req := httptest.NewRequest("GET", "/dashboard/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["message"], "汇率缺失")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardHandler_GetIncomeSummary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "currency", "date", "source"}).
			AddRow(5000.0, "USD", d, "工资").
			AddRow(200.0, "USD", d, "副业").
			AddRow(300.0, "USD", d, "副业"))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/dashboard/income-summary", NewDashboardHandler().GetIncomeSummary)

	req := httptest.NewRequest("GET", "/dashboard/income-summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	require.Len(t, list, 2)
	// 按金额降序
	first := list[0].(map[string]interface{})
	assert.Equal(t, "工资", first["source"])
	assert.InDelta(t, 5000.0, first["total"], 1e-9)
	second := list[1].(map[string]interface{})
	assert.Equal(t, "副业", second["source"])
	assert.InDelta(t, 500.0, second["total"], 1e-9)
	assert.Equal(t, float64(2), second["count"])
	require.NoError(t, mock.ExpectationsWereMet())
}
