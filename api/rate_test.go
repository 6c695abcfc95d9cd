package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateHandler_Upsert_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `supported_currencies`").
		WithArgs("EUR").
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "symbol"}).
			AddRow("EUR", "欧元", "€"))

	// 当天无记录，走新增
	mock.ExpectQuery("SELECT .* FROM `exchange_rates`").
		WithArgs("EUR", "2024-01-15").
		WillReturnRows(sqlmock.NewRows([]string{}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `exchange_rates`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/exchange-rates", NewRateHandler().Upsert)

	body := `{"currency_code":"EUR","date":"2024-01-15","rate":1.095}`
	req := httptest.NewRequest("POST", "/exchange-rates", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "录入成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRateHandler_Upsert_Update(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT .* FROM `supported_currencies`").
		WithArgs("EUR").
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "symbol"}).
			AddRow("EUR", "欧元", "€"))

	// 同一天已有记录，重复录入视为更正
	mock.ExpectQuery("SELECT .* FROM `exchange_rates`").
		WithArgs("EUR", "2024-01-15").
		WillReturnRows(sqlmock.NewRows([]string{"id", "currency_code", "date", "rate", "created_at", "updated_at"}).
			AddRow(5, "EUR", d, 1.0800, time.Now(), time.Now()))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `exchange_rates`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/exchange-rates", NewRateHandler().Upsert)

	body := `{"currency_code":"EUR","date":"2024-01-15","rate":1.095}`
	req := httptest.NewRequest("POST", "/exchange-rates", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "更新成功", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 1.095, data["rate"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRateHandler_Upsert_BaseCurrency(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/exchange-rates", NewRateHandler().Upsert)

	// 基准货币恒为 1.0，不接受录入
	body := `{"currency_code":"USD","date":"2024-01-15","rate":1.0}`
	req := httptest.NewRequest("POST", "/exchange-rates", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "基准货币无需录入汇率", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRateHandler_Upsert_InvalidRate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/exchange-rates", NewRateHandler().Upsert)

	body := `{"currency_code":"EUR","date":"2024-01-15","rate":-0.5}`
	req := httptest.NewRequest("POST", "/exchange-rates", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRateHandler_List(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT .* FROM `exchange_rates`").
		WithArgs("EUR").
		WillReturnRows(sqlmock.NewRows([]string{"id", "currency_code", "date", "rate", "created_at", "updated_at"}).
			AddRow(2, "EUR", d, 1.0950, time.Now(), time.Now()).
			AddRow(1, "EUR", d.AddDate(0, 0, -1), 1.0800, time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/exchange-rates", NewRateHandler().List)

	req := httptest.NewRequest("GET", "/exchange-rates?currency_code=EUR", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	assert.Len(t, list, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRateHandler_GetCurrencies(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `supported_currencies`").
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "symbol"}).
			AddRow("CNY", "人民币", "¥").
			AddRow("EUR", "欧元", "€").
			AddRow("USD", "美元", "$"))

	router := gin.New()
	router.GET("/currencies", NewRateHandler().GetCurrencies)

	req := httptest.NewRequest("GET", "/currencies", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	require.Len(t, list, 3)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "CNY", first["code"])
	require.NoError(t, mock.ExpectationsWereMet())
}
