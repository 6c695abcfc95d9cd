package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"tithe/config"
	"tithe/database"
	"tithe/middleware"
	"tithe/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func TestAuthHandler_Register(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	defer func() { config.GlobalConfig = nil }()

	// 检查邮箱不存在：SELECT 返回无记录
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("new@example.com").
		WillReturnRows(sqlmock.NewRows([]string{}))

	// GORM Create 使用事务
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(cfg)
	router.POST("/register", h.Register)

	body := `{"email":"new@example.com","password":"password123","name":"张三"}`
	req := httptest.NewRequest("POST", "/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(200), resp["code"])
	assert.Equal(t, "注册成功", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_EmailExists(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret"},
	}
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	// SELECT 返回已有用户
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("taken@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "taken@example.com", "hash", "李四", models.UserStatusActive, time.Now(), time.Now(), nil))

	router := gin.New()
	h := NewAuthHandler(cfg)
	router.POST("/register", h.Register)

	body := `{"email":"taken@example.com","password":"password123","name":"张三"}`
	req := httptest.NewRequest("POST", "/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "该邮箱已注册", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("login@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "login@example.com", string(hashed), "张三", models.UserStatusActive, time.Now(), time.Now(), nil))

	router := gin.New()
	h := NewAuthHandler(cfg)
	router.POST("/login", h.Login)

	body := `{"email":"login@example.com","password":"password123"}`
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(200), resp["code"])
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}, JWT: config.JWTConfig{Secret: "x"}}
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("login@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "login@example.com", string(hashed), "张三", models.UserStatusActive, time.Now(), time.Now(), nil))

	router := gin.New()
	h := NewAuthHandler(cfg)
	router.POST("/login", h.Login)

	body := `{"email":"login@example.com","password":"wrongpassword"}`
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "邮箱或密码错误", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_LockedUser(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}, JWT: config.JWTConfig{Secret: "x"}}
	config.GlobalConfig = cfg
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("locked@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "locked@example.com", string(hashed), "张三", models.UserStatusLocked, time.Now(), time.Now(), nil))

	router := gin.New()
	h := NewAuthHandler(cfg)
	router.POST("/login", h.Login)

	body := `{"email":"locked@example.com","password":"password123"}`
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 锁定用户即使密码正确也不能登录
	assert.Equal(t, 403, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_GetProfile(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "me@example.com", "hash", "张三", models.UserStatusActive, time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/profile", NewAuthHandler(cfg).GetProfile)

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "me@example.com", data["email"])
	// 密码不出现在响应中
	assert.NotContains(t, w.Body.String(), "hash")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_UpdateProfile_NameOnly(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "me@example.com", "hash", "张三", models.UserStatusActive, time.Now(), time.Now(), nil))

	// 只提供 name：不触发邮箱占用检查，直接 UPDATE
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "me@example.com", "hash", "李四", models.UserStatusActive, time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/profile", NewAuthHandler(cfg).UpdateProfile)

	body := `{"name":"李四"}`
	req := httptest.NewRequest("PUT", "/profile", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "李四", data["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_UpdateProfile_EmailTaken(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "me@example.com", "hash", "张三", models.UserStatusActive, time.Now(), time.Now(), nil))

	// 新邮箱已被他人使用
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("other@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(2, "other@example.com", "hash2", "王五", models.UserStatusActive, time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/profile", NewAuthHandler(cfg).UpdateProfile)

	body := `{"email":"other@example.com"}`
	req := httptest.NewRequest("PUT", "/profile", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "该邮箱已被占用", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_ChangePassword_WrongOldPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "status", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "me@example.com", string(hashed), "张三", models.UserStatusActive, time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/password", NewAuthHandler(cfg).ChangePassword)

	body := `{"old_password":"wrongpassword","new_password":"newpassword123"}`
	req := httptest.NewRequest("PUT", "/password", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
