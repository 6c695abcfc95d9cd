package database

import (
	"fmt"
	"log"
	"time"

	"tithe/config"
	"tithe/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)  // 最大空闲连接数
	sqlDB.SetMaxOpenConns(100) // 最大打开连接数

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Income{},
		&models.TithePayment{},
		&models.ExchangeRate{},
		&models.SupportedCurrency{},
		&models.PasswordReset{},
	); err != nil {
		return err
	}

	// 兼容历史数据：老版本没有 status 字段，默认设置为 active，避免升级后无法登录
	_ = DB.Model(&models.User{}).
		Where("status IS NULL OR status = ''").
		Update("status", models.UserStatusActive).Error

	// 初始化支持的货币（仅当表为空时）
	var currencyCount int64
	DB.Model(&models.SupportedCurrency{}).Count(&currencyCount)
	if currencyCount == 0 {
		currencies := models.DefaultCurrencies()
		if len(currencies) > 0 {
			_ = DB.Create(&currencies).Error
		}
	}

	// 清理过期的密码重置令牌（超过 7 天）
	_ = DB.Where("expires_at < ?", time.Now().Add(-7*24*time.Hour)).
		Delete(&models.PasswordReset{}).Error

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
