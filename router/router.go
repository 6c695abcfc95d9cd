package router

import (
	"io/fs"
	"net/http"
	"time"

	"tithe/api"
	"tithe/config"
	_ "tithe/docs"
	"tithe/middleware"
	"tithe/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// 嵌入的静态文件 - 看板页面
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.GET("/", func(c *gin.Context) {
		content, err := fs.ReadFile(staticFS, "index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "加载页面失败")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", content)
	})

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		passwordResetHandler := api.NewPasswordResetHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(10, time.Minute), authHandler.Login)

			// 密码重置（邮件链接）
			auth.POST("/password/request-reset", passwordResetHandler.RequestPasswordReset)
			auth.GET("/password/verify-token", passwordResetHandler.VerifyResetToken)
			auth.POST("/password/reset", passwordResetHandler.ResetPassword)
		}

		// 参考数据（无需登录）
		incomeHandler := api.NewIncomeHandler()
		rateHandler := api.NewRateHandler()
		v1.GET("/income-sources", incomeHandler.GetIncomeSources)
		v1.GET("/currencies", rateHandler.GetCurrencies)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/profile", authHandler.UpdateProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			// 收入记录相关
			incomes := authorized.Group("/incomes")
			{
				incomes.POST("", incomeHandler.Create)
				incomes.GET("", incomeHandler.List)
				incomes.GET("/recent", incomeHandler.Recent)
				incomes.GET("/recurring", incomeHandler.Recurring)
			}

			// 奉献缴纳相关
			titheHandler := api.NewTitheHandler()
			tithes := authorized.Group("/tithes")
			{
				tithes.POST("", titheHandler.Create)
				tithes.GET("", titheHandler.List)
			}

			// 汇率相关
			rates := authorized.Group("/exchange-rates")
			{
				rates.POST("", rateHandler.Upsert)
				rates.GET("", rateHandler.List)
			}

			// 看板相关
			dashboardHandler := api.NewDashboardHandler()
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/status", dashboardHandler.GetTitheStatus)
				dashboard.GET("/income-summary", dashboardHandler.GetIncomeSummary)
			}

			// 导出相关
			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/json", exportHandler.ExportJSON)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
