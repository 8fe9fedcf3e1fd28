package routes

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ltizzi/PZTools/internal/server/handlers"
	"github.com/Ltizzi/PZTools/internal/server/middleware"
	"github.com/Ltizzi/PZTools/internal/server/services"
	"github.com/Ltizzi/PZTools/internal/shared/auth"
	"github.com/Ltizzi/PZTools/internal/shared/response"
	"github.com/Ltizzi/PZTools/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

// Deps 路由依赖的服务集合
type Deps struct {
	UserService      *auth.UserService
	JWTService       *auth.JWTService
	TrackerService   *services.TrackerService
	CropService      *services.CropService
	DashboardService *services.DashboardService
	WebDistPath      string
}

// SetupRoutes 设置路由
func SetupRoutes(deps Deps) *gin.Engine {
	r := gin.New()

	// 全局中间件
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Timeout(30 * time.Second))

	// 创建处理器
	authHandler := handlers.NewAuthHandler(deps.UserService, deps.JWTService)
	trackerHandler := handlers.NewTrackerHandler(deps.TrackerService)
	cropHandler := handlers.NewCropHandler(deps.CropService)
	dashboardHandler := handlers.NewDashboardHandler(deps.DashboardService)

	// 健康检查 (无需认证)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "PZ Loot Tracker is running",
		})
	})

	api := r.Group("/api")
	{
		// 公开接口
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/crops", cropHandler.GetCrops)
		api.GET("/crops/month/:month", cropHandler.GetCropsByMonth)

		// 需要认证的接口
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(deps.JWTService))
		{
			protected.GET("/items", trackerHandler.GetItems)
			protected.POST("/toggle-item", trackerHandler.ToggleItem)
			protected.GET("/stats", trackerHandler.GetStats)
			protected.POST("/export-tracker", trackerHandler.ExportTracker)
			protected.POST("/import-tracker", trackerHandler.ImportTracker)

			// 管理员接口
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminRequired(deps.UserService))
			{
				admin.GET("/status", dashboardHandler.GetStatus)
			}
		}
	}

	setupSPA(r, deps.WebDistPath)

	return r
}

// setupSPA 设置静态文件服务。未知的/api路径返回404 JSON，其余路径回退到index.html。
func setupSPA(r *gin.Engine, distPath string) {
	distPath = utils.FindWebPath(distPath)
	indexPath := filepath.Join(distPath, "index.html")

	if assetsDir := filepath.Join(distPath, "assets"); dirExists(assetsDir) {
		r.Static("/assets", assetsDir)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api" {
			response.NotFound(c, "API endpoint not found")
			return
		}
		if _, err := os.Stat(indexPath); err != nil {
			response.NotFound(c, "")
			return
		}
		c.File(indexPath)
	})
}

// dirExists 目录是否存在
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
