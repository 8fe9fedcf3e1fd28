package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ltizzi/PZTools/internal/server/database"
	"github.com/Ltizzi/PZTools/internal/server/routes"
	"github.com/Ltizzi/PZTools/internal/server/services"
	"github.com/Ltizzi/PZTools/internal/server/store"
	"github.com/Ltizzi/PZTools/internal/shared/auth"
	"github.com/Ltizzi/PZTools/internal/shared/config"
	"github.com/Ltizzi/PZTools/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

var (
	configFile  = flag.String("config", "configs/server.yaml", "配置文件路径")
	versionFlag = flag.Bool("version", false, "显示版本信息")
	help        = flag.Bool("help", false, "显示帮助信息")
)

// 这些变量可以在构建时通过-ldflags设置
var (
	version   string = "1.0.0"
	buildTime string = "2025-01-01"
)

const AppName = "PZ Loot Tracker"

func init() {
	flag.Parse()

	if *versionFlag {
		log.Printf("%s v%s (built at %s)", AppName, version, buildTime)
		os.Exit(0)
	}

	if *help {
		flag.Usage()
		os.Exit(0)
	}
}

func main() {
	log.Printf("启动 %s v%s", AppName, version)

	// 加载配置
	cfg, err := config.LoadServerConfig(*configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 处理数据库路径 - 转换为绝对路径
	dbPath, err := utils.GetAbsolutePath(cfg.Database.Path)
	if err != nil {
		log.Fatalf("获取数据库路径失败: %v", err)
	}
	log.Printf("数据库路径: %s", dbPath)

	// 初始化数据库
	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("关闭数据库失败: %v", err)
		}
	}()
	log.Println("数据库初始化成功")

	// 创建存储层
	userStore := store.NewGormUserStore(db)
	catalogStore := store.NewGormCatalogStore(db)
	collectionStore := store.NewGormCollectionStore(db)

	// 导入种子数据。失败不终止进程，目录保持为空。
	if err := database.SeedCatalog(catalogStore, cfg.Data.TrackerFile); err != nil {
		log.Printf("种子导入失败: %v", err)
	}

	// 创建服务层
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenExpiry))
	userService := auth.NewUserService(userStore)
	trackerService := services.NewTrackerService(catalogStore, collectionStore)
	cropService := services.NewCropService(cfg.Data.CalendarFile)
	dashboardService := services.NewDashboardService(userStore, catalogStore, collectionStore)

	// 启动不活跃用户清理任务
	if cfg.Cleanup.Enabled {
		cleanupScheduler := services.NewCleanupScheduler(userStore, cfg.Cleanup.Schedule, cfg.Cleanup.RetentionDays)
		if err := cleanupScheduler.Start(); err != nil {
			log.Fatalf("启动清理任务失败: %v", err)
		}
		defer cleanupScheduler.Stop()
	}

	// 设置路由
	router := routes.SetupRoutes(routes.Deps{
		UserService:      userService,
		JWTService:       jwtService,
		TrackerService:   trackerService,
		CropService:      cropService,
		DashboardService: dashboardService,
		WebDistPath:      cfg.Web.DistPath,
	})

	// 创建HTTP服务器
	server := &http.Server{
		Addr:           cfg.App.Listen,
		Handler:        router,
		ReadTimeout:    time.Duration(cfg.App.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.App.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.App.IdleTimeout) * time.Second,
		MaxHeaderBytes: cfg.App.MaxHeaderBytes << 20, // MB to bytes
	}

	// 启动HTTP服务器
	go func() {
		log.Printf("HTTP服务器启动在 %s", cfg.App.Listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务器...")
	gracefulShutdown(server)
}

// gracefulShutdown 优雅关闭HTTP服务器
func gracefulShutdown(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("服务器关闭异常: %v", err)
		return
	}
	log.Println("服务器已关闭")
}
