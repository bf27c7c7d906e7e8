package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/vitrina-next/internal/app"
	"github.com/vitrina-next/internal/config"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiGreen     = "\033[32m"
	ansiBlue      = "\033[34m"
	ansiCyan      = "\033[36m"
	ansiBrightMag = "\033[95m"
)

func main() {
	var (
		mode       string
		configFile string
	)
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.StringVar(&configFile, "config", "", "配置文件路径，默认查找 ./config.yml")
	flag.Parse()

	printStartupBanner()

	// 加载配置
	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	release := cfg.Server.Mode == "release"
	if isWeakSecret(cfg.JWT.SecretKey) {
		if release {
			stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置至少 32 位的随机密钥")
		}
		logger.Warnw("jwt_secret_weak", "hint", "set VITRINA_JWT_SECRET before going to production")
	}
	if release {
		gin.SetMode(gin.ReleaseMode)
	}

	// worker 模式不对外提供接口，但佣金与订单通知任务仍需访问数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Server.Mode == "debug", models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 迁移与默认账号只由 API 进程负责，避免多个 worker 并发迁移
	if mode != app.ModeWorker {
		if err := models.AutoMigrate(); err != nil {
			stdLog.Fatalf("数据库迁移失败: %v", err)
		}
		bootstrap := cfg.Bootstrap
		if release && bootstrap.AdminPassword == "" {
			logger.Warnw("default_admin_skipped", "reason", "VITRINA_BOOTSTRAP_ADMIN_PASSWORD not set")
		} else if err := models.InitDefaultAdmin(bootstrap.AdminName, bootstrap.AdminEmail, bootstrap.AdminPassword); err != nil {
			logger.Warnw("default_admin_init_failed", "error", err)
		}
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔══════════════════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║                  🛍  Vitrina API 启动中                      ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚══════════════════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + "██╗   ██╗██╗████████╗██████╗ ██╗███╗   ██╗ █████╗ " + ansiReset)
	fmt.Println(ansiCyan + "██║   ██║██║╚══██╔══╝██╔══██╗██║████╗  ██║██╔══██╗" + ansiReset)
	fmt.Println(ansiCyan + "██║   ██║██║   ██║   ██████╔╝██║██╔██╗ ██║███████║" + ansiReset)
	fmt.Println(ansiCyan + "╚██╗ ██╔╝██║   ██║   ██╔══██╗██║██║╚██╗██║██╔══██║" + ansiReset)
	fmt.Println(ansiCyan + " ╚████╔╝ ██║   ██║   ██║  ██║██║██║ ╚████║██║  ██║" + ansiReset)
	fmt.Println(ansiCyan + "  ╚═══╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Catalog · Cart · Orders · Affiliates" + ansiReset)
	fmt.Println(ansiBlue + "• Storefront: /api/v1/public" + ansiReset)
	fmt.Println(ansiBlue + "• Admin:      /api/v1/admin" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
