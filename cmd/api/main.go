package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"edu-platform-api/internal/core/blob"
	"edu-platform-api/internal/core/config"
	"edu-platform-api/internal/core/database"
	"edu-platform-api/internal/core/logger"
	"edu-platform-api/internal/core/server"
	"edu-platform-api/internal/domain"
	"edu-platform-api/internal/repo"
	"edu-platform-api/internal/service"
	"edu-platform-api/internal/telemetry"
	"edu-platform-api/internal/transport/http/handler"
	"edu-platform-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Course{},
			&domain.Assessment{},
			&domain.Result{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 对象存储：配置缺失在 config.Load 已拦截，客户端失败同样致命
	store, err := blob.NewOSS(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKeyID,
		cfg.Storage.AccessKeySecret,
		cfg.Storage.Bucket,
	)
	if err != nil {
		log.Fatal("blob store init failed", zap.Error(err))
	}

	// 仓储
	userRepo := repo.NewUserRepo(db)
	courseRepo := repo.NewCourseRepo(db)
	assessmentRepo := repo.NewAssessmentRepo(db)
	resultRepo := repo.NewResultRepo(db)

	// 快照导出在独立 goroutine 里跑，进程退出时随 ctx 停止
	exporter := service.NewSnapshotExporter(courseRepo, store, log)
	exportCtx, stopExport := context.WithCancel(context.Background())
	defer stopExport()
	go exporter.Run(exportCtx)

	// 服务
	userSvc := service.NewUserService(userRepo, log)
	courseSvc := service.NewCourseService(courseRepo, userRepo, exporter, log)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, courseRepo, log)
	resultSvc := service.NewResultService(resultRepo, assessmentRepo, userRepo, log)

	// 路由
	r := router.NewAPIEngine(log, router.Handlers{
		Users:       handler.NewUserHandler(userSvc),
		Courses:     handler.NewCourseHandler(courseSvc),
		Assessments: handler.NewAssessmentHandler(assessmentSvc),
		Results:     handler.NewResultHandler(resultSvc),
		Telemetry:   handler.NewTelemetryHandler(telemetry.New(log)),
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopExport()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
