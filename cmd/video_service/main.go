package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	_ "short_video_service/cmd/video_service/docs" // swag 文件
	"short_video_service/internal/api/handlers"
	"short_video_service/internal/api/router"
	interactionapp "short_video_service/internal/interaction/app"
	interactiondomain "short_video_service/internal/interaction/domain"
	interactionrepo "short_video_service/internal/interaction/repository"
	memberapp "short_video_service/internal/member/app"
	memberdomain "short_video_service/internal/member/domain"
	memberrepo "short_video_service/internal/member/repository"
	relationapp "short_video_service/internal/relation/app"
	relationdomain "short_video_service/internal/relation/domain"
	relationrepo "short_video_service/internal/relation/repository"
	videoapp "short_video_service/internal/video/app"
	videodomain "short_video_service/internal/video/domain"
	videorepo "short_video_service/internal/video/repository"
	"short_video_service/pkg/config"
	"short_video_service/pkg/database"
	"short_video_service/pkg/encrypt"
	"short_video_service/pkg/event"
	"short_video_service/pkg/logger"
	"short_video_service/pkg/storage"
	testtool "short_video_service/pkg/test_tool"
	"short_video_service/pkg/token"
)

const sessionPrefix = "session:"

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.VideoService, config.EnvConfig.VideoServiceLogPath)
	defer logger.Log.Sync()

	cfg, err := config.LoadConfig[config.VideoService](config.EnvConfig.VideoService, config.EnvConfig.VideoServiceYAMLPath)
	if err != nil {
		logger.Log.Fatal("load config", zap.Error(err))
	}
	cfg.ApplyDefaults()
	if config.EnvConfig.VideoServicePort != "" {
		cfg.Port = config.EnvConfig.VideoServicePort
	}

	testtool.StartPprof()
	token.Configure(cfg.JWTSecret, cfg.SessionTTL*time.Minute)

	pg := cfg.PostgreSQL
	dsn := database.PostgresDSN(pg.User, pg.Password, pg.Host, pg.Port, pg.Database)
	conn := database.Connection{
		ConnectStr:    dsn,
		RetryCount:    pg.RetryCount,
		RetryInterval: time.Duration(pg.RetryInterval),
	}

	db, err := database.NewPGConnection(conn)
	if err != nil {
		logger.Log.Fatal("Unable to connect to postgreSQL database after retries",
			zap.String("host", pg.Host), zap.Error(err))
	}
	if err := db.AutoMigrate(
		&memberdomain.Member{},
		&videodomain.Video{},
		&interactiondomain.Like{},
		&interactiondomain.Comment{},
		&relationdomain.Follow{},
	); err != nil {
		logger.Log.Fatal("auto migrate", zap.Error(err))
	}

	pool, err := database.NewDatabaseConnection(conn)
	if err != nil {
		logger.Log.Fatal("Unable to create pgx pool", zap.String("host", pg.Host), zap.Error(err))
	}
	defer pool.Close()

	masterName, sentinel := config.GetRedisSetting()
	rdb, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.Addr, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal("connect redis", zap.Error(err))
	}
	defer rdb.Close()
	sessions := database.NewRedisRepository[memberdomain.MemberSession](rdb, sessionPrefix)

	store, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Log.Fatal("init storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	publisher, closeEvents, err := event.NewFromConfig(cfg.Events)
	if err != nil {
		logger.Log.Fatal("init event publisher", zap.String("driver", cfg.Events.Driver), zap.Error(err))
	}
	defer func() {
		if err := closeEvents(); err != nil {
			logger.Log.Error("close event publisher", zap.Error(err))
		}
	}()

	sessionTTL := cfg.SessionTTL * time.Minute
	memberUseCase := memberapp.NewMemberUseCase(
		memberrepo.NewMemberRepository(pool),
		sessionTTL,
		sessions,
		encrypt.HashPassword,
		cfg.MaxUsers,
		publisher,
	)
	relationUseCase := relationapp.NewRelationUseCase(relationrepo.NewFollowRepo(db), memberUseCase, publisher)

	videos := videorepo.NewVideoRepo(db)
	interactionUseCase := interactionapp.NewInteractionUseCase(
		videos,
		interactionrepo.NewLikeRepo(db),
		interactionrepo.NewCommentRepo(db),
		publisher,
		interactionapp.Options{DefaultLimit: cfg.Feed.CommentLimit, MaxLimit: cfg.Feed.MaxLimit},
	)
	videoUseCase := videoapp.NewVideoUseCase(
		videos,
		relationUseCase,
		interactionUseCase,
		store,
		publisher,
		videoapp.Options{
			DefaultLimit: cfg.Feed.DefaultLimit,
			MaxLimit:     cfg.Feed.MaxLimit,
			MaxFileSize:  cfg.Storage.MaxFileSize,
		},
	)

	r := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Storage.MaxFileSize) + 1<<20,
	})

	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.VideoServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	if cfg.Storage.Driver == "local" {
		r.Static(cfg.Storage.PublicPrefix, cfg.Storage.UploadDir)
	}

	router.RegisterRoutes(r, router.Handlers{
		Member:      handlers.NewMemberHandler(memberUseCase, sessionTTL),
		Video:       handlers.NewVideoHandler(videoUseCase),
		Interaction: handlers.NewInteractionHandler(interactionUseCase),
		Relation:    handlers.NewRelationHandler(relationUseCase),
	}, sessions, cfg.RateLimit)

	go func() {
		logger.Log.Info("video service listening", zap.String("port", cfg.Port))
		if err := r.Listen(cfg.IP + ":" + cfg.Port); err != nil {
			logger.Log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down video service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.ShutdownWithContext(ctx); err != nil {
		logger.Log.Error("shutdown", zap.Error(err))
	}
}
