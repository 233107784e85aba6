package app

import (
	"context"
	"errors"
	"net/http"
	"newel_classroom/internal/config"
	"newel_classroom/internal/controller"
	"newel_classroom/internal/middleware"
	"newel_classroom/internal/repository"
	"newel_classroom/internal/service"
	"newel_classroom/internal/session"
	"newel_classroom/internal/view"
	"newel_classroom/pkg/configwatcher"
	"newel_classroom/pkg/database"
	"newel_classroom/pkg/logger"
	"newel_classroom/pkg/monitoring"
	"newel_classroom/pkg/security"
	"newel_classroom/pkg/tracing"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Sessions session.Store

	services        *services
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	prompt      *repository.PromptRepository
	response    *repository.ResponseRepository
	grade       *repository.GradeRepository
	leaderboard *repository.LeaderboardRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	prompt      *service.PromptService
	response    *service.ResponseService
	grading     *service.GradingService
	leaderboard *service.LeaderboardService
}

type controllers struct {
	auth    *controller.AuthController
	page    *controller.PageController
	teacher *controller.TeacherController
	student *controller.StudentController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		prompt:      repository.NewPromptRepository(db),
		response:    repository.NewResponseRepository(db),
		grade:       repository.NewGradeRepository(db),
		leaderboard: repository.NewLeaderboardRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, sessions session.Store) *services {
	return &services{
		auth:        service.NewAuthService(repos.user, sessions, cfg),
		user:        service.NewUserService(repos.user),
		prompt:      service.NewPromptService(db, repos.prompt),
		response:    service.NewResponseService(db, repos.prompt, repos.response),
		grading:     service.NewGradingService(db, repos.prompt, repos.response, repos.grade),
		leaderboard: service.NewLeaderboardService(repos.leaderboard),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, sessions session.Store) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth, a.Config),
		page:    controller.NewPageController(s.leaderboard),
		teacher: controller.NewTeacherController(s.prompt, s.grading),
		student: controller.NewStudentController(s.prompt, s.response),
		health:  controller.NewHealthController(db, sessions),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.Secure())
	if len(cfg.CORS.AllowedOrigins) > 0 {
		router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.SessionMiddleware(a.services.auth, cfg))
	router.Use(middleware.FlashMiddleware())
}

// NewSessionStore picks the session backend named in the config.
func NewSessionStore(cfg *config.Config) (session.Store, *redis.Client, error) {
	if cfg.Session.Store != config.StoreRedis {
		return session.NewMemoryStore(), nil, nil
	}
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return session.NewRedisStore(rdb), rdb, nil
}

// NewApp opens the database and session store and builds the router.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Error("Failed to initialize database", zap.Error(err))
		return nil, err
	}

	if !cfg.IsRelease() || cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Error("Failed to migrate database", zap.Error(err))
			return nil, err
		}
	}

	sessions, rdb, err := NewSessionStore(cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize redis", zap.Error(err))
		return nil, err
	}

	app, err := New(cfg, db, sessions)
	if err != nil {
		return nil, err
	}
	app.Redis = rdb

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
			return nil, err
		}
		app.tracerProvider = tp
	}

	app.RegisterConfigCallback(logger.ApplyConfig)
	return app, nil
}

// New wires repositories, services and routes around an open database and
// session store.
func New(cfg *config.Config, db *gorm.DB, sessions session.Store) (*App, error) {
	app := &App{
		Config:   cfg,
		DB:       db,
		Sessions: sessions,
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, db, sessions)
	controllers := app.initControllers(app.services, db, sessions)

	// 监控初始化
	monitoring.Init()

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.HTMLRender = renderer
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		err := configwatcher.WatchConfig(watchCtx, a.Config.Dir, func(cfg *config.Config) {
			for _, callback := range a.configCallbacks {
				callback(cfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		a.Close()
		return err
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close()
	logger.Log.Info("Server exiting")
	return nil
}

// Close releases the tracer, redis and database connections.
func (a *App) Close() {
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = logger.Log.Sync()
}
