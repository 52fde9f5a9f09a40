package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onlinetest_backend/internal/config"
	"onlinetest_backend/internal/controller"
	"onlinetest_backend/internal/integration"
	"onlinetest_backend/internal/repository"
	"onlinetest_backend/internal/service"
	"onlinetest_backend/pkg/claims"
	"onlinetest_backend/pkg/database"
	"onlinetest_backend/pkg/logger"
	"onlinetest_backend/pkg/monitoring"
	"onlinetest_backend/pkg/randutil"
	"onlinetest_backend/pkg/security"
	"onlinetest_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Codec  *claims.Codec

	shutdownHooks []func()
}

type repositories struct {
	topic      *repository.TopicRepository
	question   *repository.QuestionRepository
	exam       *repository.ExamRepository
	assignment *repository.AssignmentRepository
	attempt    *repository.AttemptRepository
}

type services struct {
	topic      *service.TopicService
	question   *service.QuestionService
	exam       *service.ExamService
	assignment *service.AssignmentService
	submission *service.SubmissionService
	dashboard  *service.DashboardService
	users      integration.UserDirectory
}

type controllers struct {
	topic      *controller.TopicController
	question   *controller.QuestionController
	exam       *controller.ExamController
	assignment *controller.AssignmentController
	submission *controller.SubmissionController
	dashboard  *controller.DashboardController
	employee   *controller.EmployeeController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		topic:      repository.NewTopicRepository(db),
		question:   repository.NewQuestionRepository(db),
		exam:       repository.NewExamRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		attempt:    repository.NewAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.users = integration.NewUserClient(&cfg.UserService, rdb)
	s.topic = service.NewTopicService(repos.topic)
	s.question = service.NewQuestionService(repos.question, repos.topic)
	s.exam = service.NewExamService(repos.exam, repos.question, repos.topic, randutil.New(), db)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.attempt, s.exam, s.users)
	s.submission = service.NewSubmissionService(repos.assignment, repos.attempt, repos.exam, repos.question, db)
	s.dashboard = service.NewDashboardService(repos.attempt)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		topic:      controller.NewTopicController(s.topic),
		question:   controller.NewQuestionController(s.question),
		exam:       controller.NewExamController(s.exam),
		assignment: controller.NewAssignmentController(s.assignment),
		submission: controller.NewSubmissionController(s.submission),
		dashboard:  controller.NewDashboardController(s.dashboard),
		employee:   controller.NewEmployeeController(s.users),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Codec:  claims.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("question-exam-service", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.onShutdown(func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		})
	}

	app.registerRoutes(router, controllers)

	return app
}

func (a *App) onShutdown(fn func()) {
	a.shutdownHooks = append(a.shutdownHooks, fn)
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	for _, fn := range a.shutdownHooks {
		fn()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
