package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	"github.com/AgroVault/AgroVault-Backend/middleware"
	"github.com/AgroVault/AgroVault-Backend/models"
	activitylogs "github.com/AgroVault/AgroVault-Backend/services/activity_logs"
	service "github.com/AgroVault/AgroVault-Backend/services/notification"
	"github.com/AgroVault/AgroVault-Backend/services/monitoring/logging"
	"github.com/AgroVault/AgroVault-Backend/services/monitoring/tasks"
	"github.com/AgroVault/AgroVault-Backend/services/redis"
	"github.com/AgroVault/AgroVault-Backend/services/security"
	"github.com/AgroVault/AgroVault-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// / If there's a better place to access this
// / TODO, I feel the config should be the one accessible like this
var TokenController *utils.JWTToken

type Server struct {
	router     *gin.Engine
	store      *db.Store
	config     *utils.Config
	logger     *logging.Logger
	redis      *redis.RedisService
	dispatcher *service.Dispatcher
	cache      *security.Cache
	scheduler  *tasks.TaskScheduler
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	s := db.NewStoreWithOptions(conn, c.DBDisableTx)
	g := gin.Default()
	l := logging.NewLogger()

	r, err := redis.NewRedisService(&redis.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
	})
	if err != nil {
		// Listings fall through to the database when the cache is away.
		l.Warn(fmt.Sprintf("Redis unavailable, running without cache: %v", err))
	}

	push := service.NewPushNotificationService(l)
	d := service.NewDispatcher(s, push, c, l)

	cache := security.NewCache()
	if err := cache.Start(); err != nil {
		log.Fatalf("Unable to start the in-process cache - %v", err)
	}

	auditLog := activitylogs.NewActivityLog(s)

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())
	g.Use(middleware.NewActivityLogMiddleware(auditLog).ActivityLogger())

	ts := tasks.NewTaskScheduler(l)
	if _, err := ts.AddTask("activity-log-cleanup", "Activity Log Cleanup", auditLog.CleanupTask(), activitylogs.CleanupInterval); err == nil {
		if err := ts.ScheduleTask("activity-log-cleanup", activitylogs.CleanupInterval); err != nil {
			l.Warn(fmt.Sprintf("could not schedule activity log cleanup: %v", err))
		}
	}

	TokenController = utils.NewJWTToken(c)

	return &Server{
		router:     g,
		store:      s,
		config:     c,
		logger:     l,
		redis:      r,
		dispatcher: d,
		cache:      cache,
		scheduler:  ts,
	}
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to AgroVault!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Auth{}.router(s)
	WalletRequests{}.router(s)
	Farmers{}.router(s)
	Sellers{}.router(s)
	Warehouses{}.router(s)
	Purchases{}.router(s)
	Pickups{}.router(s)
	Stock{}.router(s)
	Notifications{}.router(s)
	ActivityLogs{}.router(s)

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}
