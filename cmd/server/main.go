package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	httpctrl "github.com/atfskmn/-Course-Management-Api/internal/controllers/http"
	mmysql "github.com/atfskmn/-Course-Management-Api/internal/infra/mysql"
	"github.com/atfskmn/-Course-Management-Api/internal/infra/rabbitmq"
	"github.com/atfskmn/-Course-Management-Api/internal/pkg/logger"
	mysqlrepo "github.com/atfskmn/-Course-Management-Api/internal/repository/mysql"
	"github.com/atfskmn/-Course-Management-Api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	appLog, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLog.Sync()

	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		appLog.Fatal("db connect failed", "error", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(200)
	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	txManager := mysqlrepo.NewTxManager(db)
	courseRepo := mysqlrepo.NewCourseRepository(db, appLog)
	cartRepo := mysqlrepo.NewCartRepository(db, appLog)
	orderRepo := mysqlrepo.NewOrderRepository(db, appLog)
	enrollmentRepo := mysqlrepo.NewEnrollmentRepository(db, appLog)
	studentRepo := mysqlrepo.NewStudentRepository(db, appLog)
	teacherRepo := mysqlrepo.NewTeacherRepository(db, appLog)
	userRepo := mysqlrepo.NewUserRepository(db, appLog)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "course.orders", appLog)
	if err != nil {
		appLog.Fatal("rabbitmq init failed", "error", err)
	}
	defer publisher.Close()

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		jwtSecret = "defaultsecret"
	}
	tokenTTL := 1 * time.Hour
	if raw := os.Getenv("TOKEN_TTL_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil {
			tokenTTL = time.Duration(seconds) * time.Second
		}
	}

	authService := services.NewAuthService(txManager, userRepo, studentRepo, teacherRepo, jwtSecret, tokenTTL, appLog)
	cartService := services.NewCartService(txManager, cartRepo, courseRepo, enrollmentRepo, studentRepo, appLog)
	courseService := services.NewCourseService(courseRepo, teacherRepo, appLog)
	orderService := services.NewOrderService(txManager, orderRepo, cartRepo, courseRepo, enrollmentRepo, studentRepo, publisher, appLog)
	registryService := services.NewRegistryService(txManager, studentRepo, teacherRepo, courseRepo, cartRepo, orderRepo, appLog)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	courseService.SetRedisClient(redisClient)
	orderService.SetRedisClient(redisClient)

	go func() {
		time.Sleep(2 * time.Second)
		if err := courseService.WarmupCatalogCache(context.Background()); err != nil {
			appLog.Warn("catalog cache warmup failed", "error", err)
		}
	}()

	handler := httpctrl.NewHandler(authService, cartService, courseService, orderService, registryService, appLog)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	appLog.Info("starting course service", "port", port)
	if err := r.Run(":" + port); err != nil {
		appLog.Fatal("server run failed", "error", err)
	}
}
