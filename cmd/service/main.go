package main

import (
	"os"
	"time"

	"github.com/zemenu6/dbrand-backend/config"
	"github.com/zemenu6/dbrand-backend/internal/cache"
	"github.com/zemenu6/dbrand-backend/internal/hashing"
	"github.com/zemenu6/dbrand-backend/internal/producer"
	"github.com/zemenu6/dbrand-backend/internal/repository"
	"github.com/zemenu6/dbrand-backend/internal/router"
	"github.com/zemenu6/dbrand-backend/internal/service"
	"github.com/zemenu6/dbrand-backend/internal/token"
	"github.com/zemenu6/dbrand-backend/pkg/database"
	"github.com/zemenu6/dbrand-backend/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @Title dbrand API
// @Version 1.0
// @Description API магазина обуви: каталог, заказы, платежи
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var shoeCache service.ShoeCache
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		defer rc.Close()
		shoeCache = rc
	}

	// Event bus is optional (nil disables publishing)
	var events service.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		p := producer.NewOrderEventProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer p.Close()
		events = p
	}

	tokens := token.NewHSProvider(cfg.JWT.AccessSecret, cfg.JWT.Issuer, cfg.JWT.Audience)
	hasher := hashing.NewBcrypt(cfg.JWT.BcryptCost)

	authSvc := service.NewAuthService(repos.Users, hasher, tokens, cfg.JWT.AccessTTL, log)
	shoeSvc := service.NewShoeService(repos, shoeCache, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
	orderSvc := service.NewOrderService(repos, events, cfg.StockDecrementOnOrder)
	userSvc := service.NewUserService(repos.Users)
	paymentSvc := service.NewPaymentService(repos.Payments)

	r := router.Router(router.Deps{
		Auth:     authSvc,
		Shoes:    shoeSvc,
		Orders:   orderSvc,
		Users:    userSvc,
		Payments: paymentSvc,
		Tokens:   tokens,
		Log:      log,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to run http server", zap.Error(err))
	}
}
