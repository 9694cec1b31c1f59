package main

import (
	"log"

	"tourism-booking/cmd"
	"tourism-booking/internal/data/repository"
	"tourism-booking/internal/queue"
	"tourism-booking/internal/storage"
	"tourism-booking/internal/wire"
	"tourism-booking/pkg/database"
	"tourism-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	media := storage.NewMediaStore(config.Storage.MediaRoot, logger)
	if err := media.EnsureBuckets(); err != nil {
		logger.Fatal("Failed to prepare media buckets", zap.Error(err))
	}

	var redisClient *redis.Client
	if config.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		logger.Info("Response cache enabled", zap.String("addr", config.Redis.Addr))
	}

	var events queue.Publisher = queue.NopPublisher{}
	if config.AMQP.Enabled {
		events = queue.NewAMQPPublisher(config.AMQP.URL, logger)
		logger.Info("Booking event publisher enabled")
	}

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, config, logger, wire.Infra{
		DB:     db,
		Redis:  redisClient,
		Events: events,
		Media:  media,
	})

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
