package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/monopolybot/backend/internal/api"
	"github.com/monopolybot/backend/internal/bot"
	"github.com/monopolybot/backend/internal/config"
	"github.com/monopolybot/backend/internal/db/mongodb"
	"github.com/monopolybot/backend/internal/db/redis"
	"github.com/monopolybot/backend/internal/game/board"
	"github.com/monopolybot/backend/internal/game/deck"
	"github.com/monopolybot/backend/internal/game/engine"
	"github.com/monopolybot/backend/internal/game/websocket"
	"github.com/monopolybot/backend/internal/journal"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Game assembly. A broken board or empty deck is fatal at startup.
	gameBoard, err := board.Standard()
	if err != nil {
		sugar.Fatalf("Failed to build board: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	chance, err := deck.Chance(rng)
	if err != nil {
		sugar.Fatalf("Failed to build chance deck: %v", err)
	}
	chest, err := deck.CommunityChest(rng)
	if err != nil {
		sugar.Fatalf("Failed to build community chest deck: %v", err)
	}

	rules := engine.Rules{
		StartingCash: cfg.Game.StartingCash,
		GoReward:     cfg.Game.GoReward,
		MinPlayers:   cfg.Game.MinPlayers,
		MaxPlayers:   cfg.Game.MaxPlayers,
		JailTurns:    cfg.Game.JailTurns,
	}

	eng := engine.New(gameBoard, chance, chest, rules, engine.NewDice(rng), sugar)

	// Optional observability backends.
	var jrnl *journal.Journal
	redisClient := connectRedis(ctx, cfg, sugar)
	if redisClient != nil {
		jrnl = journal.New(redisClient, sugar)
		eng.AddSink(jrnl)
	}

	mongoClient := connectMongo(ctx, cfg, sugar)
	if mongoClient != nil {
		archive := mongodb.NewArchiveStore(mongoClient, cfg.MongoDB.Database, cfg.MongoDB.ArchiveColl, sugar)
		eng.AddSink(archive)
	}

	hub := websocket.NewHub(ctx, sugar)
	eng.AddSink(hub)
	go hub.Run()

	server := api.NewServer(cfg, eng, hub, jrnl, mongoClient, redisClient, sugar)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("Failed to start API server: %v", err)
		}
	}()
	sugar.Infof("API server listening on %s:%d", cfg.Server.Host, cfg.Server.Port)

	tgBot, err := bot.New(cfg.Telegram, eng, sugar)
	if err != nil {
		sugar.Fatalf("Failed to start Telegram bot: %v", err)
	}
	go tgBot.Run(ctx)

	// Wait for termination signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorf("API server shutdown error: %v", err)
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			sugar.Errorf("MongoDB disconnect error: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			sugar.Errorf("Redis close error: %v", err)
		}
	}

	sugar.Info("Shutdown complete")
}

func connectRedis(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) *goredis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis journal disabled")
		return nil
	}
	client, err := redis.Connect(ctx, cfg.Redis.URI, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	return client
}

func connectMongo(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) *mongo.Client {
	if !cfg.MongoDB.Enabled {
		logger.Info("MongoDB archive disabled")
		return nil
	}
	client, err := mongodb.Connect(ctx, cfg.MongoDB.URI, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	return client
}
