package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"social-service/internal/config"
	"social-service/internal/db"
	"social-service/internal/events"
	grpcsvc "social-service/internal/grpc"
	"social-service/internal/handlers"
	"social-service/internal/metrics"
	"social-service/internal/middleware"
	"social-service/internal/observability"
	"social-service/internal/rabbitmq"
	"social-service/internal/repositories"
	"social-service/internal/services"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	publisher := rabbitmq.NewNoopPublisher()
	if cfg.AMQPURL == "" {
		log.Printf("warning: AMQP_URL not set; event publishing disabled")
	} else {
		pub, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.EventsExchange, cfg.ServiceName)
		if err != nil {
			log.Printf("warning: failed to initialize RabbitMQ publisher: %v", err)
		} else {
			publisher = pub
		}
	}
	defer publisher.Close()

	observability.InitMetrics(prometheus.DefaultRegisterer)
	metrics.RegisterFriendMetrics()

	friendRepo := repositories.NewFriendRepository(database)
	userService := services.NewUserService(repositories.NewUserRepository(database), friendRepo, cfg.JWTSecret)
	friendService := services.NewFriendService(friendRepo, userService, events.NewEmitter(publisher, cfg.ServiceName, cfg.Environment))
	ratingService := services.NewRatingService(repositories.NewWineRepository(database), repositories.NewRatingRepository(database), userService)
	feedService := services.NewFeedService(friendRepo, ratingService.Ratings())

	if _, err := grpcsvc.StartGRPCServer(ctx, cfg.GRPCAddr, friendService); err != nil {
		log.Fatalf("failed to start gRPC server: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())
	handlers.RegisterRoutes(r, cfg.JWTSecret, handlers.Handlers{
		Users:   handlers.NewUserHandler(userService),
		Friends: handlers.NewFriendHandler(friendService, userService),
		Feed:    handlers.NewFeedHandler(feedService),
		Wines:   handlers.NewWineHandler(ratingService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("%s listening on :%s (gRPC %s)", cfg.ServiceName, cfg.HTTPPort, cfg.GRPCAddr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
}
