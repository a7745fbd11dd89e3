package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/vorapat/event-registry-api/internal/config"
	"github.com/vorapat/event-registry-api/internal/handler"
	"github.com/vorapat/event-registry-api/internal/repository"
	"github.com/vorapat/event-registry-api/internal/usecase"
	"github.com/vorapat/event-registry-api/pkg/auth"
	"github.com/vorapat/event-registry-api/pkg/mailer"
	"github.com/vorapat/event-registry-api/pkg/validate"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.New(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	userTokenRepo := repository.NewUserTokenMongoRepository(ctx, &logger, db)
	eventRepo := repository.NewEventMongoRepository(db)
	attendeeRepo := repository.NewEventAttendeeMongoRepository(db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	mail := mailer.NewMailer(&logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, attendeeRepo, userTokenRepo, jwtAuth, mail, cfg)
	accountUsecase := usecase.NewAccountUsecase(userRepo, userTokenRepo, mail, cfg)
	attendeeUsecase := usecase.NewAttendeeUsecase(attendeeRepo)
	eventUsecase := usecase.NewEventUsecase(eventRepo)

	validator, err := validate.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	router := handler.NewRouter(
		&logger,
		cfg,
		jwtAuth,
		handler.NewAuthHandler(authUsecase, accountUsecase, validator, &logger),
		handler.NewAttendeeHandler(attendeeUsecase, &logger),
		handler.NewEventHandler(eventUsecase, &logger),
	)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
	}

	logger.Info().Msg("server exited")
}
