package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"

	_ "address-normalizer/docs"
	"address-normalizer/internal/config"
	"address-normalizer/internal/disambiguate"
	"address-normalizer/internal/gazetteer"
	"address-normalizer/internal/handler"
	"address-normalizer/internal/loader"
	"address-normalizer/internal/middleware"
	"address-normalizer/internal/parser"
	"address-normalizer/internal/reading"
	"address-normalizer/internal/repository"
	"address-normalizer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Address Normalizer API
//	@version		1.0
//	@description	Decomposes free-form Japanese addresses into administrative tiers.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("log_level", config.LogLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	ctx := context.Background()

	// Gazetteer
	source, closeSource, err := openSource(ctx, config)
	if err != nil {
		log.Fatal().Err(err).Str("source", config.Gazetteer.Source).Msg("cannot open gazetteer source")
	}
	entries, err := source.LoadEntries(ctx)
	closeSource()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load gazetteer")
	}

	var opts []gazetteer.Option
	if config.Gazetteer.SkipMalformed {
		opts = append(opts, gazetteer.WithSkipMalformed(func(err error) {
			log.Warn().Err(err).Msg("skipping gazetteer record")
		}))
	}
	store, err := gazetteer.Build(slices.Values(entries), opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build gazetteer")
	}
	log.Info().
		Int("records", store.Len()).
		Int("prefectures", len(store.Prefectures())).
		Msg("gazetteer loaded")

	// Initialize layers
	table := disambiguate.DefaultTable().Merge(disambiguate.Table(config.Overrides))
	addressParser := parser.New(store, table)

	var annotator service.ReadingAnnotator
	if config.Reading.Enabled {
		a, err := reading.NewAnnotator()
		if err != nil {
			log.Fatal().Err(err).Msg("cannot create reading annotator")
		}
		annotator = a
	}

	addressService := service.NewAddressService(addressParser, annotator)

	addressHandler := handler.NewAddressHandler(addressService)
	municipalityHandler := handler.NewMunicipalityHandler(addressService)

	var limiter *middleware.ClientLimiter
	if config.RateLimit.RPS > 0 {
		limiter = middleware.NewClientLimiter(config.RateLimit.RPS, config.RateLimit.Burst)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log.Logger),
		middleware.Recovery(log.Logger),
		middleware.Compress(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"records": store.Len(),
		})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/", middleware.RateLimit(limiter))
	api.GET("/parse", addressHandler.Parse)
	api.GET("/cleanse", addressHandler.Cleanse)
	api.GET("/municipalities/:name/prefectures", municipalityHandler.Prefectures)

	log.Info().Str("address", config.ServerAddress).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// openSource returns the configured gazetteer feed and a func releasing its connection.
func openSource(ctx context.Context, cfg config.Config) (loader.Source, func(), error) {
	switch cfg.Gazetteer.Source {
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot connect to db: %w", err)
		}
		return repository.NewRepository(pool), pool.Close, nil
	case config.SourceSQLite:
		db, err := repository.OpenSQLite(cfg.Gazetteer.Path)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteRepository(db), func() { db.Close() }, nil
	default:
		return loader.NewCSVSource(cfg.Gazetteer.Path, cfg.Gazetteer.Encoding), func() {}, nil
	}
}
