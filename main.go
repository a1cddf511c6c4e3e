package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	api "github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx := context.Background()

	if path := os.Getenv("SSM_PARAMETER_PATH"); path != "" {
		if err := loadSSM(ctx, path); err != nil {
			fmt.Printf("Error loading SSM parameters: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	store, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening store")
	}
	defer store.Close()

	blobs, err := services.NewBlobStore(ctx, cfg.Upload)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing blob storage")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return store.Init(gctx)
	})
	if ensurer, ok := blobs.(services.BucketEnsurer); ok {
		g.Go(func() error {
			if err := ensurer.EnsureBucket(gctx); err != nil {
				log.Error().Err(err).Msg("Storage bucket check failed, uploads may not work")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Error initializing store")
	}
	log.Info().Str("store", cfg.StoreDriver).Str("uploads", cfg.Upload.Driver).Msg("Storage ready")

	if cfg.SeedDemoData {
		if _, err := database.SeedDemoProjects(ctx, store); err != nil {
			log.Error().Err(err).Msg("Error seeding demo data")
		}
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(cfg, store, blobs)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(shutdownTimeout)
}

func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// loadSSM exports Parameter Store values under path as environment variables.
func loadSSM(ctx context.Context, path string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}
	loaded, err := config.LoadSSMParameters(ctx, ssm.NewFromConfig(awsCfg), path)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d parameters from SSM\n", len(loaded))
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
