// Package mentor provides the mentor chat service application.
package mentor

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
	"github.com/kart-io/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kart-io/mentor-ai/internal/mentor/biz"
	"github.com/kart-io/mentor-ai/internal/mentor/handler"
	"github.com/kart-io/mentor-ai/internal/mentor/router"
	"github.com/kart-io/mentor-ai/internal/mentor/store"
	"github.com/kart-io/mentor-ai/internal/pkg/transcript"
	"github.com/kart-io/mentor-ai/pkg/component/milvus"
	"github.com/kart-io/mentor-ai/pkg/component/postgres"
	"github.com/kart-io/mentor-ai/pkg/component/redis"
	"github.com/kart-io/mentor-ai/pkg/llm"

	// Register LLM providers.
	_ "github.com/kart-io/mentor-ai/pkg/llm/ollama"
	_ "github.com/kart-io/mentor-ai/pkg/llm/openai"
)

const (
	appName        = "mentor-ai"
	appDescription = `MentorAI Service

A retrieval-augmented mentor chat service.

This server provides:
  - Mentor persona management
  - Video transcript ingestion with vector embeddings
  - Persona-grounded chat with semantic retrieval`
)

// NewApp creates the root command for the mentor service.
func NewApp() *cobra.Command {
	opts := NewOptions()

	cmd := &cobra.Command{
		Use:          appName,
		Short:        "MentorAI retrieval-augmented chat service",
		Long:         appDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version.PrintAndExitIfRequested()

			if err := loadConfig(cmd, opts); err != nil {
				return err
			}
			if err := opts.Complete(); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			return Run(opts)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.Flags().SortFlags = true

	cmd.PersistentFlags().StringP("config", "c", "", "Path to config file")
	version.AddFlags(cmd.PersistentFlags())
	opts.AddFlags(cmd.Flags())

	return cmd
}

// loadConfig loads configuration from file, environment, and flags. Changed
// flags keep precedence over the config file.
func loadConfig(cmd *cobra.Command, opts *Options) error {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(appName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(filepath.Join(os.Getenv("HOME"), "."+appName))
		viper.AddConfigPath("/etc/" + appName)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix(strings.ToUpper(strings.ReplaceAll(appName, "-", "_")))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	changedFlags := make(map[string]string)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			changedFlags[f.Name] = f.Value.String()
		}
	})

	if err := viper.Unmarshal(opts); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for name, val := range changedFlags {
		if err := cmd.Flags().Set(name, val); err != nil {
			return fmt.Errorf("failed to re-apply flag %s: %w", name, err)
		}
	}
	return nil
}

// Run runs the mentor service with the given options.
func Run(opts *Options) error {
	opts.Log.AddInitialField("service.name", appName)
	opts.Log.AddInitialField("service.version", version.Get().GitVersion)
	log, err := logger.New(opts.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetGlobal(log)
	logger.Info("Starting mentor service...")

	pgClient, err := postgres.New(opts.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize postgres: %w", err)
	}
	defer pgClient.Close()

	if err := store.AutoMigrate(pgClient.DB()); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	dataStore := store.NewStore(pgClient.DB())
	logger.Info("Relational store initialized")

	milvusClient, err := milvus.New(opts.Milvus)
	if err != nil {
		return fmt.Errorf("failed to initialize milvus: %w", err)
	}
	defer milvusClient.Close(context.Background())

	index := store.NewMilvusIndex(milvusClient)
	if err := index.EnsureCollection(context.Background(), opts.Ingest.EmbeddingDim); err != nil {
		return fmt.Errorf("failed to ensure vector collection: %w", err)
	}
	logger.Info("Vector index initialized")

	embedProvider, err := llm.NewProvider(opts.Embedding.Provider, opts.Embedding.ToConfigMap())
	if err != nil {
		return fmt.Errorf("failed to initialize embedding provider: %w", err)
	}
	chatProvider, err := llm.NewProvider(opts.Chat.Provider, opts.Chat.ToConfigMap())
	if err != nil {
		return fmt.Errorf("failed to initialize chat provider: %w", err)
	}
	logger.Infow("LLM providers initialized",
		"embedding", embedProvider.Name(), "chat", chatProvider.Name())

	var cache *biz.AnswerCache
	if opts.Cache.Enabled {
		redisClient, err := redis.New(opts.Redis)
		if err != nil {
			logger.Warnw("redis unavailable, running without answer cache", "error", err)
		} else {
			defer redisClient.Close()
			cache = biz.NewAnswerCache(redisClient.Client(), opts.Cache.TTL)
			logger.Info("Answer cache initialized")
		}
	}

	source := transcript.NewHTTPSource(
		opts.Transcript.BaseURL, opts.Transcript.APIKey,
		opts.Transcript.Timeout, opts.Transcript.MaxRetries)

	chunker, err := biz.NewTranscriptChunker(opts.Ingest.ChunkSizeWords, opts.Ingest.OverlapWords)
	if err != nil {
		return fmt.Errorf("invalid chunker configuration: %w", err)
	}
	embedder := biz.NewEmbedder(embedProvider)

	processor := biz.NewProcessor(
		dataStore.Videos(), dataStore.Chunks(), index, source, embedder, chunker)
	worker, err := biz.NewWorker(dataStore.Videos(), processor, &biz.WorkerConfig{
		PoolSize:   opts.Ingest.Workers,
		MaxRetries: opts.Ingest.MaxRetries,
		Backoff:    opts.Ingest.RetryBackoff,
		JobTimeout: opts.Ingest.JobTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize worker pool: %w", err)
	}
	defer worker.Shutdown()

	chatUsecase := biz.NewChatUsecase(
		dataStore.Mentors(), embedder, biz.NewRetriever(index), chatProvider, cache)

	h := handler.New(dataStore.Mentors(), dataStore.Videos(), index, chatUsecase, worker)

	gin.SetMode(opts.HTTP.Mode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	router.Register(engine, h)

	return serve(engine, opts.HTTP)
}

// serve runs the HTTP server until SIGINT/SIGTERM, then drains connections
// within the shutdown timeout.
func serve(engine *gin.Engine, opts *HTTPOptions) error {
	srv := &http.Server{
		Addr:         opts.Addr,
		Handler:      engine,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP server listening", "addr", opts.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-quit:
		logger.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
