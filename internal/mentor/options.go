package mentor

import (
	"fmt"
	"time"

	"github.com/kart-io/logger/option"
	"github.com/spf13/pflag"

	"github.com/kart-io/mentor-ai/internal/mentor/biz"
	"github.com/kart-io/mentor-ai/pkg/component/milvus"
	"github.com/kart-io/mentor-ai/pkg/component/postgres"
	"github.com/kart-io/mentor-ai/pkg/component/redis"
)

// Options contains all mentor service options.
type Options struct {
	// HTTP contains the HTTP server configuration.
	HTTP *HTTPOptions `json:"http" mapstructure:"http"`

	// Log contains logger configuration.
	Log *option.LogOption `json:"log" mapstructure:"log"`

	// Postgres contains the relational store configuration.
	Postgres *postgres.Options `json:"postgres" mapstructure:"postgres"`

	// Redis contains the answer cache backend configuration.
	Redis *redis.Options `json:"redis" mapstructure:"redis"`

	// Milvus contains the vector index configuration.
	Milvus *milvus.Options `json:"milvus" mapstructure:"milvus"`

	// Embedding contains the embedding provider configuration.
	Embedding *ProviderOptions `json:"embedding" mapstructure:"embedding"`

	// Chat contains the chat provider configuration.
	Chat *ProviderOptions `json:"chat" mapstructure:"chat"`

	// Transcript contains the transcript API configuration.
	Transcript *TranscriptOptions `json:"transcript" mapstructure:"transcript"`

	// Ingest contains the video processing pipeline configuration.
	Ingest *IngestOptions `json:"ingest" mapstructure:"ingest"`

	// Cache contains the chat answer cache configuration.
	Cache *CacheOptions `json:"cache" mapstructure:"cache"`
}

// HTTPOptions configures the HTTP server.
type HTTPOptions struct {
	// Addr is the listen address.
	Addr string `json:"addr" mapstructure:"addr"`

	// Mode is the gin mode (debug, release, test).
	Mode string `json:"mode" mapstructure:"mode"`

	// ReadTimeout bounds reading a request.
	ReadTimeout time.Duration `json:"read-timeout" mapstructure:"read-timeout"`

	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration `json:"write-timeout" mapstructure:"write-timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewHTTPOptions returns default HTTP server options.
func NewHTTPOptions() *HTTPOptions {
	return &HTTPOptions{
		Addr:            ":8080",
		Mode:            "release",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    5 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ProviderOptions configures one LLM provider.
type ProviderOptions struct {
	// Provider is the provider name (ollama, openai).
	Provider string `json:"provider" mapstructure:"provider"`

	// BaseURL is the API base URL.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// APIKey is the API key, required for openai.
	APIKey string `json:"-" mapstructure:"api-key"`

	// Model is the model name.
	Model string `json:"model" mapstructure:"model"`

	// Timeout bounds one provider request.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries is the transport-level retry budget.
	MaxRetries int `json:"max-retries" mapstructure:"max-retries"`
}

// NewProviderOptions returns default provider options.
func NewProviderOptions() *ProviderOptions {
	return &ProviderOptions{
		Provider:   "ollama",
		BaseURL:    "http://localhost:11434",
		Timeout:    120 * time.Second,
		MaxRetries: 3,
	}
}

// ToConfigMap converts the options to the map shape the provider factories
// consume.
func (o *ProviderOptions) ToConfigMap() map[string]any {
	return map[string]any{
		"base_url":    o.BaseURL,
		"api_key":     o.APIKey,
		"embed_model": o.Model,
		"chat_model":  o.Model,
		"timeout":     o.Timeout,
		"max_retries": o.MaxRetries,
	}
}

// TranscriptOptions configures the transcript API client.
type TranscriptOptions struct {
	// BaseURL is the transcript API base URL.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// APIKey authenticates against the transcript API.
	APIKey string `json:"-" mapstructure:"api-key"`

	// Timeout bounds one transcript fetch.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries is the transport-level retry budget.
	MaxRetries int `json:"max-retries" mapstructure:"max-retries"`
}

// NewTranscriptOptions returns default transcript options.
func NewTranscriptOptions() *TranscriptOptions {
	return &TranscriptOptions{
		BaseURL:    "http://localhost:8500",
		Timeout:    60 * time.Second,
		MaxRetries: 3,
	}
}

// IngestOptions configures the video processing pipeline.
type IngestOptions struct {
	// ChunkSizeWords is the chunk window size in words.
	ChunkSizeWords int `json:"chunk-size-words" mapstructure:"chunk-size-words"`

	// OverlapWords is the word overlap between consecutive chunks.
	OverlapWords int `json:"overlap-words" mapstructure:"overlap-words"`

	// EmbeddingDim is the embedding vector dimension.
	EmbeddingDim int `json:"embedding-dim" mapstructure:"embedding-dim"`

	// Workers is the number of videos processed concurrently.
	Workers int `json:"workers" mapstructure:"workers"`

	// MaxRetries is the per-video retry budget for provider failures.
	MaxRetries int `json:"max-retries" mapstructure:"max-retries"`

	// RetryBackoff is the base retry delay; it doubles per attempt.
	RetryBackoff time.Duration `json:"retry-backoff" mapstructure:"retry-backoff"`

	// JobTimeout bounds one processing attempt.
	JobTimeout time.Duration `json:"job-timeout" mapstructure:"job-timeout"`
}

// NewIngestOptions returns default ingest options.
func NewIngestOptions() *IngestOptions {
	return &IngestOptions{
		ChunkSizeWords: biz.DefaultChunkSizeWords,
		OverlapWords:   biz.DefaultOverlapWords,
		EmbeddingDim:   768, // nomic-embed-text dimension
		Workers:        4,
		MaxRetries:     3,
		RetryBackoff:   2 * time.Second,
		JobTimeout:     10 * time.Minute,
	}
}

// CacheOptions configures the chat answer cache.
type CacheOptions struct {
	// Enabled turns the answer cache on.
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// TTL is the cache entry lifetime.
	TTL time.Duration `json:"ttl" mapstructure:"ttl"`
}

// NewCacheOptions returns default cache options.
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		Enabled: true,
		TTL:     time.Hour,
	}
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	embedding := NewProviderOptions()
	embedding.Model = "nomic-embed-text"

	chat := NewProviderOptions()
	chat.Model = "llama3.1:8b"

	return &Options{
		HTTP:       NewHTTPOptions(),
		Log:        option.DefaultLogOption(),
		Postgres:   postgres.NewOptions(),
		Redis:      redis.NewOptions(),
		Milvus:     milvus.NewOptions(),
		Embedding:  embedding,
		Chat:       chat,
		Transcript: NewTranscriptOptions(),
		Ingest:     NewIngestOptions(),
		Cache:      NewCacheOptions(),
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.HTTP.Addr, "http.addr", o.HTTP.Addr, "HTTP listen address")
	fs.StringVar(&o.HTTP.Mode, "http.mode", o.HTTP.Mode, "Gin mode (debug, release, test)")
	fs.DurationVar(&o.HTTP.ReadTimeout, "http.read-timeout", o.HTTP.ReadTimeout, "HTTP read timeout")
	fs.DurationVar(&o.HTTP.WriteTimeout, "http.write-timeout", o.HTTP.WriteTimeout, "HTTP write timeout")
	fs.DurationVar(&o.HTTP.ShutdownTimeout, "http.shutdown-timeout", o.HTTP.ShutdownTimeout, "HTTP graceful shutdown timeout")

	fs.StringVar(&o.Log.Engine, "log.engine", o.Log.Engine, "Logging engine (zap, slog)")
	fs.StringVar(&o.Log.Level, "log.level", o.Log.Level, "Log level (DEBUG, INFO, WARN, ERROR)")
	fs.StringVar(&o.Log.Format, "log.format", o.Log.Format, "Log format (json, console)")
	fs.StringSliceVar(&o.Log.OutputPaths, "log.output-paths", o.Log.OutputPaths, "Log output paths")
	fs.BoolVar(&o.Log.Development, "log.development", o.Log.Development, "Enable development logging mode")

	o.Postgres.AddFlags(fs, "postgres.")
	o.Redis.AddFlags(fs, "redis.")
	o.Milvus.AddFlags(fs, "milvus.")

	o.addProviderFlags(fs, "embedding.", o.Embedding)
	o.addProviderFlags(fs, "chat.", o.Chat)

	fs.StringVar(&o.Transcript.BaseURL, "transcript.base-url", o.Transcript.BaseURL, "Transcript API base URL")
	fs.StringVar(&o.Transcript.APIKey, "transcript.api-key", o.Transcript.APIKey, "Transcript API key")
	fs.DurationVar(&o.Transcript.Timeout, "transcript.timeout", o.Transcript.Timeout, "Transcript request timeout")
	fs.IntVar(&o.Transcript.MaxRetries, "transcript.max-retries", o.Transcript.MaxRetries, "Transcript transport retries")

	fs.IntVar(&o.Ingest.ChunkSizeWords, "ingest.chunk-size-words", o.Ingest.ChunkSizeWords, "Chunk window size in words")
	fs.IntVar(&o.Ingest.OverlapWords, "ingest.overlap-words", o.Ingest.OverlapWords, "Word overlap between chunks")
	fs.IntVar(&o.Ingest.EmbeddingDim, "ingest.embedding-dim", o.Ingest.EmbeddingDim, "Embedding vector dimension")
	fs.IntVar(&o.Ingest.Workers, "ingest.workers", o.Ingest.Workers, "Concurrent video processing workers")
	fs.IntVar(&o.Ingest.MaxRetries, "ingest.max-retries", o.Ingest.MaxRetries, "Retry budget for provider failures")
	fs.DurationVar(&o.Ingest.RetryBackoff, "ingest.retry-backoff", o.Ingest.RetryBackoff, "Base retry backoff")
	fs.DurationVar(&o.Ingest.JobTimeout, "ingest.job-timeout", o.Ingest.JobTimeout, "Per-attempt processing timeout")

	fs.BoolVar(&o.Cache.Enabled, "cache.enabled", o.Cache.Enabled, "Enable the chat answer cache")
	fs.DurationVar(&o.Cache.TTL, "cache.ttl", o.Cache.TTL, "Chat answer cache TTL")
}

func (o *Options) addProviderFlags(fs *pflag.FlagSet, prefix string, opts *ProviderOptions) {
	fs.StringVar(&opts.Provider, prefix+"provider", opts.Provider, "Provider name (ollama, openai)")
	fs.StringVar(&opts.BaseURL, prefix+"base-url", opts.BaseURL, "Provider API base URL")
	fs.StringVar(&opts.APIKey, prefix+"api-key", opts.APIKey, "Provider API key (for openai)")
	fs.StringVar(&opts.Model, prefix+"model", opts.Model, "Model name")
	fs.DurationVar(&opts.Timeout, prefix+"timeout", opts.Timeout, "Provider request timeout")
	fs.IntVar(&opts.MaxRetries, prefix+"max-retries", opts.MaxRetries, "Provider transport retries")
}

// Validate validates the options.
func (o *Options) Validate() error {
	if err := o.Log.Validate(); err != nil {
		return err
	}
	if err := o.Postgres.Validate(); err != nil {
		return err
	}
	if err := o.Redis.Validate(); err != nil {
		return err
	}
	if err := o.Milvus.Validate(); err != nil {
		return err
	}
	if o.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if err := o.validateProvider(o.Embedding, "embedding"); err != nil {
		return err
	}
	if err := o.validateProvider(o.Chat, "chat"); err != nil {
		return err
	}
	if o.Transcript.BaseURL == "" {
		return fmt.Errorf("transcript.base-url is required")
	}
	if o.Ingest.ChunkSizeWords <= 0 {
		return fmt.Errorf("ingest.chunk-size-words must be positive")
	}
	if o.Ingest.OverlapWords < 0 || o.Ingest.OverlapWords >= o.Ingest.ChunkSizeWords {
		return fmt.Errorf("ingest.overlap-words must be in [0, chunk-size-words)")
	}
	if o.Ingest.EmbeddingDim <= 0 {
		return fmt.Errorf("ingest.embedding-dim must be positive")
	}
	if o.Ingest.Workers <= 0 {
		return fmt.Errorf("ingest.workers must be positive")
	}
	return nil
}

func (o *Options) validateProvider(opts *ProviderOptions, prefix string) error {
	if opts.Provider == "" {
		return fmt.Errorf("%s.provider is required", prefix)
	}
	if opts.BaseURL == "" {
		return fmt.Errorf("%s.base-url is required", prefix)
	}
	if opts.Model == "" {
		return fmt.Errorf("%s.model is required", prefix)
	}
	if opts.Provider == "openai" && opts.APIKey == "" {
		return fmt.Errorf("%s.api-key is required for openai provider", prefix)
	}
	if opts.Timeout <= 0 {
		return fmt.Errorf("%s.timeout must be positive", prefix)
	}
	return nil
}

// Complete completes the options.
func (o *Options) Complete() error {
	if err := o.Postgres.Complete(); err != nil {
		return err
	}
	if err := o.Redis.Complete(); err != nil {
		return err
	}
	return o.Milvus.Complete()
}
