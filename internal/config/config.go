package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/resumesavvy/interview-agent/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	RAGConnectorCfg RAGConnectorConfig `envPrefix:"RAG_"`
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`
	ASRConnectorCfg ASRConnectorConfig `envPrefix:"ASR_"`

	// Wizard configuration (client side)
	BackendCfg   BackendConnectorConfig `envPrefix:"BACKEND_"`
	InterviewCfg InterviewConfig        `envPrefix:"INTERVIEW_"`
	CaptureCfg   CaptureConfig          `envPrefix:"CAPTURE_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Extraction state cache
	SessionCacheTTL   time.Duration `env:"SESSION_CACHE_TTL" envDefault:"2h"`
	SessionCacheSweep time.Duration `env:"SESSION_CACHE_SWEEP" envDefault:"10m"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Environment (set from flag, not from env var)
	Environment string
}

type RAGConnectorConfig struct {
	HTTPClientConfig
	IndexEndpoint   string               `env:"INDEX_ENDPOINT,notEmpty"`
	ContextEndpoint string               `env:"CONTEXT_ENDPOINT,notEmpty"`
	Retry           pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	QuestionsEndpoint   string               `env:"QUESTIONS_ENDPOINT,notEmpty"`
	HRQuestionsEndpoint string               `env:"HR_QUESTIONS_ENDPOINT,notEmpty"`
	EvaluateEndpoint    string               `env:"EVALUATE_ENDPOINT,notEmpty"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type ASRConnectorConfig struct {
	HTTPClientConfig
	TranscribeEndpoint string               `env:"TRANSCRIBE_ENDPOINT,notEmpty"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// BackendConnectorConfig points the wizard at the interview-agent backend.
// Endpoints are fixed paths of our own API, so only the base URL is needed.
type BackendConnectorConfig struct {
	HTTPClientConfig
}

// InterviewConfig parameterizes the wizard's question request.
type InterviewConfig struct {
	CandidateName string `env:"CANDIDATE_NAME" envDefault:"Candidate"`
	Role          string `env:"ROLE" envDefault:"Full Stack Developer"`
	CountRole     int    `env:"COUNT_ROLE" envDefault:"7"`
	CountResume   int    `env:"COUNT_RESUME" envDefault:"8"`
	HRCount       int    `env:"HR_COUNT" envDefault:"5"`
}

// CaptureConfig describes the speech capture transports.
type CaptureConfig struct {
	// Command starting the local recognition engine; empty means the native
	// transport is unavailable and capture falls back to the socket relay.
	RecognizerCommand string        `env:"RECOGNIZER_COMMAND"`
	Language          string        `env:"LANGUAGE" envDefault:"en-US"`
	ChunkInterval     time.Duration `env:"CHUNK_INTERVAL" envDefault:"250ms"`
	MicrophoneCommand string        `env:"MICROPHONE_COMMAND" envDefault:"arecord -f S16_LE -r 16000 -c 1 -t raw -q"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT,notEmpty"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT,notEmpty"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE,notEmpty"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT,notEmpty"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT,notEmpty"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// FileUploadConfig holds upload limits
type FileUploadConfig struct {
	MaxResumeSize     int64 `env:"MAX_RESUME_SIZE" envDefault:"5242880"`      // 5 MiB
	MaxAudioChunkSize int64 `env:"MAX_AUDIO_CHUNK_SIZE" envDefault:"1048576"` // 1 MiB per relayed chunk
	MaxUploadSize     int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`     // 32 MiB multipart memory
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}

	if cfg.InterviewCfg.CountRole < 0 || cfg.InterviewCfg.CountResume < 0 {
		return fmt.Errorf("question counts must not be negative")
	}

	if cfg.InterviewCfg.CountRole+cfg.InterviewCfg.CountResume == 0 {
		return fmt.Errorf("at least one technical question must be requested")
	}

	if cfg.CaptureCfg.ChunkInterval <= 0 {
		return fmt.Errorf("CAPTURE_CHUNK_INTERVAL must be positive, got %s", cfg.CaptureCfg.ChunkInterval)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
