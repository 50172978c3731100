package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/resumesavvy/interview-agent/internal/api"
	interviewapi "github.com/resumesavvy/interview-agent/internal/api/interview"
	sttapi "github.com/resumesavvy/interview-agent/internal/api/stt"
	"github.com/resumesavvy/interview-agent/internal/capture"
	"github.com/resumesavvy/interview-agent/internal/config"
	"github.com/resumesavvy/interview-agent/internal/integration/asr"
	"github.com/resumesavvy/interview-agent/internal/integration/backend"
	"github.com/resumesavvy/interview-agent/internal/integration/llm"
	"github.com/resumesavvy/interview-agent/internal/integration/rag"
	"github.com/resumesavvy/interview-agent/internal/metrics"
	"github.com/resumesavvy/interview-agent/internal/pkg/validator"
	"github.com/resumesavvy/interview-agent/internal/repository"
	"github.com/resumesavvy/interview-agent/internal/usecase/interview"
	"github.com/resumesavvy/interview-agent/internal/wizard"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	sessionRepo := repository.NewSessionPostgres(db)
	questionRepo := repository.NewQuestionPostgres(db)
	answerRepo := repository.NewAnswerPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var ragConnector interview.RAGConnector
	var llmConnector interview.LLMConnector
	var asrConnector interview.ASRConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		ragConnector = rag.NewMockConnector(logger)
		llmConnector = llm.NewMockConnector(logger)
		asrConnector = asr.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		ragConnector = rag.NewConnector(cfg.RAGConnectorCfg, logger)
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
		asrConnector = asr.NewConnector(cfg.ASRConnectorCfg, logger)
	}

	// Initialize validators
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)
	logger.Info("Validators initialized")

	// Metrics registry
	m := metrics.New()

	// Initialize use case
	interviewUC := interview.NewUsecase(
		sessionRepo,
		questionRepo,
		answerRepo,
		ragConnector,
		llmConnector,
		asrConnector,
		cfg.SessionCacheTTL,
		cfg.SessionCacheSweep,
		m,
		logger,
	)
	logger.Info("Use case initialized")

	// Setup API handlers
	interviewHandler := interviewapi.NewHandler(interviewUC, fileValidator, m, cfg.FileUploadCfg.MaxUploadSize)
	sttHandler := sttapi.NewHandler(interviewUC, fileValidator, m)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(interviewHandler, sttHandler, m, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. The websocket relay hijacks its connection, so
	// these timeouts only govern the REST endpoints.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildWizard creates the candidate-facing interview wizard
func BuildWizard() (*wizard.Wizard, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building interview wizard",
		zap.String("environment", cfg.Environment),
		zap.String("backend", cfg.BackendCfg.Url),
	)

	backendConnector := backend.NewConnector(cfg.BackendCfg, logger)

	transport, err := capture.Select(cfg.CaptureCfg, backendConnector.BaseURL(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("select capture transport: %w", err)
	}

	w := wizard.New(backendConnector, transport, cfg.InterviewCfg, logger)

	logger.Info("Interview wizard built successfully")
	return w, logger, nil
}
