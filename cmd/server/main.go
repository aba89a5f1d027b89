package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/itakecare/offerflow/internal/application/service"
	appwf "github.com/itakecare/offerflow/internal/application/workflow"
	"github.com/itakecare/offerflow/internal/config"
	"github.com/itakecare/offerflow/internal/infrastructure/external/docgen"
	"github.com/itakecare/offerflow/internal/infrastructure/external/mail"
	"github.com/itakecare/offerflow/internal/infrastructure/persistence/repository"
	httpadapter "github.com/itakecare/offerflow/internal/interfaces/http"
	"github.com/itakecare/offerflow/migrations"
	"github.com/itakecare/offerflow/pkg/database"
	"github.com/itakecare/offerflow/pkg/utils"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
)

func main() {
	// Local overrides for SMTP credentials and the like
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting offer workflow service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(migrations.FS); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Documents.OutputDir, 0755); err != nil {
		logger.Fatal("Failed to create documents directory", zap.Error(err))
	}

	// Persistence
	offerRepo := repository.NewOfferRepository(db.DB, logger)
	auditRepo := repository.NewAuditRepository(db.DB, logger)
	templateRepo := repository.NewTemplateRepository(db.DB, logger)
	txManager := repository.NewTxManager(db.DB, logger)

	// External collaborators
	documents := docgen.NewDocumentGenerator(cfg.Documents.OutputDir, cfg.Documents.Issuer, logger)
	notifier := mail.NewSMTPNotifier(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password,
		cfg.SMTP.From, cfg.Documents.OutputDir, logger)

	// Application
	resolver := appwf.NewResolver(templateRepo, logger)
	engine := appwf.NewEngine(offerRepo, auditRepo, txManager, resolver, documents, documents, notifier, logger)

	kvLogger := utils.NewKVLogger(logger)
	offerService := service.NewOfferService(offerRepo, auditRepo, txManager, kvLogger)
	auditService := service.NewAuditService(auditRepo, offerRepo, kvLogger)
	templateService := service.NewTemplateService(templateRepo, kvLogger)

	server := httpadapter.NewServer(httpadapter.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, engine, offerService, auditService, templateService, kvLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
