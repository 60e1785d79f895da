package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/proofdesk/portal/internal/config"
	"github.com/proofdesk/portal/internal/db"
	"github.com/proofdesk/portal/internal/repository"
	"github.com/proofdesk/portal/internal/service"
	"github.com/proofdesk/portal/internal/storage"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	ReconcilerService *service.ReconcilerService
	ArtworkService    *service.ArtworkService
	ApprovalService   *service.ApprovalService
	ThreadService     *service.ThreadService
	NotifyService     *service.NotifyService
	ActivityService   *service.ActivityService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	artworkRepository := repository.NewArtworkRepository(database)
	commentRepository := repository.NewCommentRepository(database)
	orderRepository := repository.NewOrderRepository(database)
	quoteRepository := repository.NewQuoteRepository(database)
	savedItemRepository := repository.NewSavedItemRepository(database)
	documentRepository := repository.NewDocumentRepository(database)
	activityRepository := repository.NewActivityRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	notifyService := service.NewNotifyService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.StaffInboxEmail,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	activityService := service.NewActivityService(activityRepository)
	artworkService := service.NewArtworkService(artworkRepository, fileStorage, activityService)
	approvalService := service.NewApprovalService(artworkRepository, notifyService, activityService)
	threadService := service.NewThreadService(commentRepository, artworkRepository, fileStorage, notifyService, activityService)
	reconcilerService := service.NewReconcilerService(
		artworkRepository,
		orderRepository,
		quoteRepository,
		savedItemRepository,
		documentRepository,
	)

	return &App{
		Cfg:               cfg,
		DB:                database,
		ReconcilerService: reconcilerService,
		ArtworkService:    artworkService,
		ApprovalService:   approvalService,
		ThreadService:     threadService,
		NotifyService:     notifyService,
		ActivityService:   activityService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
