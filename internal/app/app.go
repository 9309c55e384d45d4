package app

import (
	"net/http"

	"gorm.io/gorm"

	"rental-app-go/internal/config"
	"rental-app-go/internal/db"
	"rental-app-go/internal/domain/application"
	"rental-app-go/internal/domain/lease"
	"rental-app-go/internal/domain/notification"
	"rental-app-go/internal/domain/occupancy"
	"rental-app-go/internal/domain/property"
	"rental-app-go/internal/domain/receipt"
	"rental-app-go/internal/domain/user"
	"rental-app-go/internal/notify"
	applicationrepo "rental-app-go/internal/repository/application"
	documentrepo "rental-app-go/internal/repository/document"
	"rental-app-go/internal/repository/inmemory"
	leaserepo "rental-app-go/internal/repository/lease"
	notificationrepo "rental-app-go/internal/repository/notification"
	occupancyrepo "rental-app-go/internal/repository/occupancy"
	propertyrepo "rental-app-go/internal/repository/property"
	receiptrepo "rental-app-go/internal/repository/receipt"
	userrepo "rental-app-go/internal/repository/user"
	"rental-app-go/internal/transport/httpserver"
	"rental-app-go/internal/transport/httpserver/handler"
	"rental-app-go/internal/transport/httpserver/middleware"
	"rental-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	userRepo := userrepo.NewPostgres(dbConn)
	users := user.NewService(userRepo)

	dispatcher := notify.NewDispatcher(
		notificationrepo.NewPostgres(dbConn),
		userRepo,
		notify.NewLogMailer(log),
		log,
	)

	properties := property.NewService(propertyrepo.NewPostgres(dbConn),
		property.WithCache(inmemory.NewPropertyCache(), cfg.Rental.PropertyCacheTTL))

	applications := application.NewService(applicationrepo.NewPostgres(dbConn), documentrepo.NewPostgres(dbConn),
		application.WithNotifier(dispatcher),
		application.WithCooldownDays(cfg.Rental.ApplicationCooldownDays))

	leases := lease.NewService(leaserepo.NewPostgres(dbConn),
		lease.WithNotifier(dispatcher),
		lease.WithBackfillPaidDay(cfg.Rental.BackfillPaidDay))

	occupants := occupancy.NewService(occupancyrepo.NewPostgres(dbConn),
		occupancy.WithNotifier(dispatcher),
		occupancy.WithMaxOccupants(cfg.Rental.MaxOccupants))

	receipts := receipt.NewService(receiptrepo.NewPostgres(dbConn),
		receipt.WithNotifier(dispatcher))

	notifications := notification.NewService(notificationrepo.NewPostgres(dbConn))

	handlers := handler.New(properties, users, applications, leases, occupants, receipts, notifications, log)
	auth := middleware.NewAuth(cfg.Auth, users, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, auth, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
