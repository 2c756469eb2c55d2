package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/candidates"
	"skillbridge-backend/internal/directory"
	"skillbridge-backend/internal/matching"
	"skillbridge-backend/internal/reports"
	"skillbridge-backend/internal/shared/config"
	"skillbridge-backend/internal/shared/server"
	"skillbridge-backend/internal/shared/storage/db"
	"skillbridge-backend/internal/students"
)

// App holds shared dependencies and the fully wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	StudentsRepo students.Repo

	StudentsService  *students.Service
	DetailService    *candidates.Service
	DirectoryService *directory.Service
	MatchingService  *matching.Service
	ReportsService   *reports.Service

	StudentsHandler  *students.Handler
	DirectoryHandler *directory.Handler
	MatchingHandler  *matching.Handler
	ReportsHandler   *reports.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		StudentsHandler:  app.StudentsHandler,
		DirectoryHandler: app.DirectoryHandler,
		MatchingHandler:  app.MatchingHandler,
		ReportsHandler:   app.ReportsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildServices(app *App) {
	var repo students.Repo
	if app.DB != nil {
		repo = &students.PGRepo{DB: app.DB}
	} else {
		repo = students.NewMemoryRepo()
	}
	agg := candidates.NewAggregator(repo)
	timeout := app.Config.StudentQueryTimeout

	app.StudentsRepo = repo
	app.StudentsService = students.NewService(repo, timeout)
	app.DetailService = candidates.NewService(agg, timeout)
	app.DirectoryService = directory.NewService(repo, agg, timeout)
	app.MatchingService = matching.NewService(repo, agg, app.Config.JuniorBatchYear, timeout)
	app.ReportsService = reports.NewService(repo, timeout)

	app.StudentsHandler = students.NewHandler(app.StudentsService)
	app.DirectoryHandler = directory.NewHandler(app.DirectoryService)
	app.MatchingHandler = matching.NewHandler(app.MatchingService, app.DetailService)
	app.ReportsHandler = reports.NewHandler(app.ReportsService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
