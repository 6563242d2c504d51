package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/butlerian/directory/internal/api"
	"github.com/butlerian/directory/internal/cache"
	"github.com/butlerian/directory/internal/config"
	"github.com/butlerian/directory/internal/database"
	"github.com/butlerian/directory/internal/events"
	"github.com/butlerian/directory/internal/httpserver"
	"github.com/butlerian/directory/internal/ingest"
	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/repository"
)

// SetupHTTPServer creates and configures the HTTP server.
func SetupHTTPServer(
	cfg *config.Config,
	db *database.DB,
	publisher *events.Publisher,
	pageCache *cache.PageCache,
	log logger.Logger,
) *httpserver.Server {
	newsRepo := repository.NewNewsRepository(db.DB(), log)

	deps := api.Deps{
		Submissions:        repository.NewSubmissionRepository(db.DB(), log),
		CompanySubmissions: repository.NewCompanySubmissionRepository(db.DB(), log),
		Resources:          repository.NewResourceRepository(db.DB(), log),
		Companies:          repository.NewCompanyRepository(db.DB(), log),
		News:               newsRepo,
		Reports:            repository.NewReportRepository(db.DB(), log),

		Ingestor:  ingest.New(newsRepo, cfg.Ingest.FetchTimeout, cfg.Ingest.UserAgent, log),
		PageCache: pageCache,
		Publisher: publisher,

		JWTSecret: cfg.Auth.JWTSecret,
		SiteURL:   cfg.Site.URL,

		Logger: log,
	}

	serverCfg := &httpserver.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Debug:          cfg.Debug,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		ServiceName:    "directory",
		ServiceVersion: version,
	}

	return httpserver.NewServer(serverCfg, log, func(router *gin.Engine) {
		checks := map[string]httpserver.HealthChecker{
			"database": httpserver.DatabaseHealthChecker(db.DB().Ping),
		}
		httpserver.RegisterHealthRoutes(router, "directory", version, checks)

		api.SetupRoutes(router, deps)
	})
}
