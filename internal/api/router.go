// Package api wires the HTTP routes to their handlers.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/butlerian/directory/internal/auth"
	"github.com/butlerian/directory/internal/cache"
	"github.com/butlerian/directory/internal/events"
	"github.com/butlerian/directory/internal/handlers"
	"github.com/butlerian/directory/internal/logger"
	"github.com/butlerian/directory/internal/repository"
	"github.com/butlerian/directory/internal/sanitize"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Submissions        *repository.SubmissionRepository
	CompanySubmissions *repository.CompanySubmissionRepository
	Resources          *repository.ResourceRepository
	Companies          *repository.CompanyRepository
	News               *repository.NewsRepository
	Reports            *repository.ReportRepository

	Ingestor  handlers.FeedIngestor
	PageCache *cache.PageCache
	Publisher *events.Publisher

	JWTSecret string
	SiteURL   string

	Logger logger.Logger
}

// SetupRoutes registers every route on the engine. Admin writes sit behind
// the JWT middleware; intake, listings, the badge, and revalidation are
// public.
func SetupRoutes(router *gin.Engine, deps Deps) {
	sanitizer := sanitize.New()

	submissionHandler := handlers.NewSubmissionHandler(deps.Submissions, sanitizer, deps.Publisher, deps.Logger)
	companySubHandler := handlers.NewCompanySubmissionHandler(deps.CompanySubmissions, sanitizer, deps.Publisher, deps.Logger)
	resourceHandler := handlers.NewResourceHandler(deps.Resources, deps.Logger)
	companyHandler := handlers.NewCompanyHandler(deps.Companies, deps.PageCache, deps.Logger)
	newsHandler := handlers.NewNewsHandler(deps.News, deps.Ingestor, deps.PageCache, deps.Logger)
	reportHandler := handlers.NewReportHandler(deps.Reports, sanitizer, deps.Logger)
	badgeHandler := handlers.NewBadgeHandler(deps.SiteURL)
	revalidateHandler := handlers.NewRevalidateHandler(deps.PageCache, deps.Logger)

	router.GET("/badge", badgeHandler.Render)
	router.POST("/revalidate", revalidateHandler.Revalidate)

	v1 := router.Group("/api/v1")

	// Public intake and listings
	v1.POST("/submissions", submissionHandler.Create)
	v1.POST("/company-submissions", companySubHandler.Create)
	v1.GET("/resources", resourceHandler.ListPublic)
	v1.GET("/companies", companyHandler.List)
	v1.GET("/companies/:id", companyHandler.GetByID)
	v1.GET("/news", newsHandler.ListArticles)
	v1.POST("/reports", reportHandler.Create)

	// Admin surface
	admin := v1.Group("", auth.Middleware(deps.JWTSecret))

	admin.GET("/submissions", submissionHandler.List)
	admin.GET("/submissions/:id", submissionHandler.GetByID)
	admin.PATCH("/submissions/:id", submissionHandler.Moderate)
	admin.DELETE("/submissions/:id", submissionHandler.Delete)

	admin.GET("/company-submissions", companySubHandler.List)
	admin.GET("/company-submissions/:id", companySubHandler.GetByID)
	admin.PATCH("/company-submissions/:id", companySubHandler.Moderate)
	admin.DELETE("/company-submissions/:id", companySubHandler.Delete)

	admin.POST("/companies", companyHandler.Create)
	admin.PATCH("/companies/:id", companyHandler.Update)
	admin.DELETE("/companies/:id", companyHandler.Delete)

	admin.GET("/resources/all", resourceHandler.ListAdmin)
	admin.GET("/resources/:id", resourceHandler.GetByID)
	admin.POST("/resources", resourceHandler.Create)
	admin.PATCH("/resources/:id", resourceHandler.Update)
	admin.DELETE("/resources/:id", resourceHandler.Delete)

	admin.POST("/news/fetch", newsHandler.Fetch)
	admin.GET("/news/sources", newsHandler.ListSources)
	admin.GET("/news/sources/:id", newsHandler.GetSourceByID)
	admin.POST("/news/sources", newsHandler.CreateSource)
	admin.PATCH("/news/sources/:id", newsHandler.UpdateSource)
	admin.DELETE("/news/sources/:id", newsHandler.DeleteSource)
	admin.POST("/news/sources/import", newsHandler.ImportSources)

	admin.GET("/reports", reportHandler.List)
	admin.GET("/reports/:id", reportHandler.GetByID)
	admin.PATCH("/reports/:id", reportHandler.Triage)
}
