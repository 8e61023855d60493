package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jsench/Project-Wheatley/src/config"
	"github.com/jsench/Project-Wheatley/src/middleware"
	"github.com/jsench/Project-Wheatley/src/services"
	"github.com/jsench/Project-Wheatley/src/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services bundles every service the HTTP surface needs.
type Services struct {
	Catalog     *services.CatalogService
	Search      *services.SearchService
	Export      *services.ExportService
	Autofill    *services.AutofillService
	StaticPages *services.StaticPageService
	Users       *services.UserService
	Import      *services.ImportService
}

func NewServices(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *Services {
	drive := utils.NewDriveDownloader(cfg.DriveCredentialsPath, cfg.DriveCredentialsJSON, logger)
	return &Services{
		Catalog:     services.NewCatalogService(db),
		Search:      services.NewSearchService(db, cfg),
		Export:      services.NewExportService(db),
		Autofill:    services.NewAutofillService(db, cfg),
		StaticPages: services.NewStaticPageService(db, services.NewStatsService(db)),
		Users:       services.NewUserService(db, cfg.TokenTTL),
		Import:      services.NewImportService(db, drive, logger),
	}
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg *config.Config, logger *zap.Logger, s *Services) *gin.Engine {
	gin.SetMode(cfg.Mode)
	middleware.SetSecretKey(cfg.JWTSecret)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.SetupCORS(cfg.AllowOrigins))

	SetupCatalogRoutes(router, s.Catalog)
	SetupSearchRoutes(router, s.Search)
	SetupExportRoutes(router, s.Export)
	SetupAutofillRoutes(router, s.Autofill)
	SetupStaticPageRoutes(router, s.StaticPages)
	SetupUserRoutes(router, s.Users)
	SetupImportRoutes(router, s.Import, s.Users)
	return router
}
