package router

import (
	"asset-inventory/internal/assettag"
	"asset-inventory/internal/config"
	"asset-inventory/internal/handler"
	"asset-inventory/internal/logging"
	"asset-inventory/internal/middleware"
	"asset-inventory/internal/session"
	"asset-inventory/internal/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the process-wide collaborators the routes are built from.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Sessions *session.Store
	Log      logging.Logger
}

// SetupRouter configures the Gin engine, templates, static files and routes.
// Every route sits behind SessionGate; the gate's allow-list decides which
// ones are reachable without a session.
func SetupRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()

	gate := middleware.DefaultGateConfig()
	gate.CookieName = cfg.Session.CookieName
	gate.LoginPath = cfg.App.LoginPath
	gate.LandingPath = cfg.App.LandingPath

	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(d.Log),
		middleware.SessionGate(d.Sessions, gate, d.Log),
	)

	// static files and templates
	r.SetHTMLTemplate(web.Templates())
	r.StaticFS("/static", web.Static())

	// ====== 页面 ======
	r.GET(cfg.App.LoginPath, handler.LoginPage)
	r.GET("/", handler.Page("index.html", "Dashboard"))
	r.GET("/assets", handler.Page("assets.html", "Assets"))
	r.GET("/categories", handler.Page("categories.html", "Categories"))

	// ====== API ======
	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(d.DB, d.Sessions, handler.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Production(),
		MaxAge: d.Sessions.TTL(),
	}, d.Log)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/session", authHandler.Session)

	api.GET("/me", handler.GetMe)
	api.POST("/profile", handler.UpdateProfile(d.DB))
	api.POST("/profile/password", authHandler.ChangePassword)

	categoryHandler := handler.NewCategoryHandler(d.DB, assettag.NewSequencer(d.DB, d.Log))
	api.GET("/categories", categoryHandler.ListCategories)
	api.POST("/categories", categoryHandler.CreateCategory)
	api.GET("/categories/:id/suggest", categoryHandler.SuggestAssetTag)

	assetHandler := handler.NewAssetHandler(d.DB)
	api.GET("/assets", assetHandler.ListAssets)
	api.POST("/assets", assetHandler.CreateAsset)

	exportHandler := handler.NewExportHandler(d.DB)
	api.GET("/assets/export/csv", exportHandler.ExportCSV)
	api.GET("/assets/export/xlsx", exportHandler.ExportXLSX)

	return r
}
