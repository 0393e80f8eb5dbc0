package router

import (
	"time"

	"tienda/internal/auth"
	"tienda/internal/config"
	"tienda/internal/handler"
	"tienda/internal/metrics"
	"tienda/internal/middleware"
	"tienda/internal/repository"
	"tienda/internal/service"
	"tienda/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
//
// Route paths are a published contract — existing clients depend on them, so
// they carry no version prefix.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	collector := metrics.NewCollector()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Latency(collector))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpireMin)
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(usuarioRepo, tokens)
	catalogoSvc := service.NewCatalogoService(productoRepo)
	compraSvc := service.NewCompraService(compraRepo, productoRepo)
	reporteSvc := service.NewReporteService(compraRepo)
	resetSvc := service.NewResetService(usuarioRepo, resetRepo, dispatcher, cfg.ResetTokenTTLMin)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(catalogoSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	resetH := handler.NewResetHandler(resetSvc)

	loginLimiter := middleware.NewLoginLimiter(
		cfg.LoginRateLimit,
		time.Duration(cfg.LoginRateWindowMin)*time.Minute,
	)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/stats", handler.Stats(collector))

	// Catalog
	r.GET("/categorias", productosH.Categorias)
	r.GET("/productos", productosH.Listar)
	r.GET("/productos/:id", productosH.ObtenerPorID)

	// Purchases
	r.POST("/compras", comprasH.Comprar)
	r.POST("/checkout", comprasH.Checkout)

	// Accounts
	r.POST("/register", authH.Register)
	r.POST("/login", loginLimiter.Middleware(), authH.Login)
	r.POST("/request-password-reset", resetH.RequestReset)
	r.POST("/reset-password", resetH.ResetPassword)

	// Protected
	jwtMW := middleware.JWTAuth(tokens)
	r.GET("/me", jwtMW, authH.Me)

	admin := r.Group("/admin", jwtMW, middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/ventas/resumen", reportesH.Resumen)
		admin.GET("/ventas/serie", reportesH.Serie)
		admin.GET("/ventas.csv", reportesH.ExportCSV)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
