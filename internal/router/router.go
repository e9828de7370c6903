package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/config"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/handler"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/infra"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/middleware"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/repository"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/service"
	"github.com/gabrielpiriz/hackathon-nova-backend/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, advisor *infra.AdvisorClient) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productorRepo := repository.NewProductorRepository(db)
	tipoRepo := repository.NewTipoAnimalRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	precioRepo := repository.NewPrecioHistoricoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(productorRepo, rdb, cfg)
	tipoSvc := service.NewTipoAnimalService(tipoRepo, rdb)
	loteSvc := service.NewLoteService(loteRepo, ventaRepo, precioRepo, tipoRepo)
	ventaSvc := service.NewVentaService(ventaRepo, loteRepo, dispatcher)
	analisisSvc := service.NewAnalisisService(loteRepo, precioRepo, advisor, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	tiposH := handler.NewTiposAnimalHandler(tipoSvc)
	lotesH := handler.NewLotesHandler(loteSvc, analisisSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/status", handler.Status(advisor))
	api.GET("/animal-types", tiposH.Listar)
	api.POST("/register", authH.Registrar)
	api.POST("/login", middleware.LoginRateLimiter(), authH.Login)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, rdb)
	priv := api.Group("", jwtMW)
	{
		priv.POST("/logout", authH.Logout)
		priv.GET("/profile", authH.Perfil)

		priv.GET("/my-batches", lotesH.MisLotes)

		batches := priv.Group("/batches")
		{
			batches.GET("", lotesH.Listar)
			batches.POST("", lotesH.Crear)
			batches.POST("/analyze", lotesH.Analizar)
			batches.GET("/:id", lotesH.Obtener)
			batches.DELETE("/:id", lotesH.Eliminar)
			batches.PATCH("/:id/mark-as-sold", lotesH.MarcarVendido)
			batches.GET("/:id/sales", lotesH.Ventas)
			batches.GET("/:id/price-history", lotesH.ListarPrecios)
			batches.POST("/:id/price-history", lotesH.AgregarPrecio)
		}

		sales := priv.Group("/sales")
		{
			sales.GET("", ventasH.Listar)
			sales.POST("", ventasH.Crear)
			sales.GET("/statistics", ventasH.Estadisticas)
			sales.GET("/:id", ventasH.Obtener)
			sales.PUT("/:id", ventasH.Actualizar)
			sales.DELETE("/:id", ventasH.Eliminar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
