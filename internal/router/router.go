package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"paraisopos/internal/config"
	"paraisopos/internal/handler"
	"paraisopos/internal/middleware"
	"paraisopos/internal/repository"
	"paraisopos/internal/service"
	"paraisopos/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(usuarioRepo, cfg)
	cajaSvc := service.NewCajaService(cajaRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, cajaRepo, cfg, dispatcher)
	checkoutSvc := service.NewCheckoutService(productoRepo, ventaSvc, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	carritoH := handler.NewCarritoHandler(checkoutSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	preciosH := handler.NewPreciosHandler(checkoutSvc)
	healthH := handler.NewHealthHandler(db, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", healthH.Check)

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check kiosk — no auth required
	r.GET("/v1/precio/:codigo", preciosH.Consultar)

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	vendedor := middleware.RequireRole("vendedor", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		carrito := v1.Group("/carrito", vendedor)
		{
			carrito.GET("", carritoH.Ver)
			carrito.DELETE("", carritoH.Vaciar)
			carrito.POST("/escanear", carritoH.Escanear)
			carrito.POST("/combo/escanear", carritoH.EscanearCombo)
			carrito.DELETE("/combo", carritoH.CancelarCombo)
			carrito.PATCH("/items/:idx", carritoH.CambiarCantidad)
			carrito.DELETE("/items/:idx", carritoH.EliminarLinea)
			carrito.POST("/pagos", carritoH.AgregarPago)
			carrito.DELETE("/pagos", carritoH.ReiniciarPagos)
			carrito.POST("/finalizar", carritoH.Finalizar)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.GET("", vendedor, ventasH.Listar)
			ventas.GET("/:id", vendedor, ventasH.Obtener)
			ventas.GET("/:id/ticket", vendedor, ventasH.Ticket)
			ventas.POST("/interna", admin, ventasH.Interna)
		}

		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", vendedor, cajaH.Abrir)
			caja.GET("/estado", vendedor, cajaH.Estado)
			caja.POST("/movimiento", vendedor, cajaH.Movimiento)
			caja.POST("/cerrar", vendedor, cajaH.Cerrar)
			caja.GET("/historial", admin, cajaH.Historial)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
