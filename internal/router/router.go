package router

import (
	"time"

	"clinicavet/internal/config"
	"clinicavet/internal/handler"
	"clinicavet/internal/middleware"
	"clinicavet/internal/repository"
	"clinicavet/internal/service"
	"clinicavet/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	propietarioRepo := repository.NewPropietarioRepository(db)
	mascotaRepo := repository.NewMascotaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	servicioRepo := repository.NewServicioRepository(db)
	caiRepo := repository.NewCAIRepository(db)
	facturaRepo := repository.NewFacturaRepository(db)
	citaRepo := repository.NewCitaRepository(db)
	movimientoRepo := repository.NewMovimientoStockRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	propietarioSvc := service.NewPropietarioService(propietarioRepo)
	mascotaSvc := service.NewMascotaService(mascotaRepo, propietarioRepo)
	productoSvc := service.NewProductoService(productoRepo, rdb)
	servicioSvc := service.NewServicioService(servicioRepo)
	caiSvc := service.NewCAIService(caiRepo)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoRepo)
	citaSvc := service.NewCitaService(citaRepo, mascotaRepo, usuarioRepo)
	facturaSvc := service.NewFacturaService(
		facturaRepo, propietarioRepo, mascotaRepo, servicioRepo, productoRepo,
		caiSvc, inventarioSvc, dispatcher,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	propietariosH := handler.NewPropietariosHandler(propietarioSvc)
	mascotasH := handler.NewMascotasHandler(mascotaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	serviciosH := handler.NewServiciosHandler(servicioSvc)
	caisH := handler.NewCAIsHandler(caiSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	citasH := handler.NewCitasHandler(citaSvc)
	facturasH := handler.NewFacturasHandler(facturaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth, cached in Redis
	r.GET("/v1/productos/:id/precio", productosH.ConsultarPrecio)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: recepcion, veterinario, administrador — declared per-endpoint
		todos := middleware.RequireRole("recepcion", "veterinario", "administrador")

		// Facturación — recepcion emits, administrador can also edit/delete
		v1.POST("/facturas", middleware.RequireRole("recepcion", "administrador"), facturasH.Crear)
		v1.GET("/facturas", todos, facturasH.Listar)
		v1.GET("/facturas/:id", todos, facturasH.Obtener)
		v1.PUT("/facturas/:id", middleware.RequireRole("recepcion", "administrador"), facturasH.Actualizar)
		v1.DELETE("/facturas/:id", middleware.RequireRole("administrador"), facturasH.Eliminar)

		// CAI — fiscal numbering, administrador only
		cai := v1.Group("/cai", middleware.RequireRole("administrador"))
		{
			cai.POST("", caisH.Crear)
			cai.GET("", caisH.Listar)
			cai.POST("/:id/activar", caisH.Activar)
		}

		// Propietarios y mascotas
		v1.GET("/propietarios", todos, propietariosH.Listar)
		v1.GET("/propietarios/:id", todos, propietariosH.Obtener)
		v1.POST("/propietarios", middleware.RequireRole("recepcion", "administrador"), propietariosH.Crear)
		v1.PUT("/propietarios/:id", middleware.RequireRole("recepcion", "administrador"), propietariosH.Actualizar)
		v1.DELETE("/propietarios/:id", middleware.RequireRole("administrador"), propietariosH.Desactivar)

		v1.GET("/mascotas", todos, mascotasH.Listar)
		v1.GET("/mascotas/:id", todos, mascotasH.Obtener)
		v1.POST("/mascotas", middleware.RequireRole("recepcion", "administrador"), mascotasH.Crear)
		v1.PUT("/mascotas/:id", middleware.RequireRole("recepcion", "veterinario", "administrador"), mascotasH.Actualizar)
		v1.DELETE("/mascotas/:id", middleware.RequireRole("administrador"), mascotasH.Desactivar)

		// Catálogos
		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.Obtener)
		v1.PATCH("/productos/:id/stock", middleware.RequireRole("administrador"), inventarioH.AjustarStock)
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
		}

		v1.GET("/servicios", todos, serviciosH.Listar)
		v1.GET("/servicios/:id", todos, serviciosH.Obtener)
		servs := v1.Group("/servicios", middleware.RequireRole("administrador"))
		{
			servs.POST("", serviciosH.Crear)
			servs.PUT("/:id", serviciosH.Actualizar)
			servs.DELETE("/:id", serviciosH.Desactivar)
		}

		// Inventario
		inv := v1.Group("/inventario", middleware.RequireRole("administrador"))
		{
			inv.GET("/alertas", inventarioH.Alertas)
			inv.GET("/movimientos", inventarioH.Movimientos)
		}

		// Citas
		v1.GET("/citas", todos, citasH.Listar)
		v1.GET("/citas/:id", todos, citasH.Obtener)
		v1.POST("/citas", middleware.RequireRole("recepcion", "administrador"), citasH.Crear)
		v1.PUT("/citas/:id", middleware.RequireRole("recepcion", "veterinario", "administrador"), citasH.Actualizar)
		v1.DELETE("/citas/:id", middleware.RequireRole("recepcion", "administrador"), citasH.Cancelar)

		// Usuarios — administrador only
		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
