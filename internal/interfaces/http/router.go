package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/constructora-pro/internal/application/auth"
	"github.com/tu-usuario/constructora-pro/internal/application/inventory"
	"github.com/tu-usuario/constructora-pro/internal/application/reports"
	"github.com/tu-usuario/constructora-pro/internal/application/usecase"
	"github.com/tu-usuario/constructora-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC *usecase.MaterialUseCase
	StockUC    *inventory.AdjustStockUseCase
	ReportUC   *reports.ReportUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	staff := RequireRole(entity.RoleAdmin, entity.RoleAlmacenista)

	// Materials: lecturas para cualquier rol autenticado; escrituras para el
	// personal de bodega.
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	stockHandler := NewStockHandler(deps.StockUC)
	materials.Post("/", staff, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", staff, materialHandler.Update)
	materials.Delete("/:id", RequireRole(entity.RoleAdmin), materialHandler.Delete)
	materials.Get("/:id/stock", stockHandler.GetMaterialStock)
	materials.Get("/:id/stock/:villaId", stockHandler.GetVillaStock)
	materials.Get("/:id/movements", stockHandler.GetMovementHistory)

	// Stock movements: el residente también registra consumos de su villa,
	// las reversas quedan para el personal de bodega.
	stock := protected.Group("/stock")
	stock.Post("/movements",
		RequireRole(entity.RoleAdmin, entity.RoleAlmacenista, entity.RoleResidente),
		stockHandler.RegisterMovement)
	stock.Post("/movements/:id/revert", staff, stockHandler.RevertMovement)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/valuation", reportHandler.Valuation)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
}
