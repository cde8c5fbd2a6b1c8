package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	appstock "github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC            *usecase.ItemUseCase
	StockQuery        *appstock.QueryUseCase
	RegisterMovement  *inventory.RegisterMovementUseCase
	ListMovements     *inventory.ListMovementsUseCase
	Export            *appstock.ExportUseCase
	TokenUC           *auth.TokenUseCase
	JWTSecret         string
	LockRetryAttempts int
}

// Router registra las rutas de la API. Con JWTSecret vacío todas las rutas
// quedan públicas (despliegues de un solo operador en red local).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.TokenUC)
	api.Post("/auth/token", authHandler.Token)

	// Rutas protegidas (requieren Bearer Token cuando hay secreto)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.StockQuery)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/categories", itemHandler.Categories)
	items.Get("/units", itemHandler.Units)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Movements (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.ListMovements, deps.LockRetryAttempts)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.StockQuery)
	protected.Get("/dashboard/stats", dashboardHandler.Stats)

	// Export (protegido)
	exportHandler := NewExportHandler(deps.Export)
	protected.Get("/export/inventory.pdf", exportHandler.InventoryPDF)
}
