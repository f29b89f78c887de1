package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/internal/application/audit"
	"github.com/jhoicas/almacen-ledger/internal/application/catalog"
	"github.com/jhoicas/almacen-ledger/internal/application/documents"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Documents *documents.Services
	Stock     *inventory.StockUseCase
	Audit     *audit.UseCase
	Catalog   *catalog.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	approvers := RequireRole(jwt.RoleAdmin, jwt.RoleSupervisor)
	ledger := NewLedgerHandler(deps.Documents, deps.Stock, deps.Audit)

	NewDocumentHandler[entity.Receipt, documents.ReceiptInput](deps.Documents.Receipts).Register(api.Group("/receipts"))
	NewDocumentHandler[entity.Delivery, documents.DeliveryInput](deps.Documents.Deliveries).Register(api.Group("/deliveries"))
	NewDocumentHandler[entity.Return, documents.ReturnInput](deps.Documents.Returns).Register(api.Group("/returns"))
	NewDocumentHandler[entity.Stocktake, documents.StocktakeInput](deps.Documents.Stocktakes).Register(api.Group("/stocktakes"), approvers)

	disposals := api.Group("/disposals")
	NewDocumentHandler[entity.Disposal, documents.DisposalInput](deps.Documents.Disposals).Register(disposals)
	disposals.Post("/:id/board-approval", ledger.RecordBoardApproval)

	adjustments := api.Group("/adjustments")
	NewDocumentHandler[entity.Adjustment, documents.AdjustmentInput](deps.Documents.Adjustments).Register(adjustments, approvers)
	adjustments.Post("/:id/approve", approvers, ledger.ApproveAdjustment)
	adjustments.Get("/:id/postings", ledger.AdjustmentPostings)

	stock := api.Group("/stock")
	stock.Get("/", ledger.GetStock)
	stock.Post("/moves", ledger.MoveStock)
	stock.Get("/movements", ledger.StockMovements)

	api.Get("/audit/:entityType/:entityID", ledger.AuditTrail)

	catalogH := NewCatalogHandler(deps.Catalog)
	api.Get("/products/:id", catalogH.GetProduct)
	api.Get("/partners/:id", catalogH.GetPartner)
	api.Get("/locations/:id", catalogH.GetLocation)
	api.Post("/catalog", RequireRole(jwt.RoleAdmin), catalogH.Import)
}
