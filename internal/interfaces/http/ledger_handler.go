package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/internal/application/audit"
	"github.com/jhoicas/almacen-ledger/internal/application/documents"
	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// LedgerHandler rutas que no son CRUD de documentos: junta de bajas, aprobación de ajustes,
// consultas de stock y auditoría (protegido).
type LedgerHandler struct {
	disposals   *documents.DisposalService
	adjustments *documents.AdjustmentService
	stock       *inventory.StockUseCase
	audit       *audit.UseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(svcs *documents.Services, stock *inventory.StockUseCase, auditUC *audit.UseCase) *LedgerHandler {
	return &LedgerHandler{disposals: svcs.Disposals, adjustments: svcs.Adjustments, stock: stock, audit: auditUC}
}

// RecordBoardApproval godoc
// @Summary      Registrar junta y acta de una baja
// @Tags         disposals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la baja"
// @Param        body  body  dto.BoardApprovalRequest  true  "miembros y acta"
// @Success      200   {object}  entity.Disposal
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/disposals/{id}/board-approval [post]
func (h *LedgerHandler) RecordBoardApproval(c *fiber.Ctx) error {
	var in dto.BoardApprovalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.disposals.RecordBoardApproval(c.UserContext(), GetUserID(c), c.Params("id"), in.Members, in.MinutesRef)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApproveAdjustment godoc
// @Summary      Aprobar ajuste (aplica deltas y contabiliza)
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ajuste"
// @Success      200  {object}  entity.Adjustment
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id}/approve [post]
func (h *LedgerHandler) ApproveAdjustment(c *fiber.Ctx) error {
	out, err := h.adjustments.Approve(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdjustmentPostings godoc
// @Summary      Contabilizaciones de un ajuste
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ajuste"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id}/postings [get]
func (h *LedgerHandler) AdjustmentPostings(c *fiber.Ctx) error {
	out, err := h.adjustments.Postings(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// GetStock godoc
// @Summary      Consultar stock
// @Description  product_id + location_id = una clave; solo product_id o solo location_id = listado.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "producto"
// @Param        location_id  query  string  false  "bin"
// @Param        batch        query  string  false  "lote"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *LedgerHandler) GetStock(c *fiber.Ctx) error {
	productID, locationID := c.Query("product_id"), c.Query("location_id")
	ctx := c.UserContext()
	switch {
	case productID != "" && locationID != "":
		out, err := h.stock.Get(ctx, entity.StockKey{ProductID: productID, LocationID: locationID, Batch: c.Query("batch")})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	case productID != "":
		out, err := h.stock.ListByProduct(ctx, productID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.NewListResponse(out))
	case locationID != "":
		out, err := h.stock.ListByLocation(ctx, locationID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(dto.NewListResponse(out))
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id o location_id es requerido"})
}

// MoveStock godoc
// @Summary      Trasladar stock entre bins
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveStockRequest  true  "traslado"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/moves [post]
func (h *LedgerHandler) MoveStock(c *fiber.Ctx) error {
	var in dto.MoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	err := h.stock.Move(c.UserContext(), GetUserID(c), inventory.MoveCmd{
		ProductID: in.ProductID,
		From:      in.FromLocationID,
		To:        in.ToLocationID,
		Batch:     in.Batch,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "traslado registrado"})
}

// StockMovements godoc
// @Summary      Diario de movimientos de una clave
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  true   "producto"
// @Param        location_id  query  string  true   "bin"
// @Param        batch        query  string  false  "lote"
// @Param        limit        query  int     false  "máximo de filas"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock/movements [get]
func (h *LedgerHandler) StockMovements(c *fiber.Ctx) error {
	key := entity.StockKey{ProductID: c.Query("product_id"), LocationID: c.Query("location_id"), Batch: c.Query("batch")}
	out, err := h.stock.Movements(c.UserContext(), key, c.QueryInt("limit", 100))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// AuditTrail godoc
// @Summary      Auditoría de una entidad (más reciente primero)
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entityType  path   string  true   "receipt, delivery, disposal, return, stocktake, adjustment, stock"
// @Param        entityID    path   string  true   "ID"
// @Param        limit       query  int     false  "máximo de filas"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/audit/{entityType}/{entityID} [get]
func (h *LedgerHandler) AuditTrail(c *fiber.Ctx) error {
	out, err := h.audit.ListByEntity(c.UserContext(), c.Params("entityType"), c.Params("entityID"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}
