package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/internal/application/catalog"
	"github.com/jhoicas/almacen-ledger/internal/application/dto"
)

// CatalogHandler consultas de productos, terceros y ubicaciones; importación de catálogo (protegido).
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// GetProduct godoc
// @Summary      Obtener producto por ID
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.uc.Product(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetPartner godoc
// @Summary      Obtener tercero por ID
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del tercero"
// @Success      200  {object}  entity.Partner
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partners/{id} [get]
func (h *CatalogHandler) GetPartner(c *fiber.Ctx) error {
	out, err := h.uc.Partner(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetLocation godoc
// @Summary      Obtener ubicación por ID
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la ubicación"
// @Success      200  {object}  entity.Location
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *CatalogHandler) GetLocation(c *fiber.Ctx) error {
	out, err := h.uc.Location(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar lote de catálogo (todo o nada)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      catalog.Seed  true  "productos, terceros y ubicaciones"
// @Success      201   {object}  catalog.Counts
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalog [post]
func (h *CatalogHandler) Import(c *fiber.Ctx) error {
	var in catalog.Seed
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if len(in.Products)+len(in.Partners)+len(in.Locations) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el lote está vacío"})
	}
	out, err := h.uc.Import(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
