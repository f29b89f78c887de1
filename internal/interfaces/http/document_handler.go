package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// documentService operaciones comunes que expone cada servicio de documentos.
type documentService[D entity.Document, In any] interface {
	Create(ctx context.Context, actor string, in In) (*D, error)
	Get(ctx context.Context, id string) (*D, error)
	List(ctx context.Context, status string) ([]*D, error)
	Update(ctx context.Context, actor, id string, in In) (*D, error)
	Delete(ctx context.Context, actor, id string) error
	TransitionTo(ctx context.Context, actor, id, to string) (*D, error)
}

// DocumentHandler CRUD + transiciones de un tipo de documento (protegido).
type DocumentHandler[D entity.Document, In any] struct {
	svc documentService[D, In]
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler[D entity.Document, In any](svc documentService[D, In]) *DocumentHandler[D, In] {
	return &DocumentHandler[D, In]{svc: svc}
}

// Register monta las rutas en r; transitionGuards se aplican solo a POST /:id/transitions.
func (h *DocumentHandler[D, In]) Register(r fiber.Router, transitionGuards ...fiber.Handler) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.GetByID)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Post("/:id/transitions", append(transitionGuards, h.Transition)...)
}

// Create godoc
// @Summary      Crear documento en borrador
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
func (h *DocumentHandler[D, In]) Create(c *fiber.Ctx) error {
	var in In
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos (filtro opcional ?status=)
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
func (h *DocumentHandler[D, In]) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// GetByID godoc
// @Summary      Obtener documento por ID
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
func (h *DocumentHandler[D, In]) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar documento (solo en borrador)
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
func (h *DocumentHandler[D, In]) Update(c *fiber.Ctx) error {
	var in In
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento (solo en borrador)
// @Security     Bearer
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
func (h *DocumentHandler[D, In]) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transition godoc
// @Summary      Cambiar el estado del documento
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransitionRequest  true  "estado destino"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
func (h *DocumentHandler[D, In]) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	out, err := h.svc.TransitionTo(c.UserContext(), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
