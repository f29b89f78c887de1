package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/domain"
)

// writeError traduce los errores de dominio a status + código; el detalle estructurado va en details.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		shortage   *domain.InsufficientStockError
		transition *domain.TransitionError
		invalid    *domain.ValidationError
	)
	switch {
	case errors.As(err, &shortage):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error(), Details: shortage.Shortages}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.As(err, &transition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ILLEGAL_TRANSITION", Message: err.Error(), Details: dto.TransitionDetails{
			DocumentType: transition.DocumentType,
			From:         transition.From,
			To:           transition.To,
		}}
	case errors.Is(err, domain.ErrIllegalTransition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ILLEGAL_TRANSITION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.As(err, &invalid):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error(), Details: dto.FieldDetails{
			Field:  invalid.Field,
			Reason: invalid.Reason,
		}}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: conflictCode(err), Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

// conflictCode subcódigo del conflicto; la categoría HTTP sigue siendo 409.
func conflictCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateCode):
		return "DUPLICATE_CODE"
	case errors.Is(err, domain.ErrAlreadyApproved):
		return "ALREADY_APPROVED"
	case errors.Is(err, domain.ErrApprovalRequirementsNotMet):
		return "APPROVAL_REQUIREMENTS_NOT_MET"
	case errors.Is(err, domain.ErrDocumentLocked):
		return "DOCUMENT_LOCKED"
	case errors.Is(err, domain.ErrLockNotObtained):
		return "DOCUMENT_BUSY"
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return "CONCURRENT_UPDATE"
	}
	return "CONFLICT"
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler manejador global de Fiber: errores de Fiber (404 de ruta, 405...) conservan su status;
// el resto pasa por la traducción de dominio.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(fe.Code), Message: fe.Message})
	}
	return writeError(c, err)
}
