package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/constructora-pro/internal/application/dto"
)

var validate = validator.New()

// validateStruct corre las reglas `validate` del DTO y responde 400 con el
// primer campo inválido. Devuelve true si la petición debe cortarse.
func validateStruct(c *fiber.Ctx, s any) bool {
	err := validate.Struct(s)
	if err == nil {
		return false
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "campo inválido: " + fe.Field() + " (" + fe.Tag() + ")",
			Field:   fe.Field(),
		})
		return true
	}
	_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	return true
}
