package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
)

// AuthHandler emite tokens para el operador del almacén.
type AuthHandler struct {
	tokens *auth.TokenUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(tokens *auth.TokenUseCase) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// Token godoc
// @Summary      Emitir token de acceso
// @Description  Valida la contraseña del operador contra el hash configurado
//
//	y devuelve un JWT. No hay registro de usuarios.
//
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TokenRequest  true  "Credenciales"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in dto.TokenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, expiresIn, err := h.tokens.IssueToken(in.Subject, in.Password)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.TokenResponse{Token: token, ExpiresIn: expiresIn})
}
