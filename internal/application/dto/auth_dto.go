package dto

// TokenRequest body para POST /api/auth/token (operador único, sin usuarios).
type TokenRequest struct {
	Subject  string `json:"subject"`
	Password string `json:"password"`
}

// TokenResponse token emitido.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
