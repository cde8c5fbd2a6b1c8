package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/almacen-api/internal/domain"
	pkgjwt "github.com/tu-usuario/almacen-api/pkg/jwt"
)

// Config credenciales del operador único. No hay entidades de usuario ni
// sesiones: el hash bcrypt vive en la configuración y el token es stateless.
type Config struct {
	PasswordHash string // hash bcrypt de la contraseña del operador
	JWTSecret    string
	ExpMinutes   int
	Issuer       string
}

// TokenUseCase emite tokens de acceso para el operador del almacén.
type TokenUseCase struct {
	cfg Config
}

// NewTokenUseCase construye el caso de uso.
func NewTokenUseCase(cfg Config) *TokenUseCase {
	return &TokenUseCase{cfg: cfg}
}

// Enabled indica si la emisión de tokens está configurada.
func (uc *TokenUseCase) Enabled() bool {
	return uc.cfg.PasswordHash != "" && uc.cfg.JWTSecret != ""
}

// IssueToken valida la contraseña contra el hash bcrypt configurado y emite un
// JWT con el sujeto indicado. ErrUnauthorized si la contraseña no coincide.
func (uc *TokenUseCase) IssueToken(subject, password string) (string, int, error) {
	if !uc.Enabled() {
		return "", 0, domain.ErrUnauthorized
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "operador"
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.cfg.PasswordHash), []byte(password)); err != nil {
		return "", 0, domain.ErrUnauthorized
	}
	token, err := pkgjwt.Generate(uc.cfg.JWTSecret, subject, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return "", 0, err
	}
	return token, uc.cfg.ExpMinutes * 60, nil
}
