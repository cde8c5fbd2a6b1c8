package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/almacen-api/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "almacen-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con una ruta protegida
// que devuelve el sujeto del token si el middleware deja pasar.
func buildTestApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(secret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"subject": apphttp.GetSubject(c),
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, secret, subject string, expMinutes int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, subject, testIssuer, expMinutes)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]any
	_ = json.Unmarshal(body, &payload)
	return resp, payload
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp(testJWTSecret)

	resp, payload := doRequest(t, app, tokenFor(t, testJWTSecret, "operador", testExpMin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "operador", payload["subject"], "el sujeto del token debe llegar al handler")
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(testJWTSecret)

	resp, payload := doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", payload["code"])
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(testJWTSecret)

	resp, payload := doRequest(t, app, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := buildTestApp(testJWTSecret)

	resp, payload := doRequest(t, app, tokenFor(t, "otro-secreto", "operador", testExpMin))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp(testJWTSecret)

	resp, _ := doRequest(t, app, tokenFor(t, testJWTSecret, "operador", -5))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretoVacioDeshabilitaAuth(t *testing.T) {
	app := buildTestApp("")

	resp, payload := doRequest(t, app, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", payload["subject"], "sin auth el sujeto queda vacío")
}
