package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/panastock-api/internal/interfaces/http"
	"github.com/jhoicas/panastock-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

// buildTestApp app mínima con una ruta protegida por auth y otra además
// restringida por rol.
func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/", apphttp.AuthMiddleware(testSecret))
	protected.Get("/yo", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": apphttp.GetUserID(c),
			"name":   apphttp.GetUserName(c),
			"role":   apphttp.GetUserRole(c),
		})
	})
	protected.Post("/movimientos", apphttp.RequireRoles("admin", "panadero"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "u1", "Ana", role, "panastock-api", 15)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/yo", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_HeaderMalformado(t *testing.T) {
	app := buildTestApp()
	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		req := httptest.NewRequest("GET", "/yo", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddleware_TokenFirmaIncorrecta(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate("otro-secreto", "u1", "Ana", "admin", "panastock-api", 15)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/yo", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp()
	token, err := jwt.Generate(testSecret, "u1", "Ana", "admin", "panastock-api", -5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/yo", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValidoPropagaLocals(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/yo", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "vendedor"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoles(t *testing.T) {
	app := buildTestApp()
	cases := []struct {
		role string
		want int
	}{
		{"admin", fiber.StatusCreated},
		{"panadero", fiber.StatusCreated},
		{"vendedor", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", "/movimientos", nil)
		req.Header.Set("Authorization", "Bearer "+tokenForRole(t, tc.role))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, "rol %s", tc.role)
	}
}
