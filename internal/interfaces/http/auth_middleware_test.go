package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/grocery-pos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/grocery-pos/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "grocery-pos-test"
	testExpMin    = 60

	adminID  = "00000000-0000-0000-0000-0000000000a1"
	cashier  = "00000000-0000-0000-0000-0000000000c1"
	ghostID  = "00000000-0000-0000-0000-0000000000ff"
	adjustTo = "/inventory/adjust"
	reportTo = "/reports/daily"
	cartTo   = "/cart"
)

// staffApp arma la misma cadena que el router: token, operador guardado y rol por ruta.
func staffApp(t *testing.T, users interface {
	GetByID(context.Context, string) (*entity.User, error)
}) *fiber.App {
	t.Helper()
	app := fiber.New()
	api := app.Group("", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireStaff(users))
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	}
	api.Get(cartTo, ok)
	api.Get(reportTo, apphttp.RequireRole(entity.RoleAdmin, entity.RoleStaff), ok)
	api.Get(adjustTo, apphttp.RequireRole(entity.RoleAdmin), ok)
	return app
}

func seededUsers(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: adminID, Username: "admin", Role: entity.RoleAdmin}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: cashier, Username: "ravi", Role: entity.RoleStaff}))
	return store
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func get(t *testing.T, app *fiber.App, path, auth string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	return resp.StatusCode, raw
}

func TestPermisosPorRuta(t *testing.T) {
	app := staffApp(t, seededUsers(t).Users())

	cases := []struct {
		name   string
		userID string
		role   string
		path   string
		status int
		code   string
	}{
		{"cajero usa su carrito", cashier, entity.RoleStaff, cartTo, http.StatusOK, ""},
		{"cajero ve reporte diario", cashier, entity.RoleStaff, reportTo, http.StatusOK, ""},
		{"cajero no ajusta stock", cashier, entity.RoleStaff, adjustTo, http.StatusForbidden, "FORBIDDEN"},
		{"admin ajusta stock", adminID, entity.RoleAdmin, adjustTo, http.StatusOK, ""},
		{"admin ve reporte diario", adminID, entity.RoleAdmin, reportTo, http.StatusOK, ""},
		{"operador borrado", ghostID, entity.RoleAdmin, cartTo, http.StatusUnauthorized, "UNKNOWN_STAFF"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, app, tc.path, bearer(t, tc.userID, tc.role))
			assert.Equal(t, tc.status, status)
			if tc.code != "" {
				assert.Equal(t, tc.code, body["code"])
				return
			}
			assert.Equal(t, tc.userID, body["user_id"])
		})
	}
}

func TestRolGuardadoReemplazaAlDelToken(t *testing.T) {
	store := seededUsers(t)
	app := staffApp(t, store.Users())

	// token viejo de admin para un operador que hoy es staff
	status, body := get(t, app, adjustTo, bearer(t, cashier, entity.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	// token de staff para el admin: el rol guardado lo habilita
	status, body = get(t, app, adjustTo, bearer(t, adminID, entity.RoleStaff))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.RoleAdmin, body["role"])

	// token sin rol: el operador existe y toma el rol guardado
	status, body = get(t, app, cartTo, bearer(t, cashier, ""))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.RoleStaff, body["role"])
}

func TestTokenAusenteOInvalido(t *testing.T) {
	app := staffApp(t, seededUsers(t).Users())

	expired, err := pkgjwt.Generate(testJWTSecret, cashier, entity.RoleStaff, testIssuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otra-tienda", cashier, entity.RoleStaff, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := map[string]struct {
		auth string
		code string
	}{
		"sin header":       {"", "MISSING_TOKEN"},
		"sin esquema":      {"abc.def.ghi", "INVALID_TOKEN"},
		"basic":            {"Basic YWRtaW46YWRtaW4xMjM=", "INVALID_TOKEN"},
		"expirado":         {"Bearer " + expired, "INVALID_TOKEN"},
		"firmado por otro": {"Bearer " + foreign, "INVALID_TOKEN"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := get(t, app, cartTo, tc.auth)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestRequireRole_SinRolEnContexto(t *testing.T) {
	app := fiber.New()
	app.Get(adjustTo, apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireRole(entity.RoleAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	status, body := get(t, app, adjustTo, bearer(t, adminID, ""))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_ROLE", body["code"])
}

type failingUsers struct{}

func (failingUsers) GetByID(context.Context, string) (*entity.User, error) {
	return nil, errors.New("store caído")
}

func TestRequireStaff_StoreCaido_Retorna503(t *testing.T) {
	app := staffApp(t, failingUsers{})

	status, body := get(t, app, cartTo, bearer(t, cashier, entity.RoleStaff))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "STAFF_CHECK_FAILED", body["code"])
}
