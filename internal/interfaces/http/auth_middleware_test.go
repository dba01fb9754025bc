package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	apphttp "github.com/jhoicas/inventory-ledger/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/inventory-ledger/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "inventory-ledger-test"
	testExpMin    = 60
)

// tenantEcho devuelve lo que el middleware dejó en locals.
type tenantEcho struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// guardedApp expone GET /ledger detrás de JWT (con emisor) y, si se indican, de roles.
func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	chain := []fiber.Handler{apphttp.AuthMiddlewareWithIssuer(testJWTSecret, testIssuer)}
	if len(roles) > 0 {
		chain = append(chain, apphttp.RequireRole(roles...))
	}
	chain = append(chain, func(c *fiber.Ctx) error {
		return c.JSON(tenantEcho{
			UserID:    apphttp.GetUserID(c),
			CompanyID: apphttp.GetCompanyID(c),
			Role:      apphttp.GetRole(c),
		})
	})
	app.Get("/ledger", chain...)
	return app
}

// signed firma un token con los datos dados; "" en companyID omite el tenant.
func signed(t *testing.T, secret, companyID, role, issuer string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testUserID, companyID, role, issuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func getLedger(t *testing.T, app *fiber.App, auth string) (int, []byte) {
	t.Helper()
	resp, body := call(t, app, http.MethodGet, "/ledger", auth, nil)
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware: token y tenant
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaTenantYRol(t *testing.T) {
	status, body := getLedger(t, guardedApp(), signed(t, testJWTSecret, testCompanyID, pkgjwt.RoleBodeguero, testIssuer, testExpMin))
	require.Equal(t, http.StatusOK, status, string(body))

	got := decode[tenantEcho](t, body)
	assert.Equal(t, tenantEcho{UserID: testUserID, CompanyID: testCompanyID, Role: pkgjwt.RoleBodeguero}, got)
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	tests := []struct {
		name string
		auth string
		code string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema distinto de Bearer", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"token malformado", "Bearer no.es.jwt", "INVALID_TOKEN"},
		{"sin company_id", signed(t, testJWTSecret, "", pkgjwt.RoleAdmin, testIssuer, testExpMin), "INVALID_TOKEN"},
		{"otro emisor", signed(t, testJWTSecret, testCompanyID, pkgjwt.RoleAdmin, "otro-emisor", testExpMin), "INVALID_TOKEN"},
		{"expirado", signed(t, testJWTSecret, testCompanyID, pkgjwt.RoleAdmin, testIssuer, -1), "INVALID_TOKEN"},
		{"firmado con otro secret", signed(t, "otro-secret-de-otra-instalacion", testCompanyID, pkgjwt.RoleAdmin, testIssuer, testExpMin), "INVALID_TOKEN"},
	}
	app := guardedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := getLedger(t, app, tt.auth)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tt.code, decode[dto.ErrorResponse](t, body).Code)
		})
	}
}

// Sin emisor configurado se acepta cualquier iss, pero nunca un token sin tenant.
func TestAuthMiddleware_SinEmisorConfigurado(t *testing.T) {
	app := fiber.New()
	app.Get("/ledger", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetCompanyID(c))
	})

	resp, body := call(t, app, http.MethodGet, "/ledger", signed(t, testJWTSecret, testCompanyID, pkgjwt.RoleVendedor, "cualquier-emisor", testExpMin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testCompanyID, string(body))

	resp, body = call(t, app, http.MethodGet, "/ledger", signed(t, testJWTSecret, "", pkgjwt.RoleVendedor, "", testExpMin), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decode[dto.ErrorResponse](t, body).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole: MISSING_ROLE (401) frente a FORBIDDEN (403)
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_CodigosDeRechazo(t *testing.T) {
	app := guardedApp(pkgjwt.RoleAdmin, pkgjwt.RoleBodeguero)

	status, body := getLedger(t, app, signed(t, testJWTSecret, testCompanyID, "", testIssuer, testExpMin))
	assert.Equal(t, http.StatusUnauthorized, status, "token sin rol no está autenticado del todo")
	assert.Equal(t, "MISSING_ROLE", decode[dto.ErrorResponse](t, body).Code)

	status, body = getLedger(t, app, signed(t, testJWTSecret, testCompanyID, pkgjwt.RoleVendedor, testIssuer, testExpMin))
	assert.Equal(t, http.StatusForbidden, status, "rol conocido pero sin permiso")
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, body).Code)

	status, body = getLedger(t, app, signed(t, testJWTSecret, testCompanyID, "auditor", testIssuer, testExpMin))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, body).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Permisos sobre el ledger: solo admin y bodeguero registran movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_PermisoPorRol(t *testing.T) {
	app := newAPI(t, nil)
	admin := tokenFor(t, testCompanyID, pkgjwt.RoleAdmin)
	productID, warehouseID := seedCatalog(t, app, admin)

	tests := []struct {
		name   string
		role   string
		status int
		code   string
	}{
		{"admin registra", pkgjwt.RoleAdmin, http.StatusCreated, ""},
		{"bodeguero registra", pkgjwt.RoleBodeguero, http.StatusCreated, ""},
		{"vendedor solo consulta", pkgjwt.RoleVendedor, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", "", http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := call(t, app, http.MethodPost, "/api/inventory/movements",
				tokenFor(t, testCompanyID, tt.role), movement(productID, warehouseID, "in", 10))
			require.Equal(t, tt.status, resp.StatusCode, string(body))
			if tt.code != "" {
				assert.Equal(t, tt.code, decode[dto.ErrorResponse](t, body).Code)
			}
		})
	}

	// Los rechazos no dejan rastro en el ledger; el vendedor sí puede leerlo
	vendedor := tokenFor(t, testCompanyID, pkgjwt.RoleVendedor)
	resp, body := call(t, app, http.MethodGet, "/api/inventory/movements", vendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, 2, decode[dto.MovementListResponse](t, body).Page.Total)

	resp, body = call(t, app, http.MethodGet, "/api/inventory?product_id="+productID, vendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	stock := decode[dto.StockListResponse](t, body)
	require.Len(t, stock.Items, 1)
	assert.Equal(t, int64(20), stock.Items[0].QuantityOnHand)
}
