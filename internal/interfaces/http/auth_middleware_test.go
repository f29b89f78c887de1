package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/almacen-ledger/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/almacen-ledger/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "almacen-ledger-test"
	testExpMin    = 60
)

// tokenForRole firma un JWT de prueba para el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// guardedApp monta una ruta de aprobación detrás de AuthMiddleware y RequireRole(roles...).
// El handler responde con el actor y el rol que quedaron en el contexto.
func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Post("/docs/:id/approve",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"actor": apphttp.GetUserID(c), "role": apphttp.GetRole(c), "id": c.Params("id")})
		},
	)
	return app
}

func approveWith(t *testing.T, app *fiber.App, authorization string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/docs/d-1/approve", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// ─── AuthMiddleware ───────────────────────────────────────────────────────────

func TestAuthMiddleware_CabecerasRechazadas(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, pkgjwt.RoleSupervisor, testIssuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("otro-secreto", testUserID, pkgjwt.RoleSupervisor, testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name          string
		authorization string
		code          string
	}{
		{"sin cabecera", "", "MISSING_TOKEN"},
		{"esquema basic", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"token malformado", "Bearer no.es.jwt", "INVALID_TOKEN"},
		{"token vencido", "Bearer " + expired, "INVALID_TOKEN"},
		{"firmado con otro secreto", "Bearer " + foreign, "INVALID_TOKEN"},
	}
	app := guardedApp(pkgjwt.RoleAdmin, pkgjwt.RoleSupervisor)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body errorBody
			assert.Equal(t, http.StatusUnauthorized, approveWith(t, app, tc.authorization, &body))
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestAuthMiddleware_ActorYRolQuedanEnElContexto(t *testing.T) {
	app := guardedApp(pkgjwt.RoleSupervisor)

	var body map[string]string
	require.Equal(t, http.StatusOK, approveWith(t, app, "bearer "+tokenForRole(t, pkgjwt.RoleSupervisor)[len("Bearer "):], &body),
		"el esquema no distingue mayúsculas")
	assert.Equal(t, testUserID, body["actor"], "el sujeto del token es el actor de auditoría")
	assert.Equal(t, pkgjwt.RoleSupervisor, body["role"])
	assert.Equal(t, "d-1", body["id"])
}

// ─── RequireRole ──────────────────────────────────────────────────────────────

func TestRequireRole_AprobadoresDeDocumentos(t *testing.T) {
	app := guardedApp(pkgjwt.RoleAdmin, pkgjwt.RoleSupervisor)

	for role, want := range map[string]int{
		pkgjwt.RoleAdmin:      http.StatusOK,
		pkgjwt.RoleSupervisor: http.StatusOK,
		pkgjwt.RoleOperator:   http.StatusForbidden,
		"contador":            http.StatusForbidden,
	} {
		t.Run(role, func(t *testing.T) {
			assert.Equal(t, want, approveWith(t, app, tokenForRole(t, role), nil))
		})
	}
}

func TestRequireRole_TokenSinRol(t *testing.T) {
	app := guardedApp(pkgjwt.RoleAdmin)

	var body errorBody
	assert.Equal(t, http.StatusUnauthorized, approveWith(t, app, tokenForRole(t, ""), &body))
	assert.Equal(t, "MISSING_ROLE", body.Code)
}

// ─── Rutas protegidas de la API ───────────────────────────────────────────────

func TestRouter_TransicionesDeConteoSoloAprobadores(t *testing.T) {
	app := buildLedgerApp(t)
	rec := createReceipt(t, app, "REC-1", 10)
	for _, st := range []string{"approved", "supplierConfirmed", "completed"} {
		require.Equal(t, http.StatusOK, transition(t, app, pkgjwt.RoleOperator, "/api/receipts/"+rec.ID, st))
	}

	var st docBody
	require.Equal(t, http.StatusCreated, call(t, app, pkgjwt.RoleOperator, http.MethodPost, "/api/stocktakes", fiber.Map{
		"code":  "CNT-1",
		"lines": []fiber.Map{{"product_id": "prod-1", "location_id": "bin-a", "counted_qty": 7}},
	}, &st), "cualquier rol autenticado registra el conteo")

	var body errorBody
	assert.Equal(t, http.StatusForbidden, call(t, app, pkgjwt.RoleOperator, http.MethodPost, "/api/stocktakes/"+st.ID+"/transitions", fiber.Map{"status": "approved"}, &body))
	assert.Equal(t, "FORBIDDEN", body.Code)
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "", http.MethodPost, "/api/stocktakes/"+st.ID+"/transitions", fiber.Map{"status": "approved"}, nil))

	var got docBody
	require.Equal(t, http.StatusOK, call(t, app, pkgjwt.RoleOperator, http.MethodGet, "/api/stocktakes/"+st.ID, nil, &got))
	assert.Equal(t, "draft", got.Status, "el rechazo por rol no avanza el documento")

	require.Equal(t, http.StatusOK, transition(t, app, pkgjwt.RoleSupervisor, "/api/stocktakes/"+st.ID, "approved"))
	assert.Equal(t, int64(10), stockOf(t, app, "prod-1", "bin-a"), "aprobar solo propone el ajuste")
	require.Equal(t, http.StatusOK, transition(t, app, pkgjwt.RoleAdmin, "/api/stocktakes/"+st.ID, "applied"))
	assert.Equal(t, int64(7), stockOf(t, app, "prod-1", "bin-a"))
}

func TestRouter_RolesPorRuta(t *testing.T) {
	app := buildLedgerApp(t)
	seed := fiber.Map{"partners": []fiber.Map{{"id": "cli-2", "code": "CLI-2", "name": "Otro cliente", "kind": "customer"}}}

	cases := []struct {
		name   string
		role   string
		method string
		path   string
		body   any
		want   int
	}{
		{"bodeguero consulta stock", pkgjwt.RoleOperator, http.MethodGet, "/api/stock?product_id=prod-1&location_id=bin-a", nil, http.StatusOK},
		{"bodeguero crea recepción", pkgjwt.RoleOperator, http.MethodPost, "/api/receipts", fiber.Map{
			"code": "REC-9", "supplier_id": "prov-1",
			"lines": []fiber.Map{{"product_id": "prod-1", "location_id": "bin-a", "quantity": 1, "price_in": "2.50"}},
		}, http.StatusCreated},
		{"supervisor no importa catálogo", pkgjwt.RoleSupervisor, http.MethodPost, "/api/catalog", seed, http.StatusForbidden},
		{"bodeguero no importa catálogo", pkgjwt.RoleOperator, http.MethodPost, "/api/catalog", seed, http.StatusForbidden},
		{"admin importa catálogo", pkgjwt.RoleAdmin, http.MethodPost, "/api/catalog", seed, http.StatusCreated},
		{"bodeguero no aprueba ajustes", pkgjwt.RoleOperator, http.MethodPost, "/api/adjustments/aj-x/approve", nil, http.StatusForbidden},
		{"supervisor llega al handler de ajustes", pkgjwt.RoleSupervisor, http.MethodPost, "/api/adjustments/aj-x/approve", nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, call(t, app, tc.role, tc.method, tc.path, tc.body, nil))
		})
	}
}
