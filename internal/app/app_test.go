package app_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/diillson/restaurante-api/internal/app"
	"github.com/diillson/restaurante-api/internal/testutils"
	"github.com/diillson/restaurante-api/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"*"}},
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString()),
			MaxIdleConns: 1,
			MaxOpenConns: 1,
			LogLevel:     "silent",
		},
		Cache: config.CacheConfig{Enabled: true, Type: "memory", TTL: time.Minute},
		Auth: config.AuthConfig{
			JWTSecret:          "segredo-de-teste-com-32-bytes-ok!",
			TokenExpiration:    time.Hour,
			PasswordMinLen:     6,
			LoginRateLimit:     5,
			LoginRateLimitTime: time.Minute,
		},
		Metrics:  config.MetricsConfig{Enabled: true, PrometheusPath: "/metrics"},
		Tracing:  config.TracingConfig{ServiceName: "restaurante-api"},
		Features: config.FeaturesConfig{RateLimiter: true, SecurityHeaders: true, Reports: true},
	}
}

func setupApp(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET_KEY", "")

	application, err := app.NewApp(context.Background(), cfg, testutils.TestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	router := testutils.SetupTestRouter(t)
	application.RegisterRoutes(router)
	return router
}

func login(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/users",
		map[string]string{"username": username, "password": password}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/token/login",
		map[string]string{"username": username, "password": password}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	testutils.ParseResponse(t, resp, &token)
	require.Equal(t, "bearer", token.TokenType)
	return token.AccessToken
}

type idResponse map[string]interface{}

func (r idResponse) id(t *testing.T, key string) int64 {
	t.Helper()
	v, ok := r[key].(float64)
	require.True(t, ok, "campo %s ausente: %v", key, r)
	return int64(v)
}

func TestOrderLifecycle(t *testing.T) {
	router := setupApp(t, testConfig())
	headers := testutils.AuthHeader(login(t, router, "gerente", "segredo123"))

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/produtos",
		map[string]string{"descricao": "Pizza", "preco": "45.90"}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/produtos",
		map[string]string{"descricao": "Pizza", "preco": "45.90"}, headers)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	var pizza idResponse
	testutils.ParseResponse(t, resp, &pizza)

	var statuses []map[string]interface{}
	resp = testutils.MakeRequest(t, router, http.MethodGet, "/situacoes_mesas", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	testutils.ParseResponse(t, resp, &statuses)
	var livre int64
	for _, s := range statuses {
		if s["situacao_descricao"] == "Livre" {
			livre = int64(s["id_situacao"].(float64))
		}
	}
	require.NotZero(t, livre)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/clientes",
		map[string]string{"nome": "João", "cidade": "Recife"}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	var cliente idResponse
	testutils.ParseResponse(t, resp, &cliente)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/mesas",
		map[string]interface{}{"numero": 10, "id_situacao_fk": livre}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	var mesa idResponse
	testutils.ParseResponse(t, resp, &mesa)
	mesaID := mesa.id(t, "idmesa")

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/pedidos", map[string]interface{}{
		"cliente_id": cliente.id(t, "idcliente"),
		"mesa_id":    mesaID,
		"status":     "aberto",
		"itens":      []map[string]interface{}{{"produto_id": pizza.id(t, "idproduto"), "quantidade": 2}},
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	var pedido struct {
		ID    int64           `json:"idpedido"`
		Total decimal.Decimal `json:"total"`
	}
	testutils.ParseResponse(t, resp, &pedido)
	assert.True(t, decimal.RequireFromString("91.80").Equal(pedido.Total), "total %s", pedido.Total)

	path := fmt.Sprintf("/pedidos/mesa/%d", mesaID)
	resp = testutils.MakeRequest(t, router, http.MethodPost, path,
		map[string]interface{}{"cliente_id": cliente.id(t, "idcliente")}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusConflict)

	resp = testutils.MakeRequest(t, router, http.MethodGet, path, nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var aberto idResponse
	testutils.ParseResponse(t, resp, &aberto)
	assert.Equal(t, pedido.ID, aberto.id(t, "idpedido"))

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/pagamentos",
		map[string]interface{}{"pedido_id": pedido.ID, "metodo_pagamento": "Pix"}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	var pagamento struct {
		Valor decimal.Decimal `json:"valor"`
	}
	testutils.ParseResponse(t, resp, &pagamento)
	assert.True(t, decimal.RequireFromString("91.80").Equal(pagamento.Valor))

	resp = testutils.MakeRequest(t, router, http.MethodGet, fmt.Sprintf("/pedidos/%d", pedido.ID), nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var fechado map[string]interface{}
	testutils.ParseResponse(t, resp, &fechado)
	assert.Equal(t, "fechado", fechado["status"])

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/pagamentos",
		map[string]interface{}{"pedido_id": pedido.ID, "metodo_pagamento": "Pix"}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusConflict)

	resp = testutils.MakeRequest(t, router, http.MethodDelete, fmt.Sprintf("/pedidos/%d", pedido.ID), nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusConflict)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/relatorios/faturamento", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/relatorios/produtos", nil, headers)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	testutils.RequireJSONContentType(t, resp)
}

func TestLoginRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.LoginRateLimit = 2
	cfg.Auth.LoginRateLimitTime = time.Hour
	router := setupApp(t, cfg)

	body := map[string]string{"username": "ninguem", "password": "errada"}
	for i := 0; i < 2; i++ {
		resp := testutils.MakeRequest(t, router, http.MethodPost, "/token/login", body, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	}

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/token/login", body, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusTooManyRequests)
	assert.NotEmpty(t, resp.Header().Get("Retry-After"))
}

func TestInactiveUserToken(t *testing.T) {
	router := setupApp(t, testConfig())
	headers := testutils.AuthHeader(login(t, router, "caixa", "segredo123"))

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/users", nil, headers)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var users []idResponse
	testutils.ParseResponse(t, resp, &users)
	require.Len(t, users, 1)

	resp = testutils.MakeRequest(t, router, http.MethodDelete,
		fmt.Sprintf("/users/%d", users[0].id(t, "id")), nil, headers)
	testutils.RequireHTTPStatus(t, resp, http.StatusNoContent)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/users", nil, headers)
	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.Equal(t, "Bearer", resp.Header().Get("WWW-Authenticate"))
}

func TestOperationalEndpoints(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Reports = false
	router := setupApp(t, cfg)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/health", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/health/readiness", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/tipos_pagamento", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/metrics", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.True(t, strings.Contains(resp.Body.String(), "restaurante_"))

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/relatorios/produtos", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
}
