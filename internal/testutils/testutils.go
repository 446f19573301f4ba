package testutils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diillson/restaurante-api/internal/adapter/database"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm/logger"
)

// TestLogger cria um logger zap para testes
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// NewTestDatabase cria um banco sqlite em memória, isolado por teste, com o
// schema migrado e os dados iniciais. Uma única conexão mantém o banco vivo.
func NewTestDatabase(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := database.NewDatabase(context.Background(), database.Config{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     logger.Silent,
	}, TestLogger(t))
	require.NoError(t, err, "Failed to create test database")

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// Fixtures agrupa registros básicos usados pelos testes de pedidos
type Fixtures struct {
	Client   *model.Client
	Table    *model.Table
	Products []*model.Product
}

// SeedFixtures grava um cliente, uma mesa livre e dois produtos
func SeedFixtures(t *testing.T, db *database.Database) Fixtures {
	t.Helper()
	gdb := db.DB()

	email := "maria@example.com"
	client := &model.Client{Nome: "Maria", Email: &email, IsActive: true}
	require.NoError(t, gdb.Create(client).Error)

	var livre model.TableStatus
	require.NoError(t, gdb.Where("situacao_descricao = ?", "Livre").First(&livre).Error)

	table := &model.Table{Numero: 1, SituacaoID: livre.ID}
	require.NoError(t, gdb.Omit("Situacao", "Cliente").Create(table).Error)

	products := []*model.Product{
		{Descricao: "Pizza", Preco: decimal.RequireFromString("45.90"), Status: true},
		{Descricao: "Refrigerante", Preco: decimal.RequireFromString("7.50"), Status: true},
	}
	for _, p := range products {
		require.NoError(t, gdb.Create(p).Error)
	}

	return Fixtures{Client: client, Table: table, Products: products}
}

// AuthHeader monta o cabeçalho Authorization com um bearer token
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// SetupTestRouter configura um router Gin para testes
func SetupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())
	return router
}

// MakeRequest executa uma requisição HTTP de teste
func MakeRequest(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody io.Reader

	if body != nil {
		switch v := body.(type) {
		case string:
			reqBody = strings.NewReader(v)
		case []byte:
			reqBody = strings.NewReader(string(v))
		default:
			jsonData, err := json.Marshal(body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBody = strings.NewReader(string(jsonData))
		}
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err, "Failed to create HTTP request")

	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Adicionar cabeçalhos personalizados
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	return resp
}

// ParseResponse analisa a resposta JSON para uma estrutura
func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, dst interface{}) {
	require.NotNil(t, resp, "Response recorder is nil")

	err := json.Unmarshal(resp.Body.Bytes(), dst)
	require.NoError(t, err, "Failed to parse response: %s", resp.Body.String())
}

// ContextWithTimeout cria um contexto com timeout para testes
func ContextWithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// CheckError verifica se um erro contém uma mensagem específica
func CheckError(t *testing.T, err error, message string) {
	require.Error(t, err, "Expected an error but got nil")
	require.Contains(t, err.Error(), message, "Error message does not contain expected text")
}

// RequireHTTPStatus verifica o status HTTP da resposta
func RequireHTTPStatus(t *testing.T, resp *httptest.ResponseRecorder, status int) {
	require.Equal(t, status, resp.Code, "Expected HTTP status %d but got %d, body: %s",
		status, resp.Code, resp.Body.String())
}

// RequireJSONContentType verifica se o Content-Type da resposta é JSON
func RequireJSONContentType(t *testing.T, resp *httptest.ResponseRecorder) {
	contentType := resp.Header().Get("Content-Type")
	require.Contains(t, contentType, "application/json",
		"Expected Content-Type to contain application/json but got %s", contentType)
}
