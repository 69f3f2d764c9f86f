package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reelpop-inc/reelpop/internal/infrastructure/auth"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/config"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/migration"
	sharedConfig "github.com/reelpop-inc/reelpop/internal/shared/config"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

const testJWTSecret = "container-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server:     sharedConfig.ServerConfig{Mode: "test", SiteURL: "http://localhost:3000"},
		Auth:       sharedConfig.AuthConfig{JWTSecret: testJWTSecret},
		Plans:      sharedConfig.PlansConfig{FreeLimit: 3, BasicLimit: 30, ProLimit: -1},
		Generation: sharedConfig.GenerationConfig{UseMock: true, DownloadTimeout: 5},
		RateLimit: sharedConfig.RateLimitConfig{
			Enabled:  true,
			Generate: sharedConfig.RateLimitRule{Limit: 5, Window: 60},
			Checkout: sharedConfig.RateLimitRule{Limit: 10, Window: 60},
			General:  sharedConfig.RateLimitRule{Limit: 60, Window: 60},
		},
	}
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migration.NewManagerWithStrategy(migration.NewGormAutoMigrateStrategy()).Migrate(db))

	c, err := NewContainer(context.Background(), db, testConfig(), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(c.Shutdown)
	c.SetupRoutes()
	return c.Engine()
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Email: userID + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func do(engine *gin.Engine, method, path, authz string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestContainer_PublicRoutes(t *testing.T) {
	engine := newTestServer(t)

	assert.Equal(t, nethttp.StatusOK, do(engine, nethttp.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, nethttp.StatusUnauthorized, do(engine, nethttp.MethodGet, "/api/subscription", "", nil).Code)

	// no webhook secret configured: every delivery is rejected
	w := do(engine, nethttp.MethodPost, "/api/stripe/webhook", "", map[string]string{"id": "evt_1"})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
}

func TestContainer_GenerationFlow(t *testing.T) {
	engine := newTestServer(t)
	authz := bearer(t, "user-1")

	w := do(engine, nethttp.MethodPost, "/api/auth/ensure-subscription", authz, nil)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())

	w = do(engine, nethttp.MethodPost, "/api/generate", authz, map[string]any{
		"image_urls":   []string{"https://cdn.example.com/mug.png"},
		"template":     "showcase",
		"product_name": "Mug",
	})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())

	var submitted struct {
		Data struct {
			TaskID    string  `json:"task_id"`
			ProjectID *string `json:"project_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &submitted))
	require.NotEmpty(t, submitted.Data.TaskID)
	require.NotNil(t, submitted.Data.ProjectID)

	w = do(engine, nethttp.MethodGet, "/api/generate/"+submitted.Data.TaskID, authz, nil)
	assert.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())

	w = do(engine, nethttp.MethodGet, "/api/generate/"+submitted.Data.TaskID, bearer(t, "user-2"), nil)
	assert.Equal(t, nethttp.StatusForbidden, w.Code)

	w = do(engine, nethttp.MethodGet, "/api/subscription", authz, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"videos_used":1`)

	w = do(engine, nethttp.MethodGet, "/api/subscription/limit", authz, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"current":1`)

	w = do(engine, nethttp.MethodGet, "/api/projects/"+*submitted.Data.ProjectID, authz, nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
}

func TestNewContainer_RejectsPlaceholderSecretInProduction(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Mode = "release"
	cfg.Auth.JWTSecret = config.DefaultJWTSecret

	c, err := NewContainer(context.Background(), nil, cfg, logger.NewNop())
	assert.Error(t, err)
	assert.Nil(t, c)
}
