package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakar-academy/academy-api/pkg/config"
	"github.com/kalakar-academy/academy-api/pkg/database"
)

func TestHealthHandlerReportsDisconnected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	// A pool that has never dialed reports no connection.
	h := NewHealthHandler(database.NewPool(config.DatabaseConfig{}))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/health", nil)

	h.Health(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Kalakar Art Academy API is running", body["message"])
	assert.Equal(t, false, body["databaseConnected"])
}

func TestHealthHandlerReportsConnected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewHealthHandler(database.NewPoolWithDB(sqlx.NewDb(db, "sqlmock")))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/health", nil)

	h.Health(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["databaseConnected"])
}
