package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakar-academy/academy-api/internal/models"
	"github.com/kalakar-academy/academy-api/internal/service"
)

type fakeContactStore struct {
	insertErr error
	records   []models.ContactRecord
	listErr   error
}

func (f *fakeContactStore) Insert(context.Context, *models.ContactRecord) error {
	return f.insertErr
}

func (f *fakeContactStore) List(context.Context, models.ContactFilter) ([]models.ContactRecord, error) {
	return f.records, f.listErr
}

func TestContactHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewContactHandler(service.NewContactService(&fakeContactStore{}, nil, nil))

	payload := []byte(`{"name":"Ravi Kumar","email":"ravi@example.com","message":"Weekend batches?"}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(payload))

	h.Create(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Contact form submitted successfully!", body["message"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ravi Kumar", data["name"])
	assert.NotEmpty(t, data["contactId"])
}

func TestContactHandlerCreateMissingEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewContactHandler(service.NewContactService(&fakeContactStore{}, nil, nil))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader([]byte(`{"name":"Ravi Kumar"}`)))

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestContactHandlerListPassesFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fakeContactStore{records: []models.ContactRecord{{Name: "Ravi Kumar"}, {Name: "Meena Iyer"}}}
	h := NewContactHandler(service.NewContactService(store, nil, nil))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/contacts?email=ravi&status=new", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["count"])
}
