package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "triage_queue/docs"
	"triage_queue/internal/models"
	"triage_queue/internal/queue"
	"triage_queue/internal/response"
	"triage_queue/internal/storage"
	"triage_queue/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type brokenStore struct{}

var errStorageDown = errors.New("storage is down")

func (brokenStore) CreatePatient(context.Context, *models.Patient) error { return errStorageDown }
func (brokenStore) UpdateStatus(context.Context, uint, models.Status) (*models.Patient, error) {
	return nil, errStorageDown
}
func (brokenStore) ListByStatus(context.Context, models.Status, storage.Order, int) ([]models.Patient, error) {
	return nil, errStorageDown
}
func (brokenStore) FindByCodeAndName(context.Context, string, string) (*models.Patient, error) {
	return nil, errStorageDown
}

func setupRouter(t *testing.T, store queue.Store) (*gin.Engine, *ws.Hub) {
	t.Helper()
	log := zerolog.Nop()

	hub := ws.NewHub(16, time.Second, log)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	svc := queue.NewService(store, hub, log)
	return NewRouter(New(svc, log), hub, []string{"*"}, log), hub
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPing(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStore())

	w := doJSON(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"active"}`, w.Body.String())
}

func TestAddPatientValidation(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStore())

	tests := []struct {
		name string
		body any
	}{
		{"без имени", map[string]any{"severity": 3}},
		{"без тяжести", map[string]any{"name": "John"}},
		{"отрицательная тяжесть", map[string]any{"name": "John", "severity": -1}},
		{"имя из пробелов", map[string]any{"name": "   ", "severity": 1}},
		{"тяжесть строкой", map[string]any{"name": "John", "severity": "high"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/admin/add_patient", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Code)
		})
	}
}

func TestAddPatientZeroSeverity(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStore())

	w := doJSON(r, http.MethodPost, "/admin/add_patient", map[string]any{"name": "John", "severity": 0})
	require.Equal(t, http.StatusOK, w.Code)

	var p models.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 0, p.Severity)
}

func TestUpdatePatientStatusErrors(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStore())

	w := doJSON(r, http.MethodPut, "/admin/update_patient_status/abc", map[string]any{"status": "treated"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PATIENT_ID", decodeError(t, w).Code)

	w = doJSON(r, http.MethodPut, "/admin/update_patient_status/0", map[string]any{"status": "treated"})
	assert.Equal(t, "INVALID_PATIENT_ID", decodeError(t, w).Code)

	w = doJSON(r, http.MethodPut, "/admin/update_patient_status/5", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Code)

	w = doJSON(r, http.MethodPut, "/admin/update_patient_status/5", map[string]any{"status": "treated"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PATIENT_NOT_FOUND", decodeError(t, w).Code)

	w = doJSON(r, http.MethodPost, "/admin/add_patient", map[string]any{"name": "John", "severity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/admin/update_patient_status/1", map[string]any{"status": "discharged"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", decodeError(t, w).Code)
}

func TestWaitlistErrors(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStore())

	w := doJSON(r, http.MethodGet, "/patient/waitlist?code=ABC", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Code)

	w = doJSON(r, http.MethodGet, "/patient/waitlist?code=ABC&name=Nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PATIENT_NOT_FOUND", decodeError(t, w).Code)
}

func TestStorageFailureIsReportedAsDBError(t *testing.T) {
	r, hub := setupRouter(t, brokenStore{})

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/admin/add_patient", map[string]any{"name": "John", "severity": 1}},
		{http.MethodPut, "/admin/update_patient_status/1", map[string]any{"status": "treated"}},
		{http.MethodGet, "/admin/patients_in_line", nil},
		{http.MethodGet, "/admin/patients_in_treatment", nil},
		{http.MethodGet, "/admin/patients_treated", nil},
		{http.MethodGet, "/patient/waitlist?code=ABC&name=John", nil},
	}
	for _, req := range requests {
		w := doJSON(r, req.method, req.path, req.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, req.path)
		body := decodeError(t, w)
		assert.Equal(t, "DB_ERROR", body.Code, req.path)
		assert.Contains(t, body.Details, errStorageDown.Error())
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestEmptyListsAreArrays(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStore())

	for _, path := range []string{"/admin/patients_in_line", "/admin/patients_in_treatment", "/admin/patients_treated"} {
		w := doJSON(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}
}

func TestSwaggerDoc(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStore())

	w := doJSON(r, http.MethodGet, "/swagger/doc.json", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/admin/add_patient")
}
