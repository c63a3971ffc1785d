package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"triage_queue/internal/models"
	"triage_queue/internal/queue"
	"triage_queue/internal/storage"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func expectUpdate(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	typ, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, typ)
	assert.Equal(t, queue.UpdateToken, string(msg))
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err, "лишних уведомлений быть не должно")
	var netErr interface{ Timeout() bool }
	if assert.ErrorAs(t, err, &netErr) {
		assert.True(t, netErr.Timeout())
	}
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func sendJSON(t *testing.T, srv *httptest.Server, method, path, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestPatientLifecycle(t *testing.T) {
	r, hub := setupRouter(t, storage.NewMemoryStore())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	admin := dial(t, srv, "/ws/admin")
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	// Регистрация.
	var john models.Patient
	status := sendJSON(t, srv, http.MethodPost, "/admin/add_patient", `{"name":"John Doe","severity":3}`, &john)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.StatusWaiting, john.Status)
	assert.Regexp(t, `^[A-Z0-9]{3}$`, john.Code)
	expectUpdate(t, admin)

	patient := dial(t, srv, "/ws/patient/"+john.Code)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	var jane models.Patient
	status = sendJSON(t, srv, http.MethodPost, "/admin/add_patient", `{"name":"Jane Roe","severity":2}`, &jane)
	require.Equal(t, http.StatusOK, status)
	expectUpdate(t, admin)
	expectUpdate(t, patient)

	var line []models.PatientWithWaitTime
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/admin/patients_in_line", &line))
	require.Len(t, line, 2)
	assert.Equal(t, john.ID, line[0].ID)
	assert.Equal(t, 1, line[0].PositionInLine)
	assert.Equal(t, 0, line[0].WaitTime)
	assert.Equal(t, jane.ID, line[1].ID)
	assert.Equal(t, 2, line[1].PositionInLine)
	assert.Equal(t, 30, line[1].WaitTime)

	var view models.PatientWithWaitTime
	require.Equal(t, http.StatusOK, getJSON(t, srv, fmt.Sprintf("/patient/waitlist?code=%s&name=Jane%%20Roe", jane.Code), &view))
	assert.Equal(t, 2, view.PositionInLine)
	assert.Equal(t, 30, view.WaitTime)

	// Лечение.
	var updated models.Patient
	status = sendJSON(t, srv, http.MethodPut, fmt.Sprintf("/admin/update_patient_status/%d", john.ID), `{"status":"in_treatment"}`, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.StatusInTreatment, updated.Status)
	expectUpdate(t, admin)
	expectUpdate(t, patient)

	require.Equal(t, http.StatusOK, getJSON(t, srv, fmt.Sprintf("/patient/waitlist?code=%s&name=Jane%%20Roe", jane.Code), &view))
	assert.Equal(t, 1, view.PositionInLine)
	assert.Equal(t, 0, view.WaitTime)

	require.Equal(t, http.StatusOK, getJSON(t, srv, fmt.Sprintf("/patient/waitlist?code=%s&name=John%%20Doe", john.Code), &view))
	assert.Equal(t, models.StatusInTreatment, view.Status)
	assert.Equal(t, 0, view.PositionInLine)
	assert.Equal(t, 0, view.WaitTime)

	var treating []models.Patient
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/admin/patients_in_treatment", &treating))
	require.Len(t, treating, 1)
	assert.Equal(t, john.ID, treating[0].ID)

	// Выписка обоих.
	for _, id := range []uint{john.ID, jane.ID} {
		status = sendJSON(t, srv, http.MethodPut, fmt.Sprintf("/admin/update_patient_status/%d", id), `{"status":"treated"}`, nil)
		require.Equal(t, http.StatusOK, status)
		expectUpdate(t, admin)
		expectUpdate(t, patient)
	}

	var treated []models.Patient
	require.Equal(t, http.StatusOK, getJSON(t, srv, "/admin/patients_treated", &treated))
	require.Len(t, treated, 2)
	assert.Equal(t, jane.ID, treated[0].ID, "новые первыми")
	assert.Equal(t, john.ID, treated[1].ID)

	require.Equal(t, http.StatusOK, getJSON(t, srv, "/admin/patients_in_line", &line))
	assert.Empty(t, line)

	// Ошибочная операция не рассылается.
	status = sendJSON(t, srv, http.MethodPut, "/admin/update_patient_status/999", `{"status":"treated"}`, nil)
	assert.Equal(t, http.StatusNotFound, status)
	expectSilence(t, admin)
}

func TestSubscriberDisconnect(t *testing.T) {
	r, hub := setupRouter(t, storage.NewMemoryStore())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	conn := dial(t, srv, "/ws/admin")
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)

	// Рассылка без подписчиков завершается успешно.
	status := sendJSON(t, srv, http.MethodPost, "/admin/add_patient", `{"name":"John","severity":1}`, nil)
	assert.Equal(t, http.StatusOK, status)
}
