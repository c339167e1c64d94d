package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mediroute-service/internal/api/dto"
	"mediroute-service/internal/ports"
	"mediroute-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestEmergencies(t *testing.T) {
	rec := httptest.NewRecorder()
	Emergencies(rec, httptest.NewRequest(http.MethodGet, "/emergencies", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListEmergenciesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Emergencies, 6)
	assert.Equal(t, dto.EmergencyTypeResponse{ID: "accident", Label: "Accident"}, res.Emergencies[0])
	assert.Equal(t, "Heart Attack / Cardiac Arrest", res.Emergencies[1].Label)
}

func TestChat(t *testing.T) {
	h := &ChatHandler{}

	rec := httptest.NewRecorder()
	h.Chat(rec, httptest.NewRequest(http.MethodPost, "/chat",
		strings.NewReader(`{"emergency_type":"stroke","message":"what now?"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var res dto.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Contains(t, res.Reply, "FAST")

	rec = httptest.NewRecorder()
	h.Chat(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"emergency_type":"stroke","message":"  "}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubNotifier struct {
	alerts []ports.SOSAlert
	err    error
}

func (s *stubNotifier) Notify(_ context.Context, a ports.SOSAlert) error {
	s.alerts = append(s.alerts, a)
	return s.err
}

func TestSOS(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("kafka unreachable")}
	svc, err := services.NewSOSService(notifier)
	require.NoError(t, err)
	h := &SOSHandler{Service: svc}

	rec := httptest.NewRecorder()
	h.Send(rec, httptest.NewRequest(http.MethodPost, "/sos",
		strings.NewReader(`{"confirmed":true,"emergency_type":"bleeding","latitude":48.8566,"longitude":2.3522}`)))

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	var res dto.SOSResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "sent", res.Status)
	assert.True(t, res.Precise)
	assert.Equal(t, "48.8566, 2.3522", res.Location)
	assert.NotEmpty(t, res.ID)
	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, "bleeding", notifier.alerts[0].EmergencyType)
}

func TestSOSRejected(t *testing.T) {
	notifier := &stubNotifier{}
	svc, err := services.NewSOSService(notifier)
	require.NoError(t, err)
	h := &SOSHandler{Service: svc}

	rec := httptest.NewRecorder()
	h.Send(rec, httptest.NewRequest(http.MethodPost, "/sos", strings.NewReader(`{"emergency_type":"heart"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Send(rec, httptest.NewRequest(http.MethodPost, "/sos", strings.NewReader(`{"confirmed":true,"latitude":200,"longitude":0}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, body := range []string{
		`{"confirmed":true,"latitude":40.7}`,
		`{"confirmed":true,"longitude":-74.0,"address":"5th Ave"}`,
	} {
		rec = httptest.NewRecorder()
		h.Send(rec, httptest.NewRequest(http.MethodPost, "/sos", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "latitude and longitude must be set together")
	}

	assert.Empty(t, notifier.alerts)
}
