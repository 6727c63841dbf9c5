package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celebnet/backend/internal/shared/identity"
)

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogging_RequestFields(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogging(jsonLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/celebrities/x", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http_request", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/celebrities/x", entry["path"])
	assert.Equal(t, float64(404), entry["status"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Contains(t, entry, "duration_ms")
	assert.NotContains(t, entry, "user_id")
}

func TestLogging_IncludesAuthenticatedUser(t *testing.T) {
	var buf bytes.Buffer
	userID := uuid.New()
	auth := NewAuthMiddleware(
		fakeVerifier{id: identity.Identity{UserID: userID, Role: identity.RoleFan}},
		fakeUsers{exists: true}, nil)

	h := NewLogging(jsonLogger(&buf))(auth.RequireAuth(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/follows", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, userID.String(), entry["user_id"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	h := NewRecovery(jsonLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/celebrities", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")
}
