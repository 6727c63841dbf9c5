package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/celebnet/backend/internal/modules/auth/application"
	"github.com/celebnet/backend/internal/modules/auth/domain"
	auth_http "github.com/celebnet/backend/internal/modules/auth/interfaces/http"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, creds application.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, creds application.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestSignUpHandler_Success(t *testing.T) {
	svc := new(MockAuthService)
	h := auth_http.NewAuthHandler(svc, nil)
	creds := application.Credentials{Username: "alice", Password: "pw"}

	svc.On("SignUp", mock.Anything, creds).Return("tok", nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", jsonBody(t, creds))
	w := httptest.NewRecorder()
	h.SignUp(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"accessToken":"tok"}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestSignUpHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"conflict", domain.ErrUserAlreadyExists, http.StatusConflict, `{"error":"Username already exists"}`},
		{"invalid", domain.ErrInvalidInput, http.StatusBadRequest, `{"error":"username and password are required"}`},
		{"password too long", domain.ErrPasswordTooLong, http.StatusBadRequest, `{"error":"password must be at most 72 bytes"}`},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			h := auth_http.NewAuthHandler(svc, nil)
			svc.On("SignUp", mock.Anything, mock.Anything).Return("", tt.err).Once()

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"username":"a","password":"b"}`))
			w := httptest.NewRecorder()
			h.SignUp(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestSignUpHandler_InvalidBody(t *testing.T) {
	svc := new(MockAuthService)
	h := auth_http.NewAuthHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.SignUp(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
}

func TestSignInHandler(t *testing.T) {
	svc := new(MockAuthService)
	h := auth_http.NewAuthHandler(svc, nil)

	svc.On("SignIn", mock.Anything, application.Credentials{Username: "alice", Password: "pw"}).Return("tok", nil).Once()
	svc.On("SignIn", mock.Anything, application.Credentials{Username: "alice", Password: "bad"}).Return("", domain.ErrInvalidCredentials).Once()

	w := httptest.NewRecorder()
	h.SignIn(w, httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(`{"username":"alice","password":"pw"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"accessToken":"tok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.SignIn(w, httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(`{"username":"alice","password":"bad"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.SignIn(w, httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(`[]`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
