package http_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/celebnet/backend/internal/modules/pdf/domain"
	pdf_http "github.com/celebnet/backend/internal/modules/pdf/interfaces/http"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) RenderProfile(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func serve(h *pdf_http.PDFHandler, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /celebrities/{id}/pdf", h.Export)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestExport(t *testing.T) {
	svc := new(MockExportService)
	h := pdf_http.NewPDFHandler(svc, nil)
	id := uuid.New()
	svc.On("RenderProfile", mock.Anything, id).
		Return(&domain.Document{Filename: "Taylor_Swift_profile.pdf", Content: []byte("%PDF-1.4")}, nil).Once()

	w := serve(h, "/celebrities/"+id.String()+"/pdf")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=Taylor_Swift_profile.pdf`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "8", w.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrCelebrityNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: chrome crashed", domain.ErrRenderFailed), http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		svc := new(MockExportService)
		h := pdf_http.NewPDFHandler(svc, nil)
		svc.On("RenderProfile", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

		w := serve(h, "/celebrities/"+uuid.NewString()+"/pdf")
		assert.Equal(t, tt.status, w.Code, tt.err.Error())
		assert.NotContains(t, w.Body.String(), "chrome crashed")
	}
}

func TestExport_BadID(t *testing.T) {
	svc := new(MockExportService)
	h := pdf_http.NewPDFHandler(svc, nil)

	w := serve(h, "/celebrities/abc/pdf")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RenderProfile", mock.Anything, mock.Anything)
}

func TestExport_ClientCanceled(t *testing.T) {
	var logs bytes.Buffer
	svc := new(MockExportService)
	h := pdf_http.NewPDFHandler(svc, slog.New(slog.NewJSONHandler(&logs, nil)))
	svc.On("RenderProfile", mock.Anything, mock.Anything).Return(nil, context.Canceled).Once()

	w := serve(h, "/celebrities/"+uuid.NewString()+"/pdf")
	assert.Equal(t, 499, w.Code)
	assert.NotContains(t, logs.String(), `"level":"ERROR"`)
}
