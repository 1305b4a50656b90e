package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agile-ai-hub/intake-api/config"
	"github.com/agile-ai-hub/intake-api/internal/handlers"
	"github.com/agile-ai-hub/intake-api/internal/middleware"
	"github.com/agile-ai-hub/intake-api/internal/models"
	"github.com/agile-ai-hub/intake-api/internal/services"
	apperrors "github.com/agile-ai-hub/intake-api/pkg/errors"
	"github.com/agile-ai-hub/intake-api/pkg/notion"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const intakePath = "/api/notion-intake"

// MockIntakeService implements IntakeServiceInterface for testing
type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) Submit(ctx context.Context, req *models.IntakeRequest) (*models.IntakeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IntakeResponse), args.Error(1)
}

// MockHTTPClient stands in for the outbound transport in end-to-end tests
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Get(url string) (*http.Response, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	args := m.Called(url, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func newRouter(service services.IntakeServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewIntakeHandler(service)

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Any(intakePath, middleware.BodySizeLimitMiddleware(1024), handler.Intake)
	return router
}

func doRequest(router *gin.Engine, method, body string) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, intakePath, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.IntakeResponse {
	t.Helper()
	var resp models.IntakeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestIntakeHandler_Success(t *testing.T) {
	mockService := new(MockIntakeService)
	router := newRouter(mockService)

	mockService.On("Submit", mock.Anything, mock.MatchedBy(func(req *models.IntakeRequest) bool {
		return req.Name == "Jane" && req.Email == "jane@x.com" && req.Message == "Hi" && req.Source == nil
	})).Return(&models.IntakeResponse{OK: true}, nil).Once()

	w := doRequest(router, http.MethodPost, `{"name":"Jane","email":"jane@x.com","message":"Hi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestIntakeHandler_MethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			mockService := new(MockIntakeService)
			router := newRouter(mockService)

			w := doRequest(router, method, `{"name":"Jane"}`)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, "POST", w.Header().Get("Allow"))
			assert.Equal(t, models.IntakeResponse{OK: false, Error: "Method Not Allowed"}, decode(t, w))
			mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		})
	}
}

func TestIntakeHandler_EmptyBodyIsEmptySubmission(t *testing.T) {
	mockService := new(MockIntakeService)
	router := newRouter(mockService)

	mockService.On("Submit", mock.Anything, &models.IntakeRequest{}).Return(&models.IntakeResponse{OK: true}, nil).Once()

	w := doRequest(router, http.MethodPost, "")

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestIntakeHandler_UndecodableBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: "{invalid-json"},
		{name: "wrong field type", body: `{"name":42}`},
		{name: "array instead of object", body: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockIntakeService)
			router := newRouter(mockService)

			w := doRequest(router, http.MethodPost, tt.body)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.OK)
			assert.NotEmpty(t, resp.Error)
			assert.NotEqual(t, "Invalid request body", resp.Error)
			mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		})
	}
}

func TestIntakeHandler_BodyTooLarge(t *testing.T) {
	mockService := new(MockIntakeService)
	router := newRouter(mockService)

	w := doRequest(router, http.MethodPost, `{"message":"`+strings.Repeat("x", 2048)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.False(t, decode(t, w).OK)
	mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestIntakeHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing configuration",
			err:            apperrors.MissingConfigurationError("NOTION_TOKEN / NOTION_DATABASE_ID"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Missing NOTION_TOKEN / NOTION_DATABASE_ID",
		},
		{
			name:           "upstream rejection",
			err:            &notion.APIError{StatusCode: http.StatusBadRequest, Body: `{"object":"error","code":"validation_error"}`},
			expectedStatus: http.StatusBadGateway,
			expectedError:  `{"object":"error","code":"validation_error"}`,
		},
		{
			name:           "unexpected error",
			err:            errors.New("failed to call notion api: connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to call notion api: connection reset",
		},
		{
			name:           "unexpected error without message",
			err:            errors.New(""),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockIntakeService)
			router := newRouter(mockService)
			mockService.On("Submit", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := doRequest(router, http.MethodPost, `{"name":"Jane"}`)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, models.IntakeResponse{OK: false, Error: tt.expectedError}, decode(t, w))
		})
	}
}

func TestIntakeHandler_PanicBecomesServerError(t *testing.T) {
	mockService := new(MockIntakeService)
	router := newRouter(mockService)
	mockService.On("Submit", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic(errors.New("nil map write"))
	}).Return(nil, nil)

	w := doRequest(router, http.MethodPost, `{}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, models.IntakeResponse{OK: false, Error: "nil map write"}, decode(t, w))
}

// End-to-end through the real service with a mocked outbound transport.

func e2eRouter(cfg config.NotionConfig, httpClient *MockHTTPClient) *gin.Engine {
	return newRouter(services.NewIntakeService(cfg, httpClient))
}

func TestIntake_EndToEnd_FullSubmission(t *testing.T) {
	httpClient := new(MockHTTPClient)
	router := e2eRouter(config.NotionConfig{Token: "secret_abc", DatabaseID: "db-123"}, httpClient)

	var sent map[string]any
	httpClient.On("Do", mock.Anything).Run(func(args mock.Arguments) {
		body, _ := io.ReadAll(args.Get(0).(*http.Request).Body)
		_ = json.Unmarshal(body, &sent)
	}).Return(&http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBufferString(`{}`))}, nil).Once()

	w := doRequest(router, http.MethodPost, `{"name":"Jane","email":"jane@x.com","message":"Hi"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	props := sent["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"email": "jane@x.com"}, props["Email"])
	assert.Equal(t, map[string]any{"title": []any{map[string]any{"text": map[string]any{"content": "Jane"}}}}, props["Name"])
	assert.Len(t, sent["children"], 1)
}

func TestIntake_EndToEnd_EmptySubmission(t *testing.T) {
	httpClient := new(MockHTTPClient)
	router := e2eRouter(config.NotionConfig{Token: "secret_abc", DatabaseID: "db-123"}, httpClient)

	var sent map[string]any
	httpClient.On("Do", mock.Anything).Run(func(args mock.Arguments) {
		body, _ := io.ReadAll(args.Get(0).(*http.Request).Body)
		_ = json.Unmarshal(body, &sent)
	}).Return(&http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBufferString(`{}`))}, nil).Once()

	w := doRequest(router, http.MethodPost, `{}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	props := sent["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"email": nil}, props["Email"])
	assert.Equal(t, map[string]any{"title": []any{map[string]any{"text": map[string]any{"content": "New lead"}}}}, props["Name"])
	assert.Empty(t, sent["children"])
}

func TestIntake_EndToEnd_UpstreamRateLimited(t *testing.T) {
	httpClient := new(MockHTTPClient)
	router := e2eRouter(config.NotionConfig{Token: "secret_abc", DatabaseID: "db-123"}, httpClient)

	httpClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusTooManyRequests,
		Body:       io.NopCloser(bytes.NewBufferString("rate limited")),
	}, nil).Once()

	w := doRequest(router, http.MethodPost, `{"name":"Jane"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"rate limited"}`, w.Body.String())
	httpClient.AssertNumberOfCalls(t, "Do", 1)
}

func TestIntake_EndToEnd_MissingSecretsMakeNoOutboundCall(t *testing.T) {
	httpClient := new(MockHTTPClient)
	router := e2eRouter(config.NotionConfig{Token: "secret_abc"}, httpClient)

	w := doRequest(router, http.MethodPost, `{"name":"Jane"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Missing NOTION_TOKEN / NOTION_DATABASE_ID"}`, w.Body.String())
	httpClient.AssertNumberOfCalls(t, "Do", 0)
}
