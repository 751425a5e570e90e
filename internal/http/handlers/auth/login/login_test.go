package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/conference-registry/internal/models"
)

// Мок сервиса с методом Login
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name: "успешный вход",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "sup3rsecret",
			},
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, "user1@example.com", "sup3rsecret").
					Return("jwt-token-123", "user", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"token":"jwt-token-123"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "{not json",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"error":"invalid request body"`,
		},
		{
			name: "отсутствует пароль",
			requestBody: Request{
				Email: "user1@example.com",
			},
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody:       `field Password is a required field`,
		},
		{
			name: "неверные учетные данные",
			requestBody: Request{
				Email:    "user1@example.com",
				Password: "wrongpassword",
			},
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, "user1@example.com", "wrongpassword").
					Return("", "", models.ErrInvalidCredentials).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       models.ErrInvalidCredentials.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			handler := New(newNoopLogger(), authMock)

			var body bytes.Buffer
			if s, ok := tt.requestBody.(string); ok {
				body.WriteString(s)
			} else {
				assert.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))
			}

			req := httptest.NewRequest(http.MethodPost, "/login", &body)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.wantBody),
				"response body should contain %s, got %s", tt.wantBody, w.Body.String())
			authMock.AssertExpectations(t)
		})
	}
}
