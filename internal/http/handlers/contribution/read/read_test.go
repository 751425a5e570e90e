package read

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/conference-registry/internal/http/middlewarectx"
	"github.com/magabrotheeeer/conference-registry/internal/models"
	"github.com/magabrotheeeer/conference-registry/internal/registration"
)

// Мок сервиса с методом Read
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Read(ctx context.Context, userUID string, id int) (*models.ContributionInfo, error) {
	args := m.Called(ctx, userUID, id)
	if res := args.Get(0); res != nil {
		return res.(*models.ContributionInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestReadHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		idParam        string
		userUID        string
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:    "успешное чтение доклада",
			idParam: "123",
			userUID: "user-uuid",
			setupMock: func(m *ServiceMock) {
				m.On("Read", mock.Anything, "user-uuid", 123).
					Return(&models.ContributionInfo{
						Contribution: models.Contribution{
							ID:      123,
							Title:   "Tachyonic antitelephones",
							Created: time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC),
						},
						RegistrationPeriod: registration.PeriodLate,
						RegistrationFee:    1200,
					}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"registration_period":"Late"`,
		},
		{
			name:           "некорректный id в URL",
			idParam:        "abc",
			userUID:        "user-uuid",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"error":"failed to decode id from url"`,
		},
		{
			name:           "пользователь не авторизован",
			idParam:        "123",
			userUID:        "",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `"error":"unauthorized"`,
		},
		{
			name:    "доклад не найден или чужой",
			idParam: "777",
			userUID: "user-uuid",
			setupMock: func(m *ServiceMock) {
				m.On("Read", mock.Anything, "user-uuid", 777).
					Return(nil, models.ErrContributionNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantBody:       models.ErrContributionNotFound.Error(),
		},
		{
			name:    "ошибка сервиса чтения",
			idParam: "777",
			userUID: "user-uuid",
			setupMock: func(m *ServiceMock) {
				m.On("Read", mock.Anything, "user-uuid", 777).
					Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `"error":"could not read contribution"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setupMock(serviceMock)

			handler := New(newNoopLogger(), serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/contributions/"+tt.idParam, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.idParam)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.wantBody),
				"response body should contain %s, got %s", tt.wantBody, w.Body.String())
			serviceMock.AssertExpectations(t)
		})
	}
}
