package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	customjwt "github.com/magabrotheeeer/conference-registry/internal/lib/jwt"
	"github.com/magabrotheeeer/conference-registry/internal/lib/password"
	"github.com/magabrotheeeer/conference-registry/internal/models"
	"github.com/magabrotheeeer/conference-registry/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(email, role, useruid string) (string, error) {
	args := m.Called(email, role, useruid)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		userName    string
		password    string
		setupMocks  func(r *UserRepoMock)
		wantUserUID string
		wantErr     error
	}{
		{
			name:     "успешная регистрация",
			email:    "test@example.com",
			userName: "Test User",
			password: "sup3rsecret",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.Name == "Test User" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "sup3rsecret" &&
						user.UUID != "" &&
						user.IsActive &&
						!user.IsStaff && !user.IsSuperuser
				})).Return("some-uuid-string", nil).Once()
			},
			wantUserUID: "some-uuid-string",
		},
		{
			name:     "email нормализуется перед сохранением",
			email:    "Test@Example.COM",
			userName: "Test User",
			password: "sup3rsecret",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com"
				})).Return("some-uuid-string", nil).Once()
			},
			wantUserUID: "some-uuid-string",
		},
		{
			name:       "пустой email",
			email:      "",
			userName:   "Test User",
			password:   "sup3rsecret",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    models.ErrMissingEmail,
		},
		{
			name:       "некорректный email",
			email:      "pako",
			userName:   "Test User",
			password:   "sup3rsecret",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    models.ErrInvalidEmail,
		},
		{
			name:       "email без домена",
			email:      "joko@",
			userName:   "Test User",
			password:   "sup3rsecret",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    models.ErrInvalidEmail,
		},
		{
			name:       "пароль только из цифр",
			email:      "test@example.com",
			userName:   "Test User",
			password:   "84651005",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    models.ErrWeakPassword,
		},
		{
			name:       "слишком короткий пароль",
			email:      "test@example.com",
			userName:   "Test User",
			password:   "A_1ku45",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    models.ErrWeakPassword,
		},
		{
			name:       "слишком распространенный пароль",
			email:      "test@example.com",
			userName:   "Test User",
			password:   "heavymetal",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    models.ErrWeakPassword,
		},
		{
			name:     "email уже занят",
			email:    "test@example.com",
			userName: "Test User",
			password: "sup3rsecret",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).
					Return("", models.ErrEmailTaken).Once()
			},
			wantErr: models.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := auth.NewAuthService(repo, jwtMock)

			tt.setupMocks(repo)

			got, err := svc.Register(context.Background(), tt.email, tt.userName, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUserUID, got)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterSuperuser(t *testing.T) {
	repo := new(UserRepoMock)
	jwtMock := new(JwtMakerMock)
	svc := auth.NewAuthService(repo, jwtMock)

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.IsStaff && user.IsSuperuser && user.IsActive
	})).Return("admin-uuid", nil).Once()

	got, err := svc.RegisterSuperuser(context.Background(), "admin@example.com", "Admin", "sup3rsecret")
	assert.NoError(t, err)
	assert.Equal(t, "admin-uuid", got)
	repo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassw0rd"

	hashedPassword, err := password.GetHash(rawPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	testUser := &models.User{
		UUID:         "user-uuid",
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantRole   string
		wantErr    error
	}{
		{
			name:     "успешный вход",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", "test@example.com", "user", "user-uuid").Return("jwt-token-123", nil).Once()
			},
			wantToken: "jwt-token-123",
			wantRole:  "user",
		},
		{
			name:     "email приводится к нижнему регистру перед поиском",
			email:    "Test@Example.COM",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", "test@example.com", "user", "user-uuid").Return("jwt-token-123", nil).Once()
			},
			wantToken: "jwt-token-123",
			wantRole:  "user",
		},
		{
			name:       "пустой email",
			email:      "",
			password:   rawPassword,
			setupMocks: func(_ *UserRepoMock, _ *JwtMakerMock) {},
			wantErr:    models.ErrInvalidCredentials,
		},
		{
			name:       "пустой пароль",
			email:      "test@example.com",
			password:   "",
			setupMocks: func(_ *UserRepoMock, _ *JwtMakerMock) {},
			wantErr:    models.ErrInvalidCredentials,
		},
		{
			name:     "пользователь не найден",
			email:    "nonexistent@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nonexistent@example.com").
					Return(nil, errors.New("user not found")).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "неправильный пароль",
			email:    "test@example.com",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "неактивный пользователь",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				inactive := *testUser
				inactive.IsActive = false
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(&inactive, nil).Once()
			},
			wantErr: models.ErrInvalidCredentials,
		},
		{
			name:     "ошибка генерации токена",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", "test@example.com", "user", "user-uuid").
					Return("", errors.New("token error")).Once()
			},
			wantErr: errors.New("token error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := auth.NewAuthService(repo, jwtMock)

			tt.setupMocks(repo, jwtMock)

			token, role, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, tt.wantRole, role)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	repo := new(UserRepoMock)
	jwtMock := new(JwtMakerMock)
	svc := auth.NewAuthService(repo, jwtMock)

	t.Run("валидный токен", func(t *testing.T) {
		jwtMock.On("ParseToken", "good-token").Return(&customjwt.CustomClaims{
			Email:   "test@example.com",
			Role:    "admin",
			UserUID: "user-uuid",
		}, nil).Once()

		user, role, ok, err := svc.ValidateToken(context.Background(), "good-token")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "admin", role)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Equal(t, "user-uuid", user.UUID)
	})

	t.Run("невалидный токен", func(t *testing.T) {
		jwtMock.On("ParseToken", "bad-token").Return(nil, errors.New("token is invalid")).Once()

		user, _, ok, err := svc.ValidateToken(context.Background(), "bad-token")
		assert.Error(t, err)
		assert.False(t, ok)
		assert.Nil(t, user)
	})

	jwtMock.AssertExpectations(t)
}
