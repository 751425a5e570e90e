// Package auth содержит логику бизнес-уровня для работы с учётными записями:
// регистрацию пользователей и суперпользователей, аутентификацию и
// валидацию JWT.
//
// Пароль в открытом виде нигде не сохраняется и не логируется: он проходит
// проверку политики и сразу хэшируется. Любая неудачная аутентификация
// возвращает одну и ту же ошибку, не раскрывая, существует ли пользователь.
package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/conference-registry/internal/lib/email"
	"github.com/magabrotheeeer/conference-registry/internal/lib/jwt"
	"github.com/magabrotheeeer/conference-registry/internal/lib/password"
	"github.com/magabrotheeeer/conference-registry/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по нормализованному email
	// или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, аутентификацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя: проверяет и нормализует email,
// прогоняет пароль через политику, хэширует его и сохраняет запись.
// Возвращает UID созданного пользователя.
func (s *AuthService) Register(ctx context.Context, rawEmail, name, rawPassword string) (string, error) {
	return s.register(ctx, rawEmail, name, rawPassword, false)
}

// RegisterSuperuser — Register с принудительной установкой флагов
// is_staff и is_superuser.
func (s *AuthService) RegisterSuperuser(ctx context.Context, rawEmail, name, rawPassword string) (string, error) {
	return s.register(ctx, rawEmail, name, rawPassword, true)
}

func (s *AuthService) register(ctx context.Context, rawEmail, name, rawPassword string, superuser bool) (string, error) {
	if rawEmail == "" {
		return "", models.ErrMissingEmail
	}
	if !email.Validate(rawEmail) {
		return "", models.ErrInvalidEmail
	}
	if err := password.Validate(rawPassword); err != nil {
		return "", fmt.Errorf("%w: %s", models.ErrWeakPassword, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		UUID:         uuid.New().String(),
		Email:        email.Normalize(rawEmail),
		Name:         name,
		PasswordHash: hashed,
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пару email+пароль и генерирует JWT.
// Все причины отказа сводятся к models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, rawEmail, rawPassword string) (token, role string, err error) {
	if rawEmail == "" || rawPassword == "" {
		return "", "", models.ErrInvalidCredentials
	}
	user, err := s.users.GetUserByEmail(ctx, email.Normalize(rawEmail))
	if err != nil {
		return "", "", models.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", "", models.ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", models.ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Email, user.Role(), user.UUID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role(), nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе,
// роль и признак валидности.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, string, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, "", false, err
	}
	user := &models.User{
		Email: claims.Email,
		UUID:  claims.UserUID,
	}
	return user, claims.Role, true, nil
}
