package models

import "errors"

// Доменные ошибки. Проверяются через errors.Is по всей цепочке
// storage → service → handler и отображаются на HTTP-статусы на границе.
var (
	// ErrMissingEmail возвращается при регистрации без адреса электронной почты.
	ErrMissingEmail = errors.New("email address is required")

	// ErrInvalidEmail возвращается, если адрес не проходит проверку формата.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword возвращается, если пароль не проходит политику надёжности.
	ErrWeakPassword = errors.New("password does not meet requirements")

	// ErrEmailTaken возвращается при попытке регистрации с занятым адресом.
	ErrEmailTaken = errors.New("email address already registered")

	// ErrInvalidCredentials возвращается при любой неудачной аутентификации.
	// Текст намеренно одинаковый: не раскрываем, существует ли пользователь.
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")

	// ErrDuplicateAuthorship возвращается при нарушении уникальности пары
	// (author, contribution); создание доклада откатывается целиком.
	ErrDuplicateAuthorship = errors.New("author already listed on this contribution")

	// ErrContributionNotFound возвращается, если доклад не существует либо
	// принадлежит другому пользователю. Случаи неразличимы для вызывающего.
	ErrContributionNotFound = errors.New("contribution not found")

	// ErrAffiliationNotFound возвращается при ссылке на несуществующую аффилиацию.
	ErrAffiliationNotFound = errors.New("affiliation not found")
)
