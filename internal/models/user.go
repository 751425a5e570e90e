// Package models содержит доменные структуры системы регистрации на конференцию:
// пользователей, доклады (contributions), авторов, авторства и аффилиации,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Идентичность пользователя — нормализованный (приведённый к нижнему
// регистру) адрес электронной почты, уникальный в пределах системы.
type User struct {
	UUID         string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (нормализованная, уникальная)
	Name         string    // Отображаемое имя
	PasswordHash string    // Хэш пароля пользователя
	IsActive     bool      // Активна ли учётная запись
	IsStaff      bool      // Доступ к административным операциям
	IsSuperuser  bool      // Полные права
	Created      time.Time // Дата создания учётной записи
}

// Role возвращает роль пользователя для JWT-claims: admin для суперпользователя,
// иначе user.
func (u *User) Role() string {
	if u.IsSuperuser {
		return "admin"
	}
	return "user"
}
