// Package email реализует проверку формата и нормализацию адресов
// электронной почты. Адрес — идентичность пользователя, поэтому формат
// проверяется строже, чем допускает RFC: адрес без точки в домене или
// с пустой локальной частью не принимается.
package email

import (
	"net/mail"
	"strings"
)

// Validate проверяет, что строка является корректным адресом электронной
// почты в форме local@domain с непустой локальной частью и доменом,
// содержащим точку. Возвращает false для адресов с display name и прочих
// форм, которые mail.ParseAddress пропускает.
func Validate(address string) bool {
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return false
	}
	if parsed.Address != address {
		return false
	}

	at := strings.LastIndex(address, "@")
	local, domain := address[:at], address[at+1:]
	if local == "" || domain == "" {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}

// Normalize приводит адрес к каноническому виду: нижний регистр целиком,
// чтобы адреса, отличающиеся только регистром, совпадали как идентичности.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
