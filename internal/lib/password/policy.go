package password

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MinLength — минимально допустимая длина пароля.
const MinLength = 8

// Ошибки политики паролей. Текст предназначен для показа пользователю.
var (
	ErrTooShort    = fmt.Errorf("password must be at least %d characters long", MinLength)
	ErrNumericOnly = errors.New("password cannot be entirely numeric")
	ErrTooCommon   = errors.New("password is too common")
	ErrLowEntropy  = errors.New("password is too simple")
)

// commonPasswords — часто используемые пароли, запрещённые к регистрации.
// Список намеренно короткий: полноценный словарь здесь не нужен, важно
// отсечь самые ходовые варианты.
var commonPasswords = map[string]struct{}{
	"password":   {},
	"password1":  {},
	"12345678":   {},
	"123456789":  {},
	"qwerty123":  {},
	"qwertyuiop": {},
	"iloveyou":   {},
	"heavymetal": {},
	"letmein1":   {},
	"football":   {},
	"baseball":   {},
	"superman":   {},
	"sunshine":   {},
	"princess":   {},
	"dragon123":  {},
}

// Validate проверяет пароль на соответствие политике: минимальная длина,
// запрет чисто числовых паролей, запрет ходовых паролей и паролей,
// состоящих почти из одного повторяющегося символа.
//
// Возвращает nil, если пароль допустим, иначе — одну из ошибок политики.
func Validate(password string) error {
	if len(password) < MinLength {
		return ErrTooShort
	}
	if isNumericOnly(password) {
		return ErrNumericOnly
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return ErrTooCommon
	}
	if isLowEntropy(password) {
		return ErrLowEntropy
	}
	return nil
}

func isNumericOnly(password string) bool {
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isLowEntropy отсекает пароли вида "a1111111": один символ занимает
// три четверти пароля и больше.
func isLowEntropy(password string) bool {
	counts := make(map[rune]int)
	total := 0
	for _, r := range strings.ToLower(password) {
		counts[r]++
		total++
	}
	for _, n := range counts {
		if n*4 >= total*3 {
			return true
		}
	}
	return false
}
