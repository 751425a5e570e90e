// Package registration реализует расчёт регистрационного взноса.
//
// Период регистрации (Normal или Late) и сумма взноса — чистые производные
// значения: они пересчитываются при каждом чтении из даты подачи доклада,
// дедлайна и скидки и нигде не хранятся. Перенос дедлайна задним числом
// переклассифицирует уже поданные доклады.
package registration

import "time"

// Периоды регистрации.
const (
	PeriodNormal = "Normal"
	PeriodLate   = "Late"
)

// Базовые ставки взноса по умолчанию.
const (
	DefaultNormalFee = 800
	DefaultLateFee   = 1200
)

// DefaultDeadline — дедлайн регистрации по умолчанию. Подача строго до этой
// даты попадает в период Normal, начиная с неё — в Late.
var DefaultDeadline = time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)

// FeeCalculator выводит период регистрации и сумму взноса из даты подачи
// доклада и назначенной администратором скидки.
type FeeCalculator struct {
	Deadline  time.Time
	NormalFee int
	LateFee   int
}

// NewFeeCalculator возвращает калькулятор со ставками и дедлайном по умолчанию.
func NewFeeCalculator() *FeeCalculator {
	return &FeeCalculator{
		Deadline:  DefaultDeadline,
		NormalFee: DefaultNormalFee,
		LateFee:   DefaultLateFee,
	}
}

// Period возвращает период регистрации для доклада, поданного в момент created.
// Сравниваются календарные даты, а не моменты времени: подача в любой момент
// дня перед дедлайном считается Normal.
func (c *FeeCalculator) Period(created time.Time) string {
	createdDate := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
	if createdDate.Before(c.Deadline) {
		return PeriodNormal
	}
	return PeriodLate
}

// Fee возвращает сумму взноса: базовая ставка периода плюс скидка.
// Скидка знаковая и не ограничена снизу: превышающая ставку скидка даёт
// отрицательный взнос, это не ошибка.
func (c *FeeCalculator) Fee(created time.Time, discount int) (period string, fee int) {
	period = c.Period(created)
	switch period {
	case PeriodNormal:
		fee = c.NormalFee + discount
	default:
		fee = c.LateFee + discount
	}
	return period, fee
}
