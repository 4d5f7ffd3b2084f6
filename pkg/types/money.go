package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidMoney возвращается при некорректном денежном значении
	ErrInvalidMoney = errors.New("types: invalid money value")
)

// Money денежная сумма в центах (копейках)
// Вся денежная арифметика в сервисе целочисленная - никаких float в расчётах,
// чтобы инвариант price == platformFee + instructorAmount выполнялся точно
type Money int64

// NewMoneyFromString парсит сумму из строки вида "100.00" или "85.5"
func NewMoneyFromString(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidMoney)
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	parts := strings.SplitN(s, ".", 2)

	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}

	var cents int64
	if len(parts) == 2 {
		frac := parts[1]
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
		}
	}

	result := Money(whole*100 + cents)
	if negative {
		result = -result
	}
	return result, nil
}

// String форматирует сумму как "100.00"
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Cents возвращает сумму в центах
func (m Money) Cents() int64 {
	return int64(m)
}

// MulRate умножает сумму на ставку (например, комиссию платформы 0.15)
// Ставка задаётся в базисных пунктах (15% = 1500), округление half-up до цента
func (m Money) MulRate(rateBasisPoints int64) Money {
	product := int64(m) * rateBasisPoints
	// Округление half-up: +5000 перед делением на 10000
	if product >= 0 {
		return Money((product + 5000) / 10000)
	}
	return Money(-((-product + 5000) / 10000))
}

// Add возвращает сумму двух значений
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub возвращает разность двух значений
func (m Money) Sub(other Money) Money {
	return m - other
}

// Value реализует driver.Valuer - в БД суммы хранятся как BIGINT в центах
func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan реализует sql.Scanner
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*m = Money(v)
	case []byte:
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidMoney, string(v))
		}
		*m = Money(parsed)
	case nil:
		*m = 0
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidMoney, src)
	}
	return nil
}

// MarshalJSON сериализует сумму как строку "100.00", чтобы клиенты
// не теряли точность на двоичных float
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON принимает как строку "100.00", так и число 100.00 (legacy клиенты)
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := NewMoneyFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
