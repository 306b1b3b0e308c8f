package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout — формат <input type="date">
const DateLayout = "2006-01-02"

// DisplayDateLayout — dd/mm/yyyy в сообщениях об ошибках
const DisplayDateLayout = "02/01/2006"

const (
	msgInvalidDate   = "Introduce una fecha válida."
	msgInvalidNumber = "Introduce un número válido."
	msgInvalidChoice = "Selecciona una opción válida."
	msgTooManyDigits = "Asegúrese de que no haya más de %d dígitos antes del punto decimal."
)

// целые разряды колонок decimal(5,2) и decimal(10,2)
const (
	hoursIntDigits  = 3
	budgetIntDigits = 8
)

// DateOnly отбрасывает время и зону: сравниваем только календарные даты
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(raw string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func parseDecimal(raw string) (decimal.NullDecimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, true
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(d.Round(2)), true
}

// fitsDigits — |d| < 10^intDigits, иначе колонка переполнится
func fitsDigits(d decimal.Decimal, intDigits int32) bool {
	return d.Abs().LessThan(decimal.New(1, intDigits))
}

func tooManyDigits(intDigits int32) string {
	return fmt.Sprintf(msgTooManyDigits, intDigits)
}

func parseID(raw string) (uint, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
