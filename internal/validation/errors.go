// Package validation — правила согласованности проектов, назначений и учёта часов.
// Все проверки чистые: на вход значения формы и read-only lookups,
// на выход либо проверенные значения, либо список ошибок по полям.
package validation

import "strings"

// NonField — ключ для ошибок, не привязанных к конкретному полю
const NonField = "__all__"

const msgRequired = "Este campo es obligatorio."

type FieldError struct {
	Field   string
	Message string
}

// Errors — упорядоченный список ошибок; nil означает «всё в порядке»
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// For — все сообщения для поля в порядке добавления
func (e Errors) For(field string) []string {
	var out []string
	for _, fe := range e {
		if fe.Field == field {
			out = append(out, fe.Message)
		}
	}
	return out
}

func (e Errors) with(field, msg string) Errors {
	return append(e, FieldError{Field: field, Message: msg})
}

// InvalidChoice — ссылка на несуществующую запись (клиент, проект, администратор)
func InvalidChoice(field string) Errors {
	return Errors{}.with(field, msgInvalidChoice)
}
