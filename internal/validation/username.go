package validation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrNameRequired = errors.New("first name and first surname are required")

// UsernameExists — проверка занятости логина в хранилище
type UsernameExists func(ctx context.Context, username string) (bool, error)

// BaseUsername — ФАМИЛИЯ + первая буква имени, всё в верхнем регистре
func BaseUsername(firstName, firstSurname string) (string, error) {
	firstName = strings.TrimSpace(firstName)
	firstSurname = strings.TrimSpace(firstSurname)
	if firstName == "" || firstSurname == "" {
		return "", ErrNameRequired
	}
	r, _ := utf8.DecodeRuneInString(firstName)
	return strings.ToUpper(firstSurname) + string(unicode.ToUpper(r)), nil
}

// GenerateUsername подбирает свободный логин: BASE, BASE1, BASE2, ...
// Без уникального индекса в БД гонку двух одинаковых онбордингов это не закрывает.
func GenerateUsername(ctx context.Context, firstName, firstSurname string, exists UsernameExists) (string, error) {
	base, err := BaseUsername(firstName, firstSurname)
	if err != nil {
		return "", err
	}

	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check username %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(i)
	}
}
