package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidTaxID   = "RFC invalido. Debe cumplir el formato oficial (12 o 13 caracteres)."
	msgDuplicateTaxID = "Ya existe un cliente con ese RFC."
	msgInvalidPhone   = "El telefono debe tener 10 digitos."
	msgInvalidEmail   = "Introduce una dirección de correo electrónico válida."
)

var (
	taxIDStrip   = regexp.MustCompile(`[^A-Za-z0-9&]`)
	taxIDPattern = regexp.MustCompile(`^[A-Z&]{3,4}[0-9]{6}[A-Z0-9]{3}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

	validate = validator.New()
)

// NormalizeTaxID убирает всё, кроме A-Z, 0-9 и &, и переводит в верхний регистр.
// Идемпотентна.
func NormalizeTaxID(raw string) string {
	return strings.ToUpper(taxIDStrip.ReplaceAllString(raw, ""))
}

func ValidTaxID(taxID string) bool {
	return taxIDPattern.MatchString(taxID)
}

type ClientForm struct {
	Name    string `form:"name"`
	TaxID   string `form:"tax_id"`
	Address string `form:"address"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
}

type ClientValues struct {
	Name    string
	TaxID   string
	Address string
	Email   string
	Phone   string
}

// ClientLookups — проверка RFC на дубли без учёта регистра; excludeID — редактируемый клиент
type ClientLookups interface {
	TaxIDTaken(ctx context.Context, taxID string, excludeID uint) (bool, error)
}

// ValidateClient — проверка формы клиента. Предварительная проверка RFC здесь только для
// понятного сообщения, окончательно дубль ловит уникальный индекс.
func ValidateClient(ctx context.Context, f ClientForm, excludeID uint, lk ClientLookups) (ClientValues, Errors, error) {
	var errs Errors
	v := ClientValues{
		Name:    strings.TrimSpace(f.Name),
		TaxID:   NormalizeTaxID(f.TaxID),
		Address: strings.TrimSpace(f.Address),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
	}

	if v.Name == "" {
		errs = errs.with("name", msgRequired)
	}

	if !ValidTaxID(v.TaxID) {
		errs = errs.with("tax_id", msgInvalidTaxID)
	} else {
		taken, err := lk.TaxIDTaken(ctx, v.TaxID, excludeID)
		if err != nil {
			return v, nil, fmt.Errorf("lookup tax id: %w", err)
		}
		if taken {
			errs = errs.with("tax_id", msgDuplicateTaxID)
		}
	}

	if v.Email != "" && validate.Var(v.Email, "email") != nil {
		errs = errs.with("email", msgInvalidEmail)
	}

	if v.Phone != "" && !phonePattern.MatchString(v.Phone) {
		errs = errs.with("phone", msgInvalidPhone)
	}

	return v, errs, nil
}

// DuplicateTaxID — сообщение для случая, когда дубль поймала БД, а не предпроверка
func DuplicateTaxID() Errors {
	return Errors{}.with("tax_id", msgDuplicateTaxID)
}
