package server

import (
	"html/template"
	"strconv"
	"time"

	"hours-tracker/internal/validation"
	"hours-tracker/web"

	"github.com/shopspring/decimal"
)

const dateTimeLayout = "02/01/2006 15:04"

func asErrors(v interface{}) validation.Errors {
	errs, _ := v.(validation.Errors)
	return errs
}

var funcMap = template.FuncMap{
	// ошибки формы; в шаблон может прийти nil вместо validation.Errors
	"fieldErrors": func(errs interface{}, field string) []string {
		return asErrors(errs).For(field)
	},
	"nonFieldErrors": func(errs interface{}) []string {
		return asErrors(errs).For(validation.NonField)
	},
	"field": func(errs interface{}, field string) map[string]interface{} {
		return map[string]interface{}{"errs": errs, "field": field}
	},

	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format(validation.DisplayDateLayout)
	},
	"datep": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format(validation.DisplayDateLayout)
	},
	"datetime": func(t time.Time) string {
		return t.Local().Format(dateTimeLayout)
	},

	"hours": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"nulldec": func(d decimal.NullDecimal) string {
		if !d.Valid {
			return "-"
		}
		return d.Decimal.StringFixed(2)
	},
	"pct": func(d decimal.NullDecimal) string {
		if !d.Valid {
			return "-"
		}
		return d.Decimal.StringFixed(2) + "%"
	},

	"idstr": func(id uint) string {
		return strconv.FormatUint(uint64(id), 10)
	},
	"contains": func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	},
}

// loadTemplates — шаблоны из web.Templates; не зависит от рабочего каталога
func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(funcMap).ParseFS(web.Templates, "templates/*.html"))
}
