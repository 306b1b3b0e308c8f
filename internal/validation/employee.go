package validation

import "strings"

const (
	msgPasswordShort    = "La contraseña debe tener al menos 6 caracteres."
	msgPasswordMismatch = "Las contraseñas no coinciden."
	msgPasswordWrong    = "Tu contraseña actual es incorrecta."
)

// MinPasswordLen — как при регистрации в исходном приложении
const MinPasswordLen = 6

type EmployeeForm struct {
	Email         string `form:"email"`
	Password      string `form:"password"`
	FirstName     string `form:"first_name"`
	SecondName    string `form:"second_name"`
	FirstSurname  string `form:"first_surname"`
	SecondSurname string `form:"second_surname"`
}

type EmployeeValues struct {
	Email         string
	Password      string
	FirstName     string
	SecondName    string
	FirstSurname  string
	SecondSurname string
}

// ValidateEmployee; withPassword=false для формы редактирования (пароль там не меняется)
func ValidateEmployee(f EmployeeForm, withPassword bool) (EmployeeValues, Errors) {
	var errs Errors
	v := EmployeeValues{
		Email:         strings.TrimSpace(f.Email),
		Password:      f.Password,
		FirstName:     strings.TrimSpace(f.FirstName),
		SecondName:    strings.TrimSpace(f.SecondName),
		FirstSurname:  strings.TrimSpace(f.FirstSurname),
		SecondSurname: strings.TrimSpace(f.SecondSurname),
	}

	if v.Email == "" {
		errs = errs.with("email", msgRequired)
	} else if validate.Var(v.Email, "email") != nil {
		errs = errs.with("email", msgInvalidEmail)
	}
	if v.FirstName == "" {
		errs = errs.with("first_name", msgRequired)
	}
	if v.FirstSurname == "" {
		errs = errs.with("first_surname", msgRequired)
	}
	if withPassword && len(v.Password) < MinPasswordLen {
		errs = errs.with("password", msgPasswordShort)
	}
	return v, errs
}

type PasswordChangeForm struct {
	OldPassword  string `form:"old_password"`
	NewPassword1 string `form:"new_password1"`
	NewPassword2 string `form:"new_password2"`
}

// ValidatePasswordChange; checkCurrent сверяет текущий пароль с хешем (bcrypt снаружи)
func ValidatePasswordChange(f PasswordChangeForm, checkCurrent func(string) bool) Errors {
	var errs Errors
	if f.OldPassword == "" {
		errs = errs.with("old_password", msgRequired)
	} else if !checkCurrent(f.OldPassword) {
		errs = errs.with("old_password", msgPasswordWrong)
	}
	if len(f.NewPassword1) < MinPasswordLen {
		errs = errs.with("new_password1", msgPasswordShort)
	}
	if f.NewPassword1 != f.NewPassword2 {
		errs = errs.with("new_password2", msgPasswordMismatch)
	}
	return errs
}
