package validation

import (
	"strings"

	"hours-tracker/internal/models"
)

const msgDuplicateAssignment = "El empleado ya tiene una asignacion activa a este proyecto."

type AssignmentForm struct {
	ProjectID string `form:"project_id"`
	Role      string `form:"role"`
}

type AssignmentValues struct {
	ProjectID uint
	Role      models.AssignmentRole
}

func ValidateAssignment(f AssignmentForm) (AssignmentValues, Errors) {
	var errs Errors
	var v AssignmentValues

	id, ok := parseID(f.ProjectID)
	switch {
	case !ok:
		errs = errs.with("project_id", msgInvalidChoice)
	case id == 0:
		errs = errs.with("project_id", msgRequired)
	}
	v.ProjectID = id

	v.Role = models.AssignmentRole(strings.TrimSpace(f.Role))
	if v.Role == "" {
		v.Role = models.AssignmentDeveloper
	} else if !v.Role.Valid() {
		errs = errs.with("role", msgInvalidChoice)
	}
	return v, errs
}

// DuplicateAssignment — форма получает ту же ошибку, поймана ли она предпроверкой или индексом
func DuplicateAssignment() Errors {
	return Errors{}.with("project_id", msgDuplicateAssignment)
}
