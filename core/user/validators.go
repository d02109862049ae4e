package user

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

var (
	userRoleTag  = "userrole"
	userRoleText = "role must be one of: teacher, student"
)

// InitValidators registers the user validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(userRoleTag, userRoleValidation)
	core.RegisterCustomTranslation(validate, translator, userRoleTag, userRoleText)
}

// userRoleValidation only accepts the roles an admin may provision.
func userRoleValidation(fl validator.FieldLevel) bool {
	if role, ok := fl.Field().Interface().(records.Role); ok {
		return role.IsValid() && role != records.RoleAdmin
	}
	return false
}
