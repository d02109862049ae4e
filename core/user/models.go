package user

import (
	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string       `json:"username" validate:"notblank"`
	Password string       `json:"password" validate:"required"`
	Role     records.Role `json:"role" validate:"userrole"`
	FullName string       `json:"full_name"`
}

// Clean trims the username and full name. The password is kept as typed.
func (nu *NewUser) Clean() {
	nu.Username = core.CleanString(nu.Username)
	nu.FullName = core.CleanString(nu.FullName)
	nu.Role = records.Role(core.CleanString(string(nu.Role), true /* lower */))
}

// User builds the record to store, defaulting the full name to the username.
func (nu NewUser) User() records.User {
	fullName := nu.FullName
	if fullName == "" {
		fullName = nu.Username
	}
	return records.User{
		Username: nu.Username,
		Password: nu.Password,
		Role:     nu.Role,
		FullName: fullName,
	}
}
