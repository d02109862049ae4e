package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"sort"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/records"
)

var (
	// errors
	ErrInvalidInput       = errors.New("please provide username, password, and valid role")
	ErrUserExists         = errors.New("a user with this username already exists")
	ErrProtected          = errors.New("cannot delete admin")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	guard      *records.Guard
	validate   *validator.Validate
	translator ut.Translator
	logger     core.Logger
}

func NewService(guard *records.Guard, logger core.Logger) *Service {
	if logger == nil {
		logger = core.NewNopLogger()
	}
	validate, translator := core.NewValidator()
	InitValidators(validate, translator)
	return &Service{
		guard:      guard,
		validate:   validate,
		translator: translator,
		logger:     logger,
	}
}

// Validate cleans nu and checks it. Failures are reported as a ValidationError wrapping ErrInvalidInput.
func (svc *Service) Validate(nu *NewUser) error {
	nu.Clean()
	if err := svc.validate.Struct(nu); err != nil {
		return core.NewValidationError(ErrInvalidInput, core.FieldErrors(err, svc.translator)...)
	}
	return nil
}

// Authenticate returns the user matching username and password.
// The username is trimmed, the password must match exactly.
func (svc *Service) Authenticate(ctx context.Context, username, password string) (records.User, error) {
	username = core.CleanString(username)
	var usr records.User
	err := svc.guard.View(ctx, func(db *records.Database) error {
		found, ok := db.GetUser(username)
		if !ok || subtle.ConstantTimeCompare([]byte(found.Password), []byte(password)) != 1 {
			return ErrInvalidCredentials
		}
		usr = found
		return nil
	})
	if err != nil {
		return records.User{}, err
	}
	return usr, nil
}

// Create adds a teacher or student together with its shadow record.
func (svc *Service) Create(ctx context.Context, nu NewUser) (records.User, error) {
	if err := svc.Validate(&nu); err != nil {
		return records.User{}, err
	}
	usr := nu.User()

	err := svc.guard.Update(ctx, func(db *records.Database) error {
		if _, exists := db.Users[usr.Username]; exists {
			return core.NewValidationError(ErrUserExists, core.FieldError{Field: "username", Error: ErrUserExists.Error()})
		}
		db.Users[usr.Username] = usr
		profile := records.Profile{FullName: usr.FullName}
		switch {
		case usr.IsTeacher():
			db.Teachers[usr.Username] = profile
		case usr.IsStudent():
			db.Students[usr.Username] = profile
		}
		return nil
	})
	if err != nil {
		return records.User{}, err
	}

	svc.logger.Info("user created", map[string]interface{}{"username": usr.Username, "role": usr.Role})
	return usr, nil
}

// Delete removes a user, its shadow record and, for students, their results.
// The admin account can never be deleted.
func (svc *Service) Delete(ctx context.Context, username string) error {
	if username == records.AdminUsername {
		return ErrProtected
	}

	var removedResults int
	err := svc.guard.Update(ctx, func(db *records.Database) error {
		usr, ok := db.GetUser(username)
		if !ok {
			return ErrNotFound
		}
		delete(db.Users, username)
		switch {
		case usr.IsTeacher():
			delete(db.Teachers, username)
		case usr.IsStudent():
			delete(db.Students, username)
			for key, res := range db.Results {
				if res.StudentID == username {
					delete(db.Results, key)
					removedResults++
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	svc.logger.Info("user deleted", map[string]interface{}{"username": username, "results_deleted": removedResults})
	return nil
}

func (svc *Service) GetByUsername(ctx context.Context, username string) (records.User, error) {
	var usr records.User
	err := svc.guard.View(ctx, func(db *records.Database) error {
		found, ok := db.GetUser(username)
		if !ok {
			return ErrNotFound
		}
		usr = found
		return nil
	})
	return usr, err
}

// Query returns all users sorted by username.
func (svc *Service) Query(ctx context.Context) ([]records.User, error) {
	var users []records.User
	err := svc.guard.View(ctx, func(db *records.Database) error {
		users = make([]records.User, 0, len(db.Users))
		for uname := range db.Users {
			usr, _ := db.GetUser(uname)
			users = append(users, usr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}
