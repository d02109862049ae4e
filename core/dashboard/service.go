// Package dashboard builds the read-only views shown to each role.
package dashboard

import (
	"context"
	"errors"
	"sort"

	"github.com/trezcool/marksheet/core/records"
)

var ErrUnknownRole = errors.New("unknown role")

type (
	AdminView struct {
		Teachers []string `json:"teachers"`
		Students []string `json:"students"`
	}

	RosterEntry struct {
		Username string `json:"username"`
		FullName string `json:"full_name"`
	}

	TeacherView struct {
		Students map[string]string `json:"students"` // username -> full name
		Roster   []RosterEntry     `json:"roster"`   // sorted by username
	}

	// StudentView holds the student's own result, nil when none was submitted yet.
	StudentView struct {
		Result *records.Result `json:"result"`
	}
)

type Service struct {
	guard *records.Guard
}

func NewService(guard *records.Guard) *Service {
	return &Service{guard: guard}
}

func (svc *Service) Admin(ctx context.Context) (AdminView, error) {
	var view AdminView
	err := svc.guard.View(ctx, func(db *records.Database) error {
		view.Teachers = db.UsernamesByRole(records.RoleTeacher)
		view.Students = db.UsernamesByRole(records.RoleStudent)
		return nil
	})
	return view, err
}

func (svc *Service) Teacher(ctx context.Context) (TeacherView, error) {
	var view TeacherView
	err := svc.guard.View(ctx, func(db *records.Database) error {
		view.Students = make(map[string]string, len(db.Students))
		view.Roster = make([]RosterEntry, 0, len(db.Students))
		for uname, profile := range db.Students {
			view.Students[uname] = profile.FullName
			view.Roster = append(view.Roster, RosterEntry{Username: uname, FullName: profile.FullName})
		}
		return nil
	})
	sort.Slice(view.Roster, func(i, j int) bool { return view.Roster[i].Username < view.Roster[j].Username })
	return view, err
}

// Student looks the result up by username only.
func (svc *Service) Student(ctx context.Context, username string) (StudentView, error) {
	var view StudentView
	err := svc.guard.View(ctx, func(db *records.Database) error {
		if res, ok := db.Results[username]; ok {
			view.Result = &res
		}
		return nil
	})
	return view, err
}

// For returns the view matching the user's role.
func (svc *Service) For(ctx context.Context, usr records.User) (interface{}, error) {
	switch {
	case usr.IsAdmin():
		return svc.Admin(ctx)
	case usr.IsTeacher():
		return svc.Teacher(ctx)
	case usr.IsStudent():
		return svc.Student(ctx, usr.Username)
	}
	return nil, ErrUnknownRole
}
