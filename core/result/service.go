// Package result records the marks teachers submit for students.
package result

import (
	"context"
	"errors"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/grade"
	"github.com/trezcool/marksheet/core/records"
)

var (
	// errors
	ErrUnknownStudent = errors.New("select a valid student")
	ErrNotFound       = errors.New("result not found")
)

// Submission is a teacher's mark sheet for one student.
type Submission struct {
	StudentID  string        `json:"student_id"`
	Entries    []grade.Entry `json:"entries"`
	Attendance string        `json:"attendance"`
}

type Service struct {
	guard  *records.Guard
	logger core.Logger
}

func NewService(guard *records.Guard, logger core.Logger) *Service {
	if logger == nil {
		logger = core.NewNopLogger()
	}
	return &Service{guard: guard, logger: logger}
}

// Submit computes the student's result and replaces any previous one.
func (svc *Service) Submit(ctx context.Context, sub Submission) (records.Result, error) {
	var res records.Result
	err := svc.guard.Update(ctx, func(db *records.Database) error {
		if _, ok := db.Students[sub.StudentID]; !ok {
			return core.NewValidationError(
				ErrUnknownStudent,
				core.FieldError{Field: "student_id", Error: ErrUnknownStudent.Error()},
			)
		}
		res = grade.Compute(sub.StudentID, sub.Entries, sub.Attendance)
		db.Results[sub.StudentID] = res
		return nil
	})
	if err != nil {
		return records.Result{}, err
	}

	svc.logger.Info("result saved", map[string]interface{}{
		"student_id": res.StudentID,
		"subjects":   len(res.Subjects),
		"grade":      res.Grade,
	})
	return res, nil
}

// Get returns the current result of a student.
func (svc *Service) Get(ctx context.Context, studentID string) (records.Result, error) {
	var res records.Result
	err := svc.guard.View(ctx, func(db *records.Database) error {
		found, ok := db.Results[studentID]
		if !ok {
			return ErrNotFound
		}
		res = found
		return nil
	})
	return res, err
}
