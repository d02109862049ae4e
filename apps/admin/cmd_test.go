package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/marksheet/core"
	"github.com/trezcool/marksheet/core/dashboard"
	"github.com/trezcool/marksheet/core/records"
	"github.com/trezcool/marksheet/core/user"
	testutil "github.com/trezcool/marksheet/tests"
)

func setup(t *testing.T) (*commandLine, *records.Guard, *bytes.Buffer) {
	guard := testutil.NewGuard(t)
	out := new(bytes.Buffer)
	return &commandLine{
		usrSvc:  user.NewService(guard, core.NewNopLogger()),
		dashSvc: dashboard.NewService(guard),
		out:     out,
	}, guard, out
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_help(t *testing.T) {
	cli, _, _ := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "adduser no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "adduser no role", args: []string{"adduser", "-username", "t1"}, wantErr: errHelp},
		{name: "deluser no args", args: []string{"deluser"}, wantErr: errHelp},
		{name: "result no args", args: []string{"result"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli, guard, _ := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no password", args: []string{"adduser", "-username", "t1", "-role", "teacher"}, wantErr: errHelp},
		{name: "invalid role", args: []string{"adduser", "-username", "t1", "-role", "admin"}, extra: extra{pwd: "pwd"}, wantErr: user.ErrInvalidInput},
		{name: "teacher", args: []string{"adduser", "-username", "t1", "-role", "teacher", "-name", "T One"}, extra: extra{pwd: "pwd"}},
		{name: "exists", args: []string{"adduser", "-username", "t1", "-role", "student"}, extra: extra{pwd: "pwd"}, wantErr: user.ErrUserExists},
		{name: "student", args: []string{"adduser", "-username", "s1", "-role", "student"}, extra: extra{pwd: "pwd"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else if !errors.Is(err, tt.wantErr) {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	db := testutil.Snapshot(t, guard)
	assert.Equal(t, records.User{Username: "t1", Password: "pwd", Role: records.RoleTeacher, FullName: "T One"}, db.Users["t1"])
	assert.Equal(t, records.Profile{FullName: "s1"}, db.Students["s1"])
}

func Test_commandLine_delUser(t *testing.T) {
	cli, guard, out := setup(t)
	testutil.CreateUser(t, guard, "s1", "pwd", records.RoleStudent)
	testutil.CreateResult(t, guard, records.Result{StudentID: "s1", Grade: "A"})

	tests := []cliTest{
		{name: "admin", args: []string{"deluser", "-username", "admin"}, wantErr: user.ErrProtected},
		{name: "student", args: []string{"deluser", "-username", "s1"}},
		{name: "not found", args: []string{"deluser", "-username", "s1"}, wantErr: user.ErrNotFound},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	assert.Contains(t, out.String(), `deleted "s1"`)
	assert.Empty(t, testutil.Snapshot(t, guard).Results)
}

func Test_commandLine_listing(t *testing.T) {
	cli, guard, out := setup(t)
	testutil.CreateUser(t, guard, "s1", "pwd", records.RoleStudent, "S One")
	testutil.CreateResult(t, guard, records.Result{
		StudentID:  "s1",
		Subjects:   []records.Subject{{Name: "Math", Mark: 95}, {Name: "Sci", Mark: 85}},
		Total:      180,
		Average:    90,
		Grade:      "A+",
		Attendance: 90,
	})

	assert.NoError(t, cli.run([]string{"admin", "init"}))
	assert.Contains(t, out.String(), "store ready: 2 user(s)")

	out.Reset()
	assert.NoError(t, cli.run([]string{"admin", "users"}))
	assert.Contains(t, out.String(), "admin")
	assert.Contains(t, out.String(), "S One")

	out.Reset()
	assert.NoError(t, cli.run([]string{"admin", "result", "-username", "s1"}))
	assert.Contains(t, out.String(), "90.00%")
	assert.Contains(t, out.String(), "A+")

	out.Reset()
	assert.NoError(t, cli.run([]string{"admin", "result", "-username", "ghost"}))
	assert.Contains(t, out.String(), `no result for "ghost"`)
}
