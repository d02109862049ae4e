package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/marksheet/core/records"
	testutil "github.com/trezcool/marksheet/tests"
)

func TestAuthorize(t *testing.T) {
	admin := &records.User{Username: "admin", Role: records.RoleAdmin}
	teacher := &records.User{Username: "t1", Role: records.RoleTeacher}
	student := &records.User{Username: "s1", Role: records.RoleStudent}

	tests := []struct {
		name     string
		caller   *records.User
		required records.Role
		want     Outcome
		wantErr  error
	}{
		{"nil caller", nil, records.RoleAdmin, DenyNotLoggedIn, ErrNotLoggedIn},
		{"nil caller no role", nil, "", DenyNotLoggedIn, ErrNotLoggedIn},
		{"admin as admin", admin, records.RoleAdmin, Allow, nil},
		{"teacher as admin", teacher, records.RoleAdmin, DenyWrongRole, ErrWrongRole},
		{"student as teacher", student, records.RoleTeacher, DenyWrongRole, ErrWrongRole},
		{"admin as student", admin, records.RoleStudent, DenyWrongRole, ErrWrongRole},
		{"teacher as teacher", teacher, records.RoleTeacher, Allow, nil},
		{"student no role", student, "", Allow, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.caller, tt.required)
			assert.Equal(t, tt.want, got.Outcome)
			assert.Equal(t, tt.wantErr, got.Err())
			if tt.want == Allow {
				assert.True(t, got.Allowed())
				assert.Equal(t, *tt.caller, got.User)
			} else {
				assert.False(t, got.Allowed())
				assert.Empty(t, got.User.Username)
			}
		})
	}
}

func TestGate_Authorize(t *testing.T) {
	guard := testutil.NewGuard(t)
	testutil.CreateUser(t, guard, "t1", "pwd", records.RoleTeacher)
	gate := NewGate(guard)
	ctx := context.Background()

	tests := []struct {
		name     string
		identity string
		required records.Role
		want     Outcome
	}{
		{"empty identity", "", records.RoleTeacher, DenyNotLoggedIn},
		{"unknown identity", "ghost", records.RoleTeacher, DenyNotLoggedIn},
		{"wrong role", "t1", records.RoleAdmin, DenyWrongRole},
		{"allowed", "t1", records.RoleTeacher, Allow},
		{"admin", "admin", records.RoleAdmin, Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.Snapshot(t, guard)
			got, err := gate.Authorize(ctx, tt.identity, tt.required)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Outcome)
			assert.Equal(t, before, testutil.Snapshot(t, guard))
		})
	}
}
