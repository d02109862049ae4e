package records

type Role string

// Roles
const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// AdminUsername is the seeded admin account. It can never be deleted.
const AdminUsername = "admin"

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User is keyed by username in Database.Users; the key is copied into Username on read.
type User struct {
	Username string `json:"-"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	FullName string `json:"full_name"`
}

func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u User) IsStudent() bool { return u.Role == RoleStudent }

// Profile is the shadow record kept in Database.Teachers and Database.Students.
type Profile struct {
	FullName string `json:"full_name"`
}

type Subject struct {
	Name string  `json:"name"`
	Mark float64 `json:"mark"`
}

type Result struct {
	StudentID  string    `json:"student_id"`
	Subjects   []Subject `json:"subjects"`
	Total      float64   `json:"total"`
	Average    float64   `json:"average"`
	Grade      string    `json:"grade"`
	Attendance float64   `json:"attendance"`
}
