package records

import "sort"

// Database is the aggregate persisted as a single document.
type Database struct {
	Users    map[string]User    `json:"users"`
	Teachers map[string]Profile `json:"teachers"`
	Students map[string]Profile `json:"students"`
	Results  map[string]Result  `json:"results"`
}

// Seed returns a fresh Database holding only the admin user.
func Seed(adminPassword, adminName string) *Database {
	db := &Database{
		Users:    make(map[string]User),
		Teachers: make(map[string]Profile),
		Students: make(map[string]Profile),
		Results:  make(map[string]Result),
	}
	db.Users[AdminUsername] = User{
		Username: AdminUsername,
		Password: adminPassword,
		Role:     RoleAdmin,
		FullName: adminName,
	}
	return db
}

// Normalize makes nil collections empty and copies map keys into User.Username.
// Stores call it after decoding a document.
func (db *Database) Normalize() {
	if db.Users == nil {
		db.Users = make(map[string]User)
	}
	if db.Teachers == nil {
		db.Teachers = make(map[string]Profile)
	}
	if db.Students == nil {
		db.Students = make(map[string]Profile)
	}
	if db.Results == nil {
		db.Results = make(map[string]Result)
	}
	for uname, usr := range db.Users {
		if usr.Username != uname {
			usr.Username = uname
			db.Users[uname] = usr
		}
	}
}

// Clone returns a deep copy of db.
func (db *Database) Clone() *Database {
	cp := &Database{
		Users:    make(map[string]User, len(db.Users)),
		Teachers: make(map[string]Profile, len(db.Teachers)),
		Students: make(map[string]Profile, len(db.Students)),
		Results:  make(map[string]Result, len(db.Results)),
	}
	for k, v := range db.Users {
		cp.Users[k] = v
	}
	for k, v := range db.Teachers {
		cp.Teachers[k] = v
	}
	for k, v := range db.Students {
		cp.Students[k] = v
	}
	for k, v := range db.Results {
		if v.Subjects != nil {
			subjects := make([]Subject, len(v.Subjects))
			copy(subjects, v.Subjects)
			v.Subjects = subjects
		}
		cp.Results[k] = v
	}
	return cp
}

// GetUser returns the user keyed by username.
func (db *Database) GetUser(username string) (User, bool) {
	usr, ok := db.Users[username]
	if ok {
		usr.Username = username
	}
	return usr, ok
}

// UsernamesByRole returns the sorted usernames of all users with the given role.
func (db *Database) UsernamesByRole(role Role) []string {
	unames := make([]string, 0)
	for uname, usr := range db.Users {
		if usr.Role == role {
			unames = append(unames, uname)
		}
	}
	sort.Strings(unames)
	return unames
}
