package mongodb

import "github.com/trezcool/marksheet/core/records"

// bson mirrors of the records types, keeping the field names of the JSON layout.
type (
	document struct {
		ID       string             `bson:"_id"`
		Users    map[string]user    `bson:"users"`
		Teachers map[string]profile `bson:"teachers"`
		Students map[string]profile `bson:"students"`
		Results  map[string]result  `bson:"results"`
	}

	user struct {
		Password string `bson:"password"`
		Role     string `bson:"role"`
		FullName string `bson:"full_name"`
	}

	profile struct {
		FullName string `bson:"full_name"`
	}

	subject struct {
		Name string  `bson:"name"`
		Mark float64 `bson:"mark"`
	}

	result struct {
		StudentID  string    `bson:"student_id"`
		Subjects   []subject `bson:"subjects"`
		Total      float64   `bson:"total"`
		Average    float64   `bson:"average"`
		Grade      string    `bson:"grade"`
		Attendance float64   `bson:"attendance"`
	}
)

func fromRecords(db *records.Database) document {
	doc := document{
		ID:       documentID,
		Users:    make(map[string]user, len(db.Users)),
		Teachers: make(map[string]profile, len(db.Teachers)),
		Students: make(map[string]profile, len(db.Students)),
		Results:  make(map[string]result, len(db.Results)),
	}
	for k, u := range db.Users {
		doc.Users[k] = user{Password: u.Password, Role: string(u.Role), FullName: u.FullName}
	}
	for k, p := range db.Teachers {
		doc.Teachers[k] = profile{FullName: p.FullName}
	}
	for k, p := range db.Students {
		doc.Students[k] = profile{FullName: p.FullName}
	}
	for k, r := range db.Results {
		subjects := make([]subject, 0, len(r.Subjects))
		for _, s := range r.Subjects {
			subjects = append(subjects, subject{Name: s.Name, Mark: s.Mark})
		}
		doc.Results[k] = result{
			StudentID:  r.StudentID,
			Subjects:   subjects,
			Total:      r.Total,
			Average:    r.Average,
			Grade:      r.Grade,
			Attendance: r.Attendance,
		}
	}
	return doc
}

func (doc document) records() *records.Database {
	db := &records.Database{
		Users:    make(map[string]records.User, len(doc.Users)),
		Teachers: make(map[string]records.Profile, len(doc.Teachers)),
		Students: make(map[string]records.Profile, len(doc.Students)),
		Results:  make(map[string]records.Result, len(doc.Results)),
	}
	for k, u := range doc.Users {
		db.Users[k] = records.User{Username: k, Password: u.Password, Role: records.Role(u.Role), FullName: u.FullName}
	}
	for k, p := range doc.Teachers {
		db.Teachers[k] = records.Profile{FullName: p.FullName}
	}
	for k, p := range doc.Students {
		db.Students[k] = records.Profile{FullName: p.FullName}
	}
	for k, r := range doc.Results {
		subjects := make([]records.Subject, 0, len(r.Subjects))
		for _, s := range r.Subjects {
			subjects = append(subjects, records.Subject{Name: s.Name, Mark: s.Mark})
		}
		db.Results[k] = records.Result{
			StudentID:  r.StudentID,
			Subjects:   subjects,
			Total:      r.Total,
			Average:    r.Average,
			Grade:      r.Grade,
			Attendance: r.Attendance,
		}
	}
	return db
}
