// Package grade turns raw mark sheets into normalized results.
// Malformed numbers never fail: they degrade to 0 and marks are clamped to [0, 100].
package grade

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/trezcool/marksheet/core/records"
)

const (
	MinMark = 0
	MaxMark = 100
)

// Entry is one raw (subject, mark) pair as submitted by a teacher.
type Entry struct {
	Subject string `json:"subject"`
	Mark    string `json:"mark"`
}

type tier struct {
	min    float64
	letter string
}

// evaluated highest-first, inclusive lower bound
var tiers = []tier{
	{90, "A+"},
	{80, "A"},
	{70, "B"},
	{60, "C"},
	{50, "D"},
}

const failLetter = "F"

// Pair zips subject names and marks into entries, stopping at the shorter list.
func Pair(subjects, marks []string) []Entry {
	n := len(subjects)
	if len(marks) < n {
		n = len(marks)
	}
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{Subject: subjects[i], Mark: marks[i]})
	}
	return entries
}

// Compute builds the Result of studentID from the raw entries and attendance.
func Compute(studentID string, entries []Entry, attendance string) records.Result {
	attendanceVal := ParseNumber(attendance)
	if math.IsInf(attendanceVal, 0) {
		attendanceVal = 0
	}

	subjects := make([]records.Subject, 0, len(entries))
	var total float64
	for _, e := range entries {
		name := strings.TrimSpace(e.Subject)
		if name == "" {
			continue
		}
		mark := Clamp(ParseNumber(e.Mark))
		subjects = append(subjects, records.Subject{Name: name, Mark: mark})
		total += mark
	}

	var average float64
	if len(subjects) > 0 {
		average = total / float64(len(subjects))
	}

	return records.Result{
		StudentID:  studentID,
		Subjects:   subjects,
		Total:      Round(total),
		Average:    Round(average),
		Grade:      Letter(average),
		Attendance: Round(attendanceVal),
	}
}

// Letter returns the letter grade of an average.
func Letter(average float64) string {
	for _, t := range tiers {
		if average >= t.min {
			return t.letter
		}
	}
	return failLetter
}

// ParseNumber parses s as a float, returning 0 when s is not a number.
// Out of range values keep their sign as ±Inf.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return v
		}
		return 0
	}
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// Clamp bounds a mark to [MinMark, MaxMark].
func Clamp(mark float64) float64 {
	if mark < MinMark {
		return MinMark
	}
	if mark > MaxMark {
		return MaxMark
	}
	return mark
}

// Round rounds v to the nearest 2-decimal value, judged on the exact binary value of v.
// So 2.675 (stored as 2.67499...) rounds to 2.67.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

// Percent formats v as a percentage with 2 decimals, e.g. "90.00%".
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", v)
}
