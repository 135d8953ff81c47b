package omnivox

import (
	"fmt"
	"slices"
)

// Semester is a term the schedule subsystem offers in its semester <select>.
type Semester struct {
	// Id is opaque to us, the portal formats it as the year followed by an index (ex. 20181)
	Id      string
	Name    string
	Current bool
}

// Equal compares semesters by id only.
func (s Semester) Equal(other Semester) bool {
	return s.Id == other.Id
}

func (s Semester) String() string {
	return fmt.Sprintf("Semester(id=%s, name=%s, current=%t)", s.Id, s.Name, s.Current)
}

// Course is a single row of a semester's schedule, any field may be empty if the
// portal leaves the cell blank.
type Course struct {
	// ex. 345-102-MQ
	Number string
	// ex. 00001
	Section string
	Title   string
	// full name of the teacher
	Teacher string
}

// Schedule holds the courses of a semester in the order the portal lists them.
type Schedule struct {
	Semester Semester
	Courses  []Course
}

func (s Schedule) clone() Schedule {
	return Schedule{
		Semester: s.Semester,
		Courses:  slices.Clone(s.Courses),
	}
}
