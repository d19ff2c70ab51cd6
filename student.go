package contoso

import (
	"context"
	"time"
)

// Student represents an enrolled student.
type Student struct {
	ID             int       `json:"id"`
	LastName       string    `json:"last_name"`
	FirstMidName   string    `json:"first_mid_name"`
	EnrollmentDate time.Time `json:"enrollment_date"`
}

// Validate returns EINVALID if the student is missing required fields.
func (s *Student) Validate() error {
	if s.LastName == "" {
		return Errorf(EINVALID, "student last name required")
	}
	if s.FirstMidName == "" {
		return Errorf(EINVALID, "student first name required")
	}
	if s.EnrollmentDate.IsZero() {
		return Errorf(EINVALID, "student enrollment date required")
	}
	return nil
}

// StudentFilter represents a filter used by FindStudents. Search matches
// against last and first names.
type StudentFilter struct {
	ID     *int    `json:"id"`
	Search *string `json:"search"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// StudentUpdate represents a partial update of a student. Nil fields are left
// untouched.
type StudentUpdate struct {
	LastName       *string    `json:"last_name"`
	FirstMidName   *string    `json:"first_mid_name"`
	EnrollmentDate *time.Time `json:"enrollment_date"`
}

// StudentService represents a service which manages students.
type StudentService interface {
	// FindStudentByID returns a student based on the passed id. returns
	// ENOTFOUND if the student doesnt exist.
	FindStudentByID(ctx context.Context, id int) (*Student, error)

	// FindStudents returns a range of students based on the filter.
	FindStudents(ctx context.Context, filter StudentFilter) ([]*Student, error)

	// CreateStudent creates a new student and populates its id.
	CreateStudent(ctx context.Context, student *Student) error

	// UpdateStudent applies upd to the student with the given id and
	// returns the updated student.
	UpdateStudent(ctx context.Context, id int, upd StudentUpdate) (*Student, error)

	// DeleteStudent permanently deletes a student together with its
	// enrollments.
	DeleteStudent(ctx context.Context, id int) error
}
