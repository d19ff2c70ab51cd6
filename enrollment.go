package contoso

import "context"

// Grade is the letter grade earned on an enrollment.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Enrollment links a student to a course. Enrollments are read-only leaves of
// the instructor drill-down: this system renders them but never creates or
// modifies them, that is the registrar's side of the house.
type Enrollment struct {
	ID        int `json:"id"`
	CourseID  int `json:"course_id"`
	StudentID int `json:"student_id"`

	// Grade is nil until one has been awarded.
	Grade *Grade `json:"grade,omitempty"`

	// Student is attached by the store when enrollments are fetched for
	// display.
	Student *Student `json:"student,omitempty"`
}

// EnrollmentService represents a read-only service over enrollments.
type EnrollmentService interface {
	// FindEnrollmentsByCourseID returns the enrollments of a course, each
	// with its student attached. A course with no enrollments yields an
	// empty slice, not an error.
	FindEnrollmentsByCourseID(ctx context.Context, courseID int) ([]*Enrollment, error)
}
