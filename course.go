package contoso

import "context"

// Course represents a course offered by a department. The id doubles as the
// course number and is chosen by the caller on creation rather than generated
// by the store.
type Course struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Credits      int    `json:"credits"`
	DepartmentID int    `json:"department_id"`
}

// Validate returns EINVALID if the course is missing required fields.
func (c *Course) Validate() error {
	if c.ID <= 0 {
		return Errorf(EINVALID, "course number must be positive")
	}
	if c.Title == "" {
		return Errorf(EINVALID, "course title required")
	}
	if c.Credits < 0 || c.Credits > 5 {
		return Errorf(EINVALID, "course credits must be between 0 and 5")
	}
	return nil
}

// CourseFilter represents a filter used by FindCourses.
type CourseFilter struct {
	ID           *int    `json:"id"`
	DepartmentID *int    `json:"department_id"`
	Title        *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CourseUpdate represents a partial update of a course. Nil fields are left
// untouched; the course number itself is immutable.
type CourseUpdate struct {
	Title        *string `json:"title"`
	Credits      *int    `json:"credits"`
	DepartmentID *int    `json:"department_id"`
}

// CourseService represents a service which manages the course catalog.
type CourseService interface {
	// FindCourseByID returns a course based on its id. returns ENOTFOUND
	// if the course doesnt exist.
	FindCourseByID(ctx context.Context, id int) (*Course, error)

	// FindCoursesByIDs returns the courses whose ids appear in ids. Ids
	// which dont resolve are simply absent from the result, no error is
	// raised for them.
	FindCoursesByIDs(ctx context.Context, ids []int) ([]*Course, error)

	// FindCourses returns a range of courses based on the filter.
	FindCourses(ctx context.Context, filter CourseFilter) ([]*Course, error)

	// CreateCourse creates a new course under the caller-chosen id.
	// returns ECONFLICT if the course number is already taken.
	CreateCourse(ctx context.Context, course *Course) error

	// UpdateCourse applies upd to the course with the given id and returns
	// the updated course.
	UpdateCourse(ctx context.Context, id int, upd CourseUpdate) (*Course, error)

	// DeleteCourse permanently deletes a course together with its
	// assignment links and enrollments.
	DeleteCourse(ctx context.Context, id int) error
}
