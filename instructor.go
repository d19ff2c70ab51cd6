package contoso

import (
	"context"
	"time"
)

// Instructor represents a member of the teaching staff. The Courses field
// holds the courses currently assigned to the instructor, loaded shallow
// (id, title, credits - not each course's own relations).
type Instructor struct {
	ID           int       `json:"id"`
	LastName     string    `json:"last_name"`
	FirstMidName string    `json:"first_mid_name"`
	HireDate     time.Time `json:"hire_date"`

	// Office is the instructor's office assignment. It has no identity of
	// its own and exists only while the instructor holds an office; nil
	// means no office assigned. Its lifecycle is independent of the course
	// assignments: clearing one never touches the other.
	Office *OfficeAssignment `json:"office,omitempty"`

	// Courses currently assigned to the instructor.
	Courses []Course `json:"courses"`
}

// OfficeAssignment is the office owned by a single instructor.
type OfficeAssignment struct {
	Location string `json:"location"`
}

// Validate returns EINVALID if the instructor is missing required fields.
func (i *Instructor) Validate() error {
	if i.LastName == "" {
		return Errorf(EINVALID, "instructor last name required")
	}
	if i.FirstMidName == "" {
		return Errorf(EINVALID, "instructor first name required")
	}
	if i.HireDate.IsZero() {
		return Errorf(EINVALID, "instructor hire date required")
	}
	return nil
}

// TeachesCourse reports whether the instructor is assigned the course. It
// only consults the loaded Courses collection, no lookups are performed.
func (i *Instructor) TeachesCourse(courseID int) bool {
	for _, c := range i.Courses {
		if c.ID == courseID {
			return true
		}
	}
	return false
}

// AssignedCourseIDs returns the set of course ids currently assigned to the
// instructor.
func (i *Instructor) AssignedCourseIDs() map[int]struct{} {
	ids := make(map[int]struct{}, len(i.Courses))
	for _, c := range i.Courses {
		ids[c.ID] = struct{}{}
	}
	return ids
}

// InstructorFilter represents a filter used by FindInstructors.
type InstructorFilter struct {
	ID       *int    `json:"id"`
	LastName *string `json:"last_name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// InstructorUpdate represents a partial update of an instructor. Nil fields
// are left untouched. RemoveOffice clears the office assignment and wins over
// OfficeLocation when both are set.
type InstructorUpdate struct {
	LastName     *string    `json:"last_name"`
	FirstMidName *string    `json:"first_mid_name"`
	HireDate     *time.Time `json:"hire_date"`

	OfficeLocation *string `json:"office_location"`
	RemoveOffice   bool    `json:"remove_office"`
}

// InstructorService represents a service which manages instructors and their
// course assignments.
type InstructorService interface {
	// FindInstructorByID returns an instructor with its office assignment
	// and shallow course list attached. returns ENOTFOUND if the
	// instructor doesnt exist.
	FindInstructorByID(ctx context.Context, id int) (*Instructor, error)

	// FindInstructors returns a range of instructors based on the filter,
	// each with office assignment and shallow course list attached.
	FindInstructors(ctx context.Context, filter InstructorFilter) ([]*Instructor, error)

	// CreateInstructor creates a new instructor and populates its id.
	CreateInstructor(ctx context.Context, instructor *Instructor) error

	// UpdateInstructor applies upd to the instructor with the given id and
	// returns the updated instructor. Office changes are independent of
	// course assignments.
	UpdateInstructor(ctx context.Context, id int, upd InstructorUpdate) (*Instructor, error)

	// DeleteInstructor permanently deletes an instructor together with its
	// office assignment and course assignment links. The courses
	// themselves are left alone.
	DeleteInstructor(ctx context.Context, id int) error

	// UpdateCourseAssignments links every course in add to the instructor
	// and unlinks every course in remove, as one batch: either the whole
	// batch commits or none of it does. The two sets must be disjoint.
	UpdateCourseAssignments(ctx context.Context, instructorID int, add, remove []int) error
}
