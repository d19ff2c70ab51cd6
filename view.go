package contoso

import "context"

// ViewSelectors selects how deep the instructor drill-down goes. Nothing set
// renders just the instructor list; InstructorID adds that instructor's
// courses; CourseID on top adds that course's enrollments. A CourseID without
// an InstructorID is meaningless and is ignored with a warning.
type ViewSelectors struct {
	InstructorID *int
	CourseID     *int
}

// InstructorView is the assembled master/detail view behind the instructors
// page. Courses and Enrollments are nil when their selector wasnt given and
// empty when it was given but nothing qualified, the two render differently
// (panel hidden vs panel empty) so the distinction is kept.
type InstructorView struct {
	Instructors []*Instructor `json:"instructors"`
	Courses     []*Course     `json:"courses"`
	Enrollments []*Enrollment `json:"enrollments"`

	// Echo of the selectors that actually resolved.
	SelectedInstructorID *int `json:"selected_instructor_id,omitempty"`
	SelectedCourseID     *int `json:"selected_course_id,omitempty"`

	// Warnings carries diagnostics for stale or inconsistent selectors, a
	// bookmarked id whose entity was deleted elsewhere lands here instead
	// of failing the whole view.
	Warnings []string `json:"warnings,omitempty"`
}

// AssignedCourseRow is one row of the course selection widget on the
// instructor edit page: every course in the catalog appears once, flagged
// with whether the instructor currently teaches it. Never persisted.
type AssignedCourseRow struct {
	CourseID int    `json:"course_id"`
	Title    string `json:"title"`
	Assigned bool   `json:"assigned"`
}

// ViewService assembles the instructor drill-down view.
type ViewService interface {
	// AssembleInstructorView loads exactly the slice of the hierarchy the
	// selectors ask for. The instructor list is always materialized;
	// courses and enrollments are only fetched when their selector is
	// present and consistent. Never mutates any state.
	AssembleInstructorView(ctx context.Context, sel ViewSelectors) (*InstructorView, error)
}
