package instructors

import (
	"context"
	"fmt"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

var _ contoso.ViewService = (*ViewAssembler)(nil)

// ViewAssembler builds the three level instructor drill-down. Each level is
// fetched only when its selector is present: rendering the instructor list
// must never pull enrollments for every course of every instructor.
type ViewAssembler struct {
	instructorService contoso.InstructorService
	enrollmentService contoso.EnrollmentService
}

// NewViewAssembler creates an assembler over the provided instructor and
// enrollment services.
func NewViewAssembler(is contoso.InstructorService, es contoso.EnrollmentService) *ViewAssembler {
	return &ViewAssembler{
		instructorService: is,
		enrollmentService: es,
	}
}

// AssembleInstructorView assembles the view for the requested depth.
//
// The instructor list (with office and shallow course list) is always
// materialized. Courses appear once an instructor is selected, taken from the
// already loaded roots. Enrollments appear once a course is also selected and
// only if that course is actually among the selected instructor's courses; a
// stale or inconsistent selector degrades to the shallower view with a
// warning instead of failing or, worse, showing another instructor's data.
func (a *ViewAssembler) AssembleInstructorView(ctx context.Context, sel contoso.ViewSelectors) (*contoso.InstructorView, error) {
	instructors, err := a.instructorService.FindInstructors(ctx, contoso.InstructorFilter{})
	if err != nil {
		return nil, err
	}

	view := &contoso.InstructorView{Instructors: instructors}

	if sel.InstructorID == nil {
		if sel.CourseID != nil {
			// a course selector alone carries no instructor context.
			view.Warnings = append(view.Warnings, "course selector ignored without an instructor selector")
		}
		return view, nil
	}

	var selected *contoso.Instructor
	for _, i := range instructors {
		if i.ID == *sel.InstructorID {
			selected = i
			break
		}
	}
	if selected == nil {
		// stale selector, the instructor was deleted elsewhere.
		view.Courses = []*contoso.Course{}
		view.Warnings = append(view.Warnings, fmt.Sprintf("instructor %d not found", *sel.InstructorID))
		return view, nil
	}

	view.SelectedInstructorID = &selected.ID
	view.Courses = make([]*contoso.Course, len(selected.Courses))
	for i := range selected.Courses {
		view.Courses[i] = &selected.Courses[i]
	}

	if sel.CourseID == nil {
		return view, nil
	}

	if !selected.TeachesCourse(*sel.CourseID) {
		// never fall through to fetching an unrelated course's
		// enrollments.
		view.Enrollments = []*contoso.Enrollment{}
		view.Warnings = append(view.Warnings, fmt.Sprintf("course %d is not taught by instructor %d", *sel.CourseID, selected.ID))
		return view, nil
	}

	enrollments, err := a.enrollmentService.FindEnrollmentsByCourseID(ctx, *sel.CourseID)
	if err != nil {
		return nil, err
	}
	if enrollments == nil {
		enrollments = []*contoso.Enrollment{}
	}

	view.SelectedCourseID = sel.CourseID
	view.Enrollments = enrollments
	return view, nil
}
