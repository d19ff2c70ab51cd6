package instructors

import (
	"context"
	"time"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

// stubInstructorService implements contoso.InstructorService over an in
// memory instructor list and records the assignment batches it receives.
type stubInstructorService struct {
	contoso.InstructorService

	instructors []*contoso.Instructor

	findInstructorsCalls int
	assignmentBatches    []assignmentBatch
	updateAssignmentsErr error
}

type assignmentBatch struct {
	instructorID int
	add, remove  []int
}

func (s *stubInstructorService) FindInstructors(ctx context.Context, filter contoso.InstructorFilter) ([]*contoso.Instructor, error) {
	s.findInstructorsCalls++
	return s.instructors, nil
}

func (s *stubInstructorService) UpdateCourseAssignments(ctx context.Context, instructorID int, add, remove []int) error {
	if s.updateAssignmentsErr != nil {
		return s.updateAssignmentsErr
	}
	s.assignmentBatches = append(s.assignmentBatches, assignmentBatch{instructorID, add, remove})
	return nil
}

// stubCourseService resolves batch lookups against a fixed catalog and counts
// how often it was consulted.
type stubCourseService struct {
	contoso.CourseService

	catalog map[int]*contoso.Course

	findByIDsCalls int
	findByIDsErr   error
}

func (s *stubCourseService) FindCoursesByIDs(ctx context.Context, ids []int) ([]*contoso.Course, error) {
	s.findByIDsCalls++
	if s.findByIDsErr != nil {
		return nil, s.findByIDsErr
	}
	var courses []*contoso.Course
	for _, id := range ids {
		if c, ok := s.catalog[id]; ok {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

// stubEnrollmentService serves a fixed enrollment list per course and counts
// lookups.
type stubEnrollmentService struct {
	enrollments map[int][]*contoso.Enrollment

	findCalls int
}

func (s *stubEnrollmentService) FindEnrollmentsByCourseID(ctx context.Context, courseID int) ([]*contoso.Enrollment, error) {
	s.findCalls++
	return s.enrollments[courseID], nil
}

func course(id int, title string) contoso.Course {
	return contoso.Course{ID: id, Title: title, Credits: 3, DepartmentID: 1}
}

func instructor(id int, last string, courses ...contoso.Course) *contoso.Instructor {
	return &contoso.Instructor{
		ID:           id,
		LastName:     last,
		FirstMidName: "T",
		HireDate:     time.Date(2004, 9, 1, 0, 0, 0, 0, time.UTC),
		Courses:      courses,
	}
}
