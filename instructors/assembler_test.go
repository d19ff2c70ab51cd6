package instructors

import (
	"context"
	"testing"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

func intp(v int) *int { return &v }

func testRoster() []*contoso.Instructor {
	return []*contoso.Instructor{
		instructor(1, "Fakhouri", course(1, "Chemistry"), course(2, "Microeconomics")),
		instructor(2, "Harui"),
	}
}

func TestAssembleInstructorView_NoSelectors(t *testing.T) {
	is := &stubInstructorService{instructors: testRoster()}
	es := &stubEnrollmentService{}
	a := NewViewAssembler(is, es)

	view, err := a.AssembleInstructorView(context.Background(), contoso.ViewSelectors{})
	if err != nil {
		t.Fatalf("AssembleInstructorView() error = %v", err)
	}

	if len(view.Instructors) != 2 {
		t.Errorf("instructors = %d, want 2", len(view.Instructors))
	}
	if view.Courses != nil {
		t.Errorf("courses = %v, want nil when no instructor selected", view.Courses)
	}
	if view.Enrollments != nil {
		t.Errorf("enrollments = %v, want nil when no course selected", view.Enrollments)
	}
	if es.findCalls != 0 {
		t.Errorf("enrollment lookups = %d, want 0", es.findCalls)
	}
	if is.findInstructorsCalls != 1 {
		t.Errorf("instructor lookups = %d, want 1", is.findInstructorsCalls)
	}
}

func TestAssembleInstructorView_InstructorSelected(t *testing.T) {
	is := &stubInstructorService{instructors: testRoster()}
	es := &stubEnrollmentService{}
	a := NewViewAssembler(is, es)

	view, err := a.AssembleInstructorView(context.Background(), contoso.ViewSelectors{InstructorID: intp(1)})
	if err != nil {
		t.Fatalf("AssembleInstructorView() error = %v", err)
	}

	if len(view.Courses) != 2 {
		t.Fatalf("courses = %d, want 2", len(view.Courses))
	}
	if view.Courses[0].ID != 1 || view.Courses[1].ID != 2 {
		t.Errorf("courses = [%d %d], want [1 2]", view.Courses[0].ID, view.Courses[1].ID)
	}
	if view.SelectedInstructorID == nil || *view.SelectedInstructorID != 1 {
		t.Errorf("selected instructor = %v, want 1", view.SelectedInstructorID)
	}
	if view.Enrollments != nil {
		t.Errorf("enrollments = %v, want nil when no course selected", view.Enrollments)
	}
	if es.findCalls != 0 {
		t.Errorf("enrollment lookups = %d, want 0", es.findCalls)
	}
}

func TestAssembleInstructorView_CourseSelected(t *testing.T) {
	grade := contoso.GradeA
	is := &stubInstructorService{instructors: testRoster()}
	es := &stubEnrollmentService{
		enrollments: map[int][]*contoso.Enrollment{
			2: {
				{ID: 10, CourseID: 2, StudentID: 5, Grade: &grade, Student: &contoso.Student{ID: 5, LastName: "Alexander"}},
			},
		},
	}
	a := NewViewAssembler(is, es)

	view, err := a.AssembleInstructorView(context.Background(), contoso.ViewSelectors{
		InstructorID: intp(1),
		CourseID:     intp(2),
	})
	if err != nil {
		t.Fatalf("AssembleInstructorView() error = %v", err)
	}

	if len(view.Enrollments) != 1 {
		t.Fatalf("enrollments = %d, want 1", len(view.Enrollments))
	}
	if view.Enrollments[0].Student == nil || view.Enrollments[0].Student.LastName != "Alexander" {
		t.Errorf("enrollment student not attached: %+v", view.Enrollments[0])
	}
	if view.SelectedCourseID == nil || *view.SelectedCourseID != 2 {
		t.Errorf("selected course = %v, want 2", view.SelectedCourseID)
	}
	if es.findCalls != 1 {
		t.Errorf("enrollment lookups = %d, want 1", es.findCalls)
	}
}

func TestAssembleInstructorView_SelectorGuards(t *testing.T) {
	tests := []struct {
		name            string
		sel             contoso.ViewSelectors
		wantCoursesNil  bool
		wantEnrollments bool // non-nil empty slice expected
		wantWarnings    int
	}{
		{
			name:           "stale instructor id",
			sel:            contoso.ViewSelectors{InstructorID: intp(42)},
			wantCoursesNil: false,
			wantWarnings:   1,
		},
		{
			name:            "course not taught by instructor",
			sel:             contoso.ViewSelectors{InstructorID: intp(1), CourseID: intp(5)},
			wantEnrollments: true,
			wantWarnings:    1,
		},
		{
			name:           "course selector without instructor selector",
			sel:            contoso.ViewSelectors{CourseID: intp(2)},
			wantCoursesNil: true,
			wantWarnings:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := &stubInstructorService{instructors: testRoster()}
			es := &stubEnrollmentService{
				enrollments: map[int][]*contoso.Enrollment{
					5: {{ID: 11, CourseID: 5, StudentID: 9}},
				},
			}
			a := NewViewAssembler(is, es)

			view, err := a.AssembleInstructorView(context.Background(), tt.sel)
			if err != nil {
				t.Fatalf("AssembleInstructorView() error = %v", err)
			}

			if tt.wantCoursesNil && view.Courses != nil {
				t.Errorf("courses = %v, want nil", view.Courses)
			}
			if !tt.wantCoursesNil && view.Courses == nil {
				t.Error("courses = nil, want non-nil")
			}
			if tt.wantEnrollments {
				if view.Enrollments == nil || len(view.Enrollments) != 0 {
					t.Errorf("enrollments = %v, want empty non-nil", view.Enrollments)
				}
			} else if view.Enrollments != nil {
				t.Errorf("enrollments = %v, want nil", view.Enrollments)
			}
			if len(view.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d of them", view.Warnings, tt.wantWarnings)
			}

			// guard violations must never reach the enrollment store.
			if es.findCalls != 0 {
				t.Errorf("enrollment lookups = %d, want 0", es.findCalls)
			}
		})
	}
}

func TestAssembleInstructorView_NoEnrollmentsYet(t *testing.T) {
	is := &stubInstructorService{instructors: testRoster()}
	es := &stubEnrollmentService{}
	a := NewViewAssembler(is, es)

	view, err := a.AssembleInstructorView(context.Background(), contoso.ViewSelectors{
		InstructorID: intp(1),
		CourseID:     intp(1),
	})
	if err != nil {
		t.Fatalf("AssembleInstructorView() error = %v", err)
	}

	// absence of enrollments is a normal state, not an error or a nil.
	if view.Enrollments == nil || len(view.Enrollments) != 0 {
		t.Errorf("enrollments = %v, want empty non-nil", view.Enrollments)
	}
	if len(view.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", view.Warnings)
	}
}
