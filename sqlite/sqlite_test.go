package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

// mustOpenDB opens a migrated database in a temporary directory.
func mustOpenDB(t *testing.T) *DB {
	t.Helper()

	db := NewDB(filepath.Join(t.TempDir(), "contoso.db"))
	if err := db.Open(); err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedCourse inserts a department and a course under it.
func seedCourse(t *testing.T, db *DB, courseID int, title string) {
	t.Helper()
	ctx := context.Background()

	ds := NewDepartmentService(db)
	department := &contoso.Department{Name: title + " dept", StartDate: time.Now()}
	if err := ds.CreateDepartment(ctx, department); err != nil {
		t.Fatalf("seed department: %v", err)
	}

	cs := NewCourseService(db)
	course := &contoso.Course{ID: courseID, Title: title, Credits: 3, DepartmentID: department.ID}
	if err := cs.CreateCourse(ctx, course); err != nil {
		t.Fatalf("seed course: %v", err)
	}
}

func TestInstructorCRUD(t *testing.T) {
	db := mustOpenDB(t)
	ctx := context.Background()
	s := NewInstructorService(db)

	instructor := &contoso.Instructor{
		LastName:     "Fakhouri",
		FirstMidName: "Fadi",
		HireDate:     time.Date(2002, 7, 6, 0, 0, 0, 0, time.UTC),
		Office:       &contoso.OfficeAssignment{Location: "Smith 17"},
	}
	if err := s.CreateInstructor(ctx, instructor); err != nil {
		t.Fatalf("CreateInstructor() error = %v", err)
	}
	if instructor.ID == 0 {
		t.Fatal("CreateInstructor() did not populate id")
	}

	got, err := s.FindInstructorByID(ctx, instructor.ID)
	if err != nil {
		t.Fatalf("FindInstructorByID() error = %v", err)
	}
	if got.LastName != "Fakhouri" || got.Office == nil || got.Office.Location != "Smith 17" {
		t.Errorf("found instructor = %+v", got)
	}
	if got.Courses == nil || len(got.Courses) != 0 {
		t.Errorf("new instructor courses = %v, want empty non-nil", got.Courses)
	}

	last := "Kapoor"
	if got, err = s.UpdateInstructor(ctx, instructor.ID, contoso.InstructorUpdate{LastName: &last}); err != nil {
		t.Fatalf("UpdateInstructor() error = %v", err)
	}
	if got.LastName != "Kapoor" || got.Office == nil {
		t.Errorf("updated instructor = %+v", got)
	}

	if err := s.DeleteInstructor(ctx, instructor.ID); err != nil {
		t.Fatalf("DeleteInstructor() error = %v", err)
	}
	if _, err := s.FindInstructorByID(ctx, instructor.ID); contoso.ErrorCode(err) != contoso.ENOTFOUND {
		t.Errorf("find after delete error code = %q, want ENOTFOUND", contoso.ErrorCode(err))
	}
}

func TestUpdateCourseAssignments(t *testing.T) {
	db := mustOpenDB(t)
	ctx := context.Background()
	s := NewInstructorService(db)

	seedCourse(t, db, 1050, "Chemistry")
	seedCourse(t, db, 4022, "Microeconomics")

	instructor := &contoso.Instructor{
		LastName:     "Harui",
		FirstMidName: "Roger",
		HireDate:     time.Date(1998, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.CreateInstructor(ctx, instructor); err != nil {
		t.Fatalf("CreateInstructor() error = %v", err)
	}

	if err := s.UpdateCourseAssignments(ctx, instructor.ID, []int{1050, 4022}, nil); err != nil {
		t.Fatalf("UpdateCourseAssignments(add) error = %v", err)
	}

	got, err := s.FindInstructorByID(ctx, instructor.ID)
	if err != nil {
		t.Fatalf("FindInstructorByID() error = %v", err)
	}
	if len(got.Courses) != 2 || got.Courses[0].ID != 1050 || got.Courses[1].ID != 4022 {
		t.Fatalf("courses after add = %+v", got.Courses)
	}

	// re-adding an existing link must stay a single row.
	if err := s.UpdateCourseAssignments(ctx, instructor.ID, []int{1050}, []int{4022}); err != nil {
		t.Fatalf("UpdateCourseAssignments(swap) error = %v", err)
	}
	if got, err = s.FindInstructorByID(ctx, instructor.ID); err != nil {
		t.Fatalf("FindInstructorByID() error = %v", err)
	}
	if len(got.Courses) != 1 || got.Courses[0].ID != 1050 {
		t.Errorf("courses after swap = %+v", got.Courses)
	}

	if err := s.UpdateCourseAssignments(ctx, 9999, []int{1050}, nil); contoso.ErrorCode(err) != contoso.ENOTFOUND {
		t.Errorf("batch for unknown instructor error code = %q, want ENOTFOUND", contoso.ErrorCode(err))
	}
}

func TestOfficeAndAssignmentsIndependent(t *testing.T) {
	db := mustOpenDB(t)
	ctx := context.Background()
	s := NewInstructorService(db)

	seedCourse(t, db, 1050, "Chemistry")

	instructor := &contoso.Instructor{
		LastName:     "Zheng",
		FirstMidName: "Roger",
		HireDate:     time.Date(2004, 2, 12, 0, 0, 0, 0, time.UTC),
		Office:       &contoso.OfficeAssignment{Location: "Gowan 27"},
	}
	if err := s.CreateInstructor(ctx, instructor); err != nil {
		t.Fatalf("CreateInstructor() error = %v", err)
	}
	if err := s.UpdateCourseAssignments(ctx, instructor.ID, []int{1050}, nil); err != nil {
		t.Fatalf("UpdateCourseAssignments() error = %v", err)
	}

	// clearing the office must leave the assignments alone.
	got, err := s.UpdateInstructor(ctx, instructor.ID, contoso.InstructorUpdate{RemoveOffice: true})
	if err != nil {
		t.Fatalf("UpdateInstructor(RemoveOffice) error = %v", err)
	}
	if got.Office != nil {
		t.Errorf("office = %+v, want nil after clear", got.Office)
	}
	if len(got.Courses) != 1 {
		t.Errorf("courses = %+v, want untouched by office clear", got.Courses)
	}

	// and dropping the assignments must leave a fresh office alone.
	loc := "Gowan 27"
	if _, err := s.UpdateInstructor(ctx, instructor.ID, contoso.InstructorUpdate{OfficeLocation: &loc}); err != nil {
		t.Fatalf("UpdateInstructor(OfficeLocation) error = %v", err)
	}
	if err := s.UpdateCourseAssignments(ctx, instructor.ID, nil, []int{1050}); err != nil {
		t.Fatalf("UpdateCourseAssignments(remove) error = %v", err)
	}
	if got, err = s.FindInstructorByID(ctx, instructor.ID); err != nil {
		t.Fatalf("FindInstructorByID() error = %v", err)
	}
	if got.Office == nil || got.Office.Location != "Gowan 27" {
		t.Errorf("office = %+v, want untouched by assignment removal", got.Office)
	}
	if len(got.Courses) != 0 {
		t.Errorf("courses = %+v, want none", got.Courses)
	}
}

func TestFindEnrollmentsByCourseID(t *testing.T) {
	db := mustOpenDB(t)
	ctx := context.Background()

	seedCourse(t, db, 1050, "Chemistry")

	ss := NewStudentService(db)
	student := &contoso.Student{
		LastName:       "Alexander",
		FirstMidName:   "Carson",
		EnrollmentDate: time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := ss.CreateStudent(ctx, student); err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}

	// enrollments are registrar data, seed them directly.
	if _, err := db.db.ExecContext(ctx, `
		INSERT INTO enrollments (course_id, student_id, grade) VALUES (?, ?, ?)
	`, 1050, student.ID, "A"); err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}

	es := NewEnrollmentService(db)
	enrollments, err := es.FindEnrollmentsByCourseID(ctx, 1050)
	if err != nil {
		t.Fatalf("FindEnrollmentsByCourseID() error = %v", err)
	}
	if len(enrollments) != 1 {
		t.Fatalf("enrollments = %d, want 1", len(enrollments))
	}
	e := enrollments[0]
	if e.Grade == nil || *e.Grade != contoso.GradeA {
		t.Errorf("grade = %v, want A", e.Grade)
	}
	if e.Student == nil || e.Student.LastName != "Alexander" {
		t.Errorf("student = %+v", e.Student)
	}

	// a course with no enrollments yields an empty slice.
	seedCourse(t, db, 4022, "Microeconomics")
	if enrollments, err = es.FindEnrollmentsByCourseID(ctx, 4022); err != nil {
		t.Fatalf("FindEnrollmentsByCourseID() error = %v", err)
	}
	if enrollments == nil || len(enrollments) != 0 {
		t.Errorf("enrollments = %v, want empty non-nil", enrollments)
	}
}

func TestCourseConflictAndSearch(t *testing.T) {
	db := mustOpenDB(t)
	ctx := context.Background()

	seedCourse(t, db, 1050, "Chemistry")

	cs := NewCourseService(db)
	dup := &contoso.Course{ID: 1050, Title: "Chemistry II", Credits: 4, DepartmentID: 1}
	if err := cs.CreateCourse(ctx, dup); contoso.ErrorCode(err) != contoso.ECONFLICT {
		t.Errorf("duplicate course number error code = %q, want ECONFLICT", contoso.ErrorCode(err))
	}

	courses, err := cs.FindCoursesByIDs(ctx, []int{1050, 9999})
	if err != nil {
		t.Fatalf("FindCoursesByIDs() error = %v", err)
	}
	if len(courses) != 1 || courses[0].ID != 1050 {
		t.Errorf("FindCoursesByIDs() = %+v, want just course 1050", courses)
	}

	ss := NewStudentService(db)
	for _, name := range []string{"Anand", "Antonov", "Barzdukas"} {
		student := &contoso.Student{LastName: name, FirstMidName: "X", EnrollmentDate: time.Now()}
		if err := ss.CreateStudent(ctx, student); err != nil {
			t.Fatalf("CreateStudent(%s) error = %v", name, err)
		}
	}
	search := "An"
	students, err := ss.FindStudents(ctx, contoso.StudentFilter{Search: &search, Limit: 10})
	if err != nil {
		t.Fatalf("FindStudents() error = %v", err)
	}
	if len(students) != 2 {
		t.Errorf("search %q matched %d students, want 2: %+v", search, len(students), students)
	}
}
