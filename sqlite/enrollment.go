package sqlite

import (
	"context"
	"database/sql"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

var _ contoso.EnrollmentService = (*EnrollmentService)(nil)

// EnrollmentService reads enrollments. Enrollments are maintained by the
// registrar system, this side only renders them.
type EnrollmentService struct {
	db *DB
}

// NewEnrollmentService creates a new enrollment service over the provided
// database.
func NewEnrollmentService(db *DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// FindEnrollmentsByCourseID returns the enrollments of a course with students
// attached in the same query, one round trip per view assembly.
func (s *EnrollmentService) FindEnrollmentsByCourseID(ctx context.Context, courseID int) ([]*contoso.Enrollment, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT
			e.id,
			e.course_id,
			e.student_id,
			e.grade,
			s.id,
			s.last_name,
			s.first_mid_name,
			s.enrollment_date
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		WHERE e.course_id = ?
		ORDER BY s.last_name, s.first_mid_name, e.id
	`,
		courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := []*contoso.Enrollment{}
	for rows.Next() {
		var enrollment contoso.Enrollment
		var student contoso.Student
		var grade sql.NullString
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.CourseID,
			&enrollment.StudentID,
			&grade,
			&student.ID,
			&student.LastName,
			&student.FirstMidName,
			&student.EnrollmentDate,
		); err != nil {
			return nil, err
		}

		if grade.Valid {
			g := contoso.Grade(grade.String)
			enrollment.Grade = &g
		}
		enrollment.Student = &student
		enrollments = append(enrollments, &enrollment)
	}

	return enrollments, rows.Err()
}
