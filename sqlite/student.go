package sqlite

import (
	"context"
	"database/sql"
	"strings"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

var _ contoso.StudentService = (*StudentService)(nil)

// StudentService persists students.
type StudentService struct {
	db *DB
}

// NewStudentService creates a new student service over the provided database.
func NewStudentService(db *DB) *StudentService {
	return &StudentService{db: db}
}

// FindStudentByID returns a student based on the passed id.
//
// returns ENOTFOUND if the student isnt found.
func (s *StudentService) FindStudentByID(ctx context.Context, id int) (*contoso.Student, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return findStudentByID(ctx, tx, id)
}

// FindStudents returns a range of students based on the filter.
func (s *StudentService) FindStudents(ctx context.Context, filter contoso.StudentFilter) ([]*contoso.Student, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return findStudents(ctx, tx, filter)
}

// CreateStudent creates a new student and populates its id.
func (s *StudentService) CreateStudent(ctx context.Context, student *contoso.Student) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := student.Validate(); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO students (
			last_name,
			first_mid_name,
			enrollment_date
		) VALUES (?, ?, ?)
	`,
		student.LastName,
		student.FirstMidName,
		student.EnrollmentDate,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	student.ID = int(id)

	return tx.Commit()
}

// UpdateStudent applies upd to the student with the given id and returns the
// updated student.
//
// returns ENOTFOUND if the student isnt found.
func (s *StudentService) UpdateStudent(ctx context.Context, id int, upd contoso.StudentUpdate) (*contoso.Student, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	student, err := findStudentByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if upd.LastName != nil {
		student.LastName = *upd.LastName
	}
	if upd.FirstMidName != nil {
		student.FirstMidName = *upd.FirstMidName
	}
	if upd.EnrollmentDate != nil {
		student.EnrollmentDate = *upd.EnrollmentDate
	}
	if err := student.Validate(); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE students SET
			last_name = ?,
			first_mid_name = ?,
			enrollment_date = ?
		WHERE id = ?
	`,
		student.LastName,
		student.FirstMidName,
		student.EnrollmentDate,
		id,
	)
	if err != nil {
		return nil, err
	}

	return student, tx.Commit()
}

// DeleteStudent permanently deletes a student together with its enrollments.
//
// returns ENOTFOUND if the student isnt found.
func (s *StudentService) DeleteStudent(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := findStudentByID(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func findStudentByID(ctx context.Context, tx *sql.Tx, id int) (*contoso.Student, error) {
	students, err := findStudents(ctx, tx, contoso.StudentFilter{ID: &id})
	if err != nil {
		return nil, err
	} else if len(students) == 0 {
		return nil, contoso.Errorf(contoso.ENOTFOUND, "student not found")
	}

	return students[0], nil
}

func findStudents(ctx context.Context, tx *sql.Tx, filter contoso.StudentFilter) ([]*contoso.Student, error) {
	where, args := []string{"1 = 1"}, []interface{}{}
	if filter.ID != nil {
		where, args = append(where, "id = ?"), append(args, *filter.ID)
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		where = append(where, "(last_name LIKE ? OR first_mid_name LIKE ?)")
		args = append(args, pattern, pattern)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT
			id,
			last_name,
			first_mid_name,
			enrollment_date
		FROM students
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY last_name, first_mid_name, id
		`+formatLimitOffset(filter.Limit, filter.Offset),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []*contoso.Student{}
	for rows.Next() {
		var student contoso.Student
		if err := rows.Scan(
			&student.ID,
			&student.LastName,
			&student.FirstMidName,
			&student.EnrollmentDate,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	return students, rows.Err()
}
