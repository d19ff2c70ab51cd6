package sqlite

import (
	"context"
	"database/sql"
	"strings"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

var _ contoso.InstructorService = (*InstructorService)(nil)

// InstructorService persists instructors, their office assignments and their
// course assignment links.
type InstructorService struct {
	db *DB
}

// NewInstructorService creates a new instructor service over the provided
// database.
func NewInstructorService(db *DB) *InstructorService {
	return &InstructorService{db: db}
}

// FindInstructorByID returns an instructor with office assignment and shallow
// course list attached.
//
// returns ENOTFOUND if the instructor isnt found.
func (s *InstructorService) FindInstructorByID(ctx context.Context, id int) (*contoso.Instructor, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	instructor, err := findInstructorByID(ctx, tx, id)
	if err != nil {
		return nil, err
	} else if err := attachInstructorAssociations(ctx, tx, instructor); err != nil {
		return nil, err
	}

	return instructor, nil
}

// FindInstructors returns a range of instructors based on the filter, each
// with office assignment and shallow course list attached.
func (s *InstructorService) FindInstructors(ctx context.Context, filter contoso.InstructorFilter) ([]*contoso.Instructor, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	instructors, err := findInstructors(ctx, tx, filter)
	if err != nil {
		return nil, err
	}

	for _, instructor := range instructors {
		if err := attachInstructorAssociations(ctx, tx, instructor); err != nil {
			return nil, err
		}
	}

	return instructors, nil
}

// CreateInstructor creates a new instructor and its office assignment when
// one is set. Course assignments are not created here, they are owned by the
// reconciler.
func (s *InstructorService) CreateInstructor(ctx context.Context, instructor *contoso.Instructor) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := createInstructor(ctx, tx, instructor); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateInstructor applies upd to the instructor with the given id and
// returns the updated instructor. Office changes never touch the course
// assignment links.
func (s *InstructorService) UpdateInstructor(ctx context.Context, id int, upd contoso.InstructorUpdate) (*contoso.Instructor, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	instructor, err := updateInstructor(ctx, tx, id, upd)
	if err != nil {
		return nil, err
	} else if err := attachInstructorAssociations(ctx, tx, instructor); err != nil {
		return nil, err
	}

	return instructor, tx.Commit()
}

// DeleteInstructor permanently deletes an instructor. The office assignment
// and assignment links go with it, departments administered by the
// instructor fall back to no administrator.
//
// returns ENOTFOUND if the instructor isnt found.
func (s *InstructorService) DeleteInstructor(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := findInstructorByID(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM instructors WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateCourseAssignments links and unlinks courses in one transaction, the
// caller either sees the whole batch or none of it.
func (s *InstructorService) UpdateCourseAssignments(ctx context.Context, instructorID int, add, remove []int) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := findInstructorByID(ctx, tx, instructorID); err != nil {
		return err
	}

	for _, courseID := range add {
		// INSERT OR IGNORE keeps the pair unique when two reconciles
		// race, last-write-wins is fine here.
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO course_assignments (
				instructor_id,
				course_id
			) VALUES (?, ?)
		`,
			instructorID,
			courseID,
		)
		if err != nil {
			return err
		}
	}

	for _, courseID := range remove {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM course_assignments
			WHERE instructor_id = ? AND course_id = ?
		`,
			instructorID,
			courseID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func findInstructorByID(ctx context.Context, tx *sql.Tx, id int) (*contoso.Instructor, error) {
	instructors, err := findInstructors(ctx, tx, contoso.InstructorFilter{ID: &id})
	if err != nil {
		return nil, err
	} else if len(instructors) == 0 {
		return nil, contoso.Errorf(contoso.ENOTFOUND, "instructor not found")
	}

	return instructors[0], nil
}

func findInstructors(ctx context.Context, tx *sql.Tx, filter contoso.InstructorFilter) ([]*contoso.Instructor, error) {
	where, args := []string{"1 = 1"}, []interface{}{}
	if filter.ID != nil {
		where, args = append(where, "id = ?"), append(args, *filter.ID)
	}
	if filter.LastName != nil {
		where, args = append(where, "last_name = ?"), append(args, *filter.LastName)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT
			id,
			last_name,
			first_mid_name,
			hire_date
		FROM instructors
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY last_name, first_mid_name, id
		`+formatLimitOffset(filter.Limit, filter.Offset),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instructors := []*contoso.Instructor{}
	for rows.Next() {
		var instructor contoso.Instructor
		if err := rows.Scan(
			&instructor.ID,
			&instructor.LastName,
			&instructor.FirstMidName,
			&instructor.HireDate,
		); err != nil {
			return nil, err
		}
		instructors = append(instructors, &instructor)
	}

	return instructors, rows.Err()
}

func createInstructor(ctx context.Context, tx *sql.Tx, instructor *contoso.Instructor) error {
	if err := instructor.Validate(); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO instructors (
			last_name,
			first_mid_name,
			hire_date
		) VALUES (?, ?, ?)
	`,
		instructor.LastName,
		instructor.FirstMidName,
		instructor.HireDate,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	instructor.ID = int(id)

	if instructor.Office != nil {
		if err := upsertOffice(ctx, tx, instructor.ID, instructor.Office.Location); err != nil {
			return err
		}
	}
	if instructor.Courses == nil {
		instructor.Courses = []contoso.Course{}
	}
	return nil
}

func updateInstructor(ctx context.Context, tx *sql.Tx, id int, upd contoso.InstructorUpdate) (*contoso.Instructor, error) {
	instructor, err := findInstructorByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if upd.LastName != nil {
		instructor.LastName = *upd.LastName
	}
	if upd.FirstMidName != nil {
		instructor.FirstMidName = *upd.FirstMidName
	}
	if upd.HireDate != nil {
		instructor.HireDate = *upd.HireDate
	}
	if err := instructor.Validate(); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE instructors SET
			last_name = ?,
			first_mid_name = ?,
			hire_date = ?
		WHERE id = ?
	`,
		instructor.LastName,
		instructor.FirstMidName,
		instructor.HireDate,
		id,
	)
	if err != nil {
		return nil, err
	}

	switch {
	case upd.RemoveOffice:
		if _, err := tx.ExecContext(ctx, `DELETE FROM office_assignments WHERE instructor_id = ?`, id); err != nil {
			return nil, err
		}
	case upd.OfficeLocation != nil:
		if err := upsertOffice(ctx, tx, id, *upd.OfficeLocation); err != nil {
			return nil, err
		}
	}

	return instructor, nil
}

func upsertOffice(ctx context.Context, tx *sql.Tx, instructorID int, location string) error {
	if location == "" {
		return contoso.Errorf(contoso.EINVALID, "office location required")
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO office_assignments (
			instructor_id,
			location
		) VALUES (?, ?)
		ON CONFLICT (instructor_id) DO UPDATE SET location = excluded.location
	`,
		instructorID,
		location,
	)
	return err
}

func attachInstructorAssociations(ctx context.Context, tx *sql.Tx, instructor *contoso.Instructor) error {
	if err := attachInstructorOffice(ctx, tx, instructor); err != nil {
		return err
	}
	return attachInstructorCourses(ctx, tx, instructor)
}

func attachInstructorOffice(ctx context.Context, tx *sql.Tx, instructor *contoso.Instructor) error {
	var location string
	err := tx.QueryRowContext(ctx, `
		SELECT location
		FROM office_assignments
		WHERE instructor_id = ?
	`,
		instructor.ID,
	).Scan(&location)
	if err == sql.ErrNoRows {
		// no office assigned, a normal state.
		instructor.Office = nil
		return nil
	} else if err != nil {
		return err
	}

	instructor.Office = &contoso.OfficeAssignment{Location: location}
	return nil
}

func attachInstructorCourses(ctx context.Context, tx *sql.Tx, instructor *contoso.Instructor) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT
			c.id,
			c.title,
			c.credits,
			c.department_id
		FROM course_assignments ca
		JOIN courses c ON c.id = ca.course_id
		WHERE ca.instructor_id = ?
		ORDER BY c.id
	`,
		instructor.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	instructor.Courses = []contoso.Course{}
	for rows.Next() {
		var course contoso.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Credits,
			&course.DepartmentID,
		); err != nil {
			return err
		}
		instructor.Courses = append(instructor.Courses, course)
	}

	return rows.Err()
}
