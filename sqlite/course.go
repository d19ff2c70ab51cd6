package sqlite

import (
	"context"
	"database/sql"
	"strings"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

var _ contoso.CourseService = (*CourseService)(nil)

// CourseService persists the course catalog.
type CourseService struct {
	db *DB
}

// NewCourseService creates a new course service over the provided database.
func NewCourseService(db *DB) *CourseService {
	return &CourseService{db: db}
}

// FindCourseByID returns a course based on the passed id.
//
// returns ENOTFOUND if the course isnt found.
func (s *CourseService) FindCourseByID(ctx context.Context, id int) (*contoso.Course, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return findCourseByID(ctx, tx, id)
}

// FindCoursesByIDs returns the courses whose ids appear in ids. Unresolvable
// ids are silently absent from the result, the reconciler turns those into
// warnings.
func (s *CourseService) FindCoursesByIDs(ctx context.Context, ids []int) ([]*contoso.Course, error) {
	if len(ids) == 0 {
		return []*contoso.Course{}, nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT
			id,
			title,
			credits,
			department_id
		FROM courses
		WHERE id IN (`+placeholders(len(ids))+`)
		ORDER BY id
	`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

// FindCourses returns a range of courses based on the filter.
func (s *CourseService) FindCourses(ctx context.Context, filter contoso.CourseFilter) ([]*contoso.Course, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return findCourses(ctx, tx, filter)
}

// CreateCourse creates a new course under the caller-chosen course number.
//
// returns ECONFLICT if the course number is already taken.
func (s *CourseService) CreateCourse(ctx context.Context, course *contoso.Course) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := course.Validate(); err != nil {
		return err
	}

	switch _, err := findCourseByID(ctx, tx, course.ID); contoso.ErrorCode(err) {
	case contoso.ENOTFOUND:
	case "":
		return contoso.Errorf(contoso.ECONFLICT, "course number %d already taken", course.ID)
	default:
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO courses (
			id,
			title,
			credits,
			department_id
		) VALUES (?, ?, ?, ?)
	`,
		course.ID,
		course.Title,
		course.Credits,
		course.DepartmentID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateCourse applies upd to the course with the given id and returns the
// updated course.
//
// returns ENOTFOUND if the course isnt found.
func (s *CourseService) UpdateCourse(ctx context.Context, id int, upd contoso.CourseUpdate) (*contoso.Course, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	course, err := findCourseByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		course.Title = *upd.Title
	}
	if upd.Credits != nil {
		course.Credits = *upd.Credits
	}
	if upd.DepartmentID != nil {
		course.DepartmentID = *upd.DepartmentID
	}
	if err := course.Validate(); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE courses SET
			title = ?,
			credits = ?,
			department_id = ?
		WHERE id = ?
	`,
		course.Title,
		course.Credits,
		course.DepartmentID,
		id,
	)
	if err != nil {
		return nil, err
	}

	return course, tx.Commit()
}

// DeleteCourse permanently deletes a course, its assignment links and its
// enrollments.
//
// returns ENOTFOUND if the course isnt found.
func (s *CourseService) DeleteCourse(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := findCourseByID(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func findCourseByID(ctx context.Context, tx *sql.Tx, id int) (*contoso.Course, error) {
	courses, err := findCourses(ctx, tx, contoso.CourseFilter{ID: &id})
	if err != nil {
		return nil, err
	} else if len(courses) == 0 {
		return nil, contoso.Errorf(contoso.ENOTFOUND, "course not found")
	}

	return courses[0], nil
}

func findCourses(ctx context.Context, tx *sql.Tx, filter contoso.CourseFilter) ([]*contoso.Course, error) {
	where, args := []string{"1 = 1"}, []interface{}{}
	if filter.ID != nil {
		where, args = append(where, "id = ?"), append(args, *filter.ID)
	}
	if filter.DepartmentID != nil {
		where, args = append(where, "department_id = ?"), append(args, *filter.DepartmentID)
	}
	if filter.Title != nil {
		where, args = append(where, "title LIKE ?"), append(args, "%"+*filter.Title+"%")
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT
			id,
			title,
			credits,
			department_id
		FROM courses
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY id
		`+formatLimitOffset(filter.Limit, filter.Offset),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

func scanCourses(rows *sql.Rows) ([]*contoso.Course, error) {
	courses := []*contoso.Course{}
	for rows.Next() {
		var course contoso.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Credits,
			&course.DepartmentID,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	return courses, rows.Err()
}
