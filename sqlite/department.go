package sqlite

import (
	"context"
	"database/sql"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

var _ contoso.DepartmentService = (*DepartmentService)(nil)

// DepartmentService persists departments.
type DepartmentService struct {
	db *DB
}

// NewDepartmentService creates a new department service over the provided
// database.
func NewDepartmentService(db *DB) *DepartmentService {
	return &DepartmentService{db: db}
}

// FindDepartmentByID returns a department based on the passed id.
//
// returns ENOTFOUND if the department isnt found.
func (s *DepartmentService) FindDepartmentByID(ctx context.Context, id int) (*contoso.Department, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	return findDepartmentByID(ctx, tx, id)
}

// FindDepartments returns all departments ordered by name.
func (s *DepartmentService) FindDepartments(ctx context.Context) ([]*contoso.Department, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT
			id,
			name,
			budget,
			start_date,
			administrator_id
		FROM departments
		ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := []*contoso.Department{}
	for rows.Next() {
		department, err := scanDepartment(rows.Scan)
		if err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}

	return departments, rows.Err()
}

// CreateDepartment creates a new department and populates its id.
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *contoso.Department) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := department.Validate(); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO departments (
			name,
			budget,
			start_date,
			administrator_id
		) VALUES (?, ?, ?, ?)
	`,
		department.Name,
		department.Budget,
		department.StartDate,
		nullableID(department.AdministratorID),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	department.ID = int(id)

	return tx.Commit()
}

// UpdateDepartment applies upd to the department with the given id and
// returns the updated department.
//
// returns ENOTFOUND if the department isnt found.
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id int, upd contoso.DepartmentUpdate) (*contoso.Department, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	department, err := findDepartmentByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		department.Name = *upd.Name
	}
	if upd.Budget != nil {
		department.Budget = *upd.Budget
	}
	if upd.StartDate != nil {
		department.StartDate = *upd.StartDate
	}
	switch {
	case upd.RemoveAdministrator:
		department.AdministratorID = nil
	case upd.AdministratorID != nil:
		department.AdministratorID = upd.AdministratorID
	}
	if err := department.Validate(); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE departments SET
			name = ?,
			budget = ?,
			start_date = ?,
			administrator_id = ?
		WHERE id = ?
	`,
		department.Name,
		department.Budget,
		department.StartDate,
		nullableID(department.AdministratorID),
		id,
	)
	if err != nil {
		return nil, err
	}

	return department, tx.Commit()
}

// DeleteDepartment permanently deletes a department.
//
// returns ENOTFOUND if the department isnt found and ECONFLICT while courses
// still belong to it.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := findDepartmentByID(ctx, tx, id); err != nil {
		return err
	}

	var courses int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses WHERE department_id = ?`, id).Scan(&courses); err != nil {
		return err
	}
	if courses > 0 {
		return contoso.Errorf(contoso.ECONFLICT, "department still offers %d courses", courses)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM departments WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func findDepartmentByID(ctx context.Context, tx *sql.Tx, id int) (*contoso.Department, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT
			id,
			name,
			budget,
			start_date,
			administrator_id
		FROM departments
		WHERE id = ?
	`,
		id,
	)

	department, err := scanDepartment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, contoso.Errorf(contoso.ENOTFOUND, "department not found")
	}
	return department, err
}

func scanDepartment(scan func(dest ...interface{}) error) (*contoso.Department, error) {
	var department contoso.Department
	var administratorID sql.NullInt64
	if err := scan(
		&department.ID,
		&department.Name,
		&department.Budget,
		&department.StartDate,
		&administratorID,
	); err != nil {
		return nil, err
	}

	if administratorID.Valid {
		id := int(administratorID.Int64)
		department.AdministratorID = &id
	}
	return &department, nil
}

func nullableID(id *int) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}
