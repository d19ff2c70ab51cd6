package contoso

import (
	"context"
	"time"
)

// Department represents an academic department. AdministratorID optionally
// points at the instructor running the department.
type Department struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Budget          int64     `json:"budget"`
	StartDate       time.Time `json:"start_date"`
	AdministratorID *int      `json:"administrator_id,omitempty"`
}

// Validate returns EINVALID if the department is missing required fields.
func (d *Department) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "department name required")
	}
	if d.Budget < 0 {
		return Errorf(EINVALID, "department budget cannot be negative")
	}
	return nil
}

// DepartmentUpdate represents a partial update of a department. Nil fields
// are left untouched. RemoveAdministrator clears the administrator and wins
// over AdministratorID when both are set.
type DepartmentUpdate struct {
	Name      *string    `json:"name"`
	Budget    *int64     `json:"budget"`
	StartDate *time.Time `json:"start_date"`

	AdministratorID     *int `json:"administrator_id"`
	RemoveAdministrator bool `json:"remove_administrator"`
}

// DepartmentService represents a service which manages departments.
type DepartmentService interface {
	// FindDepartmentByID returns a department based on the passed id.
	// returns ENOTFOUND if the department doesnt exist.
	FindDepartmentByID(ctx context.Context, id int) (*Department, error)

	// FindDepartments returns all departments.
	FindDepartments(ctx context.Context) ([]*Department, error)

	// CreateDepartment creates a new department and populates its id.
	CreateDepartment(ctx context.Context, department *Department) error

	// UpdateDepartment applies upd to the department with the given id and
	// returns the updated department.
	UpdateDepartment(ctx context.Context, id int, upd DepartmentUpdate) (*Department, error)

	// DeleteDepartment permanently deletes a department. returns ECONFLICT
	// while courses still belong to it, those must be moved or removed
	// first.
	DeleteDepartment(ctx context.Context, id int) error
}
