package contoso

import "context"

// ReconcileResult reports what a reconciliation actually did. Warnings holds
// the requested course ids which didnt resolve to a live course and were
// skipped; their presence never aborts the rest of the batch.
type ReconcileResult struct {
	Added    []int `json:"added"`
	Removed  []int `json:"removed"`
	Warnings []int `json:"warnings"`
}

// Changed reports whether the reconciliation touched any assignment.
func (r *ReconcileResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// AssignmentService reconciles an instructor's course assignments against a
// submitted selection.
//
// It operates on top of the instructor and course APIs and owns the only code
// path which creates or destroys assignment links.
type AssignmentService interface {
	// ReconcileCourses makes the instructor's persisted course assignments
	// equal the target set with the minimal add/remove batch, then updates
	// instructor.Courses in place to match. The instructor must be loaded
	// with its current course list.
	//
	// courseIDs carries form semantics: nil means no selection was
	// submitted and the assignments are left untouched, while a non-nil
	// empty slice means everything was explicitly deselected and all
	// assignments are removed. Callers must never conflate the two.
	//
	// Reconciling twice with the same target is a no-op the second time.
	ReconcileCourses(ctx context.Context, instructor *Instructor, courseIDs []int) (*ReconcileResult, error)
}
