// Package instructors implements the course assignment reconciler and the
// master/detail view assembler behind the instructors feature. Both operate
// purely on the service interfaces of the root package so any store
// implementation can sit underneath them.
package instructors

import (
	"context"
	"sort"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

var _ contoso.AssignmentService = (*CourseReconciler)(nil)

// CourseReconciler synchronizes an instructor's persisted course assignments
// with a submitted selection.
type CourseReconciler struct {
	instructorService contoso.InstructorService
	courseService     contoso.CourseService
}

// NewCourseReconciler creates a reconciler over the provided instructor and
// course services.
func NewCourseReconciler(is contoso.InstructorService, cs contoso.CourseService) *CourseReconciler {
	return &CourseReconciler{
		instructorService: is,
		courseService:     cs,
	}
}

// ReconcileCourses diffs the submitted selection against the instructor's
// loaded assignments and applies the difference as one batch.
//
// Course ids in the selection which dont resolve to a live course are skipped
// and reported through ReconcileResult.Warnings; they never abort the valid
// part of the batch. A nil selection leaves the assignments untouched, an
// explicit empty selection removes them all.
func (r *CourseReconciler) ReconcileCourses(ctx context.Context, instructor *contoso.Instructor, courseIDs []int) (*contoso.ReconcileResult, error) {
	if instructor == nil {
		return nil, contoso.Errorf(contoso.EINVALID, "instructor required")
	}

	result := &contoso.ReconcileResult{
		Added:    []int{},
		Removed:  []int{},
		Warnings: []int{},
	}

	// no selection submitted, leave the assignments alone. distinct from
	// an empty selection which clears them all.
	if courseIDs == nil {
		return result, nil
	}

	current := instructor.AssignedCourseIDs()
	target := make(map[int]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		target[id] = struct{}{}
	}

	var toAdd, toRemove []int
	for id := range target {
		if _, ok := current[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for id := range current {
		if _, ok := target[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}

	// resolve the additions in one batch, ids which dont resolve become
	// warnings and drop out of the add set.
	added := []*contoso.Course{}
	if len(toAdd) > 0 {
		courses, err := r.courseService.FindCoursesByIDs(ctx, toAdd)
		if err != nil {
			return nil, err
		}

		found := make(map[int]*contoso.Course, len(courses))
		for _, c := range courses {
			found[c.ID] = c
		}
		for _, id := range toAdd {
			if c, ok := found[id]; ok {
				added = append(added, c)
			} else {
				result.Warnings = append(result.Warnings, id)
			}
		}
	}

	for _, c := range added {
		result.Added = append(result.Added, c.ID)
	}
	result.Removed = append(result.Removed, toRemove...)
	sort.Ints(result.Added)
	sort.Ints(result.Removed)
	sort.Ints(result.Warnings)

	if !result.Changed() {
		return result, nil
	}

	if err := r.instructorService.UpdateCourseAssignments(ctx, instructor.ID, result.Added, result.Removed); err != nil {
		return nil, err
	}

	// mirror the committed state onto the loaded instructor.
	removed := make(map[int]struct{}, len(result.Removed))
	for _, id := range result.Removed {
		removed[id] = struct{}{}
	}
	courses := instructor.Courses[:0]
	for _, c := range instructor.Courses {
		if _, ok := removed[c.ID]; !ok {
			courses = append(courses, c)
		}
	}
	for _, c := range added {
		courses = append(courses, *c)
	}
	instructor.Courses = courses

	return result, nil
}
