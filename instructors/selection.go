package instructors

import (
	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

// CourseSelection builds the selection rows for the instructor edit page: one
// row per course in the catalog, flagged with the instructor's assignment
// state at the time of computation. The rows feed the checkbox list whose
// submission comes back through ReconcileCourses.
func CourseSelection(instructor *contoso.Instructor, catalog []*contoso.Course) []contoso.AssignedCourseRow {
	assigned := instructor.AssignedCourseIDs()

	rows := make([]contoso.AssignedCourseRow, 0, len(catalog))
	for _, c := range catalog {
		_, ok := assigned[c.ID]
		rows = append(rows, contoso.AssignedCourseRow{
			CourseID: c.ID,
			Title:    c.Title,
			Assigned: ok,
		})
	}
	return rows
}
