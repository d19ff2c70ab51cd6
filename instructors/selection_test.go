package instructors

import (
	"testing"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

func TestCourseSelection(t *testing.T) {
	c1 := course(1, "Chemistry")
	c2 := course(2, "Microeconomics")
	c3 := course(3, "Calculus")
	catalog := []*contoso.Course{&c1, &c2, &c3}

	subject := instructor(1, "Fakhouri", c2)

	rows := CourseSelection(subject, catalog)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want one per catalog course", len(rows))
	}

	want := map[int]bool{1: false, 2: true, 3: false}
	for _, row := range rows {
		if row.Assigned != want[row.CourseID] {
			t.Errorf("course %d assigned = %v, want %v", row.CourseID, row.Assigned, want[row.CourseID])
		}
		if row.Title == "" {
			t.Errorf("course %d has no title", row.CourseID)
		}
	}

	// no courses assigned at all still yields every row, all unchecked.
	for _, row := range CourseSelection(instructor(2, "Harui"), catalog) {
		if row.Assigned {
			t.Errorf("course %d assigned for instructor with no courses", row.CourseID)
		}
	}
}
