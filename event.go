package contoso

import "time"

// Event types published on the bus. One per committed mutation.
const (
	EventInstructorCreated = "instructor.created"
	EventInstructorUpdated = "instructor.updated"
	EventInstructorDeleted = "instructor.deleted"
	EventCoursesReconciled = "instructor.courses_reconciled"
	EventCourseCreated     = "course.created"
	EventCourseUpdated     = "course.updated"
	EventCourseDeleted     = "course.deleted"
	EventStudentCreated    = "student.created"
	EventStudentUpdated    = "student.updated"
	EventStudentDeleted    = "student.deleted"
	EventDepartmentCreated = "department.created"
	EventDepartmentUpdated = "department.updated"
	EventDepartmentDeleted = "department.deleted"
)

// Event is a change notification pushed to frontend subscribers so open list
// views can refresh without polling.
type Event struct {
	// Type is one of the Event* constants.
	Type string `json:"type"`

	// ID of the entity the event is about.
	ID int `json:"id"`

	// Payload optionally carries extra event data, e.g. the reconcile
	// result for EventCoursesReconciled.
	Payload interface{} `json:"payload,omitempty"`

	At time.Time `json:"at"`
}

// EventBus fans committed change events out to subscribers.
type EventBus interface {
	// Publish delivers the event to every live subscription. Slow
	// subscribers drop events rather than block the publisher.
	Publish(event Event)

	// Subscribe registers a new subscription on the bus.
	Subscribe() *Subscription

	// Close closes the bus and every live subscription.
	Close() error
}

// Subscription is one subscriber's view of the event stream.
type Subscription struct {
	c      chan Event
	cancel func()
}

// NewSubscription constructs a subscription delivering over c, cancel is
// called exactly once when the subscription closes.
func NewSubscription(c chan Event, cancel func()) *Subscription {
	return &Subscription{c: c, cancel: cancel}
}

// C returns the event channel. The channel is closed when the subscription or
// the owning bus closes.
func (s *Subscription) C() <-chan Event {
	return s.c
}

// Close detaches the subscription from the bus.
func (s *Subscription) Close() error {
	s.cancel()
	return nil
}
