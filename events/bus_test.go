package events

import (
	"testing"
	"time"

	contoso "github.com/Taher-PIO/contoso-migrate-sub002"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	sub1 := bus.Subscribe()
	sub2 := bus.Subscribe()
	defer sub1.Close()
	defer sub2.Close()

	bus.Publish(contoso.Event{Type: contoso.EventCourseCreated, ID: 7, At: time.Now()})

	for i, sub := range []*contoso.Subscription{sub1, sub2} {
		select {
		case event := <-sub.C():
			if event.Type != contoso.EventCourseCreated || event.ID != 7 {
				t.Errorf("subscriber %d got %+v", i, event)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the event", i)
		}
	}
}

func TestBusSlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	sub := bus.Subscribe()
	defer sub.Close()

	// overflow the subscription buffer, the publisher must keep going.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			bus.Publish(contoso.Event{Type: contoso.EventStudentUpdated, ID: i})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}

func TestBusClose(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe()

	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, ok := <-sub.C(); ok {
		t.Error("subscription channel still open after bus close")
	}

	// closing twice and closing subscriptions afterwards must be no-ops.
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Errorf("Subscription.Close() after bus close error = %v", err)
	}

	late := bus.Subscribe()
	if _, ok := <-late.C(); ok {
		t.Error("subscription on a closed bus is open")
	}
}
