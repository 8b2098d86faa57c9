package audit

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memSink struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (s *memSink) Log(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	if s.fail {
		return errors.New("db down")
	}
	return nil
}

func (s *memSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatchDeliversToSink(t *testing.T) {
	sink := &memSink{}
	d := NewDispatcher(sink)

	id := uint(7)
	d.Dispatch(Event{UserID: &id, Action: "appointment_created", Entity: "appointment"})

	assert.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "appointment_created", sink.events[0].Action)
}

func TestSinkErrorsDoNotStopWorker(t *testing.T) {
	sink := &memSink{fail: true}
	d := NewDispatcher(sink)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})

	assert.Eventually(t, func() bool { return sink.count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "x"}) })
}
