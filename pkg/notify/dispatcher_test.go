package notify

import "testing"

func TestDispatcherFanOut(t *testing.T) {
	d := NewDispatcher()

	var a, b Recorder
	d.Subscribe(&a)
	d.Subscribe(&b)

	d.Notify(Event{Kind: EventOrientation, Name: "roll", Value: 1.5})
	d.Notify(Event{Kind: EventRecordTime, Value: int64(333)})

	if len(a.Events()) != 2 || len(b.Events()) != 2 {
		t.Errorf("fan-out delivered %d/%d events, want 2/2", len(a.Events()), len(b.Events()))
	}
	if a.CountKind(EventOrientation) != 1 {
		t.Errorf("CountKind(EventOrientation) = %d, want 1", a.CountKind(EventOrientation))
	}
}

func TestSinkFunc(t *testing.T) {
	var got []EventKind
	s := SinkFunc(func(ev Event) { got = append(got, ev.Kind) })

	s.Notify(Event{Kind: EventCalibration})
	if len(got) != 1 || got[0] != EventCalibration {
		t.Errorf("SinkFunc recorded %v, want [EventCalibration]", got)
	}
}

func TestEventKindNames(t *testing.T) {
	if EventSpotArea.String() != "SPOT_AREA" {
		t.Errorf("EventSpotArea.String() = %q", EventSpotArea.String())
	}
	if EventKind(200).String() != "UNKNOWN" {
		t.Errorf("unknown kind String() = %q", EventKind(200).String())
	}
}
