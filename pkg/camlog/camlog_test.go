package camlog

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

func TestEventRoundTrip(t *testing.T) {
	event := Inbound(wire.MsgCommandAck, wire.ComponentGimbal)
	event.ConnectionID = NewConnectionID()

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if decoded.ConnectionID != event.ConnectionID {
		t.Errorf("ConnectionID: got %q, want %q", decoded.ConnectionID, event.ConnectionID)
	}
	if decoded.Direction != DirectionIn {
		t.Errorf("Direction: got %v, want %v", decoded.Direction, DirectionIn)
	}
	if decoded.Message == nil {
		t.Fatal("Message is nil")
	}
	if decoded.Message.Type != wire.MsgCommandAck {
		t.Errorf("Message.Type: got %v, want %v", decoded.Message.Type, wire.MsgCommandAck)
	}
	if decoded.Message.Component != wire.ComponentGimbal {
		t.Errorf("Message.Component: got %d, want %d", decoded.Message.Component, wire.ComponentGimbal)
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := StateChange("calibration", "InProgress", "Complete")
	event.ConnectionID = "conn-123"
	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.StateChange == nil {
		t.Fatal("StateChange is nil")
	}
	if decoded.StateChange.NewState != "Complete" {
		t.Errorf("NewState: got %q, want %q", decoded.StateChange.NewState, "Complete")
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				logger.Log(Outbound(wire.MsgCommand, wire.ComponentCamera))
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		count++
	}
	if count != 200 {
		t.Errorf("event count: got %d, want 200", count)
	}
}

func TestReaderFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Inbound(wire.MsgHeartbeat, wire.ComponentAutopilot))
	logger.Log(StateChange("video", "Stopped", "Running"))
	logger.Log(Inbound(wire.MsgCaptureStatus, wire.ComponentCamera))
	logger.Close()

	stateOnly := CategoryState
	reader, err := NewFilteredReader(path, Filter{Category: &stateOnly})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if event.StateChange == nil || event.StateChange.Entity != "video" {
		t.Errorf("unexpected event: %+v", event)
	}
	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestFilterTimeWindow(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)
	later := now.Add(time.Hour)

	event := Event{Timestamp: now, Category: CategoryMessage}

	f := Filter{TimeStart: &earlier, TimeEnd: &later}
	if !f.matches(event) {
		t.Error("event inside window should match")
	}

	f = Filter{TimeStart: &later}
	if f.matches(event) {
		t.Error("event before TimeStart should not match")
	}
}
