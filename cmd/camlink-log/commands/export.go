package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/camlink-protocol/camlink-go/pkg/camlog"
)

// Export writes events matching the filter as JSON lines.
func Export(path string, filter camlog.Filter, w io.Writer) error {
	reader, err := camlog.NewFilteredReader(path, filter)
	if err != nil {
		return err
	}
	defer reader.Close()

	enc := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := enc.Encode(exportRecord(event)); err != nil {
			return err
		}
	}
}

// exportRecord flattens an event for JSON output. CBOR integer keys
// become stable field names so downstream tools do not depend on the
// wire layout.
func exportRecord(event camlog.Event) map[string]any {
	rec := map[string]any{
		"timestamp": event.Timestamp,
		"direction": event.Direction.String(),
		"category":  event.Category.String(),
	}
	if event.ConnectionID != "" {
		rec["connection_id"] = event.ConnectionID
	}
	switch {
	case event.Message != nil:
		msg := map[string]any{
			"type":      event.Message.Type.String(),
			"component": event.Message.Component,
		}
		if event.Message.Command != nil {
			msg["command"] = event.Message.Command.String()
		}
		if event.Message.Param != "" {
			msg["param"] = event.Message.Param
		}
		rec["message"] = msg
	case event.StateChange != nil:
		rec["state_change"] = map[string]any{
			"entity":    event.StateChange.Entity,
			"old_state": event.StateChange.OldState,
			"new_state": event.StateChange.NewState,
		}
	case event.Error != nil:
		rec["error"] = map[string]any{
			"message": event.Error.Message,
			"context": event.Error.Context,
		}
	}
	return rec
}
