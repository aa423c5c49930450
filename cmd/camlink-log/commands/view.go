// Package commands implements the camlink-log subcommands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/camlink-protocol/camlink-go/pkg/camlog"
)

// ParseDirectionFlag maps a -direction flag value to a Direction.
func ParseDirectionFlag(s string) (camlog.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return camlog.DirectionIn, nil
	case "out":
		return camlog.DirectionOut, nil
	case "none":
		return camlog.DirectionNone, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (in, out, none)", s)
	}
}

// ParseCategoryFlag maps a -category flag value to a Category.
func ParseCategoryFlag(s string) (camlog.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return camlog.CategoryMessage, nil
	case "state":
		return camlog.CategoryState, nil
	case "error":
		return camlog.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category %q (message, state, error)", s)
	}
}

// View prints events matching the filter in human-readable form.
func View(path string, filter camlog.Filter, w io.Writer) error {
	reader, err := camlog.NewFilteredReader(path, filter)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		fmt.Fprintln(w, FormatEvent(event))
	}
}

// FormatEvent renders one event as a single line.
func FormatEvent(event camlog.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-3s %-7s",
		event.Timestamp.Format("15:04:05.000"),
		event.Direction, event.Category)

	switch {
	case event.Message != nil:
		fmt.Fprintf(&b, " %s comp=%d", event.Message.Type, event.Message.Component)
		if event.Message.Command != nil {
			fmt.Fprintf(&b, " cmd=%s", *event.Message.Command)
		}
		if event.Message.Param != "" {
			fmt.Fprintf(&b, " param=%s", event.Message.Param)
		}
	case event.StateChange != nil:
		fmt.Fprintf(&b, " %s: %s -> %s",
			event.StateChange.Entity, event.StateChange.OldState, event.StateChange.NewState)
		if event.StateChange.Reason != "" {
			fmt.Fprintf(&b, " (%s)", event.StateChange.Reason)
		}
	case event.Error != nil:
		fmt.Fprintf(&b, " %s", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(&b, " [%s]", event.Error.Context)
		}
	}
	return b.String()
}
