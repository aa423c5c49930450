package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/camlink-protocol/camlink-go/pkg/camlog"
)

// StatsResult aggregates counts over a log file.
type StatsResult struct {
	Total       int
	ByCategory  map[string]int
	ByDirection map[string]int
	ByEntity    map[string]int
	First, Last time.Time
}

// CollectStats scans the file and aggregates event counts.
func CollectStats(path string) (*StatsResult, error) {
	reader, err := camlog.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	result := &StatsResult{
		ByCategory:  make(map[string]int),
		ByDirection: make(map[string]int),
		ByEntity:    make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		result.Total++
		result.ByCategory[event.Category.String()]++
		result.ByDirection[event.Direction.String()]++
		if event.StateChange != nil {
			result.ByEntity[event.StateChange.Entity]++
		}
		if result.First.IsZero() || event.Timestamp.Before(result.First) {
			result.First = event.Timestamp
		}
		if event.Timestamp.After(result.Last) {
			result.Last = event.Timestamp
		}
	}
}

// Print writes the statistics in human-readable form.
func (r *StatsResult) Print(w io.Writer) {
	fmt.Fprintf(w, "Events:   %d\n", r.Total)
	if !r.First.IsZero() {
		fmt.Fprintf(w, "Window:   %s .. %s (%s)\n",
			r.First.Format(time.RFC3339), r.Last.Format(time.RFC3339),
			r.Last.Sub(r.First).Round(time.Millisecond))
	}
	printCounts(w, "By category", r.ByCategory)
	printCounts(w, "By direction", r.ByDirection)
	if len(r.ByEntity) > 0 {
		printCounts(w, "State changes by entity", r.ByEntity)
	}
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	fmt.Fprintf(w, "%s:\n", title)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-12s %d\n", k, counts[k])
	}
}
