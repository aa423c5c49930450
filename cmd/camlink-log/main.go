// Command camlink-log is a tool for viewing and analyzing camlink
// protocol log files.
//
// Log files are created by the protocol logging infrastructure when
// running camlink-ctl with the -protocol-log flag.
//
// Usage:
//
//	camlink-log <command> [flags] <file.clog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON lines
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	camlink-log view flight.clog
//
//	# View only outgoing messages
//	camlink-log view -direction out flight.clog
//
//	# View only state changes
//	camlink-log view -category state flight.clog
//
//	# Export to JSONL
//	camlink-log export flight.clog > flight.jsonl
//
//	# Show statistics
//	camlink-log stats flight.clog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/camlink-protocol/camlink-go/cmd/camlink-log/commands"
	"github.com/camlink-protocol/camlink-go/pkg/camlog"
)

const usage = `camlink-log - Camera Link Protocol Log Analyzer

Usage:
  camlink-log <command> [flags] <file.clog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON lines
  stats    Show statistics about the log file

Use "camlink-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func parseFilter(fs *flag.FlagSet, args []string) (camlog.Filter, string) {
	direction := fs.String("direction", "", "Filter by direction (in, out, none)")
	category := fs.String("category", "", "Filter by category (message, state, error)")
	connID := fs.String("conn-id", "", "Filter by connection ID")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	var filter camlog.Filter
	filter.ConnectionID = *connID
	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fatal(err)
		}
		filter.Direction = &d
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fatal(err)
		}
		filter.Category = &c
	}
	return filter, fs.Arg(0)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	filter, path := parseFilter(fs, args)
	if err := commands.View(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	filter, path := parseFilter(fs, args)
	if err := commands.Export(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		os.Exit(1)
	}
	stats, err := commands.CollectStats(fs.Arg(0))
	if err != nil {
		fatal(err)
	}
	stats.Print(os.Stdout)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
