package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dot5enko/miniql/manager"
	"github.com/dot5enko/miniql/schema"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <database-file> [<command>]\n\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "commands:\n  PRINT\n  APPEND ROW (v1, v2, ...)\n\nflags:\n")
	flag.PrintDefaults()
}

func main() {

	outputPath := flag.String("out", manager.DefaultOutputPath, "path of the textual dump written after the session")
	snapshotPath := flag.String("snapshot", "", "also write a compressed binary snapshot to this path")
	maxBytes := flag.Int("max-bytes", 0, "row buffer limit in bytes, 0 for unlimited")
	maxColumns := flag.Int("max-columns", schema.DefaultMaxColumns, "maximum number of columns")
	width := flag.Int("width", 25, "print width of a table cell")
	verbose := flag.Bool("v", false, "debug logging with row buffer dumps")

	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		usage()
		os.Exit(manager.ExitFatal)
	}

	m := manager.New(manager.ManagerConfig{
		OutputPath:    *outputPath,
		SnapshotPath:  *snapshotPath,
		MaxTableBytes: *maxBytes,
		Limits: schema.Limits{
			MaxNameLength: schema.DefaultMaxNameLength,
			MaxColumns:    *maxColumns,
		},
		PrintWidth: *width,
		Verbose:    *verbose,
	})

	input := ""
	if len(args) == 2 {
		input = args[1]
	}

	os.Exit(m.Run(args[0], input, len(args) == 2))
}
