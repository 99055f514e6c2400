// Command geonorm normalizes free-text country names in tabular files and
// serves the resolver over HTTP and MCP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "normalize":
		cmdNormalize(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	case "sources":
		cmdSources(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: geonorm <command>

Commands:
  normalize   Normalize country columns in CSV files (or ZIPs of CSVs)
  serve       Start the HTTP server (or MCP over stdio with -mcp)
  import      Download reference data and rebuild the refdata directory
  sources     List or check the tracked reference data sources
`)
}
