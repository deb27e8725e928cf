package main

import (
	"fmt"
	"os"
	"strings"

	"driftwood/service"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch cmd := strings.ToLower(os.Args[1]); cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("driftwood version %s\n", cliVersion)
	default:
		os.Exit(service.HandleCommand(os.Args[1:]))
	}
}

func printHelp() {
	helpText := `Usage: driftwood <command> [options]
Commands:
  help                            Display this help message.
  version                         Show version information.
  serve                           Run the resort site server.
  init | clean | backup | restore Manage the content database.
  grant | revoke                  Manage moderation capabilities.
`
	fmt.Println(helpText)
}
