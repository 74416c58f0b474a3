// Command webbot generates and updates webbot apps.
//
// Usage:
//
//	webbot create [-label L] [-description D] [-backend mux|servemux] [-module M] <dir>
//	webbot update [-page Name] <dir>
//
// Every flag may be set with an environment variable prefixed WEBBOT_, i.e. WEBBOT_LABEL.
package main

import (
	"fmt"
	"io"
	"os"
)

const usage = `usage:
  webbot create [-label L] [-description D] [-backend mux|servemux] [-module M] <dir>
  webbot update [-page Name] <dir>
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, surveyPrompt))
}

// run executes the command named by args[0], returning the exit code.
func run(args []string, stdout, stderr io.Writer, ask prompter) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "create":
		err = create(args[1:], stdout, stderr, ask)
	case "update":
		err = update(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		fmt.Fprintln(stderr, "webbot:", err)
		return 1
	}

	return 0
}
