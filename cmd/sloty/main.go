// sloty is a playground for slot lists: a list of strings whose removals
// leave reusable holes instead of shifting.
//
// Usage:
//
//	sloty [options]                  Read commands from stdin
//	sloty [options] <command> [args] Run a single command
//
// Options:
//
//	-C, --cwd          Run as if started in <dir>
//	-c, --config       Use specified config file
//	-t, --threshold    Hole threshold for automatic compaction (0 disables)
//	    --capacity     Initial capacity of the list
//	    --no-history   Do not read or write the history file
//
// On a terminal, sloty opens an interactive prompt with history and tab
// completion. Otherwise it reads one command per line; lines starting with
// # are comments. Type 'help' for the command list.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/calvinalkan/slotlist/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env, sigCh)

	os.Exit(exitCode)
}
