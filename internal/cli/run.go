package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/slotlist/internal/config"
)

// maxLineSize bounds a single script line.
const maxLineSize = 1 << 20

// Run is the main entry point. Returns exit code.
//
// With a command after the global flags, that single command runs against a
// fresh list. Otherwise commands are read from stdin: interactively through
// a line editor when stdin is a terminal, one per line when it is not.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	fs, flags := globalFlagSet()

	if len(args) > 0 {
		args = args[1:]
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(out, fs)

			return 0
		}

		fprintln(errOut, "error:", err)
		printUsage(errOut, fs)

		return 1
	}

	if flags.help {
		printUsage(out, fs)

		return 0
	}

	input := config.LoadInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		NoHistory:       flags.noHistory,
		Env:             env,
	}

	if fs.Changed("threshold") {
		input.ThresholdOverride = &flags.threshold
	}

	if fs.Changed("capacity") {
		input.CapacityOverride = &flags.capacity
	}

	cfg, err := config.Load(input)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	session, err := NewSession(cfg)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	o := NewIO(out, errOut)

	if rest := fs.Args(); len(rest) > 0 {
		code, _ := session.ExecuteArgs(ctx, o, rest)

		return max(code, o.Finish())
	}

	if f, ok := stdin.(*os.File); ok && isTerminal(f) {
		return max(runInteractive(ctx, session, o), o.Finish())
	}

	return max(runScript(ctx, session, o, stdin), o.Finish())
}

type globalFlags struct {
	workDir    string
	configPath string
	threshold  int
	capacity   int
	noHistory  bool
	help       bool
}

func globalFlagSet() (*flag.FlagSet, *globalFlags) {
	flags := &globalFlags{}

	fs := flag.NewFlagSet("sloty", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(&strings.Builder{}) // usage is printed by printUsage

	fs.StringVarP(&flags.workDir, "cwd", "C", "", "Run as if started in `dir`")
	fs.StringVarP(&flags.configPath, "config", "c", "", "Use specified config `file`")
	fs.IntVarP(&flags.threshold, "threshold", "t", 0, "Hole threshold for automatic compaction (0 disables)")
	fs.IntVar(&flags.capacity, "capacity", 0, "Initial capacity of the list")
	fs.BoolVar(&flags.noHistory, "no-history", false, "Do not read or write the history file")
	fs.BoolVarP(&flags.help, "help", "h", false, "Show help")

	return fs, flags
}

// runScript executes one command per input line. Every line runs even when
// an earlier one failed; the exit code is 1 if any failed.
func runScript(ctx context.Context, s *Session, o *IO, in io.Reader) int {
	if in == nil {
		return 0
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	exitCode := 0

	for scanner.Scan() {
		if ctx.Err() != nil {
			o.ErrPrintln("error: interrupted")

			return 1
		}

		code, quit := s.Execute(ctx, o, scanner.Text())
		exitCode = max(exitCode, code)

		if quit {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		o.ErrPrintln("error: reading input:", err)

		return 1
	}

	return exitCode
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fprintln(w, `sloty - slot list playground

Usage: sloty [options] [command [args]]

Without a command, reads commands from stdin (interactive on a terminal).

Options:`)

	var buf strings.Builder

	fs.SetOutput(&buf)
	fs.PrintDefaults()
	fs.SetOutput(&strings.Builder{})

	fprintln(w, strings.TrimRight(buf.String(), "\n"))
	fprintln(w)

	printCommands(NewIO(w, w), &Session{})
}
