package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/slotlist/pkg/slotlist"
)

// Command is one sloty command line.
//
// Arguments are split before pflag sees them: negative numbers are always
// positional, so "rm -1" reports a bad position instead of an unknown flag.
type Command struct {
	Flags *flag.FlagSet

	// Usage starts with the command name, e.g. "get <pos>".
	Usage string
	Short string
	Long  string

	// Args names the required positional arguments. Unless Variadic is
	// set, no further positionals are accepted.
	Args     []string
	Variadic bool

	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the first word of Usage.
func (c *Command) Name() string {
	return strings.Fields(c.Usage)[0]
}

// HelpLine returns the line shown by "help".
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-26s %s", c.Usage, c.Short)
}

// PrintHelp prints usage, description and flags.
func (c *Command) PrintHelp(o *IO) {
	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	var b strings.Builder

	_, _ = fmt.Fprintf(&b, "Usage: %s\n\n%s\n", c.Usage, desc)

	if c.Flags.HasFlags() {
		b.WriteString("\nFlags:\n")
		b.WriteString(c.Flags.FlagUsages())
	}

	o.Printf("%s", b.String())
}

// Run parses args and executes the command. Errors go to stderr with a
// hint where one helps. Returns the exit code.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	flagArgs, positional := c.splitArgs(args)

	c.Flags.SetOutput(&strings.Builder{})

	if err := c.Flags.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		c.fail(o, err, c.usageHint())

		return 1
	}

	positional = append(positional, c.Flags.Args()...)

	if err := c.checkArgs(positional); err != nil {
		c.fail(o, err, c.usageHint())

		return 1
	}

	if err := c.Exec(ctx, o, positional); err != nil {
		c.fail(o, err, c.hint(err))

		return 1
	}

	return 0
}

func (c *Command) fail(o *IO, err error, hint string) {
	o.ErrPrintln("error:", err)

	if hint != "" {
		o.ErrPrintln("hint:", hint)
	}
}

func (c *Command) usageHint() string {
	return "usage: " + c.Usage + " (see 'help " + c.Name() + "')"
}

// hint suggests a next step for errors returned by Exec.
func (c *Command) hint(err error) string {
	switch {
	case errors.Is(err, slotlist.ErrOutOfRange):
		return "positions run from 0 to len_with_holes-1, see 'info'"
	case errors.Is(err, slotlist.ErrNotFound):
		return "'ls --raw' shows live positions and holes (_)"
	case errors.Is(err, slotlist.ErrConcurrentModification):
		return "the list changed mid-walk, run the command again"
	case errors.Is(err, errInvalidNumber):
		return c.usageHint()
	default:
		return ""
	}
}

func (c *Command) checkArgs(args []string) error {
	if len(args) < len(c.Args) {
		return fmt.Errorf("%w: %s", errMissingArg, c.Args[len(args)])
	}

	if !c.Variadic && len(args) > len(c.Args) {
		return fmt.Errorf("%w: %s", errTooManyArgs, strings.Join(args[len(c.Args):], " "))
	}

	return nil
}

// splitArgs separates flag tokens (with their values) from positionals.
// Everything after "--" is positional.
func (c *Command) splitArgs(args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return flags, append(positional, args[i+1:]...)
		case !isFlagToken(arg):
			positional = append(positional, arg)
		default:
			flags = append(flags, arg)

			if c.takesValue(arg) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}

	return flags, positional
}

func isFlagToken(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}

	_, err := strconv.Atoi(arg)

	return err != nil
}

// takesValue reports whether the flag token consumes the next argument.
func (c *Command) takesValue(arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	var f *flag.Flag

	if name, ok := strings.CutPrefix(arg, "--"); ok {
		f = c.Flags.Lookup(name)
	} else if len(arg) == 2 {
		f = c.Flags.ShorthandLookup(arg[1:])
	}

	return f != nil && f.NoOptDefVal == ""
}

// intArg parses a numeric positional named what.
func intArg(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w for %s: %q", errInvalidNumber, what, s)
	}

	return n, nil
}
