package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/slotlist/internal/config"
	"github.com/calvinalkan/slotlist/pkg/slotlist"
)

// Session is one sloty run: a list of strings and the configuration it was
// created from. Commands operate on the session's list.
type Session struct {
	list *slotlist.List[string]
	cfg  config.Config
}

// NewSession creates a session with an empty list configured by cfg.
func NewSession(cfg config.Config) (*Session, error) {
	list, err := slotlist.New[string](cfg.ListOptions())
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}

	return &Session{list: list, cfg: cfg}, nil
}

// List returns the session's list.
func (s *Session) List() *slotlist.List[string] {
	return s.list
}

// commands returns a fresh set of commands. Commands are rebuilt per
// invocation so flag values never leak from one line to the next.
func (s *Session) commands() []*Command {
	return []*Command{
		AddCmd(s),
		InsertCmd(s),
		RmCmd(s),
		RmvCmd(s),
		GetCmd(s),
		SetCmd(s),
		LsCmd(s),
		FilterCmd(s),
		CompactCmd(s),
		ClearCmd(s),
		LenCmd(s),
		CapCmd(s),
		ReserveCmd(s),
		ThresholdCmd(s),
		GenCmd(s),
		InfoCmd(s),
		CheckCmd(s),
		BulkCmd(s),
		PrintConfigCmd(s),
		HelpCmd(s),
	}
}

func (s *Session) lookup(name string) *Command {
	for _, cmd := range s.commands() {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

// commandNames returns all command names plus the loop keywords, sorted.
func (s *Session) commandNames() []string {
	names := []string{"exit", "quit"}

	for _, cmd := range s.commands() {
		names = append(names, cmd.Name())
	}

	slices.Sort(names)

	return names
}

// Execute runs one input line. It returns the exit code of the command and
// whether the line asked to leave the loop.
func (s *Session) Execute(ctx context.Context, o *IO, line string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return 0, false
	}

	return s.ExecuteArgs(ctx, o, fields)
}

// ExecuteArgs runs an already split command line.
func (s *Session) ExecuteArgs(ctx context.Context, o *IO, fields []string) (int, bool) {
	if len(fields) == 0 {
		return 0, false
	}

	name, args := fields[0], fields[1:]

	switch name {
	case "exit", "quit", "q":
		return 0, true
	case "-h", "--help":
		name = "help"
	}

	cmd := s.lookup(name)
	if cmd == nil {
		o.ErrPrintln("error:", fmt.Errorf("%w: %s (try 'help')", errUnknownCommand, name))

		return 1, false
	}

	return cmd.Run(ctx, o, args), false
}

// complete offers command names for the interactive prompt.
func (s *Session) complete(line string) []string {
	var out []string

	for _, name := range s.commandNames() {
		if strings.HasPrefix(name, line) {
			out = append(out, name)
		}
	}

	return out
}

func newFlags(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}
