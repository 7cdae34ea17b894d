package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/calvinalkan/slotlist/internal/config"
	"github.com/calvinalkan/slotlist/pkg/slotlist"
)

// holeMarker renders an empty slot.
const holeMarker = "_"

// AddCmd returns the add command.
func AddCmd(s *Session) *Command {
	return &Command{
		Flags:    newFlags("add"),
		Usage:    "add <value>...",
		Args:     []string{"value"},
		Variadic: true,
		Short:    "Add values, reusing freed positions first",
		Long:     "Add one or more values. Each value fills the most recently freed position, or is appended. Prints the position of every value.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			for _, v := range args {
				pos, err := s.list.Add(v)
				if err != nil {
					return err
				}

				o.Println(pos)
			}

			return nil
		},
	}
}

// InsertCmd returns the insert command.
func InsertCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("insert"),
		Usage: "insert <pos> <value>",
		Args:  []string{"pos", "value"},
		Short: "Compact, then insert with shifting (slow)",
		Long:  "Compact the list and insert value at pos among the live elements, shifting later ones. Invalidates every position.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			pos, err := intArg("pos", args[0])
			if err != nil {
				return err
			}

			if err := s.list.InsertAt(pos, args[1]); err != nil {
				return err
			}

			o.Printf("inserted at %d (generation %d)\n", pos, s.list.Generation())

			return nil
		},
	}
}

// RmCmd returns the rm command.
func RmCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("rm"),
		Usage: "rm <pos>",
		Args:  []string{"pos"},
		Short: "Remove the element at pos",
		Long:  "Remove the element at pos. The last position truncates; any other leaves a hole. Reports automatic compaction.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			pos, err := intArg("pos", args[0])
			if err != nil {
				return err
			}

			return s.removeAndReport(o, func() error { return s.list.RemoveAt(pos) })
		},
	}
}

// RmvCmd returns the rmv command.
func RmvCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("rmv"),
		Usage: "rmv <value>",
		Args:  []string{"value"},
		Short: "Remove the first element equal to value",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			return s.removeAndReport(o, func() error {
				if !slotlist.RemoveValue(s.list, args[0]) {
					return fmt.Errorf("%w: %q", slotlist.ErrNotFound, args[0])
				}

				return nil
			})
		},
	}
}

func (s *Session) removeAndReport(o *IO, remove func() error) error {
	generation := s.list.Generation()

	if err := remove(); err != nil {
		return err
	}

	o.Printf("removed (len=%d holes=%d)\n", s.list.Len(), s.list.Holes())

	if s.list.Generation() != generation {
		o.Printf("compacted: positions invalidated (generation %d)\n", s.list.Generation())
	}

	return nil
}

// GetCmd returns the get command.
func GetCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("get"),
		Usage: "get <pos>",
		Args:  []string{"pos"},
		Short: "Show the value at pos",
		Long:  "Show the value at pos. Holes print as " + holeMarker + ".",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			pos, err := intArg("pos", args[0])
			if err != nil {
				return err
			}

			v, ok, err := s.list.Get(pos)
			if err != nil {
				return err
			}

			if !ok {
				v = holeMarker
			}

			o.Println(v)

			return nil
		},
	}
}

// SetCmd returns the set command.
func SetCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("set"),
		Usage: "set <pos> <value>",
		Args:  []string{"pos", "value"},
		Short: "Overwrite the live element at pos",
		Exec: func(_ context.Context, _ *IO, args []string) error {
			if err := 			pos, err := intArg("pos", args[0])
			if err != nil {
				return err
			}

			return s.list.Set(pos, args[1])
		},
	}
}

// LsCmd returns the ls command.
func LsCmd(s *Session) *Command {
	fs := newFlags("ls")
	fs.BoolP("raw", "r", false, "Show every slot including holes")
	fs.Int("limit", 0, "Maximum lines to show (0 = all)")

	return &Command{
		Flags: fs,
		Usage: "ls [--raw] [--limit N]",
		Short: "List elements as pos<TAB>value",
		Long:  "List live elements in position order as pos<TAB>value. With --raw, holes are listed as " + holeMarker + ".",
		Exec: func(_ context.Context, o *IO, args []string) error {
			raw, _ := fs.GetBool("raw")

			limit, _ := fs.GetInt("limit")
			if limit < 0 {
				return fmt.Errorf("%w for limit: %d", errInvalidNumber, limit)
			}

			shown := 0

			if raw {
				for pos := range s.list.LenWithHoles() {
					if limit > 0 && shown == limit {
						break
					}

					v, ok, err := s.list.Get(pos)
					if err != nil {
						return err
					}

					if !ok {
						v = holeMarker
					}

					o.Printf("%d\t%s\n", pos, v)
					shown++
				}

				return nil
			}

			for pos, v := range s.list.All() {
				if limit > 0 && shown == limit {
					break
				}

				o.Printf("%d\t%s\n", pos, v)
				shown++
			}

			return nil
		},
	}
}

// FilterCmd returns the filter command.
func FilterCmd(s *Session) *Command {
	fs := newFlags("filter")
	fs.BoolP("invert", "v", false, "Remove elements NOT containing substr")

	return &Command{
		Flags: fs,
		Usage: "filter <substr> [--invert]",
		Args:  []string{"substr"},
		Short: "Remove elements containing substr while iterating",
		Long:  "Walk the list once and remove every element containing substr through the iterator. Prints how many were removed.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			invert, _ := fs.GetBool("invert")
			generation := s.list.Generation()
			removed := 0

			it := s.list.Iter()
			for it.Next() {
				if strings.Contains(it.Value(), args[0]) == invert {
					continue
				}

				if err := it.RemoveCurrent(); err != nil {
					return err
				}

				removed++
			}

			if err := it.Err(); err != nil {
				return err
			}

			o.Printf("removed %d\n", removed)

			if s.list.Generation() != generation {
				o.Printf("compacted: positions invalidated (generation %d)\n", s.list.Generation())
			}

			return nil
		},
	}
}

// CompactCmd returns the compact command.
func CompactCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("compact"),
		Usage: "compact",
		Short: "Remove all holes (invalidates positions)",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			holes := s.list.Holes()
			s.list.Compact()

			o.Printf("compacted %d holes (len=%d generation=%d)\n", holes, s.list.Len(), s.list.Generation())

			return nil
		},
	}
}

// ClearCmd returns the clear command.
func ClearCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("clear"),
		Usage: "clear",
		Short: "Remove every element and hole",
		Exec: func(_ context.Context, _ *IO, args []string) error {
			if err := 			s.list.Clear()

			return nil
		},
	}
}

// LenCmd returns the len command.
func LenCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("len"),
		Usage: "len",
		Short: "Count live elements",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			o.Println(s.list.Len())

			return nil
		},
	}
}

// CapCmd returns the cap command.
func CapCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("cap"),
		Usage: "cap",
		Short: "Show backing store capacity",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			o.Println(s.list.Capacity())

			return nil
		},
	}
}

// ReserveCmd returns the reserve command.
func ReserveCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("reserve"),
		Usage: "reserve <n>",
		Args:  []string{"n"},
		Short: "Grow capacity to at least n slots",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			n, err := intArg("n", args[0])
			if err != nil {
				return err
			}

			if err := s.list.Reserve(n); err != nil {
				return err
			}

			o.Println(s.list.Capacity())

			return nil
		},
	}
}

// ThresholdCmd returns the threshold command.
func ThresholdCmd(s *Session) *Command {
	return &Command{
		Flags:    newFlags("threshold"),
		Usage:    "threshold [n]",
		Variadic: true,
		Short:    "Show or set the auto-compaction hole threshold",
		Long:     "Show the hole threshold, or set it to n. 0 disables automatic compaction. A new threshold applies on the next removal.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				o.Println(s.list.HoleThreshold())

				return nil
			}

			if len(args) > 1 {
				return fmt.Errorf("%w: %s", errTooManyArgs, strings.Join(args[1:], " "))
			}

			n, err := intArg("n", args[0])
			if err != nil {
				return err
			}

			return s.list.SetHoleThreshold(n)
		},
	}
}

// GenCmd returns the gen command.
func GenCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("gen"),
		Usage: "gen",
		Short: "Show the generation counter",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			o.Println(s.list.Generation())

			return nil
		},
	}
}

// InfoCmd returns the info command.
func InfoCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("info"),
		Usage: "info",
		Short: "Show counts, capacity, threshold and free stack",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			free := s.list.FreePositions()
			rendered := make([]string, len(free))

			for i, pos := range free {
				rendered[i] = strconv.Itoa(pos)
			}

			o.Printf("len=%d\n", s.list.Len())
			o.Printf("len_with_holes=%d\n", s.list.LenWithHoles())
			o.Printf("holes=%d\n", s.list.Holes())
			o.Printf("capacity=%d\n", s.list.Capacity())
			o.Printf("hole_threshold=%d\n", s.list.HoleThreshold())
			o.Printf("generation=%d\n", s.list.Generation())
			o.Printf("free=[%s]\n", strings.Join(rendered, " "))

			return nil
		},
	}
}

// CheckCmd returns the check command.
func CheckCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("check"),
		Usage: "check",
		Short: "Verify the free stack matches the holes",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := 			if err := s.list.CheckInvariants(); err != nil {
				return err
			}

			o.Println("ok")

			return nil
		},
	}
}

// bulkCheckEvery is how many adds run between cancellation checks.
const bulkCheckEvery = 1024

// BulkCmd returns the bulk command.
func BulkCmd(s *Session) *Command {
	fs := newFlags("bulk")
	fs.StringP("prefix", "p", "v", "Value prefix")

	return &Command{
		Flags: fs,
		Usage: "bulk <n> [--prefix p]",
		Args:  []string{"n"},
		Short: "Add n values <prefix>0..<prefix>n-1",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if err := 			n, err := intArg("n", args[0])
			if err != nil {
				return err
			}

			if n < 0 {
				return fmt.Errorf("%w for n: %d", errInvalidNumber, n)
			}

			prefix, _ := fs.GetString("prefix")

			for i := range n {
				if i%bulkCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						o.Printf("interrupted after %d\n", i)

						return err
					}
				}

				if _, err := s.list.Add(prefix + strconv.Itoa(i)); err != nil {
					return err
				}
			}

			o.Printf("added %d (len=%d)\n", n, s.list.Len())

			return nil
		},
	}
}

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(s *Session) *Command {
	return &Command{
		Flags: newFlags("print-config"),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execPrintConfig(o, s.cfg)
		},
	}
}

func execPrintConfig(o *IO, cfg config.Config) error {
	formatted, err := config.Format(cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)
	o.Println("")
	o.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			o.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			o.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}

// HelpCmd returns the help command.
func HelpCmd(s *Session) *Command {
	return &Command{
		Flags:    newFlags("help"),
		Usage:    "help [command]",
		Variadic: true,
		Short:    "Show commands, or help for one command",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				cmd := s.lookup(args[0])
				if cmd == nil {
					return fmt.Errorf("%w: %s", errUnknownCommand, args[0])
				}

				cmd.PrintHelp(o)

				return nil
			}

			printCommands(o, s)

			return nil
		},
	}
}

func printCommands(o *IO, s *Session) {
	o.Println("Commands:")

	for _, cmd := range s.commands() {
		o.Println(cmd.HelpLine())
	}

	o.Println(fmt.Sprintf("  %-26s %s", "exit", "Leave sloty"))
}
