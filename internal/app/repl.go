package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/selex/internal/config"
	"github.com/dshills/selex/internal/dispatcher/handlers/selections"
	"github.com/dshills/selex/internal/input"
	"github.com/dshills/selex/internal/transform"
)

// replPrompt is printed before every command.
const replPrompt = "selex> "

type replCommand struct {
	name    string
	aliases []string
	usage   string
	help    string
	run     func(ctx context.Context, args string) error
}

// REPL is a line-oriented command loop over an application. It shares the
// application input with the pattern prompt.
type REPL struct {
	app      *Application
	out      io.Writer
	commands []*replCommand
	byName   map[string]*replCommand
}

// NewREPL creates a REPL for app.
func NewREPL(app *Application) *REPL {
	r := &REPL{
		app:    app,
		out:    app.Output(),
		byName: make(map[string]*replCommand),
	}

	r.add(r.modeCommand("select", nil, transform.ModeSelect, "select every match inside every region"))
	r.add(r.modeCommand("split", nil, transform.ModeSplit, "split every region on matches"))
	r.add(r.modeCommand("lines", []string{"split-lines"}, transform.ModeSplitLines, "split multi-line regions per line"))
	r.add(r.modeCommand("edges", []string{"first-last"}, transform.ModeSelectFirstLast, "reduce regions to their first and last characters"))
	r.add(r.modeCommand("clear", nil, transform.ModeClear, "keep only the primary region"))
	r.add(r.modeCommand("clear-main", nil, transform.ModeClearMain, "remove the primary region"))
	r.add(r.modeCommand("keep", nil, transform.ModeKeepMatching, "keep regions whose text matches"))
	r.add(r.modeCommand("drop", nil, transform.ModeClearMatching, "drop regions whose text matches"))

	r.add(&replCommand{name: "set", usage: "set <anchor:active,...>", help: "replace the regions", run: r.cmdSet})
	r.add(&replCommand{name: "show", aliases: []string{"ls"}, usage: "show", help: "print the regions", run: r.cmdShow})
	r.add(&replCommand{name: "primary", usage: "primary [index]", help: "print or change the primary region", run: r.cmdPrimary})
	r.add(&replCommand{name: "config", aliases: []string{"cfg"}, usage: "config [path [value]]", help: "print or change settings", run: r.cmdConfig})
	r.add(&replCommand{name: "lua", usage: "lua <code>", help: "run Lua code against the session", run: r.cmdLua})
	r.add(&replCommand{name: "stats", usage: "stats", help: "print command statistics", run: r.cmdStats})
	r.add(&replCommand{name: "help", aliases: []string{"?"}, usage: "help", help: "list commands", run: r.cmdHelp})
	r.add(&replCommand{name: "quit", aliases: []string{"exit", "q"}, usage: "quit", help: "leave the REPL", run: func(context.Context, string) error {
		return ErrQuit
	}})
	return r
}

func (r *REPL) add(cmd *replCommand) {
	r.commands = append(r.commands, cmd)
	r.byName[cmd.name] = cmd
	for _, alias := range cmd.aliases {
		r.byName[alias] = cmd
	}
}

// Run reads commands until quit, end of input or context cancellation.
func (r *REPL) Run(ctx context.Context) error {
	log := r.app.Logger().WithComponent("repl")
	log.Debug("started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(r.out, replPrompt)
		line, readErr := r.app.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}

		if strings.TrimSpace(line) != "" {
			err := r.Execute(ctx, line)
			if errors.Is(err, ErrQuit) {
				log.Debug("quit")
				return nil
			}
			if err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
		}

		if readErr != nil {
			fmt.Fprintln(r.out)
			return nil
		}
	}
}

// Execute runs a single command line.
func (r *REPL) Execute(ctx context.Context, line string) error {
	line = strings.TrimRight(line, "\r\n")
	name, args, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")

	cmd, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd.run(ctx, args)
}

// modeCommand builds a command for one transformation. Pattern modes take
// the rest of the line as the pattern, or prompt when it is empty.
func (r *REPL) modeCommand(name string, aliases []string, m transform.Mode, help string) *replCommand {
	usage := name
	if m.NeedsPattern() {
		usage += " [pattern]"
	}
	return &replCommand{
		name:    name,
		aliases: aliases,
		usage:   usage,
		help:    help,
		run: func(ctx context.Context, args string) error {
			actionName, _ := selections.ActionFor(m)
			action := input.NewAction(actionName, input.SourceREPL)
			if m.NeedsPattern() && args != "" {
				action = action.WithPattern(args)
			}
			res := r.app.Dispatch(ctx, action)
			return r.app.Report(r.out, &res)
		},
	}
}

func (r *REPL) cmdSet(_ context.Context, args string) error {
	if strings.TrimSpace(args) == "" {
		return errors.New("usage: set <anchor:active,...>")
	}
	if err := r.app.Session().SetRegionSpec(args); err != nil {
		return err
	}
	return r.app.Report(r.out, nil)
}

func (r *REPL) cmdShow(_ context.Context, _ string) error {
	return r.app.Report(r.out, nil)
}

func (r *REPL) cmdPrimary(_ context.Context, args string) error {
	args = strings.TrimSpace(args)
	if args == "" {
		fmt.Fprintln(r.out, r.app.Session().PrimaryIndex())
		return nil
	}
	index, err := strconv.Atoi(args)
	if err != nil {
		return fmt.Errorf("invalid index %q", args)
	}
	if err := r.app.Session().SetPrimary(index); err != nil {
		return err
	}
	return r.app.Report(r.out, nil)
}

func (r *REPL) cmdConfig(_ context.Context, args string) error {
	path, value, hasValue := strings.Cut(strings.TrimSpace(args), " ")
	cfg := r.app.Config()

	if path == "" {
		for _, p := range config.Paths() {
			v, _ := cfg.Get(p)
			fmt.Fprintf(r.out, "%s = %v\n", p, v)
		}
		return nil
	}

	if !hasValue {
		v, err := cfg.Get(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "%s = %v\n", path, v)
		return nil
	}
	return r.app.SetConfig(path, strings.TrimSpace(value))
}

func (r *REPL) cmdLua(ctx context.Context, args string) error {
	if strings.TrimSpace(args) == "" {
		return errors.New("usage: lua <code>")
	}
	return r.app.RunLua(ctx, args)
}

func (r *REPL) cmdStats(_ context.Context, _ string) error {
	metrics := r.app.Dispatcher().Metrics()
	if metrics == nil {
		fmt.Fprintln(r.out, "metrics disabled")
		return nil
	}
	fmt.Fprintf(r.out, "commands: %d, panics: %d, average: %s\n",
		metrics.TotalDispatches(), metrics.TotalPanics(), metrics.AverageDuration())
	for _, am := range metrics.All() {
		fmt.Fprintf(r.out, "  %-28s %3d  ok=%d no-op=%d error=%d cancelled=%d\n",
			am.Name, am.DispatchCount, am.OKCount, am.NoOpCount, am.ErrorCount, am.CancelCount)
	}
	return nil
}

func (r *REPL) cmdHelp(_ context.Context, _ string) error {
	for _, cmd := range r.commands {
		fmt.Fprintf(r.out, "  %-24s %s\n", cmd.usage, cmd.help)
	}
	return nil
}
