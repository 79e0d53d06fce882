package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/sqltodo/internal/logging"
	"github.com/idilsaglam/sqltodo/internal/model"
	"github.com/idilsaglam/sqltodo/internal/ui"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Repository is the storage surface the commands use.
type Repository interface {
	Add(ctx context.Context, body string) (model.Todo, error)
	List(ctx context.Context, f model.Filter) ([]model.Todo, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Complete(ctx context.Context, id int64) (int64, error)
	Uncomplete(ctx context.Context, id int64) (int64, error)
}

// Store is a Repository that owns a resource.
type Store interface {
	Repository
	Close() error
}

// Options wires output, logging and storage into Run.
type Options struct {
	UI  *ui.Printer
	Log *log.Logger

	// Open is called once, only for commands that touch data.
	Open func(ctx context.Context) (Store, error)

	// Browse runs the interactive list. Nil disables the browse command.
	Browse func(ctx context.Context, repo Repository, p *ui.Printer) error
}

// Run dispatches one invocation and returns an exit code
// (0 ok, 1 error or missing subcommand, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Log == nil {
		opt.Log = logging.Discard()
	}

	inv, err := Parse(args)
	if err != nil {
		return usageFailure(opt, err)
	}
	opt.Log.Debug("dispatch", "cmd", inv.Command)

	if inv.Command == CmdHelp {
		PrintHelp(opt.UI)
		return ExitOK
	}
	if inv.Command == CmdBrowse && opt.Browse == nil {
		opt.UI.Fail("browse: not available")
		return ExitError
	}

	store, err := opt.Open(ctx)
	if err != nil {
		return failure(opt, inv.Command, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			opt.Log.Warn("close database", "err", err)
		}
	}()

	if err := execute(ctx, inv, store, opt); err != nil {
		return failure(opt, inv.Command, err)
	}
	return ExitOK
}

func usageFailure(opt Options, err error) int {
	if errors.Is(err, ErrNoCommand) {
		PrintHelp(opt.UI)
		return ExitError
	}
	var ue *UsageError
	if !errors.As(err, &ue) {
		opt.UI.Fail(err.Error())
		return ExitUsage
	}
	opt.UI.Fail(ue.Msg)
	if ue.Usage != "" {
		opt.UI.Hint("usage: " + ue.Usage)
	}
	if ue.ShowHelp {
		fmt.Fprintln(opt.UI.Err())
		PrintHelp(opt.UI)
	}
	return ExitUsage
}

func failure(opt Options, cmd Command, err error) int {
	opt.Log.Debug("command failed", "cmd", cmd, "err", err)
	opt.UI.Fail(cmd.String() + ": " + err.Error())
	return ExitError
}

// -------------- subcommand impls ----------------

func execute(ctx context.Context, inv Invocation, repo Repository, opt Options) error {
	p := opt.UI
	switch inv.Command {
	case CmdList:
		todos, err := repo.List(ctx, inv.Filter)
		if err != nil {
			return err
		}
		printList(p, todos)
		return nil

	case CmdAdd:
		if _, err := repo.Add(ctx, inv.Body); err != nil {
			return err
		}
		p.Line(p.Success("Adding Todo:"), inv.Body)
		return nil

	case CmdDelete:
		if _, err := repo.Delete(ctx, inv.ID); err != nil {
			return err
		}
		p.Line(p.Success("Deleting Todo:"), formatID(inv.ID))
		return nil

	case CmdDo:
		if _, err := repo.Complete(ctx, inv.ID); err != nil {
			return err
		}
		p.Line(p.Success("Marking todo complete:"), formatID(inv.ID))
		return nil

	case CmdUndo:
		if _, err := repo.Uncomplete(ctx, inv.ID); err != nil {
			return err
		}
		p.Line(p.Success("Marking todo incomplete:"), formatID(inv.ID))
		return nil

	case CmdBrowse:
		return opt.Browse(ctx, repo, p)
	}
	return fmt.Errorf("unhandled command %v", inv.Command)
}

// -------------- rendering helpers --------------

func printList(p *ui.Printer, todos []model.Todo) {
	p.Line(p.Success("Todo List:"), strconv.Itoa(len(todos)), "todos")
	p.Line(p.Rule("*", 50))
	for _, t := range todos {
		p.Line(p.Success(formatID(t.ID)+"."), t.Body)
	}
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

// PrintHelp writes the usage menu to stdout.
func PrintHelp(p *ui.Printer) {
	entry := func(n int, title string, examples ...string) {
		p.Line(p.Success(fmt.Sprintf("%d. %s", n, title)))
		for _, ex := range examples {
			fmt.Fprintln(p.Out(), "\t "+ex)
		}
	}

	p.Line(p.Success("Todo List Options:"))
	p.Line(p.Rule("*", 50))
	entry(1, "List all todos:", "todo list", "todo list done")
	entry(2, "Add a new todo:", `todo add "My Todo Body"`)
	entry(3, "Delete a todo:", "todo delete 1")
	entry(4, "Mark a todo complete:", "todo do 1")
	entry(5, "Mark a todo uncomplete:", "todo undo 1")
	entry(6, "Browse todos interactively:", "todo browse")
	p.Line(p.Rule("-", 100))
	p.Line(p.Muted("Flags: " + strings.Join([]string{
		"--db PATH", "--config PATH", "--theme classic|neon|mono",
		"--color auto|always|never", "--log-level LEVEL", "--log-format text|logfmt|json",
	}, "  ")))
}
