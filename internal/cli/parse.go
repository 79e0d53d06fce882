package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/sqltodo/internal/model"
)

// Command is the closed set of subcommands.
type Command int

const (
	CmdHelp Command = iota
	CmdList
	CmdAdd
	CmdDelete
	CmdDo
	CmdUndo
	CmdBrowse
)

var commandNames = map[Command]string{
	CmdHelp:   "help",
	CmdList:   "list",
	CmdAdd:    "add",
	CmdDelete: "delete",
	CmdDo:     "do",
	CmdUndo:   "undo",
	CmdBrowse: "browse",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Usage lines, one per command that takes arguments.
const (
	usageList   = "todo list [done]"
	usageAdd    = "todo add <body...>"
	usageDelete = "todo delete <id>"
	usageDo     = "todo do <id>"
	usageUndo   = "todo undo <id>"
	usageBrowse = "todo browse"
)

// Invocation is a parsed command line.
type Invocation struct {
	Command Command
	Body    string
	ID      int64
	Filter  model.Filter
}

// ErrNoCommand is returned by Parse when args is empty.
var ErrNoCommand = errors.New("no subcommand")

// UsageError reports a malformed command line.
type UsageError struct {
	Msg      string
	Usage    string // the offending command's usage line, if known
	ShowHelp bool   // print the full menu after the message
}

func (e *UsageError) Error() string { return e.Msg }

// Parse maps args (without the program name or root flags) onto an Invocation.
func Parse(args []string) (Invocation, error) {
	if len(args) == 0 {
		return Invocation{}, ErrNoCommand
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		return Invocation{Command: CmdHelp}, nil

	case "list":
		switch len(a) {
		case 0:
			return Invocation{Command: CmdList, Filter: model.FilterAll}, nil
		case 1:
			f, err := model.ParseFilter(a[0])
			if err != nil {
				return Invocation{}, &UsageError{Msg: "list: " + err.Error(), Usage: usageList}
			}
			return Invocation{Command: CmdList, Filter: f}, nil
		}
		return Invocation{}, &UsageError{Msg: "list: too many arguments", Usage: usageList}

	case "add":
		body := strings.Join(a, " ")
		if strings.TrimSpace(body) == "" {
			return Invocation{}, &UsageError{Msg: "add: " + model.ErrEmptyBody.Error(), Usage: usageAdd}
		}
		return Invocation{Command: CmdAdd, Body: body}, nil

	case "delete":
		return parseID(CmdDelete, a, usageDelete)
	case "do":
		return parseID(CmdDo, a, usageDo)
	case "undo":
		return parseID(CmdUndo, a, usageUndo)

	case "browse":
		if len(a) != 0 {
			return Invocation{}, &UsageError{Msg: "browse: takes no arguments", Usage: usageBrowse}
		}
		return Invocation{Command: CmdBrowse}, nil
	}

	return Invocation{}, &UsageError{Msg: "unknown subcommand: " + cmd, ShowHelp: true}
}

func parseID(c Command, a []string, usage string) (Invocation, error) {
	if len(a) != 1 {
		return Invocation{}, &UsageError{Msg: c.String() + ": expected exactly one id", Usage: usage}
	}
	id, err := strconv.ParseInt(a[0], 10, 64)
	if err != nil {
		return Invocation{}, &UsageError{Msg: c.String() + ": not a number: " + a[0], Usage: usage}
	}
	return Invocation{Command: c, ID: id}, nil
}
