package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/sqltodo/internal/cli"
)

type result struct {
	code     int
	out, err string
}

func invoke(t *testing.T, env map[string]string, args ...string) result {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := run(context.Background(), args, &out, &errBuf, func(k string) string { return env[k] })
	return result{code: code, out: out.String(), err: errBuf.String()}
}

func TestRun_EndToEnd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	db := filepath.Join(t.TempDir(), "todos.sqlite3")

	r := invoke(t, nil, "--db", db, "add", "Buy milk")
	require.Equal(t, cli.ExitOK, r.code, r.err)
	require.Equal(t, "Adding Todo: Buy milk\n", r.out)

	r = invoke(t, nil, "--db", db, "add", "Walk dog")
	require.Equal(t, cli.ExitOK, r.code, r.err)

	r = invoke(t, nil, "--db", db, "do", "2")
	require.Equal(t, cli.ExitOK, r.code, r.err)

	r = invoke(t, nil, "--db", db, "list")
	require.Equal(t, cli.ExitOK, r.code, r.err)
	require.Equal(t, "Todo List: 2 todos\n"+strings.Repeat("*", 50)+"\n2. Walk dog\n1. Buy milk\n", r.out)

	r = invoke(t, nil, "--db", db, "list", "done")
	require.Equal(t, cli.ExitOK, r.code, r.err)
	require.Contains(t, r.out, "2. Walk dog")
	require.NotContains(t, r.out, "Buy milk")

	_, err := os.Stat(db)
	require.NoError(t, err)
}

func TestRun_DefaultDatabaseUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	r := invoke(t, nil, "add", "x")
	require.Equal(t, cli.ExitOK, r.code, r.err)

	_, err := os.Stat(filepath.Join(home, ".todo", "database.sqlite3"))
	require.NoError(t, err)
}

func TestRun_DatabaseFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	db := filepath.Join(t.TempDir(), "env.sqlite3")

	r := invoke(t, map[string]string{"TODO_DB": db}, "add", "from env")
	require.Equal(t, cli.ExitOK, r.code, r.err)
	_, err := os.Stat(db)
	require.NoError(t, err)
}

func TestRun_NoArgs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := invoke(t, nil)
	require.Equal(t, 1, r.code)
	require.Contains(t, r.out, "Todo List Options:")
}

func TestRun_Help(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	for _, arg := range []string{"--help", "-h", "help"} {
		r := invoke(t, nil, arg)
		require.Equal(t, 0, r.code, arg)
		require.Contains(t, r.out, "Todo List Options:", arg)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := invoke(t, nil, "--nope", "list")
	require.Equal(t, cli.ExitUsage, r.code)
	require.Contains(t, r.err, "flag provided but not defined")
	require.Contains(t, r.out, "Todo List Options:")
}

func TestRun_BadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := invoke(t, map[string]string{"TODO_THEME": "plaid"}, "list")
	require.Equal(t, cli.ExitError, r.code)
	require.Contains(t, r.err, "config: unknown theme")
}

func TestRun_WithoutHome(t *testing.T) {
	t.Setenv("HOME", "")

	r := invoke(t, nil, "help")
	require.Equal(t, cli.ExitOK, r.code, r.err)
	require.Contains(t, r.out, "Todo List Options:")

	db := filepath.Join(t.TempDir(), "todos.sqlite3")
	r = invoke(t, nil, "--db", db, "list")
	require.Equal(t, cli.ExitOK, r.code, r.err)
	require.Contains(t, r.out, "Todo List: 0 todos")

	r = invoke(t, nil, "list")
	require.Equal(t, cli.ExitError, r.code)
	require.Contains(t, r.err, "list: no database path")
}

func TestRun_DebugLogging(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	db := filepath.Join(t.TempDir(), "todos.sqlite3")

	r := invoke(t, nil, "--db", db, "--log-level", "debug", "--log-format", "logfmt", "delete", "5")
	require.Equal(t, cli.ExitOK, r.code, r.err)
	require.Equal(t, "Deleting Todo: 5\n", r.out)
	require.Contains(t, r.err, "rows=0")
}
