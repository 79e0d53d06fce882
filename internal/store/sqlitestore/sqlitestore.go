package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/sqltodo/internal/model"
)

// SQLite-backed storage. Single file, one table, one connection.
// No locking beyond what SQLite does by default; fine for a local single-user CLI.

const (
	DataFileName = "database.sqlite3"

	// dueDateLayout is how due_date is written. Matches the text form of a
	// local timestamp with microseconds.
	dueDateLayout = "2006-01-02 15:04:05.000000"
)

const schema = `
CREATE TABLE IF NOT EXISTS todos(
	id INTEGER PRIMARY KEY,
	body TEXT NOT NULL,
	due_date TEXT NOT NULL,
	status TEXT DEFAULT 'incomplete'
)`

// Store owns the database handle. Callers must Close it.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
	log  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes debug output (statements, rows affected) to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the timestamp source used for due_date.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (creating if needed) the database at path and ensures the
// todos table exists.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	s := &Store{
		path: path,
		now:  time.Now,
		log:  log.New(io.Discard),
	}
	for _, o := range opts {
		o(s)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	s.db = db

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	s.log.Debug("database ready", "path", s.path)
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add inserts a new incomplete todo stamped with the current time.
func (s *Store) Add(ctx context.Context, body string) (model.Todo, error) {
	if body == "" {
		return model.Todo{}, model.ErrEmptyBody
	}
	due := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (body, due_date) VALUES (?, ?)`,
		body, due.Format(dueDateLayout))
	if err != nil {
		return model.Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("last insert id: %w", err)
	}
	s.log.Debug("todo added", "id", id)
	return model.Todo{ID: id, Body: body, DueDate: due, Status: model.StatusIncomplete}, nil
}

// List returns todos matching f. Unfiltered results put completed todos
// first, then incomplete ones, each in id order. The CASE is explicit because
// ORDER BY status DESC would sort "incomplete" ahead of "complete".
func (s *Store) List(ctx context.Context, f model.Filter) ([]model.Todo, error) {
	var (
		rows *sql.Rows
		err  error
	)
	switch f {
	case model.FilterCompleted:
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, body, status FROM todos WHERE status = ? ORDER BY id`,
			string(model.StatusComplete))
	default:
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, body, status FROM todos
			 ORDER BY CASE status WHEN ? THEN 0 ELSE 1 END, id`,
			string(model.StatusComplete))
	}
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var (
			t      model.Todo
			status sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Body, &status); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		t.Status = model.StatusIncomplete
		if status.Valid {
			t.Status = model.Status(status.String)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	s.log.Debug("list", "filter", f, "rows", len(todos))
	return todos, nil
}

// Delete removes the todo with id. A missing id is not an error; the
// number of affected rows is returned.
func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete todo: %w", err)
	}
	return s.affected(res, "delete", id)
}

// Complete marks id as complete.
func (s *Store) Complete(ctx context.Context, id int64) (int64, error) {
	return s.setStatus(ctx, id, model.StatusComplete)
}

// Uncomplete marks id as incomplete.
func (s *Store) Uncomplete(ctx context.Context, id int64) (int64, error) {
	return s.setStatus(ctx, id, model.StatusIncomplete)
}

func (s *Store) setStatus(ctx context.Context, id int64, st model.Status) (int64, error) {
	if !st.Valid() {
		return 0, fmt.Errorf("invalid status %q", st)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE todos SET status = ? WHERE id = ?`, string(st), id)
	if err != nil {
		return 0, fmt.Errorf("update status: %w", err)
	}
	return s.affected(res, "set "+string(st), id)
}

func (s *Store) affected(res sql.Result, op string, id int64) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	s.log.Debug(op, "id", id, "rows", n)
	return n, nil
}
