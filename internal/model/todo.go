package model

import (
	"errors"
	"fmt"
	"time"
)

// Status is the completion state of a todo. It is the only field that
// changes after a todo is created.
type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusIncomplete || s == StatusComplete
}

// Todo is one row of the todos table.
type Todo struct {
	ID      int64
	Body    string
	DueDate time.Time // stored on insert, never read back
	Status  Status
}

func (t Todo) Done() bool { return t.Status == StatusComplete }

// Filter narrows a listing.
type Filter int

const (
	FilterAll Filter = iota
	FilterCompleted
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrEmptyBody     = errors.New("empty body")
)

// ParseFilter maps the list argument onto a Filter. The only filter is
// "done" (completed only); listing everything takes no argument.
func ParseFilter(s string) (Filter, error) {
	if s == "done" {
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

func (f Filter) String() string {
	switch f {
	case FilterCompleted:
		return "done"
	default:
		return "all"
	}
}
